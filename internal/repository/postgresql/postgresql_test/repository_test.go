package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/escuela-horarios/attendance-backend/internal/domain/attendance"
	"github.com/escuela-horarios/attendance-backend/internal/domain/schedule"
	"github.com/escuela-horarios/attendance-backend/internal/domain/user"
	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
	"github.com/escuela-horarios/attendance-backend/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSetup *TestDatabaseSetup

// setupTestDB connects to TEST_DATABASE_URL, migrates and truncates. Tests
// are skipped when no database is configured.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	if testSetup == nil {
		setup, err := NewTestDatabase(ctx, dsn)
		require.NoError(t, err)
		testSetup = setup
	}

	require.NoError(t, testSetup.TruncateAllTables(ctx))
	return testSetup.DB
}

type fixture struct {
	teacherID int64
	groupID   int64
	subjectID int64
}

func seedCatalog(t *testing.T, db *database.DB) fixture {
	t.Helper()
	ctx := context.Background()
	var f fixture

	var buildingID int64
	require.NoError(t, db.QueryRow(ctx, `INSERT INTO buildings (name) VALUES ('Edificio B') RETURNING id`).Scan(&buildingID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO groups (name, classroom, building_id, leader_account) VALUES ('3A', 'Aula 12', $1, '20231234') RETURNING id`,
		buildingID).Scan(&f.groupID))
	require.NoError(t, db.QueryRow(ctx, `INSERT INTO subjects (name, semester) VALUES ('Cálculo', 3) RETURNING id`).Scan(&f.subjectID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role) VALUES ('Ana López', 'ana@escuela.edu', 'x', 'teacher') RETURNING id`).Scan(&f.teacherID))
	_, err := db.Exec(ctx,
		`INSERT INTO users (name, email, password_hash, role, account_number) VALUES ('Luis', 'luis@escuela.edu', 'x', 'group_leader', '20231234')`)
	require.NoError(t, err)

	return f
}

func TestSlotRepository_DoubleBookingConstraint(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	ctx := context.Background()
	repo := postgresql.NewSlotRepository(db)

	slot := schedule.Slot{TeacherID: f.teacherID, GroupID: f.groupID, SubjectID: f.subjectID, Day: schedule.DayMonday, Hour: "07:00"}
	created, err := repo.Create(ctx, slot)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, slot)
	assert.ErrorIs(t, err, schedule.ErrTeacherDoubleBooked)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, schedule.ErrSlotNotFound)

	teacherID := f.teacherID
	slots, err := repo.List(ctx, schedule.SlotFilter{TeacherID: &teacherID})
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), schedule.ErrSlotNotFound)
}

func TestAttendanceRepository_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	ctx := context.Background()
	slot, err := postgresql.NewSlotRepository(db).Create(ctx, schedule.Slot{
		TeacherID: f.teacherID, GroupID: f.groupID, SubjectID: f.subjectID, Day: schedule.DayMonday, Hour: "07:00",
	})
	require.NoError(t, err)

	repo := postgresql.NewAttendanceRepository(db)
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, attendance.RoleChecker, slot.ID, day, attendance.StatusAbsent)
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, attendance.RoleChecker, slot.ID, day, attendance.StatusPresent)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	events, err := repo.List(ctx, attendance.RoleChecker, attendance.EventFilter{SlotIDs: []int64{slot.ID}, DateFrom: day, DateTo: day})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, attendance.StatusPresent, events[0].Status)
	assert.Equal(t, attendance.RoleChecker, events[0].Role)

	// the other logs are independent
	events, err = repo.List(ctx, attendance.RoleTeacher, attendance.EventFilter{SlotIDs: []int64{slot.ID}, DateFrom: day, DateTo: day})
	require.NoError(t, err)
	assert.Empty(t, events)

	inserted, err := repo.InsertPendingIfAbsent(ctx, attendance.RoleChecker, slot.ID, day)
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestUserRepository_GroupLeaderResolvesGroup(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	ctx := context.Background()

	u, err := postgresql.NewUserRepository(db).GetByEmail(ctx, "luis@escuela.edu")
	require.NoError(t, err)
	assert.Equal(t, user.RoleGroupLeader, u.Role)
	require.NotNil(t, u.GroupID)
	assert.Equal(t, f.groupID, *u.GroupID)

	_, err = postgresql.NewUserRepository(db).GetByEmail(ctx, "nobody@escuela.edu")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestCatalogRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	f := seedCatalog(t, db)
	ctx := context.Background()
	repo := postgresql.NewCatalogRepository(db)

	groups, err := repo.GroupsByIDs(ctx, []int64{f.groupID, 9999})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "3A (Aula 12 - Edificio B)", groups[f.groupID].Descriptor())

	teachers, err := repo.TeachersByIDs(ctx, []int64{f.teacherID})
	require.NoError(t, err)
	assert.Equal(t, "Ana López", teachers[f.teacherID].Name)
}
