package postgresql_test

import (
	"context"
	"fmt"

	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
	"github.com/escuela-horarios/attendance-backend/internal/repository/postgresql"
)

// TestDatabaseSetup owns the connection shared by the repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to dsn and applies the schema migrations.
func NewTestDatabase(ctx context.Context, dsn string) (*TestDatabaseSetup, error) {
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &TestDatabaseSetup{DB: db}, nil
}

// TruncateAllTables empties every table in one transaction, children first.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"teacher_attendance",
		"group_leader_attendance",
		"checker_attendance",
		"schedule_slots",
		"users",
		"subjects",
		"groups",
		"careers",
		"buildings",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
