package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/escuela-horarios/attendance-backend/internal/pkg/database"
)

var ErrMigrationFailed = errors.New("postgres: migration failed")

type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

const migration001Catalog = `
CREATE TABLE IF NOT EXISTS buildings (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS careers (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(150) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS groups (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(50) NOT NULL,
    classroom VARCHAR(50) NOT NULL DEFAULT '',
    building_id BIGINT REFERENCES buildings(id) ON DELETE SET NULL,
    career_id BIGINT REFERENCES careers(id) ON DELETE SET NULL,
    leader_account VARCHAR(30)
);

CREATE TABLE IF NOT EXISTS subjects (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(150) NOT NULL,
    semester INTEGER NOT NULL DEFAULT 1,
    career_id BIGINT REFERENCES careers(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(150) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(20) NOT NULL,
    account_number VARCHAR(30) UNIQUE,
    group_id BIGINT REFERENCES groups(id) ON DELETE SET NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_role CHECK (role IN ('admin', 'student', 'group_leader', 'checker', 'teacher'))
);

CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
`

const migration002Schedule = `
CREATE TABLE IF NOT EXISTS schedule_slots (
    id BIGSERIAL PRIMARY KEY,
    teacher_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    group_id BIGINT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
    subject_id BIGINT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
    day VARCHAR(10) NOT NULL,
    hour CHAR(5) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_day CHECK (day IN ('monday', 'tuesday', 'wednesday', 'thursday', 'friday')),
    CONSTRAINT uq_teacher_day_hour UNIQUE (teacher_id, day, hour),
    CONSTRAINT uq_group_day_hour UNIQUE (group_id, day, hour)
);

CREATE INDEX IF NOT EXISTS idx_schedule_slots_group ON schedule_slots(group_id);
`

// Attendance logs keep no foreign key to schedule_slots: events outlive
// edited or deleted slots and are dropped at read time.
const migration003Attendance = `
CREATE TABLE IF NOT EXISTS teacher_attendance (
    id BIGSERIAL PRIMARY KEY,
    slot_id BIGINT NOT NULL,
    date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_teacher_attendance_slot_date UNIQUE (slot_id, date)
);

CREATE TABLE IF NOT EXISTS group_leader_attendance (
    id BIGSERIAL PRIMARY KEY,
    slot_id BIGINT NOT NULL,
    date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_group_leader_attendance_slot_date UNIQUE (slot_id, date)
);

CREATE TABLE IF NOT EXISTS checker_attendance (
    id BIGSERIAL PRIMARY KEY,
    slot_id BIGINT NOT NULL,
    date DATE NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CONSTRAINT uq_checker_attendance_slot_date UNIQUE (slot_id, date)
);

CREATE INDEX IF NOT EXISTS idx_teacher_attendance_date ON teacher_attendance(date);
CREATE INDEX IF NOT EXISTS idx_group_leader_attendance_date ON group_leader_attendance(date);
CREATE INDEX IF NOT EXISTS idx_checker_attendance_date ON checker_attendance(date);
`

// Migrations returns the schema in apply order.
func Migrations() []Migration {
	return []Migration{
		{Version: 1, Name: "catalog", UpSQL: migration001Catalog},
		{Version: 2, Name: "schedule", UpSQL: migration002Schedule},
		{Version: 3, Name: "attendance", UpSQL: migration003Attendance},
	}
}

// Migrate applies every migration not yet recorded in schema_migrations.
func Migrate(ctx context.Context, db *database.DB) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	rows, err := db.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return fmt.Errorf("query applied migrations: %w", err)
	}
	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("scan migration row: %w", err)
		}
		applied[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate migrations: %w", err)
	}

	for _, mig := range Migrations() {
		if applied[mig.Version] {
			continue
		}

		err := WithTransaction(ctx, db, func(ctx context.Context) error {
			q := GetQuerier(ctx, db)
			if _, err := q.Exec(ctx, mig.UpSQL); err != nil {
				return err
			}
			_, err := q.Exec(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
		slog.Info("Migration applied", "version", mig.Version, "name", mig.Name)
	}

	return nil
}
