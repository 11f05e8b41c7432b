package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection used by repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and creates the tables the
// repositories read and write. Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolConfig{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.ensureSchema(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to prepare schema: %v", err)
	}
	if err := setup.TruncateAllTables(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to truncate tables: %v", err)
	}

	t.Cleanup(setup.Close)
	return setup
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS system_configurations (
		id SERIAL PRIMARY KEY,
		key VARCHAR(100) UNIQUE NOT NULL,
		value TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_encrypted BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_records (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		date DATE NOT NULL,
		check_in_1 TIME, check_out_1 TIME, check_in_2 TIME, check_out_2 TIME,
		check_in_3 TIME, check_out_3 TIME, check_in_4 TIME, check_out_4 TIME,
		check_in_5 TIME, check_out_5 TIME, check_in_6 TIME, check_out_6 TIME,
		total_time INTERVAL NOT NULL DEFAULT '0',
		break_time INTERVAL NOT NULL DEFAULT '0',
		work_time INTERVAL NOT NULL DEFAULT '0',
		overtime INTERVAL NOT NULL DEFAULT '0',
		undertime INTERVAL NOT NULL DEFAULT '0',
		first_in_time TIME,
		last_out_time TIME,
		status VARCHAR(20) NOT NULL DEFAULT 'ABSENT',
		late_minutes INTEGER NOT NULL DEFAULT 0,
		early_departure_minutes INTEGER NOT NULL DEFAULT 0,
		is_manual_entry BOOLEAN NOT NULL DEFAULT FALSE,
		validation_errors TEXT[],
		flags TEXT[],
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS attendance_monthly_summaries (
		id UUID PRIMARY KEY,
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		working_days INTEGER NOT NULL DEFAULT 0,
		attended_days INTEGER NOT NULL DEFAULT 0,
		half_days INTEGER NOT NULL DEFAULT 0,
		late_days INTEGER NOT NULL DEFAULT 0,
		early_days INTEGER NOT NULL DEFAULT 0,
		absent_days INTEGER NOT NULL DEFAULT 0,
		leave_days INTEGER NOT NULL DEFAULT 0,
		holiday_days INTEGER NOT NULL DEFAULT 0,
		total_work_time INTERVAL NOT NULL DEFAULT '0',
		total_break_time INTERVAL NOT NULL DEFAULT '0',
		total_overtime INTERVAL NOT NULL DEFAULT '0',
		total_undertime INTERVAL NOT NULL DEFAULT '0',
		attendance_percentage NUMERIC(5, 2) NOT NULL DEFAULT 0,
		punctuality_score NUMERIC(5, 2) NOT NULL DEFAULT 100,
		average_work_hours NUMERIC(5, 2) NOT NULL DEFAULT 0,
		efficiency_score NUMERIC(5, 2) NOT NULL DEFAULT 0,
		earliest_in_time TIME,
		latest_out_time TIME,
		generated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (employee_id, year, month)
	)`,
}

func (t *TestDatabaseSetup) ensureSchema(ctx context.Context) error {
	for _, ddl := range schema {
		if _, err := t.DB.Exec(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

// TruncateAllTables removes every row from the test tables
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"system_configurations",
		"attendance_records",
		"attendance_monthly_summaries",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
