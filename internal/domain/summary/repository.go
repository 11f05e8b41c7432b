package summary

import "context"

type SummaryRepository interface {
	// Upsert overwrites the summary keyed by (employee, year, month)
	Upsert(ctx context.Context, s MonthlySummary) (MonthlySummary, error)

	GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (MonthlySummary, error)

	// LockPeriod blocks until no other transaction is regenerating the same
	// employee-month. It must run inside a transaction; the lock is released
	// on commit or rollback.
	LockPeriod(ctx context.Context, employeeID string, year, month int) error
}
