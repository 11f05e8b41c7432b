package attendance

import (
	"context"
	"time"
)

// AttendanceService orchestrates the pure daily computation: it resolves
// policy, runs the engine and persists the outcome.
type AttendanceService interface {
	// ComputeDay evaluates pairs for an employee-day without persisting
	ComputeDay(ctx context.Context, req ComputeDayRequest) (DailyResultResponse, error)

	// RecordManualEntry validates, computes and stores manually entered pairs
	RecordManualEntry(ctx context.Context, req ManualEntryRequest) (DailyResultResponse, error)

	// ProcessDeviceDay rebuilds an employee-day from its full device event list
	ProcessDeviceDay(ctx context.Context, req ProcessDayRequest) (DailyResultResponse, error)

	// ProcessPendingDays reprocesses every employee that punched on date.
	// A failing employee is reported in the result and does not stop the batch.
	ProcessPendingDays(ctx context.Context, date time.Time) (BatchResult, error)

	// EvaluatePenalties derives role penalties for a stored day
	EvaluatePenalties(ctx context.Context, employeeID string, date string) (PenaltiesResponse, error)
}
