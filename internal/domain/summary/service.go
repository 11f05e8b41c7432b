package summary

import "context"

type SummaryService interface {
	// RegenerateMonthlySummary recomputes and overwrites one employee-month
	RegenerateMonthlySummary(ctx context.Context, req RegenerateRequest) (MonthlySummaryResponse, error)

	// RegenerateAll recomputes every employee with records in the month
	RegenerateAll(ctx context.Context, year, month int) (BatchResult, error)

	GetMonthlySummary(ctx context.Context, req GetSummaryRequest) (MonthlySummaryResponse, error)
}
