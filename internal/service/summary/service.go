package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/policy"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// txRunner runs fn inside one transaction carried by the context it passes.
type txRunner func(ctx context.Context, fn func(txCtx context.Context) error) error

type SummaryServiceImpl struct {
	summary.SummaryRepository
	attendance.DailyRecordRepository
	settingRepo attendance.SettingRepository
	metrics     metrics.Collector
	withTx      txRunner
	now         func() time.Time
}

func NewSummaryService(
	db *database.DB,
	summaryRepo summary.SummaryRepository,
	recordRepo attendance.DailyRecordRepository,
	settingRepo attendance.SettingRepository,
	collector metrics.Collector,
) summary.SummaryService {
	if collector == nil {
		collector = metrics.NewNop()
	}
	return &SummaryServiceImpl{
		SummaryRepository:     summaryRepo,
		DailyRecordRepository: recordRepo,
		settingRepo:           settingRepo,
		metrics:               collector,
		withTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(postgresql.ContextWithTx(ctx, tx))
			})
		},
		now: time.Now,
	}
}

// regenerate recomputes one employee-month. The read and the overwrite run
// in one transaction holding the period lock, so concurrent runs for the same
// key cannot interleave.
func (s *SummaryServiceImpl) regenerate(ctx context.Context, weights summary.Weights, employeeID string, year, month int) (summary.MonthlySummary, error) {
	var saved summary.MonthlySummary

	err := s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.SummaryRepository.LockPeriod(txCtx, employeeID, year, month); err != nil {
			return fmt.Errorf("failed to lock summary period: %w", err)
		}

		records, err := s.DailyRecordRepository.ListByEmployeeAndMonth(txCtx, employeeID, year, month)
		if err != nil {
			return fmt.Errorf("failed to list daily records: %w", err)
		}

		sum := AggregateMonth(records, weights)
		sum.ID = uuid.New().String()
		sum.EmployeeID = employeeID
		sum.Year = year
		sum.Month = month
		sum.GeneratedAt = s.now().UTC()

		saved, err = s.SummaryRepository.Upsert(txCtx, sum)
		if err != nil {
			return fmt.Errorf("failed to save monthly summary: %w", err)
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordSummaryRegenerated("failure")
		return summary.MonthlySummary{}, err
	}

	s.metrics.RecordSummaryRegenerated("success")
	return saved, nil
}

// RegenerateMonthlySummary implements summary.SummaryService.
func (s *SummaryServiceImpl) RegenerateMonthlySummary(ctx context.Context, req summary.RegenerateRequest) (summary.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	resolver, err := policy.LoadResolver(ctx, s.settingRepo)
	if err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	saved, err := s.regenerate(ctx, resolver.Settings().Weights, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	return summary.NewMonthlySummaryResponse(saved), nil
}

// RegenerateAll implements summary.SummaryService.
func (s *SummaryServiceImpl) RegenerateAll(ctx context.Context, year, month int) (summary.BatchResult, error) {
	result := summary.BatchResult{Year: year, Month: month, Errors: map[string]string{}}

	if ok, msg := validator.IsValidPeriod(year, month, s.now()); !ok {
		return result, fmt.Errorf("%w: %s", summary.ErrInvalidPeriod, msg)
	}

	resolver, err := policy.LoadResolver(ctx, s.settingRepo)
	if err != nil {
		return result, err
	}
	weights := resolver.Settings().Weights

	employeeIDs, err := s.DailyRecordRepository.ListEmployeesByMonth(ctx, year, month)
	if err != nil {
		return result, fmt.Errorf("failed to list employees for month: %w", err)
	}

	for _, employeeID := range employeeIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := s.regenerate(ctx, weights, employeeID, year, month); err != nil {
			slog.Error("failed to regenerate monthly summary",
				"employee_id", employeeID,
				"year", year,
				"month", month,
				"error", err,
			)
			result.Failed++
			result.Errors[employeeID] = err.Error()
			continue
		}
		result.Regenerated++
	}

	return result, nil
}

// GetMonthlySummary implements summary.SummaryService.
func (s *SummaryServiceImpl) GetMonthlySummary(ctx context.Context, req summary.GetSummaryRequest) (summary.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	sum, err := s.SummaryRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return summary.MonthlySummaryResponse{}, err
	}

	return summary.NewMonthlySummaryResponse(sum), nil
}
