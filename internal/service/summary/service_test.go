package summary

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySummaries struct {
	summaries map[string]summary.MonthlySummary
	locked    []string
	failLock  map[string]bool
}

func periodKey(employeeID string, year, month int) string {
	return fmt.Sprintf("%s/%04d-%02d", employeeID, year, month)
}

func (m *memorySummaries) Upsert(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	key := periodKey(s.EmployeeID, s.Year, s.Month)
	if existing, ok := m.summaries[key]; ok {
		s.ID = existing.ID
	}
	m.summaries[key] = s
	return s, nil
}

func (m *memorySummaries) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (summary.MonthlySummary, error) {
	s, ok := m.summaries[periodKey(employeeID, year, month)]
	if !ok {
		return summary.MonthlySummary{}, summary.ErrSummaryNotFound
	}
	return s, nil
}

func (m *memorySummaries) LockPeriod(ctx context.Context, employeeID string, year, month int) error {
	if m.failLock[employeeID] {
		return errors.New("lock timeout")
	}
	m.locked = append(m.locked, periodKey(employeeID, year, month))
	return nil
}

type memoryRecords struct {
	byPeriod map[string][]attendance.DailyRecord
}

func (m *memoryRecords) Upsert(ctx context.Context, r attendance.DailyRecord) (attendance.DailyRecord, error) {
	return r, nil
}

func (m *memoryRecords) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	return attendance.DailyRecord{}, attendance.ErrDailyRecordNotFound
}

func (m *memoryRecords) ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.DailyRecord, error) {
	return m.byPeriod[periodKey(employeeID, year, month)], nil
}

func (m *memoryRecords) ListEmployeesByMonth(ctx context.Context, year, month int) ([]string, error) {
	suffix := fmt.Sprintf("/%04d-%02d", year, month)
	var ids []string
	for key := range m.byPeriod {
		if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
			ids = append(ids, key[:len(key)-len(suffix)])
		}
	}
	return ids, nil
}

type staticSettings map[string]string

func (s staticSettings) GetAll(ctx context.Context) (map[string]string, error) {
	return s, nil
}

func newTestSummaryService(sums *memorySummaries, recs *memoryRecords) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		SummaryRepository:     sums,
		DailyRecordRepository: recs,
		settingRepo:           staticSettings{},
		metrics:               metrics.NewNop(),
		withTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return fn(ctx)
		},
		now: func() time.Time { return time.Date(2025, 4, 2, 1, 0, 0, 0, time.UTC) },
	}
}

func twoDayMonth() []attendance.DailyRecord {
	return []attendance.DailyRecord{
		record(3, attendance.StatusPresent, 7*time.Hour, "08:00", "17:00", 0, 0),
		record(4, attendance.StatusLate, 7*time.Hour, "08:30", "17:30", 15, 0),
	}
}

func TestSummaryService_RegenerateMonthlySummary(t *testing.T) {
	sums := &memorySummaries{summaries: map[string]summary.MonthlySummary{}}
	recs := &memoryRecords{byPeriod: map[string][]attendance.DailyRecord{
		periodKey("emp-1", 2025, 3): twoDayMonth(),
	}}
	svc := newTestSummaryService(sums, recs)
	ctx := context.Background()

	res, err := svc.RegenerateMonthlySummary(ctx, summary.RegenerateRequest{EmployeeID: "emp-1", Year: 2025, Month: 3})

	require.NoError(t, err)
	assert.Equal(t, 2, res.WorkingDays)
	assert.Equal(t, "14:00:00", res.TotalWorkTime)
	assert.True(t, decimal.RequireFromString("80").Equal(res.EfficiencyScore))
	assert.Equal(t, "2025-04-02T01:00:00Z", res.GeneratedAt)
	assert.Equal(t, []string{periodKey("emp-1", 2025, 3)}, sums.locked)

	firstID := sums.summaries[periodKey("emp-1", 2025, 3)].ID

	// Regenerating overwrites in place.
	_, err = svc.RegenerateMonthlySummary(ctx, summary.RegenerateRequest{EmployeeID: "emp-1", Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Len(t, sums.summaries, 1)
	assert.Equal(t, firstID, sums.summaries[periodKey("emp-1", 2025, 3)].ID)
}

func TestSummaryService_RegenerateMonthlySummary_InvalidPeriod(t *testing.T) {
	svc := newTestSummaryService(&memorySummaries{summaries: map[string]summary.MonthlySummary{}}, &memoryRecords{})

	_, err := svc.RegenerateMonthlySummary(context.Background(), summary.RegenerateRequest{EmployeeID: "emp-1", Year: 2025, Month: 13})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "month")
}

func TestSummaryService_RegenerateAll(t *testing.T) {
	sums := &memorySummaries{
		summaries: map[string]summary.MonthlySummary{},
		failLock:  map[string]bool{"emp-2": true},
	}
	recs := &memoryRecords{byPeriod: map[string][]attendance.DailyRecord{
		periodKey("emp-1", 2025, 3): twoDayMonth(),
		periodKey("emp-2", 2025, 3): twoDayMonth(),
		periodKey("emp-3", 2025, 3): twoDayMonth()[:1],
		periodKey("emp-1", 2025, 2): twoDayMonth(),
	}}
	svc := newTestSummaryService(sums, recs)

	result, err := svc.RegenerateAll(context.Background(), 2025, 3)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Regenerated)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "emp-2")
	assert.Len(t, sums.summaries, 2)

	_, err = svc.RegenerateAll(context.Background(), 2019, 3)
	assert.ErrorIs(t, err, summary.ErrInvalidPeriod)
}

func TestSummaryService_GetMonthlySummary(t *testing.T) {
	sums := &memorySummaries{summaries: map[string]summary.MonthlySummary{}}
	svc := newTestSummaryService(sums, &memoryRecords{})
	ctx := context.Background()

	_, err := svc.GetMonthlySummary(ctx, summary.GetSummaryRequest{EmployeeID: "emp-1", Year: 2025, Month: 3})
	assert.ErrorIs(t, err, summary.ErrSummaryNotFound)

	sums.summaries[periodKey("emp-1", 2025, 3)] = summary.MonthlySummary{EmployeeID: "emp-1", Year: 2025, Month: 3, AttendedDays: 20}
	res, err := svc.GetMonthlySummary(ctx, summary.GetSummaryRequest{EmployeeID: "emp-1", Year: 2025, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, 20, res.AttendedDays)
}
