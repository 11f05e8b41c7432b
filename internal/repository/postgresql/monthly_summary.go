package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type monthlySummaryRepository struct {
	db *database.DB
}

const monthlySummaryColumns = `
	id::text, employee_id::text, year, month,
	working_days, attended_days, half_days, late_days, early_days,
	absent_days, leave_days, holiday_days,
	EXTRACT(EPOCH FROM total_work_time)::bigint, EXTRACT(EPOCH FROM total_break_time)::bigint,
	EXTRACT(EPOCH FROM total_overtime)::bigint, EXTRACT(EPOCH FROM total_undertime)::bigint,
	attendance_percentage::text, punctuality_score::text,
	average_work_hours::text, efficiency_score::text,
	earliest_in_time, latest_out_time,
	generated_at
`

func scanMonthlySummary(row pgx.Row) (summary.MonthlySummary, error) {
	var s summary.MonthlySummary
	var work, brk, overtime, undertime int64
	var attendancePct, punctuality, avgHours, efficiency string
	var earliest, latest pgtype.Time

	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year, &s.Month,
		&s.WorkingDays, &s.AttendedDays, &s.HalfDays, &s.LateDays, &s.EarlyDays,
		&s.AbsentDays, &s.LeaveDays, &s.HolidayDays,
		&work, &brk,
		&overtime, &undertime,
		&attendancePct, &punctuality,
		&avgHours, &efficiency,
		&earliest, &latest,
		&s.GeneratedAt,
	)
	if err != nil {
		return summary.MonthlySummary{}, err
	}

	s.TotalWorkTime = fromSeconds(work)
	s.TotalBreakTime = fromSeconds(brk)
	s.TotalOvertime = fromSeconds(overtime)
	s.TotalUndertime = fromSeconds(undertime)
	s.AttendancePercentage = decimal.RequireFromString(attendancePct)
	s.PunctualityScore = decimal.RequireFromString(punctuality)
	s.AverageWorkHours = decimal.RequireFromString(avgHours)
	s.EfficiencyScore = decimal.RequireFromString(efficiency)
	s.EarliestIn = clockFromPg(earliest)
	s.LatestOut = clockFromPg(latest)

	return s, nil
}

// Upsert implements summary.SummaryRepository.
func (m *monthlySummaryRepository) Upsert(ctx context.Context, s summary.MonthlySummary) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		INSERT INTO attendance_monthly_summaries (
			id, employee_id, year, month,
			working_days, attended_days, half_days, late_days, early_days,
			absent_days, leave_days, holiday_days,
			total_work_time, total_break_time, total_overtime, total_undertime,
			attendance_percentage, punctuality_score, average_work_hours, efficiency_score,
			earliest_in_time, latest_out_time, generated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12,
			make_interval(secs => $13), make_interval(secs => $14),
			make_interval(secs => $15), make_interval(secs => $16),
			$17::numeric, $18::numeric, $19::numeric, $20::numeric,
			$21, $22, $23
		)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			attended_days = EXCLUDED.attended_days,
			half_days = EXCLUDED.half_days,
			late_days = EXCLUDED.late_days,
			early_days = EXCLUDED.early_days,
			absent_days = EXCLUDED.absent_days,
			leave_days = EXCLUDED.leave_days,
			holiday_days = EXCLUDED.holiday_days,
			total_work_time = EXCLUDED.total_work_time,
			total_break_time = EXCLUDED.total_break_time,
			total_overtime = EXCLUDED.total_overtime,
			total_undertime = EXCLUDED.total_undertime,
			attendance_percentage = EXCLUDED.attendance_percentage,
			punctuality_score = EXCLUDED.punctuality_score,
			average_work_hours = EXCLUDED.average_work_hours,
			efficiency_score = EXCLUDED.efficiency_score,
			earliest_in_time = EXCLUDED.earliest_in_time,
			latest_out_time = EXCLUDED.latest_out_time,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING ` + monthlySummaryColumns

	saved, err := scanMonthlySummary(q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.Year, s.Month,
		s.WorkingDays, s.AttendedDays, s.HalfDays, s.LateDays, s.EarlyDays,
		s.AbsentDays, s.LeaveDays, s.HolidayDays,
		seconds(s.TotalWorkTime), seconds(s.TotalBreakTime),
		seconds(s.TotalOvertime), seconds(s.TotalUndertime),
		s.AttendancePercentage.StringFixed(2), s.PunctualityScore.StringFixed(2),
		s.AverageWorkHours.StringFixed(2), s.EfficiencyScore.StringFixed(2),
		clockParam(s.EarliestIn), clockParam(s.LatestOut), s.GeneratedAt,
	))
	if err != nil {
		return summary.MonthlySummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}

	return saved, nil
}

// GetByEmployeeAndPeriod implements summary.SummaryRepository.
func (m *monthlySummaryRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (summary.MonthlySummary, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT ` + monthlySummaryColumns + `
		FROM attendance_monthly_summaries
		WHERE employee_id::text = $1 AND year = $2 AND month = $3
	`

	s, err := scanMonthlySummary(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return summary.MonthlySummary{}, summary.ErrSummaryNotFound
		}
		return summary.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return s, nil
}

// LockPeriod implements summary.SummaryRepository.
func (m *monthlySummaryRepository) LockPeriod(ctx context.Context, employeeID string, year, month int) error {
	q := GetQuerier(ctx, m.db)

	key := fmt.Sprintf("monthly_summary:%s:%04d-%02d", employeeID, year, month)
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("failed to acquire summary lock: %w", err)
	}
	return nil
}

func NewMonthlySummaryRepository(db *database.DB) summary.SummaryRepository {
	return &monthlySummaryRepository{db: db}
}
