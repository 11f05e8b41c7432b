package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type shiftRepository struct {
	db *database.DB
}

// GetActiveShift implements attendance.ShiftRepository.
func (s *shiftRepository) GetActiveShift(ctx context.Context, employeeID string, date time.Time) (*attendance.ShiftPolicy, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT sh.name, sh.start_time, sh.end_time,
			   sh.break_duration_minutes, sh.grace_period_minutes,
			   sh.is_night_shift, sh.working_hours::text
		FROM employee_shifts es
		JOIN attendance_shifts sh ON sh.id = es.shift_id
		WHERE es.employee_id::text = $1
		  AND es.is_active = TRUE
		  AND sh.is_active = TRUE
		  AND es.effective_from <= $2
		  AND (es.effective_to IS NULL OR es.effective_to >= $2)
		ORDER BY es.effective_from DESC
		LIMIT 1
	`

	var policy attendance.ShiftPolicy
	var start, end pgtype.Time
	var workingHours string
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&policy.Name, &start, &end,
		&policy.BreakMinutes, &policy.GraceMinutes,
		&policy.IsNightShift, &workingHours,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active shift: %w", err)
	}

	if c := clockFromPg(start); c != nil {
		policy.StartTime = *c
	}
	if c := clockFromPg(end); c != nil {
		policy.EndTime = *c
	}
	if hours, err := decimal.NewFromString(workingHours); err == nil {
		policy.WorkingHours = timecalc.FromDecimalHours(hours)
	}

	return &policy, nil
}

func NewShiftRepository(db *database.DB) attendance.ShiftRepository {
	return &shiftRepository{db: db}
}
