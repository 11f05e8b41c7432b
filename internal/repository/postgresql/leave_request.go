package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

// HasApprovedLeave implements attendance.LeaveRepository.
func (l *leaveRequestRepository) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_leave_requests
			WHERE employee_id::text = $1
			  AND status = 'APPROVED'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

func NewLeaveRequestRepository(db *database.DB) attendance.LeaveRepository {
	return &leaveRequestRepository{db: db}
}
