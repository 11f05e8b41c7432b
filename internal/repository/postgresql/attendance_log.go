package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type attendanceLogRepository struct {
	db *database.DB
}

// ListByEmployeeAndDate implements attendance.EventRepository.
func (r *attendanceLogRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.DeviceEvent, error) {
	start, end := dayRange(date)
	query := `
		SELECT id::text, COALESCE(employee_id::text, ''), employee_code, device_id::text,
			   timestamp, log_type
		FROM attendance_logs
		WHERE employee_id::text = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		  AND processing_status NOT IN ('DUPLICATE', 'IGNORED')
		  AND log_type <> 'MANUAL_ENTRY'
		ORDER BY timestamp ASC
	`
	return r.list(ctx, date, query, employeeID, start, end)
}

// ListByDate implements attendance.EventRepository.
func (r *attendanceLogRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.DeviceEvent, error) {
	start, end := dayRange(date)
	query := `
		SELECT id::text, employee_id::text, employee_code, device_id::text,
			   timestamp, log_type
		FROM attendance_logs
		WHERE employee_id IS NOT NULL
		  AND timestamp >= $1
		  AND timestamp < $2
		  AND processing_status NOT IN ('DUPLICATE', 'IGNORED')
		  AND log_type <> 'MANUAL_ENTRY'
		ORDER BY employee_id, timestamp ASC
	`
	return r.list(ctx, date, query, start, end)
}

func (r *attendanceLogRepository) list(ctx context.Context, date time.Time, query string, args ...any) ([]attendance.DeviceEvent, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var events []attendance.DeviceEvent
	for rows.Next() {
		var ev attendance.DeviceEvent
		var logType string
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.EmployeeCode, &ev.DeviceID,
			&ev.Timestamp, &logType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		ev.Type = attendance.EventType(logType)
		ev.Timestamp = ev.Timestamp.In(date.Location())
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance logs: %w", err)
	}

	return events, nil
}

// MarkProcessed flags the employee's logs on date as consumed.
func (r *attendanceLogRepository) MarkProcessed(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	start, end := dayRange(date)
	query := `
		UPDATE attendance_logs
		SET processing_status = 'PROCESSED', processed_at = NOW(), error_message = NULL
		WHERE employee_id::text = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		  AND processing_status IN ('PENDING', 'ERROR')
	`

	if _, err := q.Exec(ctx, query, employeeID, start, end); err != nil {
		return fmt.Errorf("failed to mark attendance logs processed: %w", err)
	}
	return nil
}

func NewAttendanceLogRepository(db *database.DB) attendance.EventRepository {
	return &attendanceLogRepository{db: db}
}
