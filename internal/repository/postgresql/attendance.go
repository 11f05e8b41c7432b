package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type attendanceRecordRepository struct {
	db *database.DB
}

const attendanceRecordColumns = `
	id::text, employee_id::text, date,
	check_in_1, check_out_1, check_in_2, check_out_2, check_in_3, check_out_3,
	check_in_4, check_out_4, check_in_5, check_out_5, check_in_6, check_out_6,
	EXTRACT(EPOCH FROM total_time)::bigint, EXTRACT(EPOCH FROM break_time)::bigint,
	EXTRACT(EPOCH FROM work_time)::bigint, EXTRACT(EPOCH FROM overtime)::bigint,
	EXTRACT(EPOCH FROM undertime)::bigint,
	first_in_time, last_out_time,
	status, late_minutes, early_departure_minutes,
	is_manual_entry, COALESCE(validation_errors, '{}'), COALESCE(flags, '{}'), notes,
	created_at, updated_at
`

func scanAttendanceRecord(row pgx.Row) (attendance.DailyRecord, error) {
	var rec attendance.DailyRecord
	var bounds [attendance.MaxPairs * 2]pgtype.Time
	var total, brk, work, overtime, undertime int64
	var firstIn, lastOut pgtype.Time
	var status string

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date,
		&bounds[0], &bounds[1], &bounds[2], &bounds[3], &bounds[4], &bounds[5],
		&bounds[6], &bounds[7], &bounds[8], &bounds[9], &bounds[10], &bounds[11],
		&total, &brk,
		&work, &overtime,
		&undertime,
		&firstIn, &lastOut,
		&status, &rec.Classification.LateMinutes, &rec.Classification.EarlyDepartureMinutes,
		&rec.IsManualEntry, &rec.ValidationErrors, &rec.Metrics.Flags, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.DailyRecord{}, err
	}

	for i := range rec.Pairs {
		rec.Pairs[i] = attendance.SessionPair{
			In:  clockFromPg(bounds[2*i]),
			Out: clockFromPg(bounds[2*i+1]),
		}
	}
	rec.Metrics.TotalTime = fromSeconds(total)
	rec.Metrics.BreakTime = fromSeconds(brk)
	rec.Metrics.WorkTime = fromSeconds(work)
	rec.Metrics.Overtime = fromSeconds(overtime)
	rec.Metrics.Undertime = fromSeconds(undertime)
	rec.Metrics.FirstIn = clockFromPg(firstIn)
	rec.Metrics.LastOut = clockFromPg(lastOut)
	rec.Classification.Status = attendance.Status(status)

	return rec, nil
}

// Upsert implements attendance.DailyRecordRepository.
func (r *attendanceRecordRepository) Upsert(ctx context.Context, record attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date,
			check_in_1, check_out_1, check_in_2, check_out_2, check_in_3, check_out_3,
			check_in_4, check_out_4, check_in_5, check_out_5, check_in_6, check_out_6,
			total_time, break_time, work_time, overtime, undertime,
			first_in_time, last_out_time,
			status, late_minutes, early_departure_minutes,
			is_manual_entry, validation_errors, flags, notes
		) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			make_interval(secs => $16), make_interval(secs => $17), make_interval(secs => $18),
			make_interval(secs => $19), make_interval(secs => $20),
			$21, $22,
			$23, $24, $25,
			$26, $27, $28, $29
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in_1 = EXCLUDED.check_in_1, check_out_1 = EXCLUDED.check_out_1,
			check_in_2 = EXCLUDED.check_in_2, check_out_2 = EXCLUDED.check_out_2,
			check_in_3 = EXCLUDED.check_in_3, check_out_3 = EXCLUDED.check_out_3,
			check_in_4 = EXCLUDED.check_in_4, check_out_4 = EXCLUDED.check_out_4,
			check_in_5 = EXCLUDED.check_in_5, check_out_5 = EXCLUDED.check_out_5,
			check_in_6 = EXCLUDED.check_in_6, check_out_6 = EXCLUDED.check_out_6,
			total_time = EXCLUDED.total_time,
			break_time = EXCLUDED.break_time,
			work_time = EXCLUDED.work_time,
			overtime = EXCLUDED.overtime,
			undertime = EXCLUDED.undertime,
			first_in_time = EXCLUDED.first_in_time,
			last_out_time = EXCLUDED.last_out_time,
			status = EXCLUDED.status,
			late_minutes = EXCLUDED.late_minutes,
			early_departure_minutes = EXCLUDED.early_departure_minutes,
			is_manual_entry = EXCLUDED.is_manual_entry,
			validation_errors = EXCLUDED.validation_errors,
			flags = EXCLUDED.flags,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING ` + attendanceRecordColumns

	args := []interface{}{record.ID, record.EmployeeID, record.Date}
	for _, p := range record.Pairs {
		args = append(args, clockParam(p.In), clockParam(p.Out))
	}
	args = append(args,
		seconds(record.Metrics.TotalTime),
		seconds(record.Metrics.BreakTime),
		seconds(record.Metrics.WorkTime),
		seconds(record.Metrics.Overtime),
		seconds(record.Metrics.Undertime),
		clockParam(record.Metrics.FirstIn),
		clockParam(record.Metrics.LastOut),
		string(record.Classification.Status),
		record.Classification.LateMinutes,
		record.Classification.EarlyDepartureMinutes,
		record.IsManualEntry,
		record.ValidationErrors,
		record.Metrics.Flags,
		record.Notes,
	)

	saved, err := scanAttendanceRecord(q.QueryRow(ctx, query, args...))
	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return saved, nil
}

// GetByEmployeeAndDate implements attendance.DailyRecordRepository.
func (r *attendanceRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceRecordColumns + `
		FROM attendance_records
		WHERE employee_id::text = $1
		  AND date = $2
		LIMIT 1
	`

	rec, err := scanAttendanceRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.DailyRecord{}, attendance.ErrDailyRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// ListByEmployeeAndMonth implements attendance.DailyRecordRepository.
func (r *attendanceRecordRepository) ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	start, end := monthRange(year, month)
	query := `SELECT ` + attendanceRecordColumns + `
		FROM attendance_records
		WHERE employee_id::text = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		rec, err := scanAttendanceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance records: %w", err)
	}

	return records, nil
}

// ListEmployeesByMonth implements attendance.DailyRecordRepository.
func (r *attendanceRecordRepository) ListEmployeesByMonth(ctx context.Context, year, month int) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	start, end := monthRange(year, month)
	query := `
		SELECT DISTINCT employee_id::text
		FROM attendance_records
		WHERE date >= $1
		  AND date < $2
		ORDER BY 1
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by month: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return ids, nil
}

func NewAttendanceRecordRepository(db *database.DB) attendance.DailyRecordRepository {
	return &attendanceRecordRepository{db: db}
}
