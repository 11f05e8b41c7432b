package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// IsHoliday implements attendance.HolidayRepository. A holiday with no
// department or location restriction applies to everyone.
func (h *holidayRepository) IsHoliday(ctx context.Context, date time.Time, departmentID *string, location *string) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_holidays ah
			WHERE ah.date = $1
			  AND ah.is_active = TRUE
			  AND (
				$2::text IS NULL
				OR NOT EXISTS (
					SELECT 1 FROM attendance_holidays_applicable_departments d
					WHERE d.holiday_id = ah.id
				)
				OR EXISTS (
					SELECT 1 FROM attendance_holidays_applicable_departments d
					WHERE d.holiday_id = ah.id AND d.department_id::text = $2
				)
			  )
			  AND (
				$3::text IS NULL
				OR COALESCE(jsonb_array_length(ah.applicable_locations), 0) = 0
				OR ah.applicable_locations ? $3
			  )
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, date, departmentID, location).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}

func NewHolidayRepository(db *database.DB) attendance.HolidayRepository {
	return &holidayRepository{db: db}
}
