package attendance

import (
	"context"
	"time"
)

// EventRepository reads raw clock events written by the device ingestion
// collaborator. The full, corrected event list of a day is always returned.
type EventRepository interface {
	// ListByEmployeeAndDate returns the employee's events on date, oldest first
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]DeviceEvent, error)

	// ListByDate returns every matched employee's events on date
	ListByDate(ctx context.Context, date time.Time) ([]DeviceEvent, error)

	// MarkProcessed flags the employee's pending events on date as consumed
	MarkProcessed(ctx context.Context, employeeID string, date time.Time) error
}

// DailyRecordRepository persists computed employee-days.
type DailyRecordRepository interface {
	// Upsert overwrites the record keyed by (employee, date)
	Upsert(ctx context.Context, record DailyRecord) (DailyRecord, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)

	// ListByEmployeeAndMonth returns every record of the month ordered by date
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]DailyRecord, error)

	ListEmployeesByMonth(ctx context.Context, year, month int) ([]string, error)
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
}

// ShiftRepository resolves the shift assigned to an employee on a date.
// A nil policy means no assignment.
type ShiftRepository interface {
	GetActiveShift(ctx context.Context, employeeID string, date time.Time) (*ShiftPolicy, error)
}

type HolidayRepository interface {
	IsHoliday(ctx context.Context, date time.Time, departmentID *string, location *string) (bool, error)
}

type LeaveRepository interface {
	HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

// SettingRepository exposes the string-keyed system configuration.
type SettingRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
}
