package attendance

import "errors"

// Attendance domain errors
var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrDailyRecordNotFound  = errors.New("daily attendance record not found")
	ErrNoEventsForDay       = errors.New("no device events found for this day")
	ErrInconsistentPairs    = errors.New("attendance pairs are inconsistent")
	ErrFutureAttendanceDate = errors.New("attendance date cannot be in the future")
)
