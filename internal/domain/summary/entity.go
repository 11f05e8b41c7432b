package summary

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

// Weights blend attendance and punctuality into the efficiency score.
type Weights struct {
	Attendance  decimal.Decimal
	Punctuality decimal.Decimal
}

// DefaultWeights returns the 0.6 / 0.4 split.
func DefaultWeights() Weights {
	return Weights{
		Attendance:  decimal.RequireFromString("0.6"),
		Punctuality: decimal.RequireFromString("0.4"),
	}
}

// MonthlySummary is the overwritable roll-up of one employee-month.
type MonthlySummary struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int

	WorkingDays  int
	AttendedDays int
	HalfDays     int
	LateDays     int
	EarlyDays    int
	AbsentDays   int
	LeaveDays    int
	HolidayDays  int

	TotalWorkTime  time.Duration
	TotalBreakTime time.Duration
	TotalOvertime  time.Duration
	TotalUndertime time.Duration

	AttendancePercentage decimal.Decimal
	PunctualityScore     decimal.Decimal
	AverageWorkHours     decimal.Decimal
	EfficiencyScore      decimal.Decimal

	EarliestIn *timecalc.Clock
	LatestOut  *timecalc.Clock

	GeneratedAt time.Time
}
