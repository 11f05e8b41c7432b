package summary

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

func validatePeriod(employeeID string, year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if ok, msg := validator.IsValidPeriod(year, month, time.Now()); !ok {
		field := "year"
		if month < 1 || month > 12 {
			field = "month"
		}
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: msg,
		})
	}

	return errs
}

type RegenerateRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *RegenerateRequest) Validate() error {
	if errs := validatePeriod(r.EmployeeID, r.Year, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

type GetSummaryRequest struct {
	EmployeeID string
	Year       int
	Month      int
}

func (r *GetSummaryRequest) Validate() error {
	if errs := validatePeriod(r.EmployeeID, r.Year, r.Month); len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlySummaryResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	WorkingDays  int `json:"working_days"`
	AttendedDays int `json:"attended_days"`
	HalfDays     int `json:"half_days"`
	LateDays     int `json:"late_days"`
	EarlyDays    int `json:"early_days"`
	AbsentDays   int `json:"absent_days"`
	LeaveDays    int `json:"leave_days"`
	HolidayDays  int `json:"holiday_days"`

	TotalWorkTime  string `json:"total_work_time"`
	TotalBreakTime string `json:"total_break_time"`
	TotalOvertime  string `json:"total_overtime"`
	TotalUndertime string `json:"total_undertime"`

	AttendancePercentage decimal.Decimal `json:"attendance_percentage"`
	PunctualityScore     decimal.Decimal `json:"punctuality_score"`
	AverageWorkHours     decimal.Decimal `json:"average_work_hours"`
	EfficiencyScore      decimal.Decimal `json:"efficiency_score"`

	EarliestIn *timecalc.Clock `json:"earliest_in_time"`
	LatestOut  *timecalc.Clock `json:"latest_out_time"`

	GeneratedAt string `json:"generated_at"`
}

// NewMonthlySummaryResponse renders durations as HH:MM:SS.
func NewMonthlySummaryResponse(s MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{
		EmployeeID:           s.EmployeeID,
		Year:                 s.Year,
		Month:                s.Month,
		WorkingDays:          s.WorkingDays,
		AttendedDays:         s.AttendedDays,
		HalfDays:             s.HalfDays,
		LateDays:             s.LateDays,
		EarlyDays:            s.EarlyDays,
		AbsentDays:           s.AbsentDays,
		LeaveDays:            s.LeaveDays,
		HolidayDays:          s.HolidayDays,
		TotalWorkTime:        timecalc.FormatDuration(s.TotalWorkTime),
		TotalBreakTime:       timecalc.FormatDuration(s.TotalBreakTime),
		TotalOvertime:        timecalc.FormatDuration(s.TotalOvertime),
		TotalUndertime:       timecalc.FormatDuration(s.TotalUndertime),
		AttendancePercentage: s.AttendancePercentage,
		PunctualityScore:     s.PunctualityScore,
		AverageWorkHours:     s.AverageWorkHours,
		EfficiencyScore:      s.EfficiencyScore,
		EarliestIn:           s.EarliestIn,
		LatestOut:            s.LatestOut,
		GeneratedAt:          s.GeneratedAt.Format(time.RFC3339),
	}
}

type BatchResult struct {
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	Regenerated int               `json:"regenerated"`
	Failed      int               `json:"failed"`
	Errors      map[string]string `json:"errors,omitempty"`
}
