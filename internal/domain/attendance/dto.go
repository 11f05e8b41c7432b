package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// PairInput is one session as typed by a user, "HH:MM" or "HH:MM:SS".
// Either side may be empty.
type PairInput struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

// ToDayPairs parses inputs into the fixed slots. Unparseable strings become
// missing bounds; callers validate first.
func ToDayPairs(inputs []PairInput) DayPairs {
	var pairs DayPairs
	for i, in := range inputs {
		if i >= MaxPairs {
			break
		}
		pairs[i] = SessionPair{
			In:  timecalc.ParseTime(in.In),
			Out: timecalc.ParseTime(in.Out),
		}
	}
	return pairs
}

func validatePairInputs(inputs []PairInput) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if len(inputs) > MaxPairs {
		errs = append(errs, validator.ValidationError{
			Field:   "pairs",
			Message: fmt.Sprintf("at most %d pairs are allowed", MaxPairs),
		})
	}

	for i, p := range inputs {
		if !validator.IsValidTimeOfDay(p.In) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("pairs[%d].in", i),
				Message: "invalid time format, use HH:MM or HH:MM:SS",
			})
		}
		if !validator.IsValidTimeOfDay(p.Out) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("pairs[%d].out", i),
				Message: "invalid time format, use HH:MM or HH:MM:SS",
			})
		}
	}

	return errs
}

func validateEmployeeDay(employeeID, date string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Date
	if validator.IsEmpty(date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	return errs
}

type ComputeDayRequest struct {
	EmployeeID string      `json:"employee_id"`
	Date       string      `json:"date"`
	Pairs      []PairInput `json:"pairs"`
}

func (r *ComputeDayRequest) Validate() error {
	errs := validateEmployeeDay(r.EmployeeID, r.Date)
	errs = append(errs, validatePairInputs(r.Pairs)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ManualEntryRequest struct {
	EmployeeID string      `json:"employee_id"`
	Date       string      `json:"date"`
	Pairs      []PairInput `json:"pairs"`
	Notes      *string     `json:"notes,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	errs := validateEmployeeDay(r.EmployeeID, r.Date)
	errs = append(errs, validatePairInputs(r.Pairs)...)

	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessDayRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *ProcessDayRequest) Validate() error {
	if errs := validateEmployeeDay(r.EmployeeID, r.Date); len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyResultResponse struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	Pairs      DayPairs `json:"pairs"`

	TotalTime string          `json:"total_time"`
	BreakTime string          `json:"break_time"`
	WorkTime  string          `json:"work_time"`
	WorkHours decimal.Decimal `json:"work_hours"`
	Overtime  string          `json:"overtime"`
	Undertime string          `json:"undertime"`

	FirstIn *timecalc.Clock `json:"first_in"`
	LastOut *timecalc.Clock `json:"last_out"`

	Status                Status `json:"status"`
	LateMinutes           int    `json:"late_minutes"`
	EarlyDepartureMinutes int    `json:"early_departure_minutes"`

	PerformanceScore decimal.Decimal `json:"performance_score"`
	PunctualityScore decimal.Decimal `json:"punctuality_score"`

	IsManualEntry    bool     `json:"is_manual_entry"`
	ValidationErrors []string `json:"validation_errors"`
	Flags            []string `json:"flags"`
	Notes            *string  `json:"notes,omitempty"`
}

// BatchResult reports one run over every employee of a date. Errors is keyed
// by employee ID.
type BatchResult struct {
	Date      string            `json:"date"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type PenaltiesResponse struct {
	EmployeeID            string          `json:"employee_id"`
	Date                  string          `json:"date"`
	Status                Status          `json:"status"`
	LunchViolations       int             `json:"lunch_violations"`
	LatePenalty           decimal.Decimal `json:"late_penalty"`
	EarlyDeparturePenalty decimal.Decimal `json:"early_departure_penalty"`
	LunchViolationPenalty decimal.Decimal `json:"lunch_violation_penalty"`
	HalfDayDeduction      bool            `json:"half_day_deduction"`
	FullDayDeduction      bool            `json:"full_day_deduction"`
}
