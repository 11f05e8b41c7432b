package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap flattens the errors by field. Later messages for the same field are
// joined to earlier ones so none are lost.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if prev, ok := result[err.Field]; ok {
			result[err.Field] = prev + "; " + err.Message
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// FromMessages wraps plain messages under one field.
func FromMessages(field string, messages []string) ValidationErrors {
	errs := make(ValidationErrors, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}
	return errs
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidTimeOfDay accepts an empty string or HH:MM / HH:MM:SS.
func IsValidTimeOfDay(s string) bool {
	if IsEmpty(s) {
		return true
	}
	return timecalc.ParseTime(s) != nil
}

// IsValidPeriod checks a month/year key. Years run from 2020 to next year.
func IsValidPeriod(year, month int, now time.Time) (bool, string) {
	if month < 1 || month > 12 {
		return false, "month must be between 1 and 12"
	}
	if year < 2020 || year > now.Year()+1 {
		return false, "year must be between 2020 and " + strconv.Itoa(now.Year()+1)
	}
	return true, ""
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
