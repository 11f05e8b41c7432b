package summary

import "errors"

// Summary domain errors
var (
	ErrSummaryNotFound = errors.New("monthly summary not found")
	ErrInvalidPeriod   = errors.New("invalid summary period")
)
