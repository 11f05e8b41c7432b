// Package metrics records attendance processing outcomes.
package metrics

// Collector receives processing events from the attendance and summary
// services.
type Collector interface {
	// RecordDayProcessed counts a computed employee-day by source (device,
	// manual, preview) and resulting status.
	RecordDayProcessed(source, status string)

	// RecordDayFailed counts an employee-day that could not be computed.
	RecordDayFailed(source string)

	// RecordPairViolations counts ordering violations found in a day's pairs.
	RecordPairViolations(count int)

	// RecordSummaryRegenerated counts monthly summary runs by result
	// (success, failure).
	RecordSummaryRegenerated(result string)

	// ObserveJobDuration records how long a batch job took, in seconds.
	ObserveJobDuration(job string, seconds float64)
}
