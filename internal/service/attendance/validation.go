package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
)

// ValidatePairs checks ordering within and across sessions. Every violation
// is reported; pair numbers in the messages are 1-based.
func ValidatePairs(pairs attendance.DayPairs) (bool, []string) {
	var (
		errs    []string
		lastOut *timecalc.Clock
	)

	for i, p := range pairs {
		if p.IsEmpty() {
			continue
		}
		num := i + 1

		if p.In != nil && p.Out == nil && pairs.HasData(i+1) {
			errs = append(errs, fmt.Sprintf("Incomplete pair %d: missing check-out time", num))
		}

		if p.IsComplete() && !p.In.Before(*p.Out) {
			errs = append(errs, fmt.Sprintf("Check-in time must be before check-out time for pair %d", num))
		}

		if lastOut != nil && p.In != nil && p.In.Before(*lastOut) {
			errs = append(errs, fmt.Sprintf("Check-in time for pair %d cannot be before previous check-out time", num))
		}

		if p.Out != nil {
			lastOut = p.Out
		}
	}

	return len(errs) == 0, errs
}
