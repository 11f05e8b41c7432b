package attendance

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestValidatePairs(t *testing.T) {
	tests := []struct {
		name     string
		pairs    attendance.DayPairs
		wantErrs []string
	}{
		{
			name:  "empty day",
			pairs: attendance.DayPairs{},
		},
		{
			name:  "two ordered sessions",
			pairs: dayPairs("08:00", "12:00", "13:00", "17:00"),
		},
		{
			name:  "open last session is tolerated",
			pairs: dayPairs("08:00", "12:00", "13:00", ""),
		},
		{
			name:     "open session before later data",
			pairs:    dayPairs("08:00", "", "13:00", "17:00"),
			wantErrs: []string{"Incomplete pair 1: missing check-out time"},
		},
		{
			name:     "check-out before check-in",
			pairs:    dayPairs("12:00", "08:00"),
			wantErrs: []string{"Check-in time must be before check-out time for pair 1"},
		},
		{
			name:     "zero length session",
			pairs:    dayPairs("08:00", "08:00"),
			wantErrs: []string{"Check-in time must be before check-out time for pair 1"},
		},
		{
			name:     "session overlaps previous one",
			pairs:    dayPairs("08:00", "12:00", "11:30", "17:00"),
			wantErrs: []string{"Check-in time for pair 2 cannot be before previous check-out time"},
		},
		{
			name:  "all violations are collected",
			pairs: dayPairs("08:00", "", "10:00", "09:00", "08:30", "17:00"),
			wantErrs: []string{
				"Incomplete pair 1: missing check-out time",
				"Check-in time must be before check-out time for pair 2",
				"Check-in time for pair 3 cannot be before previous check-out time",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, errs := ValidatePairs(tt.pairs)
			assert.Equal(t, len(tt.wantErrs) == 0, ok)
			assert.Equal(t, tt.wantErrs, errs)
		})
	}
}
