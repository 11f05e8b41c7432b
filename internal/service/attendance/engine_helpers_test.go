package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
)

// Policy used by the worked examples: 8h nominal day, 7h full day, 3h half
// day, reporting at 08:00 with 15 minutes grace, work ends at 17:00.
var (
	testShift = attendance.ShiftPolicy{
		Name:         "Regular",
		StartTime:    timecalc.NewClock(8, 0, 0),
		EndTime:      timecalc.NewClock(17, 0, 0),
		BreakMinutes: 60,
		WorkingHours: 8 * time.Hour,
	}
	testRole = attendance.RolePolicy{
		Role:          "OTHER_STAFF",
		Kind:          attendance.RoleGracePeriod,
		ReportingTime: timecalc.NewClock(8, 0, 0),
		GraceMinutes:  15,
	}
	testSettings = attendance.Settings{
		WorkStart:                   timecalc.NewClock(8, 0, 0),
		WorkEnd:                     timecalc.NewClock(17, 0, 0),
		ExpectedHours:               8 * time.Hour,
		FullDayMinimum:              7 * time.Hour,
		HalfDayMinimum:              3 * time.Hour,
		HalfDayLateThresholdMinutes: 35,
		MaxLunchMinutes:             75,
		LunchViolationLimit:         3,
	}
)

func clk(s string) *timecalc.Clock {
	c := timecalc.ParseTime(s)
	if c == nil {
		panic("bad test time " + s)
	}
	return c
}

// dayPairs builds slots from "in", "out" strings; "" leaves a bound missing.
func dayPairs(bounds ...string) attendance.DayPairs {
	var pairs attendance.DayPairs
	for i := 0; i+1 < len(bounds); i += 2 {
		var p attendance.SessionPair
		if bounds[i] != "" {
			p.In = clk(bounds[i])
		}
		if bounds[i+1] != "" {
			p.Out = clk(bounds[i+1])
		}
		pairs[i/2] = p
	}
	return pairs
}

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func ev(t attendance.EventType, hhmm string) attendance.Event {
	return attendance.Event{Timestamp: clk(hhmm).On(testDay), Type: t}
}
