package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	graceLatePenalty     = decimal.NewFromInt(5)
	overGraceLatePenalty = decimal.NewFromInt(20)
	maxMinutePenalty     = decimal.NewFromInt(30)

	gracePeriodLateFine = decimal.NewFromInt(50)
	fixedCutoffLateFine = decimal.NewFromInt(25)
	lunchViolationFine  = decimal.NewFromInt(100)
)

// ClassifyStatus picks the day's status. Holiday wins over leave, and both
// win over any punches. Otherwise work time thresholds are checked before
// lateness, so a short late day is HALF_DAY or INCOMPLETE with its late
// minutes still recorded.
func ClassifyStatus(m attendance.DailyMetrics, role attendance.RolePolicy, s attendance.Settings, holiday, leave bool) attendance.Classification {
	switch {
	case holiday:
		return attendance.Classification{Status: attendance.StatusHoliday}
	case leave:
		return attendance.Classification{Status: attendance.StatusLeave}
	case m.FirstIn == nil:
		return attendance.Classification{Status: attendance.StatusAbsent}
	}

	c := attendance.Classification{
		LateMinutes:           LateMinutes(*m.FirstIn, role),
		EarlyDepartureMinutes: EarlyDepartureMinutes(m.LastOut, s.WorkEnd),
	}

	switch {
	case m.WorkTime < s.HalfDayMinimum:
		c.Status = attendance.StatusIncomplete
	case m.WorkTime < s.FullDayMinimum:
		c.Status = attendance.StatusHalfDay
	case c.LateMinutes > 0:
		c.Status = attendance.StatusLate
	case c.EarlyDepartureMinutes > 0:
		c.Status = attendance.StatusEarlyDeparture
	default:
		c.Status = attendance.StatusPresent
	}

	return c
}

// LateMinutes returns whole minutes past the role's cutoff, or 0.
func LateMinutes(firstIn timecalc.Clock, role attendance.RolePolicy) int {
	cutoff := role.Cutoff()
	if !firstIn.After(cutoff) {
		return 0
	}
	return timecalc.MinutesBetween(cutoff, firstIn)
}

// EarlyDepartureMinutes returns whole minutes between lastOut and workEnd when
// the employee left before workEnd, or 0.
func EarlyDepartureMinutes(lastOut *timecalc.Clock, workEnd timecalc.Clock) int {
	if lastOut == nil || !lastOut.Before(workEnd) {
		return 0
	}
	return timecalc.MinutesBetween(*lastOut, workEnd)
}

// PerformanceScore is work as a percentage of expected hours, capped at 100.
func PerformanceScore(work, expected time.Duration) decimal.Decimal {
	if expected <= 0 {
		return decimal.Zero
	}
	score := timecalc.Percent(decimal.NewFromInt(int64(work)), decimal.NewFromInt(int64(expected)))
	return decimal.Min(score, hundred)
}

// PunctualityScore starts at 100 and subtracts role-weighted late and early
// departure penalties. It never goes below zero.
func PunctualityScore(c attendance.Classification, role attendance.RolePolicy) decimal.Decimal {
	score := hundred

	if c.LateMinutes > 0 {
		switch role.Kind {
		case attendance.RoleGracePeriod:
			if c.LateMinutes <= role.GraceMinutes {
				score = score.Sub(graceLatePenalty)
			} else {
				score = score.Sub(overGraceLatePenalty)
			}
		default:
			score = score.Sub(minutePenalty(c.LateMinutes))
		}
	}

	if c.EarlyDepartureMinutes > 0 {
		score = score.Sub(minutePenalty(c.EarlyDepartureMinutes))
	}

	return decimal.Max(score, decimal.Zero)
}

func minutePenalty(minutes int) decimal.Decimal {
	return decimal.Min(decimal.NewFromInt(int64(minutes*2)), maxMinutePenalty)
}

// NoPenalties is the zero penalty set.
func NoPenalties() attendance.Penalties {
	return attendance.Penalties{
		LatePenalty:           decimal.Zero,
		EarlyDeparturePenalty: decimal.Zero,
		LunchViolationPenalty: decimal.Zero,
	}
}

// RolePenalties weighs a classified day against its role. lunchViolations is
// the number of days in the same month whose break exceeded the lunch limit.
func RolePenalties(c attendance.Classification, role attendance.RolePolicy, s attendance.Settings, lunchViolations int) attendance.Penalties {
	p := NoPenalties()

	if c.LateMinutes > 0 {
		switch role.Kind {
		case attendance.RoleGracePeriod:
			if c.LateMinutes > role.GraceMinutes {
				if c.LateMinutes >= s.HalfDayLateThresholdMinutes {
					p.FullDayDeduction = true
				} else {
					p.LatePenalty = gracePeriodLateFine
				}
			}
		case attendance.RoleFixedCutoff:
			if c.LateMinutes >= s.HalfDayLateThresholdMinutes {
				p.HalfDayDeduction = true
			} else {
				p.LatePenalty = fixedCutoffLateFine
			}
		default:
			p.LatePenalty = decimal.NewFromInt(int64(c.LateMinutes * 2))
		}
	}

	if c.EarlyDepartureMinutes > 0 {
		p.EarlyDeparturePenalty = decimal.NewFromInt(int64(c.EarlyDepartureMinutes * 2))
	}

	if s.LunchViolationLimit > 0 && lunchViolations >= s.LunchViolationLimit {
		p.LunchViolationPenalty = lunchViolationFine
	}

	return p
}

// CountLunchViolations counts records whose break ran past the lunch limit.
func CountLunchViolations(records []attendance.DailyRecord, s attendance.Settings) int {
	limit := time.Duration(s.MaxLunchMinutes) * time.Minute
	count := 0
	for _, r := range records {
		if r.Metrics.BreakTime > limit {
			count++
		}
	}
	return count
}
