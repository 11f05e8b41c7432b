package summary

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AggregateMonth rolls one employee's daily records up into a summary. Only
// sums, counts and min/max are used, so the result does not depend on record
// order. Identity fields and GeneratedAt are left for the caller.
func AggregateMonth(records []attendance.DailyRecord, w summary.Weights) summary.MonthlySummary {
	var s summary.MonthlySummary

	for _, r := range records {
		s.WorkingDays++

		status := r.Classification.Status
		if status != attendance.StatusAbsent {
			s.AttendedDays++
			s.TotalWorkTime += r.Metrics.WorkTime
			s.TotalBreakTime += r.Metrics.BreakTime
			s.TotalOvertime += r.Metrics.Overtime
			s.TotalUndertime += r.Metrics.Undertime

			if in := r.Metrics.FirstIn; in != nil && (s.EarliestIn == nil || in.Before(*s.EarliestIn)) {
				s.EarliestIn = in.Ptr()
			}
			if out := r.Metrics.LastOut; out != nil && (s.LatestOut == nil || out.After(*s.LatestOut)) {
				s.LatestOut = out.Ptr()
			}
		}

		switch status {
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusLeave:
			s.LeaveDays++
		case attendance.StatusHoliday:
			s.HolidayDays++
		}

		if r.Classification.EarlyDepartureMinutes > 0 {
			s.EarlyDays++
		}
	}

	s.AttendancePercentage = timecalc.Percent(decimal.NewFromInt(int64(s.AttendedDays)), decimal.NewFromInt(int64(s.WorkingDays)))
	s.PunctualityScore = punctualityScore(s.AttendedDays, s.LateDays, s.EarlyDays)
	s.AverageWorkHours = averageWorkHours(s.TotalWorkTime, s.AttendedDays)

	s.EfficiencyScore = decimal.Zero
	if s.WorkingDays > 0 {
		s.EfficiencyScore = s.AttendancePercentage.Mul(w.Attendance).
			Add(s.PunctualityScore.Mul(w.Punctuality)).
			Round(2)
	}

	return s
}

// punctualityScore is the share of attended days with neither lateness nor
// early departure. A month with no attended days scores 100.
func punctualityScore(attended, late, early int) decimal.Decimal {
	if attended == 0 {
		return hundred.Round(2)
	}
	punctual := decimal.NewFromInt(int64(attended - late - early))
	score := timecalc.Percent(punctual, decimal.NewFromInt(int64(attended)))
	return decimal.Max(score, decimal.Zero)
}

func averageWorkHours(total time.Duration, attended int) decimal.Decimal {
	if attended == 0 {
		return decimal.Zero
	}
	return timecalc.ToDecimalHours(total / time.Duration(attended))
}
