package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
)

const maxSessionSpan = 24 * time.Hour

// ComputeDailyMetrics derives the day's durations from its session pairs.
// Only complete pairs are timed; break time is the gap between consecutive
// complete pairs. Values that would go negative or past a day are clamped to
// zero and noted in Flags.
//
// Overtime and undertime compare work time with shift.WorkingHours only.
func ComputeDailyMetrics(pairs attendance.DayPairs, shift attendance.ShiftPolicy) attendance.DailyMetrics {
	var (
		m        attendance.DailyMetrics
		prevOut  *timecalc.Clock
		prevSlot int
	)

	// An empty day has no undertime either.
	if !pairs.HasData(0) {
		return m
	}

	for i, p := range pairs {
		if p.In != nil && (m.FirstIn == nil || p.In.Before(*m.FirstIn)) {
			m.FirstIn = p.In
		}
		if p.Out != nil && (m.LastOut == nil || p.Out.After(*m.LastOut)) {
			m.LastOut = p.Out
		}

		if !p.IsComplete() {
			continue
		}

		if p.Out.Before(*p.In) && !shift.IsNightShift {
			m.Flags = append(m.Flags, fmt.Sprintf("pair %d crosses midnight", i+1))
		}
		span := timecalc.Diff(*p.In, *p.Out)
		if span < 0 || span > maxSessionSpan {
			m.Flags = append(m.Flags, fmt.Sprintf("pair %d has an impossible duration; clamped to zero", i+1))
			span = 0
		}
		m.TotalTime += span

		if prevOut != nil {
			gap := p.In.Sub(*prevOut)
			if gap < 0 {
				m.Flags = append(m.Flags, fmt.Sprintf("pair %d starts before pair %d ends; break clamped to zero", i+1, prevSlot+1))
				gap = 0
			}
			m.BreakTime += gap
		}
		prevOut = p.Out
		prevSlot = i
	}

	if m.BreakTime > m.TotalTime {
		m.Flags = append(m.Flags, "break time exceeds total time; clamped to total")
		m.BreakTime = m.TotalTime
	}
	m.WorkTime = m.TotalTime - m.BreakTime

	nominal := shift.WorkingHours
	if m.WorkTime > nominal {
		m.Overtime = m.WorkTime - nominal
	} else {
		m.Undertime = nominal - m.WorkTime
	}

	return m
}
