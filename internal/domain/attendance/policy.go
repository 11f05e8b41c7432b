package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

// ShiftPolicy is the schedule that applies to one employee on one date.
type ShiftPolicy struct {
	Name         string
	StartTime    timecalc.Clock
	EndTime      timecalc.Clock
	BreakMinutes int
	GraceMinutes int
	IsNightShift bool
	// WorkingHours is the nominal daily work duration.
	WorkingHours time.Duration
}

type RoleKind int

const (
	// RoleStandard is late after ReportingTime.
	RoleStandard RoleKind = iota
	// RoleGracePeriod is late after ReportingTime + GraceMinutes.
	RoleGracePeriod
	// RoleFixedCutoff is late after a fixed Cutoff, ignoring the reporting time.
	RoleFixedCutoff
)

func (k RoleKind) String() string {
	switch k {
	case RoleGracePeriod:
		return "grace_period"
	case RoleFixedCutoff:
		return "fixed_cutoff"
	default:
		return "standard"
	}
}

// RolePolicy is the lateness rule of a role, resolved once per role name.
type RolePolicy struct {
	Role          string
	Kind          RoleKind
	ReportingTime timecalc.Clock
	GraceMinutes  int
	FixedCutoff   timecalc.Clock
}

// Cutoff returns the time after which a first check-in counts as late.
func (p RolePolicy) Cutoff() timecalc.Clock {
	switch p.Kind {
	case RoleGracePeriod:
		return p.ReportingTime.Add(time.Duration(p.GraceMinutes) * time.Minute)
	case RoleFixedCutoff:
		return p.FixedCutoff
	default:
		return p.ReportingTime
	}
}

// Settings are the numeric thresholds used when classifying a day and
// weighing penalties. Values are resolved once per batch by the caller.
type Settings struct {
	WorkStart      timecalc.Clock
	WorkEnd        timecalc.Clock
	ExpectedHours  time.Duration
	FullDayMinimum time.Duration
	HalfDayMinimum time.Duration

	// HalfDayLateThresholdMinutes is the lateness at which penalties escalate
	// to a half or full day deduction.
	HalfDayLateThresholdMinutes int
	MaxLunchMinutes             int
	LunchViolationLimit         int
}

// Penalties are the role-based deductions derived from a classified day.
type Penalties struct {
	LatePenalty           decimal.Decimal
	EarlyDeparturePenalty decimal.Decimal
	LunchViolationPenalty decimal.Decimal
	HalfDayDeduction      bool
	FullDayDeduction      bool
}
