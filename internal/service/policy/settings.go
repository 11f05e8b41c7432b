// Package policy turns the string-keyed system configuration into the typed
// policy values the attendance engine takes as arguments.
package policy

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
	"github.com/shopspring/decimal"
)

// Configuration keys.
const (
	KeyWorkStartTime                = "WORK_START_TIME"
	KeyWorkEndTime                  = "WORK_END_TIME"
	KeyNetWorkingHours              = "NET_WORKING_HOURS"
	KeyMinimumWorkHoursFullDay      = "MINIMUM_WORK_HOURS_FULL_DAY"
	KeyMinimumWorkHoursHalfDay      = "MINIMUM_WORK_HOURS_HALF_DAY"
	KeyOtherStaffGracePeriodMinutes = "OTHER_STAFF_GRACE_PERIOD_MINUTES"
	KeyOfficeWorkerReportingTime    = "OFFICE_WORKER_REPORTING_TIME"
	KeyHalfDayThresholdMinutes      = "HALF_DAY_THRESHOLD_MINUTES"
	KeyMaxLunchDurationMinutes      = "MAX_LUNCH_DURATION_MINUTES"
	KeyLunchViolationLimitPerMonth  = "LUNCH_VIOLATION_LIMIT_PER_MONTH"
	KeyAttendanceWeight             = "ATTENDANCE_WEIGHT"
	KeyPunctualityWeight            = "PUNCTUALITY_WEIGHT"
	KeyAutoProcessDeviceLogs        = "AUTO_PROCESS_DEVICE_LOGS"
	KeyAutoGenerateMonthlySummaries = "AUTO_GENERATE_MONTHLY_SUMMARIES"

	reportingTimeSuffix = "_REPORTING_TIME"
)

// Role names with their own lateness rule.
const (
	RoleOtherStaff   = "OTHER_STAFF"
	RoleOfficeWorker = "OFFICE_WORKER"
)

// Defaults applied when a key is missing or malformed.
var (
	DefaultWorkStart             = timecalc.NewClock(8, 0, 0)
	DefaultWorkEnd               = timecalc.NewClock(19, 0, 0)
	DefaultNetWorkingHours       = decimal.RequireFromString("9.75")
	DefaultFullDayHours          = decimal.RequireFromString("9.75")
	DefaultHalfDayHours          = decimal.RequireFromString("4.875")
	DefaultGraceMinutes          = 15
	DefaultOfficeWorkerCutoff    = timecalc.NewClock(8, 30, 0)
	DefaultReportingTime         = timecalc.NewClock(8, 0, 0)
	DefaultHalfDayThreshold      = 35
	DefaultMaxLunchMinutes       = 75
	DefaultLunchViolationLimit   = 3
	DefaultShiftBreakMinutes     = 75
	DefaultAttendanceWeight      = decimal.RequireFromString("0.6")
	DefaultPunctualityWeight     = decimal.RequireFromString("0.4")
	DefaultAutoProcessDeviceLogs = true
	DefaultAutoGenerateSummaries = true
)

// Settings is everything one batch needs, resolved once up front.
type Settings struct {
	Classification attendance.Settings
	Weights        summary.Weights
	DefaultShift   attendance.ShiftPolicy

	AutoProcessDeviceLogs        bool
	AutoGenerateMonthlySummaries bool
}

// ResolveSettings reads values, falling back to the defaults above for any
// key that is absent or does not parse. It never fails.
func ResolveSettings(values map[string]string) Settings {
	workStart := Clock(values, KeyWorkStartTime, DefaultWorkStart)
	workEnd := Clock(values, KeyWorkEndTime, DefaultWorkEnd)
	netHours := timecalc.FromDecimalHours(Decimal(values, KeyNetWorkingHours, DefaultNetWorkingHours))

	return Settings{
		Classification: attendance.Settings{
			WorkStart:                   workStart,
			WorkEnd:                     workEnd,
			ExpectedHours:               netHours,
			FullDayMinimum:              timecalc.FromDecimalHours(Decimal(values, KeyMinimumWorkHoursFullDay, DefaultFullDayHours)),
			HalfDayMinimum:              timecalc.FromDecimalHours(Decimal(values, KeyMinimumWorkHoursHalfDay, DefaultHalfDayHours)),
			HalfDayLateThresholdMinutes: Int(values, KeyHalfDayThresholdMinutes, DefaultHalfDayThreshold),
			MaxLunchMinutes:             Int(values, KeyMaxLunchDurationMinutes, DefaultMaxLunchMinutes),
			LunchViolationLimit:         Int(values, KeyLunchViolationLimitPerMonth, DefaultLunchViolationLimit),
		},
		Weights: summary.Weights{
			Attendance:  Decimal(values, KeyAttendanceWeight, DefaultAttendanceWeight),
			Punctuality: Decimal(values, KeyPunctualityWeight, DefaultPunctualityWeight),
		},
		DefaultShift: attendance.ShiftPolicy{
			Name:         "Default",
			StartTime:    workStart,
			EndTime:      workEnd,
			BreakMinutes: DefaultShiftBreakMinutes,
			WorkingHours: netHours,
		},
		AutoProcessDeviceLogs:        Bool(values, KeyAutoProcessDeviceLogs, DefaultAutoProcessDeviceLogs),
		AutoGenerateMonthlySummaries: Bool(values, KeyAutoGenerateMonthlySummaries, DefaultAutoGenerateSummaries),
	}
}

// ResolveRolePolicy maps a role name onto its lateness rule. An empty name is
// treated as OTHER_STAFF.
func ResolveRolePolicy(roleName string, values map[string]string) attendance.RolePolicy {
	role := strings.ToUpper(strings.TrimSpace(roleName))
	if role == "" {
		role = RoleOtherStaff
	}

	p := attendance.RolePolicy{
		Role:          role,
		ReportingTime: Clock(values, role+reportingTimeSuffix, DefaultReportingTime),
	}

	switch role {
	case RoleOtherStaff:
		p.Kind = attendance.RoleGracePeriod
		p.GraceMinutes = Int(values, KeyOtherStaffGracePeriodMinutes, DefaultGraceMinutes)
	case RoleOfficeWorker:
		p.Kind = attendance.RoleFixedCutoff
		p.FixedCutoff = Clock(values, KeyOfficeWorkerReportingTime, DefaultOfficeWorkerCutoff)
	default:
		p.Kind = attendance.RoleStandard
	}

	return p
}

// Clock reads a time-of-day setting.
func Clock(values map[string]string, key string, fallback timecalc.Clock) timecalc.Clock {
	if c := timecalc.ParseTime(values[key]); c != nil {
		return *c
	}
	return fallback
}

// Int reads a whole-number setting.
func Int(values map[string]string, key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(values[key]))
	if err != nil {
		return fallback
	}
	return n
}

// Decimal reads a decimal setting.
func Decimal(values map[string]string, key string, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(values[key]))
	if err != nil {
		return fallback
	}
	return d
}

// Bool reads a flag. "true", "1", "yes", "on" and "enabled" are true in any
// case; any other non-empty value is false.
func Bool(values map[string]string, key string, fallback bool) bool {
	raw, ok := values[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "enabled":
		return true
	default:
		return false
	}
}
