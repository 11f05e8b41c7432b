package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
)

// MaxPairs is the number of check-in/check-out slots kept per employee-day.
// Sessions beyond the sixth are dropped.
const MaxPairs = 6

type EventType string

const (
	EventCheckIn     EventType = "CHECK_IN"
	EventCheckOut    EventType = "CHECK_OUT"
	EventBreakStart  EventType = "BREAK_START"
	EventBreakEnd    EventType = "BREAK_END"
	EventOvertimeIn  EventType = "OVERTIME_IN"
	EventOvertimeOut EventType = "OVERTIME_OUT"
)

// OpensSession reports whether the event starts a session.
func (t EventType) OpensSession() bool {
	return t == EventCheckIn || t == EventBreakEnd || t == EventOvertimeIn
}

// ClosesSession reports whether the event ends a session.
func (t EventType) ClosesSession() bool {
	return t == EventCheckOut || t == EventBreakStart || t == EventOvertimeOut
}

// Event is a single clock punch supplied by a device or importer.
type Event struct {
	Timestamp time.Time
	Type      EventType
}

// DeviceEvent is an Event tagged with the punching employee, as stored by the
// device ingestion collaborator.
type DeviceEvent struct {
	ID           string
	EmployeeID   string
	EmployeeCode string
	DeviceID     *string
	Event
}

// SessionPair is one check-in/check-out interval. Either bound may be missing.
type SessionPair struct {
	In  *timecalc.Clock `json:"in"`
	Out *timecalc.Clock `json:"out"`
}

// IsEmpty reports whether neither bound is set.
func (p SessionPair) IsEmpty() bool {
	return p.In == nil && p.Out == nil
}

// IsComplete reports whether both bounds are set.
func (p SessionPair) IsComplete() bool {
	return p.In != nil && p.Out != nil
}

// DayPairs holds the fixed six session slots of a day, in order.
type DayPairs [MaxPairs]SessionPair

// HasData reports whether any slot from index i onward carries a bound.
func (d DayPairs) HasData(from int) bool {
	for i := from; i < len(d); i++ {
		if !d[i].IsEmpty() {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusAbsent         Status = "ABSENT"
	StatusPresent        Status = "PRESENT"
	StatusLate           Status = "LATE"
	StatusHalfDay        Status = "HALF_DAY"
	StatusIncomplete     Status = "INCOMPLETE"
	StatusEarlyDeparture Status = "EARLY_DEPARTURE"
	StatusLeave          Status = "LEAVE"
	StatusHoliday        Status = "HOLIDAY"
)

var StatusValues = []string{
	string(StatusAbsent),
	string(StatusPresent),
	string(StatusLate),
	string(StatusHalfDay),
	string(StatusIncomplete),
	string(StatusEarlyDeparture),
	string(StatusLeave),
	string(StatusHoliday),
}

// DailyMetrics are the durations derived from a day's session pairs.
type DailyMetrics struct {
	TotalTime time.Duration
	BreakTime time.Duration
	WorkTime  time.Duration
	Overtime  time.Duration
	Undertime time.Duration
	FirstIn   *timecalc.Clock
	LastOut   *timecalc.Clock

	// Flags lists clamped or implausible values found while computing.
	Flags []string
}

// Classification is the status chosen for a day. LateMinutes and
// EarlyDepartureMinutes are recorded whatever status wins.
type Classification struct {
	Status                Status
	LateMinutes           int
	EarlyDepartureMinutes int
}

// DailyRecord is one employee-day as persisted by the orchestration layer.
type DailyRecord struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	Pairs            DayPairs
	Metrics          DailyMetrics
	Classification   Classification
	IsManualEntry    bool
	ValidationErrors []string
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Employee carries the attributes the engine needs to resolve policy and
// overrides for one person.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	RoleName     string
	DepartmentID *string
	Location     *string
}
