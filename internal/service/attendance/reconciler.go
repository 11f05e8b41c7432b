package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timecalc"
)

// ReconcileEvents folds one employee-day of time-sorted events into session
// pairs. An out-like event with no pending in is kept as an orphan pair, a
// trailing pending in becomes an open pair, and pairs past attendance.MaxPairs
// are dropped. Unknown event types are ignored.
//
// The reconciler has no memory between calls; callers pass the full event
// list of the day every time.
func ReconcileEvents(events []attendance.Event) attendance.DayPairs {
	var (
		pairs     attendance.DayPairs
		n         int
		currentIn *timecalc.Clock
	)

	emit := func(p attendance.SessionPair) {
		if n < attendance.MaxPairs {
			pairs[n] = p
		}
		n++
	}

	for _, ev := range events {
		at := timecalc.ClockOf(ev.Timestamp)

		switch {
		case ev.Type.OpensSession():
			if currentIn == nil {
				currentIn = at.Ptr()
			}
		case ev.Type.ClosesSession():
			emit(attendance.SessionPair{In: currentIn, Out: at.Ptr()})
			currentIn = nil
		}
	}

	if currentIn != nil {
		emit(attendance.SessionPair{In: currentIn})
	}

	return pairs
}

// DayKey identifies one employee-day within a device log batch.
type DayKey struct {
	EmployeeID string
	Date       string
}

// GroupEventsByDay splits a device log batch into employee-days keyed by the
// event's calendar date. Logs not matched to an employee are skipped. Each
// group is sorted by timestamp, keeping the input order of simultaneous
// events.
func GroupEventsByDay(events []attendance.DeviceEvent) map[DayKey][]attendance.Event {
	grouped := make(map[DayKey][]attendance.Event)

	for _, ev := range events {
		if ev.EmployeeID == "" {
			continue
		}
		key := DayKey{EmployeeID: ev.EmployeeID, Date: ev.Timestamp.Format(time.DateOnly)}
		grouped[key] = append(grouped[key], ev.Event)
	}

	for key := range grouped {
		SortEvents(grouped[key])
	}

	return grouped
}

// SortedDayKeys returns the keys of grouped ordered by date, then employee.
func SortedDayKeys(grouped map[DayKey][]attendance.Event) []DayKey {
	keys := make([]DayKey, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].EmployeeID < keys[j].EmployeeID
	})
	return keys
}

// SortEvents orders events by timestamp in place, stable for ties.
func SortEvents(events []attendance.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
