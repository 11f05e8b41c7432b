package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []attendance.Event
		want   attendance.DayPairs
	}{
		{
			name:   "no events",
			events: nil,
			want:   attendance.DayPairs{},
		},
		{
			name: "check in and out with lunch break",
			events: []attendance.Event{
				ev(attendance.EventCheckIn, "08:00"),
				ev(attendance.EventBreakStart, "12:00"),
				ev(attendance.EventBreakEnd, "13:00"),
				ev(attendance.EventCheckOut, "17:00"),
			},
			want: dayPairs("08:00", "12:00", "13:00", "17:00"),
		},
		{
			name: "orphan check-out is kept",
			events: []attendance.Event{
				ev(attendance.EventCheckOut, "07:55"),
				ev(attendance.EventCheckIn, "08:00"),
				ev(attendance.EventCheckOut, "17:00"),
			},
			want: dayPairs("", "07:55", "08:00", "17:00"),
		},
		{
			name: "trailing check-in stays open",
			events: []attendance.Event{
				ev(attendance.EventCheckIn, "08:00"),
				ev(attendance.EventCheckOut, "12:00"),
				ev(attendance.EventOvertimeIn, "18:00"),
			},
			want: dayPairs("08:00", "12:00", "18:00", ""),
		},
		{
			name: "repeated check-in keeps the first",
			events: []attendance.Event{
				ev(attendance.EventCheckIn, "08:00"),
				ev(attendance.EventCheckIn, "08:05"),
				ev(attendance.EventCheckOut, "17:00"),
			},
			want: dayPairs("08:00", "17:00"),
		},
		{
			name: "unknown event type is ignored",
			events: []attendance.Event{
				ev(attendance.EventCheckIn, "08:00"),
				ev(attendance.EventType("DOOR_OPEN"), "09:00"),
				ev(attendance.EventCheckOut, "17:00"),
			},
			want: dayPairs("08:00", "17:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileEvents(tt.events))
		})
	}
}

func TestReconcileEvents_DropsPairsPastCapacity(t *testing.T) {
	var events []attendance.Event
	for h := 8; h < 16; h++ {
		in := time.Date(2025, 3, 10, h, 0, 0, 0, time.UTC)
		events = append(events,
			attendance.Event{Timestamp: in, Type: attendance.EventCheckIn},
			attendance.Event{Timestamp: in.Add(30 * time.Minute), Type: attendance.EventCheckOut},
		)
	}

	pairs := ReconcileEvents(events)

	require.Len(t, pairs, attendance.MaxPairs)
	assert.Equal(t, "13:00:00", pairs[5].In.String())
	assert.Equal(t, "13:30:00", pairs[5].Out.String())
}

func TestReconcileEvents_Idempotent(t *testing.T) {
	events := []attendance.Event{
		ev(attendance.EventCheckIn, "08:00"),
		ev(attendance.EventBreakStart, "12:00"),
		ev(attendance.EventBreakEnd, "12:45"),
		ev(attendance.EventCheckOut, "17:10"),
	}

	first := ReconcileEvents(events)
	second := ReconcileEvents(events)

	assert.Equal(t, first, second)
}

func TestReconcileEvents_OutputPassesValidation(t *testing.T) {
	sequences := [][]attendance.Event{
		{
			ev(attendance.EventCheckIn, "08:00"),
			ev(attendance.EventCheckOut, "17:00"),
		},
		{
			ev(attendance.EventCheckOut, "07:30"),
			ev(attendance.EventCheckIn, "08:00"),
			ev(attendance.EventBreakStart, "12:00"),
			ev(attendance.EventBreakEnd, "13:00"),
			ev(attendance.EventCheckOut, "17:00"),
			ev(attendance.EventOvertimeIn, "18:00"),
		},
		{
			ev(attendance.EventCheckIn, "08:00"),
			ev(attendance.EventCheckIn, "08:10"),
			ev(attendance.EventCheckOut, "10:00"),
			ev(attendance.EventCheckOut, "10:05"),
			ev(attendance.EventCheckIn, "10:30"),
		},
	}

	for i, events := range sequences {
		ok, errs := ValidatePairs(ReconcileEvents(events))
		assert.True(t, ok, "sequence %d: %v", i, errs)
		assert.Empty(t, errs)
	}
}

func TestGroupEventsByDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	events := []attendance.DeviceEvent{
		{EmployeeID: "emp-1", Event: attendance.Event{Timestamp: day1.Add(17 * time.Hour), Type: attendance.EventCheckOut}},
		{EmployeeID: "emp-1", Event: attendance.Event{Timestamp: day1.Add(8 * time.Hour), Type: attendance.EventCheckIn}},
		{EmployeeID: "emp-2", Event: attendance.Event{Timestamp: day1.Add(9 * time.Hour), Type: attendance.EventCheckIn}},
		{EmployeeID: "emp-1", Event: attendance.Event{Timestamp: day2.Add(8 * time.Hour), Type: attendance.EventCheckIn}},
		{EmployeeCode: "UNMATCHED", Event: attendance.Event{Timestamp: day2.Add(7 * time.Hour), Type: attendance.EventCheckIn}},
	}

	grouped := GroupEventsByDay(events)

	require.Len(t, grouped, 3)

	e1 := grouped[DayKey{EmployeeID: "emp-1", Date: "2025-03-10"}]
	require.Len(t, e1, 2)
	assert.Equal(t, attendance.EventCheckIn, e1[0].Type)
	assert.Equal(t, attendance.EventCheckOut, e1[1].Type)

	assert.Len(t, grouped[DayKey{EmployeeID: "emp-1", Date: "2025-03-11"}], 1)
	assert.Len(t, grouped[DayKey{EmployeeID: "emp-2", Date: "2025-03-10"}], 1)

	assert.Equal(t, []DayKey{
		{EmployeeID: "emp-1", Date: "2025-03-10"},
		{EmployeeID: "emp-2", Date: "2025-03-10"},
		{EmployeeID: "emp-1", Date: "2025-03-11"},
	}, SortedDayKeys(grouped))
}
