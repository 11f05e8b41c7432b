// Package timecalc holds the time-of-day and duration arithmetic shared by the
// attendance engine.
package timecalc

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const secondsPerDay = 24 * 60 * 60

// Clock is a wall-clock time of day, stored as whole seconds since midnight.
type Clock int32

// NewClock builds a Clock from its components. Out-of-range components wrap.
func NewClock(hour, minute, second int) Clock {
	s := (hour*3600 + minute*60 + second) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return Clock(s)
}

// ClockOf returns the time-of-day part of t in t's location.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute(), t.Second())
}

// Ptr returns a pointer to a copy of c.
func (c Clock) Ptr() *Clock {
	return &c
}

func (c Clock) Hour() int   { return int(c) / 3600 }
func (c Clock) Minute() int { return int(c) % 3600 / 60 }
func (c Clock) Second() int { return int(c) % 60 }

// Before reports whether c is strictly earlier in the day than o.
func (c Clock) Before(o Clock) bool { return c < o }

// After reports whether c is strictly later in the day than o.
func (c Clock) After(o Clock) bool { return c > o }

// Add shifts c by d, wrapping past midnight.
func (c Clock) Add(d time.Duration) Clock {
	return NewClock(0, 0, int(c)+int(d/time.Second))
}

// Sub returns c-o on the same day. The result is negative when c is before o.
func (c Clock) Sub(o Clock) time.Duration {
	return time.Duration(int(c)-int(o)) * time.Second
}

// String formats c as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// On anchors c to the calendar day of date.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), c.Second(), 0, date.Location())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed := ParseTime(s)
	if parsed == nil {
		return fmt.Errorf("invalid time of day %q, use HH:MM or HH:MM:SS", s)
	}
	*c = *parsed
	return nil
}

// ParseTime accepts "HH:MM" or "HH:MM:SS". Empty or malformed input yields nil.
func ParseTime(s string) *Clock {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var layout string
	switch strings.Count(s, ":") {
	case 1:
		layout = "15:04"
	case 2:
		layout = "15:04:05"
	default:
		return nil
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	c := ClockOf(t)
	return &c
}

// Diff returns the span from start to end. An end before start is taken to
// cross midnight. Only meaningful for a single session.
func Diff(start, end Clock) time.Duration {
	d := end.Sub(start)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d
}

// MinutesBetween returns whole minutes from a to b, truncated toward zero.
func MinutesBetween(a, b Clock) int {
	return int(b.Sub(a) / time.Minute)
}

var (
	hundred     = decimal.NewFromInt(100)
	nanosInHour = decimal.NewFromInt(int64(time.Hour))
)

// ToDecimalHours converts d to hours rounded half-up to two decimals.
func ToDecimalHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(nanosInHour).Round(2)
}

// FromDecimalHours converts decimal hours to a duration truncated to the second.
// Non-positive input yields zero.
func FromDecimalHours(h decimal.Decimal) time.Duration {
	if !h.IsPositive() {
		return 0
	}
	return time.Duration(h.Mul(decimal.NewFromInt(3600)).IntPart()) * time.Second
}

// FormatDuration renders d as HH:MM:SS. Hours are not capped at 24 so monthly
// totals stay readable. Negative durations render as zero.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// Percent returns part/whole*100 rounded half-up to two decimals, or zero when
// whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
