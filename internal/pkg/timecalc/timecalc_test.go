package timecalc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		input string
		want  *Clock
	}{
		{"08:00", NewClock(8, 0, 0).Ptr()},
		{"8:05", NewClock(8, 5, 0).Ptr()},
		{"17:30:15", NewClock(17, 30, 15).Ptr()},
		{" 23:59:59 ", NewClock(23, 59, 59).Ptr()},
		{"00:00", NewClock(0, 0, 0).Ptr()},
		{"", nil},
		{"   ", nil},
		{"0800", nil},
		{"25:00", nil},
		{"12:60", nil},
		{"12:00:61", nil},
		{"ab:cd", nil},
		{"1:2:3:4", nil},
	}
	for _, c := range cases {
		got := ParseTime(c.input)
		if c.want == nil {
			assert.Nil(t, got, "ParseTime(%q)", c.input)
			continue
		}
		require.NotNil(t, got, "ParseTime(%q)", c.input)
		assert.Equal(t, *c.want, *got, "ParseTime(%q)", c.input)
	}
}

func TestDiff(t *testing.T) {
	assert.Equal(t, 4*time.Hour, Diff(NewClock(8, 0, 0), NewClock(12, 0, 0)))
	assert.Equal(t, time.Duration(0), Diff(NewClock(8, 0, 0), NewClock(8, 0, 0)))
	// crosses midnight
	assert.Equal(t, 8*time.Hour, Diff(NewClock(22, 0, 0), NewClock(6, 0, 0)))
}

func TestMinutesBetween(t *testing.T) {
	assert.Equal(t, 15, MinutesBetween(NewClock(8, 15, 0), NewClock(8, 30, 0)))
	assert.Equal(t, 0, MinutesBetween(NewClock(8, 15, 0), NewClock(8, 15, 59)))
	assert.Equal(t, -45, MinutesBetween(NewClock(9, 0, 0), NewClock(8, 15, 0)))
}

func TestToDecimalHours(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{7 * time.Hour, "7"},
		{7*time.Hour + 30*time.Minute, "7.5"},
		{20 * time.Minute, "0.33"},
		{30 * time.Second, "0.01"}, // 0.008333 rounds up
		{18 * time.Second, "0.01"}, // 0.005 exactly rounds half-up
		{17 * time.Second, "0"},
		{0, "0"},
	}
	for _, c := range cases {
		got := ToDecimalHours(c.d)
		assert.True(t, decimal.RequireFromString(c.want).Equal(got), "ToDecimalHours(%s) = %s, want %s", c.d, got, c.want)
	}
}

func TestFromDecimalHours(t *testing.T) {
	assert.Equal(t, 9*time.Hour+45*time.Minute, FromDecimalHours(decimal.RequireFromString("9.75")))
	assert.Equal(t, 4*time.Hour+52*time.Minute+30*time.Second, FromDecimalHours(decimal.RequireFromString("4.875")))
	assert.Equal(t, time.Duration(0), FromDecimalHours(decimal.RequireFromString("-1")))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "08:00:00", FormatDuration(8*time.Hour))
	assert.Equal(t, "01:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "154:00:00", FormatDuration(154*time.Hour))
	assert.Equal(t, "00:00:00", FormatDuration(-time.Minute))
	assert.Equal(t, "00:00:00", FormatDuration(0))
}

func TestClock_Add(t *testing.T) {
	assert.Equal(t, NewClock(8, 15, 0), NewClock(8, 0, 0).Add(15*time.Minute))
	assert.Equal(t, NewClock(1, 0, 0), NewClock(23, 0, 0).Add(2*time.Hour))
	assert.Equal(t, NewClock(23, 0, 0), NewClock(1, 0, 0).Add(-2*time.Hour))
}

func TestClock_JSON(t *testing.T) {
	type payload struct {
		In  *Clock `json:"in"`
		Out *Clock `json:"out"`
	}

	b, err := json.Marshal(payload{In: NewClock(8, 30, 0).Ptr()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"in":"08:30:00","out":null}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"in":"09:15","out":null}`), &p))
	require.NotNil(t, p.In)
	assert.Equal(t, NewClock(9, 15, 0), *p.In)
	assert.Nil(t, p.Out)

	assert.Error(t, json.Unmarshal([]byte(`{"in":"9h15"}`), &p))
}

func TestPercent(t *testing.T) {
	assert.True(t, decimal.RequireFromString("50").Equal(Percent(decimal.NewFromInt(1), decimal.NewFromInt(2))))
	assert.True(t, decimal.RequireFromString("33.33").Equal(Percent(decimal.NewFromInt(1), decimal.NewFromInt(3))))
	assert.True(t, decimal.RequireFromString("66.67").Equal(Percent(decimal.NewFromInt(2), decimal.NewFromInt(3))))
	assert.True(t, Percent(decimal.NewFromInt(1), decimal.Zero).IsZero())
}
