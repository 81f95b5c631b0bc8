package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelier/shared/clock"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		a        time.Time
		b        time.Time
		expected int
	}{
		{
			name:     "three nights",
			a:        time.Date(2025, 3, 7, 15, 0, 0, 0, time.UTC),
			b:        time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "same day",
			a:        time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			b:        time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "clock times never shorten a stay",
			a:        time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC),
			b:        time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "reversed order is negative",
			a:        time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
			b:        time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC),
			expected: -2,
		},
		{
			name:     "across a month boundary",
			a:        time.Date(2025, 2, 27, 12, 0, 0, 0, time.UTC),
			b:        time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC),
			expected: 3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, clock.DaysBetween(test.a, test.b))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	at := time.Date(2025, 3, 10, 23, 45, 12, 999, loc)

	got := clock.StartOfDay(at)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestFixed(t *testing.T) {
	at := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)
	clk := clock.Fixed(at)

	assert.Equal(t, at, clk.Now())
	assert.Equal(t, at, clk.Now())
}
