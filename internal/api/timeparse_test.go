package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeParam(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		raw      string
		expected time.Time
		wantErr  bool
	}{
		{name: "empty yields zero time", raw: "", expected: time.Time{}},
		{name: "epoch seconds", raw: "1700000000", expected: time.Unix(1700000000, 0)},
		{name: "fractional epoch", raw: "1700000000.5", expected: time.Unix(1700000000, 500000000)},
		{name: "seconds shorthand", raw: "30s", expected: now.Add(-30 * time.Second)},
		{name: "minutes shorthand", raw: "15m", expected: now.Add(-15 * time.Minute)},
		{name: "hours shorthand", raw: "2h", expected: now.Add(-2 * time.Hour)},
		{name: "days shorthand", raw: "1d", expected: now.Add(-24 * time.Hour)},
		{name: "weeks shorthand", raw: "1w", expected: now.Add(-7 * 24 * time.Hour)},
		{name: "garbage rejected", raw: "yesterday", wantErr: true},
		{name: "bare unit rejected", raw: "h", wantErr: true},
		{name: "negative shorthand rejected", raw: "-5m", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseTimeParam(tc.raw, now)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.WithinDuration(t, tc.expected, got, time.Millisecond)
		})
	}
}
