package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"today", PeriodToday, false},
		{"week", PeriodWeek, false},
		{"month", PeriodMonth, false},
		{"", PeriodToday, false},
		{"year", "", true},
		{"Today", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePeriod(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestPeriodRangeToday(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 45, 0, time.Local)

	start, end := PeriodRange(PeriodToday, now)

	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.Local), end)
}

func TestPeriodRangeWeek(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)

	start, end := PeriodRange(PeriodWeek, now)

	assert.Equal(t, now.AddDate(0, 0, -7), start)
	assert.Equal(t, now, end)
}

func TestPeriodRangeMonth(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)

	start, end := PeriodRange(PeriodMonth, now)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local), end)
}
