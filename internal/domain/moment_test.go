package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBirthMoment(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     int
		day       int
		hour      int
		minute    int
		period    Period
		wantHour  int
		wantField string
	}{
		{name: "24 hour clock", year: 1990, month: 6, day: 15, hour: 14, minute: 30, wantHour: 14},
		{name: "midnight as 12 AM", year: 1990, month: 6, day: 15, hour: 12, period: PeriodAM, wantHour: 0},
		{name: "noon as 12 PM", year: 1990, month: 6, day: 15, hour: 12, period: PeriodPM, wantHour: 12},
		{name: "1 PM", year: 1990, month: 6, day: 15, hour: 1, period: PeriodPM, wantHour: 13},
		{name: "11 AM", year: 1990, month: 6, day: 15, hour: 11, period: PeriodAM, wantHour: 11},
		{name: "leap day", year: 2024, month: 2, day: 29, hour: 0, wantHour: 0},
		{name: "non leap Feb 29", year: 2023, month: 2, day: 29, wantField: "day"},
		{name: "April 31", year: 2000, month: 4, day: 31, wantField: "day"},
		{name: "month 13", year: 2000, month: 13, day: 1, wantField: "month"},
		{name: "month zero", year: 2000, month: 0, day: 1, wantField: "month"},
		{name: "hour 24", year: 2000, month: 1, day: 1, hour: 24, wantField: "hour"},
		{name: "hour 13 with period", year: 2000, month: 1, day: 1, hour: 13, period: PeriodPM, wantField: "hour"},
		{name: "hour 0 with period", year: 2000, month: 1, day: 1, hour: 0, period: PeriodAM, wantField: "hour"},
		{name: "minute 60", year: 2000, month: 1, day: 1, minute: 60, wantField: "minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewBirthMoment(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.period)

			if tt.wantField != "" {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.True(t, m.IsZero())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, m.Hour())
			assert.Equal(t, tt.minute, m.Minute())
			assert.Equal(t, time.UTC, m.UTC().Location())
		})
	}
}

func TestTo24Hour(t *testing.T) {
	assert.Equal(t, 0, To24Hour(12, PeriodAM))
	assert.Equal(t, 12, To24Hour(12, PeriodPM))
	assert.Equal(t, 23, To24Hour(11, PeriodPM))
	assert.Equal(t, 7, To24Hour(7, PeriodAM))
	assert.Equal(t, 17, To24Hour(17, PeriodNone))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2000, 2))
	assert.Equal(t, 28, DaysIn(1900, 2))
	assert.Equal(t, 31, DaysIn(2021, 12))
	assert.Equal(t, 30, DaysIn(2021, 11))
	assert.Equal(t, 0, DaysIn(2021, 0))
}

func TestParseBirthMoment(t *testing.T) {
	valid := BirthFields{Year: "1985", Month: "7", Day: "4", Hour: "9", Minute: "05", Period: "pm"}

	m, err := ParseBirthMoment(valid)
	require.NoError(t, err)
	assert.Equal(t, "1985-07-04T21:05:00Z", m.String())
	assert.InDelta(t, 21.0833, m.FractionalHour(), 1e-3)

	t.Run("missing field", func(t *testing.T) {
		f := valid
		f.Year = "  "

		_, err := ParseBirthMoment(f)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "year", vErr.Field)
		assert.Equal(t, "is required", vErr.Message)
	})

	t.Run("non numeric", func(t *testing.T) {
		f := valid
		f.Minute = "ten"

		_, err := ParseBirthMoment(f)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "minute", vErr.Field)
	})

	t.Run("bad period", func(t *testing.T) {
		f := valid
		f.Period = "noon"

		_, err := ParseBirthMoment(f)
		assert.True(t, IsValidation(err))
	})
}
