package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is the AM/PM marker of a 12-hour clock time.
type Period string

const (
	// PeriodNone means the hour is already on a 24-hour clock.
	PeriodNone Period = ""
	PeriodAM   Period = "AM"
	PeriodPM   Period = "PM"
)

// ParsePeriod parses "AM"/"PM" case-insensitively; empty is PeriodNone.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return PeriodNone, nil
	case "AM":
		return PeriodAM, nil
	case "PM":
		return PeriodPM, nil
	default:
		return PeriodNone, NewValidationErrorWithValue("period", "must be AM or PM", s)
	}
}

// BirthMoment is a UTC instant broken into civil components.
// The caller supplies UTC-equivalent values; no timezone lookup is done.
type BirthMoment struct {
	year   int
	month  int
	day    int
	hour   int
	minute int
	utc    time.Time
}

// BirthFields carries unparsed birth data as it arrives from a form or CLI.
type BirthFields struct {
	Year   string
	Month  string
	Day    string
	Hour   string
	Minute string
	Period string
}

// ParseBirthMoment validates raw string fields and builds a BirthMoment.
func ParseBirthMoment(f BirthFields) (BirthMoment, error) {
	year, err := parseRequiredInt("year", f.Year)
	if err != nil {
		return BirthMoment{}, err
	}

	month, err := parseRequiredInt("month", f.Month)
	if err != nil {
		return BirthMoment{}, err
	}

	day, err := parseRequiredInt("day", f.Day)
	if err != nil {
		return BirthMoment{}, err
	}

	hour, err := parseRequiredInt("hour", f.Hour)
	if err != nil {
		return BirthMoment{}, err
	}

	minute, err := parseRequiredInt("minute", f.Minute)
	if err != nil {
		return BirthMoment{}, err
	}

	period, err := ParsePeriod(f.Period)
	if err != nil {
		return BirthMoment{}, err
	}

	return NewBirthMoment(year, month, day, hour, minute, period)
}

// NewBirthMoment validates civil components, converts a 12-hour clock to
// 24 hours and builds the UTC instant.
func NewBirthMoment(year, month, day, hour, minute int, period Period) (BirthMoment, error) {
	if period != PeriodNone {
		if hour < 1 || hour > 12 {
			return BirthMoment{}, NewValidationErrorWithValue("hour", "must be between 1 and 12 when a period is given", hour)
		}

		hour = To24Hour(hour, period)
	}

	if month < 1 || month > 12 {
		return BirthMoment{}, NewValidationErrorWithValue("month", "must be between 1 and 12", month)
	}

	if dim := DaysIn(year, month); day < 1 || day > dim {
		return BirthMoment{}, NewValidationErrorWithValue("day", fmt.Sprintf("must be between 1 and %d", dim), day)
	}

	if hour < 0 || hour > 23 {
		return BirthMoment{}, NewValidationErrorWithValue("hour", "must be between 0 and 23", hour)
	}

	if minute < 0 || minute > 59 {
		return BirthMoment{}, NewValidationErrorWithValue("minute", "must be between 0 and 59", minute)
	}

	return BirthMoment{
		year:   year,
		month:  month,
		day:    day,
		hour:   hour,
		minute: minute,
		utc:    time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC),
	}, nil
}

// To24Hour applies the 12-hour to 24-hour conversion rule.
func To24Hour(hour int, period Period) int {
	switch {
	case period == PeriodPM && hour < 12:
		return hour + 12
	case period == PeriodAM && hour == 12:
		return 0
	default:
		return hour
	}
}

// DaysIn returns the number of days in a month of the proleptic Gregorian calendar.
func DaysIn(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}

	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (m BirthMoment) Year() int   { return m.year }
func (m BirthMoment) Month() int  { return m.month }
func (m BirthMoment) Day() int    { return m.day }
func (m BirthMoment) Hour() int   { return m.hour }
func (m BirthMoment) Minute() int { return m.minute }

// UTC returns the instant.
func (m BirthMoment) UTC() time.Time { return m.utc }

// IsZero reports whether the moment was never constructed.
func (m BirthMoment) IsZero() bool { return m.utc.IsZero() }

// FractionalHour returns hour + minute/60.
func (m BirthMoment) FractionalHour() float64 {
	return float64(m.hour) + float64(m.minute)/60
}

// String formats the moment as RFC 3339.
func (m BirthMoment) String() string {
	return m.utc.Format(time.RFC3339)
}

func parseRequiredInt(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, NewValidationError(field, "is required")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewValidationErrorWithValue(field, "must be a whole number", raw)
	}

	return n, nil
}
