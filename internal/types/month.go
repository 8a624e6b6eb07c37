// Package types implements special types for the account book.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrMonthOutOfRange = errors.New("the month must be between 1 and 12")

var (
	yearMonth = regexp.MustCompile("^[0-9]{4}-[0-9]{2}$")
	fullDate  = regexp.MustCompile("^[0-9]{4}-[0-9]{2}-[0-9]{2}$")
)

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// NewMonthChecked returns a new Month for a year and a month number,
// rejecting month numbers outside of 1 to 12.
//
// time.Date normalizes month 13 to January of the next year, which is
// never what a caller passing a calendar month means.
func NewMonthChecked(year, month int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w, got %d", ErrMonthOutOfRange, month)
	}

	return NewMonth(year, time.Month(month)), nil
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
func (m Month) MarshalJSON() ([]byte, error) {
	return time.Time(m).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The month is parsed with ParseMonth.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`) // get rid of "
	if value == "" || value == "null" {
		return nil
	}

	month, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// ParseMonth parses a string in "YYYY-MM", "YYYY-MM-DD" or RFC3339 format.
// From the parsed string, everything is then ignored except the year and month
// as written, regardless of a time zone offset.
func ParseMonth(s string) (Month, error) {
	pattern := time.RFC3339
	if yearMonth.MatchString(s) {
		pattern = "2006-01"
	} else if fullDate.MatchString(s) {
		pattern = time.DateOnly
	}

	t, err := time.Parse(pattern, s)
	if err != nil {
		return Month{}, err
	}

	return NewMonth(t.Year(), t.Month()), nil
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the month of the year.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Start returns the first instant of the month in UTC.
func (m Month) Start() time.Time {
	return time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month in UTC. It is
// the exclusive upper bound of the month.
func (m Month) End() time.Time {
	return m.AddDate(0, 1).Start()
}

// Window returns the aggregation window for the month: the inclusive start
// and the exclusive end.
func (m Month) Window() (start, end time.Time) {
	return m.Start(), m.End()
}

// MonthsUntil returns the number of months from m to n, both included.
// If n is before m, it returns 0.
func (m Month) MonthsUntil(n Month) int {
	count := (n.Year()-m.Year())*12 + int(n.Month()) - int(m.Month()) + 1
	if count < 0 {
		return 0
	}

	return count
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}
