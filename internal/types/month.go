// Package types implements value types shared by the models and the finance client.
package types

import (
	"fmt"
	"time"
)

// Month is a month in a specific year.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs, in UTC.
func MonthOf(t time.Time) Month {
	year, month, _ := t.UTC().Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Number returns the month number, 1 to 12.
func (m Month) Number() int {
	return int(time.Time(m).Month())
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// FirstDay is the first calendar day of the month.
func (m Month) FirstDay() Date {
	return DateOf(time.Time(m))
}

// Contains reports whether the date is in the month.
func (m Month) Contains(d Date) bool {
	return d.Time().Year() == m.Year() && int(d.Time().Month()) == m.Number()
}

func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}
