package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day. Time of day and location are discarded.
type Date time.Time

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in UTC.
//
// Storage granularity is one day, so 2024-03-15T10:30:00Z and
// 2024-03-15T23:59:59Z both become 2024-03-15.
func DateOf(t time.Time) Date {
	year, month, day := t.UTC().Date()
	return NewDate(year, month, day)
}

// ParseDate parses a "YYYY-MM-DD" string. RFC3339 timestamps are
// accepted as well, their time of day is dropped.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("could not parse date %q, use the YYYY-MM-DD format: %w", s, err)
	}

	return DateOf(t), nil
}

// Time returns the start of the day in UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}

// Month returns the month the date is in.
func (d Date) Month() Month {
	return MonthOf(time.Time(d))
}

// MarshalJSON writes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" as well as RFC3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// UnmarshalParam implements gin's BindUnmarshaler for query strings.
func (d *Date) UnmarshalParam(param string) error {
	return d.UnmarshalJSON([]byte(param))
}

// Scan reads the value from the database. SQLite returns date columns
// either as text or, depending on the driver, as time.Time.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}

	return fmt.Errorf("cannot scan %T into a date", value)
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// Value stores the date as "YYYY-MM-DD" text so that range predicates
// compare lexicographically.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}

	return d.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}
