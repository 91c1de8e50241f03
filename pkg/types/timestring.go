package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString is a clinic-local wall-clock time with minute resolution,
// serialized as "HH:MM". It is the unit every slot and appointment start
// is expressed in; dates are carried separately.
type TimeString string

var (
	// ErrInvalidTimeString is returned for anything that does not parse as HH:MM
	ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

	// ErrTimeOutOfRange is returned when arithmetic leaves the 00:00-24:00 day
	ErrTimeOutOfRange = errors.New("types: time out of day range")
)

// minutesPerDay: "24:00" is permitted as an exclusive end-of-day boundary.
const minutesPerDay = 24 * 60

// NewTimeString builds a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate checks the "HH:MM" format. "24:00" is accepted as a closing
// boundary; anything past it is not.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes returns the minute-of-day value.
func (t TimeString) Minutes() (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	if hh < 0 || mm < 0 || mm > 59 || hh > 24 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return hh*60 + mm, nil
}

// IsZero reports whether the value is empty (unset).
func (t TimeString) IsZero() bool {
	return t == ""
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a > b
}

// AddMinutes returns t shifted forward by n minutes. The result may land on
// the "24:00" boundary but never past it.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	m += n
	if m < 0 || m > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrTimeOutOfRange, string(t), n)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), nil
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer for storing in a TIME/VARCHAR column.
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as strings or
// time.Time depending on the driver path.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// A TIME column scans as "HH:MM:SS"; keep the minute resolution.
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
