// Package bsdate converts between the Bikram Sambat (BS) civil calendar and
// the Gregorian (AD) calendar using a per-year month-length table anchored at
// BS 2070/01/01 = AD 2013-04-14. All functions are pure; dates outside the
// table range fail with ErrUnsupportedYear rather than approximating.
package bsdate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnsupportedYear = errors.New("BS year outside supported table range")
	ErrInvalidDate     = errors.New("invalid BS date")
)

// Date is a Bikram Sambat calendar date. Month and Day are 1-based.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// anchor: BS 2070/01/01 corresponds to this Gregorian day.
var anchorAD = time.Date(2013, time.April, 14, 0, 0, 0, 0, time.UTC)

const anchorYear = 2070

// IsValid reports whether d names a real day within the supported table.
func (d Date) IsValid() bool {
	months, ok := yearData[d.Year]
	if !ok {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= months[d.Month-1]
}

// DaysInMonth returns the number of days in the given BS month.
func DaysInMonth(year, month int) (int, error) {
	months, ok := yearData[year]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	return months[month-1], nil
}

// dayOffset returns the number of days between the anchor and d.
func (d Date) dayOffset() (int, error) {
	if !d.IsValid() {
		if _, ok := yearData[d.Year]; !ok {
			return 0, fmt.Errorf("%w: %d", ErrUnsupportedYear, d.Year)
		}
		return 0, fmt.Errorf("%w: %04d/%02d/%02d", ErrInvalidDate, d.Year, d.Month, d.Day)
	}

	total := 0
	for year := anchorYear; year < d.Year; year++ {
		days, ok := daysInYear(year)
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrUnsupportedYear, year)
		}
		total += days
	}
	months := yearData[d.Year]
	for month := 1; month < d.Month; month++ {
		total += months[month-1]
	}
	total += d.Day - 1
	return total, nil
}

// Gregorian converts d to the equivalent Gregorian date at midnight UTC.
func (d Date) Gregorian() (time.Time, error) {
	offset, err := d.dayOffset()
	if err != nil {
		return time.Time{}, err
	}
	return anchorAD.AddDate(0, 0, offset), nil
}

// FromGregorian converts a Gregorian date to its BS equivalent.
func FromGregorian(t time.Time) (Date, error) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(day.Sub(anchorAD).Hours() / 24)
	if diff < 0 {
		return Date{}, fmt.Errorf("%w: before BS %d", ErrUnsupportedYear, MinYear)
	}

	d := Date{Year: anchorYear, Month: 1, Day: 1}
	for diff > 0 {
		months, ok := yearData[d.Year]
		if !ok {
			return Date{}, fmt.Errorf("%w: %d", ErrUnsupportedYear, d.Year)
		}
		remaining := months[d.Month-1] - d.Day + 1
		if diff >= remaining {
			diff -= remaining
			d.Day = 1
			d.Month++
			if d.Month > 12 {
				d.Month = 1
				d.Year++
			}
		} else {
			d.Day += diff
			diff = 0
		}
	}
	if _, ok := yearData[d.Year]; !ok {
		return Date{}, fmt.Errorf("%w: %d", ErrUnsupportedYear, d.Year)
	}
	return d, nil
}

// Today returns the current date in the BS calendar.
func Today() (Date, error) {
	return FromGregorian(time.Now().UTC())
}

// String formats d as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// MonthName returns the BS month name for d, or "" if out of range.
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return MonthNames[d.Month-1]
}

// Parse reads a BS date from YYYY/MM/DD or YYYY-MM-DD form. The parsed date
// is checked against the table.
func Parse(s string) (Date, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !d.IsValid() {
		if _, ok := yearData[d.Year]; !ok {
			return Date{}, fmt.Errorf("%w: %d", ErrUnsupportedYear, d.Year)
		}
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
