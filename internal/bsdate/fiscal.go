package bsdate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// The Nepali fiscal year begins in Shrawan (month 4) and is labelled
// "YYYY/YY", e.g. "2080/81".

var fiscalYearPattern = regexp.MustCompile(`^(\d{4})/(\d{2})$`)

// FiscalYear returns the fiscal-year label containing d.
func (d Date) FiscalYear() string {
	startYear := d.Year
	if d.Month < 4 {
		startYear--
	}
	return FormatFiscalYear(startYear)
}

// FormatFiscalYear builds the "YYYY/YY" label for a fiscal year starting in
// the given BS year.
func FormatFiscalYear(startYear int) string {
	return fmt.Sprintf("%04d/%02d", startYear, (startYear+1)%100)
}

// ParseFiscalYear extracts the starting BS year from a "YYYY/YY" label.
func ParseFiscalYear(label string) (int, error) {
	m := fiscalYearPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, fmt.Errorf("%w: fiscal year %q", ErrInvalidDate, label)
	}
	start, _ := strconv.Atoi(m[1])
	return start, nil
}

// FiscalWindow returns the Gregorian date window used for year-end closing
// of the labelled fiscal year: April 1 of the label's first component
// through March 31 of the following year. The Gregorian-aligned window is
// domain convention carried over from the bookkeeping rules this engine
// implements.
func FiscalWindow(label string) (time.Time, time.Time, error) {
	start, err := ParseFiscalYear(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from := time.Date(start, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(start+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	return from, to, nil
}
