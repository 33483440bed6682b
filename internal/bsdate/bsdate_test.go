package bsdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorConversion(t *testing.T) {
	d, err := FromGregorian(time.Date(2013, time.April, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2070, Month: 1, Day: 1}, d)

	ad, err := Date{Year: 2070, Month: 1, Day: 1}.Gregorian()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2013, time.April, 14, 0, 0, 0, 0, time.UTC), ad)
}

func TestKnownNewYear(t *testing.T) {
	// BS 2081/01/01 fell on 2024-04-13.
	ad, err := Date{Year: 2081, Month: 1, Day: 1}.Gregorian()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC), ad)

	d, err := FromGregorian(ad)
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2081, Month: 1, Day: 1}, d)
}

func TestRoundTripWholeTable(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		for month := 1; month <= 12; month++ {
			days, err := DaysInMonth(year, month)
			require.NoError(t, err)
			for day := 1; day <= days; day++ {
				d := Date{Year: year, Month: month, Day: day}
				ad, err := d.Gregorian()
				require.NoError(t, err, "to AD: %s", d)
				back, err := FromGregorian(ad)
				require.NoError(t, err, "from AD: %s", ad)
				require.Equal(t, d, back)
			}
		}
	}
}

func TestMonotonicOffsets(t *testing.T) {
	prev, err := Date{Year: 2070, Month: 1, Day: 1}.Gregorian()
	require.NoError(t, err)
	for year := MinYear; year <= MaxYear; year++ {
		last, err := DaysInMonth(year, 12)
		require.NoError(t, err)
		end, err := Date{Year: year, Month: 12, Day: last}.Gregorian()
		require.NoError(t, err)
		assert.True(t, end.After(prev) || end.Equal(prev))
		prev = end
	}
}

func TestUnsupportedYear(t *testing.T) {
	_, err := Date{Year: 2069, Month: 12, Day: 30}.Gregorian()
	assert.ErrorIs(t, err, ErrUnsupportedYear)

	_, err = Date{Year: 2095, Month: 1, Day: 1}.Gregorian()
	assert.ErrorIs(t, err, ErrUnsupportedYear)

	// Gregorian date before the anchor cannot be represented.
	_, err = FromGregorian(time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrUnsupportedYear)
}

func TestIsValid(t *testing.T) {
	assert.True(t, Date{Year: 2080, Month: 1, Day: 31}.IsValid())
	assert.False(t, Date{Year: 2080, Month: 1, Day: 32}.IsValid())
	assert.False(t, Date{Year: 2080, Month: 13, Day: 1}.IsValid())
	assert.False(t, Date{Year: 2080, Month: 0, Day: 1}.IsValid())
	assert.False(t, Date{Year: 1999, Month: 1, Day: 1}.IsValid())

	// Month 7 of 2082 has only 29 days in the table.
	assert.True(t, Date{Year: 2082, Month: 7, Day: 29}.IsValid())
	assert.False(t, Date{Year: 2082, Month: 7, Day: 30}.IsValid())
}

func TestParseAndString(t *testing.T) {
	d, err := Parse("2080/04/01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2080, Month: 4, Day: 1}, d)
	assert.Equal(t, "2080/04/01", d.String())
	assert.Equal(t, "Shrawan", d.MonthName())

	d, err = Parse("2080-04-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2080, Month: 4, Day: 1}, d)

	_, err = Parse("2080/04")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Parse("2080/13/01")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Parse("2060/01/01")
	assert.ErrorIs(t, err, ErrUnsupportedYear)
}

func TestFiscalYear(t *testing.T) {
	// Fiscal year rolls over at Shrawan (month 4).
	assert.Equal(t, "2080/81", Date{Year: 2080, Month: 4, Day: 1}.FiscalYear())
	assert.Equal(t, "2080/81", Date{Year: 2080, Month: 12, Day: 30}.FiscalYear())
	assert.Equal(t, "2080/81", Date{Year: 2081, Month: 3, Day: 15}.FiscalYear())
	assert.Equal(t, "2079/80", Date{Year: 2080, Month: 3, Day: 30}.FiscalYear())
}

func TestFiscalWindow(t *testing.T) {
	from, to, err := FiscalWindow("2080/81")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2080, time.April, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2081, time.March, 31, 0, 0, 0, 0, time.UTC), to)

	_, _, err = FiscalWindow("2080-81")
	assert.Error(t, err)
}

func TestParseFiscalYearRoundTrip(t *testing.T) {
	start, err := ParseFiscalYear("2080/81")
	require.NoError(t, err)
	assert.Equal(t, 2080, start)
	assert.Equal(t, "2080/81", FormatFiscalYear(2080))
	assert.Equal(t, "2099/00", FormatFiscalYear(2099))
}
