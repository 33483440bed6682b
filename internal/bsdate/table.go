package bsdate

// yearData maps a Bikram Sambat year to the length of each of its 12
// months. The table is calibrated against the official
// Nepali calendar; conversions are only defined inside its range.
var yearData = map[int][12]int{
	2070: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2071: {31, 31, 32, 31, 32, 30, 30, 29, 30, 29, 30, 30},
	2072: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2073: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2074: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2075: {31, 32, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2076: {31, 32, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
	2077: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2078: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2079: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2080: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2081: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2082: {31, 32, 31, 32, 31, 31, 29, 30, 29, 30, 29, 31},
	2083: {31, 32, 31, 32, 31, 31, 30, 29, 29, 30, 30, 30},
	2084: {31, 31, 32, 31, 31, 31, 30, 29, 30, 29, 30, 30},
	2085: {31, 31, 32, 32, 31, 30, 30, 29, 30, 29, 30, 30},
	2086: {31, 32, 31, 32, 31, 30, 30, 30, 29, 29, 30, 31},
	2087: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 29, 31},
	2088: {31, 31, 32, 32, 31, 30, 30, 30, 29, 30, 30, 30},
	2089: {31, 32, 31, 32, 31, 31, 29, 30, 30, 29, 29, 31},
	2090: {31, 32, 31, 32, 31, 31, 30, 29, 30, 29, 30, 30},
}

// MinYear and MaxYear bound the supported BS year range.
const (
	MinYear = 2070
	MaxYear = 2090
)

// MonthNames holds the BS month names, Baisakh first.
var MonthNames = [12]string{
	"Baisakh", "Jestha", "Ashadh", "Shrawan", "Bhadra", "Ashwin",
	"Kartik", "Mangsir", "Poush", "Magh", "Falgun", "Chaitra",
}

func daysInYear(year int) (int, bool) {
	months, ok := yearData[year]
	if !ok {
		return 0, false
	}
	total := 0
	for _, d := range months {
		total += d
	}
	return total, true
}
