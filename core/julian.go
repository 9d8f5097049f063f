package core

import "time"

// JulianDate converts a calendar instant to a Julian Date using the
// Fliegel–Van Flandern day number plus the fraction of the day measured
// from noon. The instant is read in UTC.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	year := t.Year()
	month := int(t.Month())
	day := t.Day()

	// January and February count as months 13 and 14 of the previous year.
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045

	seconds := float64(t.Second()) + float64(t.Nanosecond())/1e9
	return float64(jdn) +
		float64(t.Hour()-12)/24 +
		float64(t.Minute())/1440 +
		seconds/86400
}

// floorDiv divides rounding toward negative infinity so that proleptic
// dates before year -4800 still land on the right day.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// DaysSinceJ2000 is the signed number of days between t and the J2000.0 epoch.
func DaysSinceJ2000(t time.Time) float64 {
	return JulianDate(t) - J2000
}
