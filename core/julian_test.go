package core

import (
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/soniakeys/meeus/v3/julian"
)

func TestJulianDate_J2000(t *testing.T) {
	if got := JulianDate(j2000Time); got != J2000 {
		t.Fatalf("JulianDate(J2000) = %.10f, want %.1f", got, J2000)
	}
}

func TestJulianDate_KnownDates(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"sputnik launch", time.Date(1957, time.October, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"1987 Jan 27.0", time.Date(1987, time.January, 27, 0, 0, 0, 0, time.UTC), 2446822.5},
		{"1999 Jan 1.0", time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC), 2451179.5},
		{"1600 Dec 31.0", time.Date(1600, time.December, 31, 0, 0, 0, 0, time.UTC), 2305812.5},
		{"leap day 2024", time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC), 2460370.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertClose(t, "JulianDate", JulianDate(tc.t), tc.want, 1e-6)
		})
	}
}

func TestJulianDate_MatchesMeeus(t *testing.T) {
	for year := 1583; year <= 2400; year += 37 {
		for month := 1; month <= 12; month++ {
			ts := time.Date(year, time.Month(month), 17, 6, 30, 0, 0, time.UTC)
			day := 17 + (6*60+30)/1440.0
			want := julian.CalendarGregorianToJD(year, month, day)
			assertClose(t, ts.Format(time.RFC3339), JulianDate(ts), want, 1e-6)
		}
	}
}

func TestJulianDate_MatchesGoSatellite(t *testing.T) {
	// go-satellite's JDay formula is valid between 1901 and 2099.
	for year := 1950; year < 2100; year += 7 {
		for _, month := range []int{1, 2, 3, 7, 12} {
			ts := time.Date(year, time.Month(month), 9, 15, 0, 0, 0, time.UTC)
			want := satellite.JDay(year, month, 9, 15, 0, 0)
			assertClose(t, ts.Format(time.RFC3339), JulianDate(ts), want, 1e-6)
		}
	}
}

func TestJulianDate_IgnoresTimeZone(t *testing.T) {
	utc := time.Date(2021, time.March, 14, 3, 0, 0, 0, time.UTC)
	tokyo := utc.In(time.FixedZone("JST", 9*3600))
	if JulianDate(utc) != JulianDate(tokyo) {
		t.Fatalf("JulianDate differs across zones: %v vs %v", JulianDate(utc), JulianDate(tokyo))
	}
}

func TestJulianDate_ConsecutiveDaysAcrossFebruary(t *testing.T) {
	start := time.Date(2024, time.February, 27, 0, 0, 0, 0, time.UTC)
	prev := JulianDate(start)
	for i := 1; i <= 4; i++ {
		next := JulianDate(start.AddDate(0, 0, i))
		assertClose(t, "day step", next-prev, 1, 1e-9)
		prev = next
	}
}

func TestJulianDate_SubSecond(t *testing.T) {
	base := time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC)
	half := base.Add(500 * time.Millisecond)
	assertClose(t, "half second", JulianDate(half)-JulianDate(base), 0.5/86400, 1e-8)
}
