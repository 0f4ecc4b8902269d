// Package astrotime converts between wall-clock time and Julian Dates and
// derives the time arguments used by the position and house calculations.
package astrotime

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

const (
	// J2000 is the Julian Date of 2000 January 1.5
	J2000 = 2451545.0

	// ElementEpoch is 1999 December 31.0, day zero of the mean-element series
	ElementEpoch = 2451543.5
)

// FromTime returns the Julian Date of t
func FromTime(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// ToTime returns the UTC time of a Julian Date
func ToTime(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}

// Centuries returns Julian centuries since J2000.0
func Centuries(jd float64) float64 {
	return base.J2000Century(jd)
}

// DaysSinceEpoch returns days since ElementEpoch
func DaysSinceEpoch(jd float64) float64 {
	return jd - ElementEpoch
}

// GreenwichSiderealTime returns apparent sidereal time at Greenwich in degrees
func GreenwichSiderealTime(jd float64) float64 {
	return sidereal.Apparent(jd).Angle().Deg()
}

// LocalSiderealTime returns apparent local sidereal time in degrees [0, 360)
// for an east-positive longitude.
func LocalSiderealTime(jd, longitude float64) float64 {
	lst := unit.PMod(GreenwichSiderealTime(jd)+longitude, 360)
	if lst >= 360 {
		return 0
	}
	return lst
}
