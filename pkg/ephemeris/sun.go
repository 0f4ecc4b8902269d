package ephemeris

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chrissnell/skychart/pkg/astrotime"
)

// The Sun's apparent orbit around the Earth, equinox of date.
// The orbit lies in the ecliptic so node and inclination are zero.
var sunElements = Elements{
	SemiMajorAxis:    1.0,
	Eccentricity:     0.016709,
	EccentricityRate: -1.151e-9,
	Perihelion:       282.9404,
	PerihelionRate:   4.70935e-5,
	MeanAnomaly:      356.0470,
	DailyMotion:      0.9856002585,
	Epoch:            astrotime.ElementEpoch,
}

// sunVector returns the geocentric ecliptic position of the Sun in AU
func sunVector(jd float64) (r3.Vec, error) {
	return orbitVector(sunElements.At(jd))
}

// earthVector returns the heliocentric position of the Earth in AU
func earthVector(jd float64) (r3.Vec, error) {
	sun, err := sunVector(jd)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Scale(-1, sun), nil
}

// sunMeanLongitude returns the Sun's mean anomaly and mean longitude
func sunMeanLongitude(jd float64) (M, L float64) {
	o := sunElements.At(jd)
	return o.MeanAnomaly, o.MeanAnomaly + o.Perihelion
}
