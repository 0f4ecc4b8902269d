// Package obliquity computes the angle between the ecliptic and the celestial
// equator, with and without nutation.
package obliquity

import (
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/nutation"
)

// Mean returns the mean obliquity of the ecliptic in degrees (IAU formula)
func Mean(jd float64) float64 {
	T := base.J2000Century(jd)
	return base.Horner(T, 23.439291111, -0.013004167, -0.00000164, 0.000000504)
}

// Nutation returns the nutation in longitude and in obliquity, both in degrees
func Nutation(jd float64) (dPsi, dEpsilon float64) {
	ψ, ε := nutation.Nutation(jd)
	return ψ.Deg(), ε.Deg()
}

// True returns the mean obliquity corrected for nutation
func True(jd float64) float64 {
	_, dEpsilon := Nutation(jd)
	return Mean(jd) + dEpsilon
}
