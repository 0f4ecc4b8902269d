package ephemeris

import (
	"github.com/soniakeys/meeus/v3/base"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/spherical"
)

const (
	// mean Earth-Moon distance, used for the nodes
	nodeDistance = 384400.0 / auKm

	// mean apogee distance, used for Lilith
	apogeeDistance = 405504.0 / auKm
)

// meanNode returns the longitude of the Moon's mean ascending node
func meanNode(T float64) float64 {
	return spherical.Normalize(base.Horner(T,
		125.0445479, -1934.1362891, 0.0020754, 1.0/467441, -1.0/60616000))
}

// trueNode adds the principal periodic terms to the mean node
func trueNode(T float64) float64 {
	D := base.Horner(T, 297.8501921, 445267.1114034, -0.0018819, 1.0/545868, -1.0/113065000)
	M := base.Horner(T, 357.5291092, 35999.0502909, -0.0001536, 1.0/24490000)
	Mp := base.Horner(T, 134.9633964, 477198.8675055, 0.0087414, 1.0/69699, -1.0/14712000)
	F := base.Horner(T, 93.2720950, 483202.0175233, -0.0036539, -1.0/3526000, 1.0/863310000)

	sind := spherical.Sind
	return spherical.Normalize(meanNode(T) -
		1.4979*sind(2*(D-F)) -
		0.1500*sind(M) -
		0.1226*sind(2*D) +
		0.1176*sind(2*F) -
		0.0801*sind(2*(Mp-F)))
}

// meanApogee returns the longitude of the mean lunar apogee (Black Moon
// Lilith), 180° from the mean perigee.
func meanApogee(T float64) float64 {
	perigee := base.Horner(T, 83.3532465, 4069.0137287, -0.0103200, -1.0/80053, 1.0/18999000)
	return spherical.Normalize(perigee + 180)
}

// lunarPointGeometric returns the geometric position of a node or Lilith.
// SouthNode is derived by the caller from TrueNode.
func lunarPointGeometric(b Body, jd float64) (lon, lat, dist float64) {
	T := astrotime.Centuries(jd)
	switch b {
	case MeanNode:
		return meanNode(T), 0, nodeDistance
	case TrueNode:
		return trueNode(T), 0, nodeDistance
	default:
		return meanApogee(T), 0, apogeeDistance
	}
}
