package ephemeris

import (
	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/spherical"
)

const (
	earthRadiusKm = 6378.14
	auKm          = 149597870.7
)

// Mean lunar orbit, equinox of date. The semi-major axis is in Earth radii.
var moonElements = Elements{
	Node:           125.1228,
	NodeRate:       -0.0529538083,
	Inclination:    5.1454,
	Perihelion:     318.0634,
	PerihelionRate: 0.1643573223,
	SemiMajorAxis:  60.2666,
	Eccentricity:   0.054900,
	MeanAnomaly:    115.3654,
	DailyMotion:    13.0649929509,
	Epoch:          astrotime.ElementEpoch,
}

// moonGeometric returns the geocentric ecliptic longitude, latitude and
// distance (AU) of the Moon: the Keplerian mean orbit corrected by the
// largest solar perturbation terms.
func moonGeometric(jd float64) (lon, lat, dist float64, err error) {
	o := moonElements.At(jd)
	v, err := orbitVector(o)
	if err != nil {
		return 0, 0, 0, err
	}
	lon, lat, r := toSpherical(v)

	Ms, Ls := sunMeanLongitude(jd)
	Mm := o.MeanAnomaly
	Lm := Mm + o.Perihelion + o.Node
	D := Lm - Ls
	F := Lm - o.Node

	sind, cosd := spherical.Sind, spherical.Cosd

	lon += -1.274*sind(Mm-2*D) + // evection
		0.658*sind(2*D) - // variation
		0.186*sind(Ms) - // yearly equation
		0.059*sind(2*Mm-2*D) -
		0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) -
		0.035*sind(D) - // parallactic equation
		0.031*sind(Mm+Ms) -
		0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)

	lat += -0.173*sind(F-2*D) -
		0.055*sind(Mm-F-2*D) -
		0.046*sind(Mm+F-2*D) +
		0.033*sind(F+2*D) +
		0.017*sind(2*Mm+F)

	r += -0.58*cosd(Mm-2*D) -
		0.46*cosd(2*D)

	return spherical.Normalize(lon), lat, r * earthRadiusKm / auKm, nil
}
