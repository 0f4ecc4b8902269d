package ephemeris

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chrissnell/skychart/pkg/kepler"
	"github.com/chrissnell/skychart/pkg/spherical"
)

// orbitVector solves Kepler's equation for o and returns the position in the
// reference plane of the elements (ecliptic), in units of the semi-major axis.
func orbitVector(o Orbit) (r3.Vec, error) {
	v, E, err := kepler.TrueAnomaly(o.MeanAnomaly, o.Eccentricity)
	if err != nil {
		return r3.Vec{}, err
	}
	r := kepler.RadiusVector(E, o.SemiMajorAxis, o.Eccentricity)

	P, Q := directionCosines(o.Perihelion, o.Inclination, o.Node)
	return r3.Add(
		r3.Scale(r*spherical.Cosd(v), P),
		r3.Scale(r*spherical.Sind(v), Q),
	), nil
}

// directionCosines returns the unit vectors towards perihelion (P) and 90°
// ahead of it in the orbital plane (Q).
func directionCosines(w, i, node float64) (P, Q r3.Vec) {
	sinW, cosW := spherical.Sind(w), spherical.Cosd(w)
	sinI, cosI := spherical.Sind(i), spherical.Cosd(i)
	sinN, cosN := spherical.Sind(node), spherical.Cosd(node)

	P = r3.Vec{
		X: cosW*cosN - sinW*sinN*cosI,
		Y: cosW*sinN + sinW*cosN*cosI,
		Z: sinW * sinI,
	}
	Q = r3.Vec{
		X: -sinW*cosN - cosW*sinN*cosI,
		Y: -sinW*sinN + cosW*cosN*cosI,
		Z: cosW * sinI,
	}
	return P, Q
}

// toSpherical converts a rectangular ecliptic vector to longitude [0, 360),
// latitude and distance.
func toSpherical(v r3.Vec) (lon, lat, dist float64) {
	dist = r3.Norm(v)
	if dist == 0 {
		return 0, 0, 0
	}
	lon = spherical.Normalize(spherical.Atan2d(v.Y, v.X))
	lat = spherical.Asind(math.Max(-1, math.Min(1, v.Z/dist)))
	return lon, lat, dist
}

func fromSpherical(lon, lat, dist float64) r3.Vec {
	cosLat := spherical.Cosd(lat)
	return r3.Vec{
		X: dist * cosLat * spherical.Cosd(lon),
		Y: dist * cosLat * spherical.Sind(lon),
		Z: dist * spherical.Sind(lat),
	}
}

// perturbations returns the corrections to heliocentric longitude and
// latitude from the mutual attraction of Jupiter, Saturn and Uranus.
// Mj, Ms and Mu are their mean anomalies.
func perturbations(b Body, Mj, Ms, Mu float64) (dLon, dLat float64) {
	sind, cosd := spherical.Sind, spherical.Cosd

	switch b {
	case Jupiter:
		dLon = -0.332*sind(2*Mj-5*Ms-67.6) -
			0.056*sind(2*Mj-2*Ms+21) +
			0.042*sind(3*Mj-5*Ms+21) -
			0.036*sind(Mj-2*Ms) +
			0.022*cosd(Mj-Ms) +
			0.023*sind(2*Mj-3*Ms+52) -
			0.016*sind(Mj-5*Ms-69)
	case Saturn:
		// the great inequality
		dLon = 0.812*sind(2*Mj-5*Ms-67.6) -
			0.229*cosd(2*Mj-4*Ms-2) +
			0.119*sind(Mj-2*Ms-3) +
			0.046*sind(2*Mj-6*Ms-69) +
			0.014*sind(Mj-3*Ms+32)
		dLat = -0.020*cosd(2*Mj-4*Ms-2) +
			0.018*sind(2*Mj-6*Ms-49)
	case Uranus:
		dLon = 0.040*sind(Ms-2*Mu+6) +
			0.035*sind(Ms-3*Mu+33) -
			0.015*sind(Mj-Mu+20)
	}
	return dLon, dLat
}

func isPerturbed(b Body) bool {
	return b == Jupiter || b == Saturn || b == Uranus
}

// heliocentric returns the heliocentric ecliptic position of a planet,
// asteroid or Chiron in AU.
func heliocentric(b Body, jd float64) (r3.Vec, error) {
	el, ok := elementsFor(b)
	if !ok {
		return r3.Vec{}, errNotHeliocentric(b)
	}

	v, err := orbitVector(el.At(jd))
	if err != nil {
		return r3.Vec{}, err
	}

	if isPerturbed(b) {
		lon, lat, r := toSpherical(v)
		dLon, dLat := perturbations(b,
			planetElements[Jupiter].At(jd).MeanAnomaly,
			planetElements[Saturn].At(jd).MeanAnomaly,
			planetElements[Uranus].At(jd).MeanAnomaly,
		)
		v = fromSpherical(lon+dLon, lat+dLat, r)
	}

	return v, nil
}
