package houses

import (
	"errors"
	"math"

	sph "github.com/chrissnell/skychart/pkg/spherical"
)

var (
	// ErrPolarCircle is returned by Koch and Placidus inside the polar circles,
	// where some ecliptic degrees never rise or set.
	ErrPolarCircle = errors.New("latitude inside polar circle")

	// ErrNoConvergence is returned by Placidus when a cusp fails to converge
	ErrNoConvergence = errors.New("house cusp did not converge")
)

// Cusps holds the twelve house cusps; index 0 is house 1
type Cusps [12]float64

// fillLowerHemisphere sets houses 4-9 from the opposite houses 10-3
func (c *Cusps) fillLowerHemisphere() {
	for _, i := range []int{9, 10, 11, 0, 1, 2} {
		c[(i+6)%12] = sph.Antipode(c[i])
	}
}

// inPolarCircle reports whether |latitude| ≥ 90 - obliquity
func inPolarCircle(latitude, obliquity float64) bool {
	return math.Abs(latitude) >= 90-obliquity
}

// EqualCusps divides the ecliptic into 30° houses starting at the Ascendant
func EqualCusps(a Angles) Cusps {
	var c Cusps
	for i := range c {
		c[i] = sph.Normalize(a.Ascendant + 30*float64(i))
	}
	return c
}

// WholeSignCusps makes each house one zodiac sign, house 1 being the sign that
// contains the Ascendant.
func WholeSignCusps(a Angles) Cusps {
	start := math.Floor(a.Ascendant/30) * 30

	var c Cusps
	for i := range c {
		c[i] = sph.Normalize(start + 30*float64(i))
	}
	return c
}

// PorphyryCusps trisects each of the four quadrants between the angles
func PorphyryCusps(a Angles) Cusps {
	// arc from MC forward to Ascendant, the upper eastern quadrant
	acmc := sph.Difference(a.Ascendant, a.Midheaven)

	var c Cusps
	c[0] = a.Ascendant
	c[9] = a.Midheaven
	c[10] = sph.Normalize(a.Midheaven + acmc/3)
	c[11] = sph.Normalize(a.Midheaven + 2*acmc/3)
	c[1] = sph.Normalize(a.Ascendant + (180-acmc)/3)
	c[2] = sph.Normalize(a.Ascendant + 2*(180-acmc)/3)
	c.fillLowerHemisphere()
	return c
}

// CampanusCusps trisects the prime vertical and projects the divisions onto the
// ecliptic along great circles through the north and south points.
func CampanusCusps(a Angles, latitude, obliquity float64) Cusps {
	th := sph.MCToARMC(a.Midheaven, obliquity)
	sinE, cosE := sph.Sind(obliquity), sph.Cosd(obliquity)

	fh1 := sph.Asind(sph.Sind(latitude) / 2)
	fh2 := sph.Asind(math.Sqrt(3) / 2 * sph.Sind(latitude))

	var xh1, xh2 float64
	if cosLat := sph.Cosd(latitude); math.Abs(cosLat) < sph.VerySmall {
		if latitude > 0 {
			xh1, xh2 = 90, 90
		} else {
			xh1, xh2 = 270, 270
		}
	} else {
		xh1 = sph.Atand(math.Sqrt(3) / cosLat)
		xh2 = sph.Atand(1 / math.Sqrt(3) / cosLat)
	}

	var c Cusps
	c[0] = a.Ascendant
	c[9] = a.Midheaven
	c[10] = sph.Asc1(th+90-xh1, fh1, sinE, cosE)
	c[11] = sph.Asc1(th+90-xh2, fh2, sinE, cosE)
	c[1] = sph.Asc1(th+90+xh2, fh2, sinE, cosE)
	c[2] = sph.Asc1(th+90+xh1, fh1, sinE, cosE)
	c.fillLowerHemisphere()
	return c
}

// RegiomontanusCusps trisects the celestial equator and projects the divisions
// onto the ecliptic along great circles through the north and south points.
func RegiomontanusCusps(a Angles, latitude, obliquity float64) Cusps {
	th := sph.MCToARMC(a.Midheaven, obliquity)
	sinE, cosE := sph.Sind(obliquity), sph.Cosd(obliquity)
	tanLat := sph.Tand(latitude)

	fh1 := sph.Atand(tanLat * 0.5)
	fh2 := sph.Atand(tanLat * sph.Cosd(30))

	var c Cusps
	c[0] = a.Ascendant
	c[9] = a.Midheaven
	c[10] = sph.Asc1(th+30, fh1, sinE, cosE)
	c[11] = sph.Asc1(th+60, fh2, sinE, cosE)
	c[1] = sph.Asc1(th+120, fh2, sinE, cosE)
	c[2] = sph.Asc1(th+150, fh1, sinE, cosE)
	c.fillLowerHemisphere()
	return c
}

// KochCusps trisects the semi-arc of the MC degree, projected from the
// birthplace's horizon. Undefined inside the polar circles.
func KochCusps(a Angles, latitude, obliquity float64) (Cusps, error) {
	if inPolarCircle(latitude, obliquity) {
		return Cusps{}, ErrPolarCircle
	}

	th := sph.MCToARMC(a.Midheaven, obliquity)
	sinE, cosE := sph.Sind(obliquity), sph.Cosd(obliquity)

	sina := sph.Sind(a.Midheaven) * sinE / sph.Cosd(latitude)
	sina = math.Max(-1, math.Min(1, sina))
	cosa := math.Sqrt(1 - sina*sina)

	cc := sph.Atand(sph.Tand(latitude) / cosa)
	ad3 := sph.Asind(sph.Sind(cc)*sina) / 3

	var c Cusps
	c[0] = a.Ascendant
	c[9] = a.Midheaven
	c[10] = sph.Asc1(th+30-2*ad3, latitude, sinE, cosE)
	c[11] = sph.Asc1(th+60-ad3, latitude, sinE, cosE)
	c[1] = sph.Asc1(th+120+ad3, latitude, sinE, cosE)
	c[2] = sph.Asc1(th+150+2*ad3, latitude, sinE, cosE)
	c.fillLowerHemisphere()
	return c, nil
}
