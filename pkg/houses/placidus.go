package houses

import (
	"fmt"
	"math"

	sph "github.com/chrissnell/skychart/pkg/spherical"
)

// placidusCusp describes one upper-hemisphere Placidus cusp: its offset in
// right ascension from the ARMC, the semi-arc divisor, and which of the two
// starting pole heights to use.
type placidusCusp struct {
	index   int
	offset  float64
	divisor float64
	outer   bool
}

var placidusCusps = []placidusCusp{
	{index: 10, offset: 30, divisor: 3, outer: true},
	{index: 11, offset: 60, divisor: 1.5},
	{index: 1, offset: 120, divisor: 1.5},
	{index: 2, offset: 150, divisor: 3, outer: true},
}

// PlacidusCusps trisects the diurnal and nocturnal semi-arcs of each degree,
// finding every intermediate cusp by iterating on its pole height. Cusps
// that fail to settle within opts.MaxIterations return ErrNoConvergence.
// Undefined inside the polar circles.
func PlacidusCusps(a Angles, latitude, obliquity float64, opts Options) (Cusps, error) {
	if inPolarCircle(latitude, obliquity) {
		return Cusps{}, ErrPolarCircle
	}
	opts = opts.withDefaults()

	th := sph.MCToARMC(a.Midheaven, obliquity)
	sinE, cosE := sph.Sind(obliquity), sph.Cosd(obliquity)
	tanE := sph.Tand(obliquity)
	tanLat := sph.Tand(latitude)

	// ascensional difference of the solstice point
	ad := sph.Asind(tanLat * tanE)
	fh1 := sph.Atand(sph.Sind(ad/3) / tanE)
	fh2 := sph.Atand(sph.Sind(ad*2/3) / tanE)

	var c Cusps
	c[0] = a.Ascendant
	c[9] = a.Midheaven

	for _, pc := range placidusCusps {
		fh := fh2
		if pc.outer {
			fh = fh1
		}

		cusp, err := placidusIterate(sph.Normalize(th+pc.offset), fh, pc.divisor, tanLat, sinE, cosE, opts)
		if err != nil {
			return Cusps{}, fmt.Errorf("house %d: %w", pc.index+1, err)
		}
		c[pc.index] = cusp
	}

	c.fillLowerHemisphere()
	return c, nil
}

// placidusIterate refines the pole height of the cusp at right ascension ra
// until successive ecliptic longitudes agree within opts.Tolerance.
func placidusIterate(ra, fh, divisor, tanLat, sinE, cosE float64, opts Options) (float64, error) {
	poleHeight := func(lon float64) (float64, bool) {
		tanDecl := sph.Tand(sph.Asind(sinE * sph.Sind(lon)))
		if math.Abs(tanDecl) < sph.VerySmall {
			return 0, false
		}
		return sph.Atand(sph.Sind(sph.Asind(tanLat*tanDecl)/divisor) / tanDecl), true
	}

	// a cusp on the equator is its own right ascension
	f, ok := poleHeight(sph.Asc1(ra, fh, sinE, cosE))
	if !ok {
		return ra, nil
	}
	cusp := sph.Asc1(ra, f, sinE, cosE)

	for i := 0; i < opts.MaxIterations; i++ {
		if f, ok = poleHeight(cusp); !ok {
			return ra, nil
		}
		next := sph.Asc1(ra, f, sinE, cosE)
		if math.Abs(sph.Difference(next, cusp)) < opts.Tolerance {
			return next, nil
		}
		cusp = next
	}

	return 0, fmt.Errorf("%w after %d iterations", ErrNoConvergence, opts.MaxIterations)
}
