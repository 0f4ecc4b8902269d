// Package spherical holds the degree-based trigonometry shared by the house
// systems: the asc1/asc2 ecliptic-crossing functions and ARMC/MC conversion.
package spherical

import (
	"math"

	"github.com/soniakeys/unit"
)

// VerySmall is the epsilon, in degrees, below which a quantity is treated as zero
const VerySmall = 1.0 / 360000.0

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

func Sind(x float64) float64 { return math.Sin(x * degToRad) }
func Cosd(x float64) float64 { return math.Cos(x * degToRad) }
func Tand(x float64) float64 { return math.Tan(x * degToRad) }

func Asind(x float64) float64     { return math.Asin(x) * radToDeg }
func Atand(x float64) float64     { return math.Atan(x) * radToDeg }
func Atan2d(y, x float64) float64 { return math.Atan2(y, x) * radToDeg }

// Normalize reduces an angle into [0, 360)
func Normalize(deg float64) float64 {
	n := unit.PMod(deg, 360)
	// PMod can return 360 for tiny negative inputs
	if n >= 360 {
		return 0
	}
	return n
}

// Difference returns the signed separation a - b reduced into (-180, 180]
func Difference(a, b float64) float64 {
	d := Normalize(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}

// Antipode returns the point opposite lon on the circle
func Antipode(lon float64) float64 {
	return Normalize(lon + 180)
}

// Asc2 solves the ecliptic crossing for an equator point x in the first
// quadrant (0..90) at pole height f.
func Asc2(x, f, sinE, cosE float64) float64 {
	ass := -Tand(f)*sinE + cosE*Cosd(x)
	if math.Abs(ass) < VerySmall {
		ass = 0
	}

	sinx := Sind(x)
	if math.Abs(sinx) < VerySmall {
		sinx = 0
	}

	switch {
	case sinx == 0:
		if ass < 0 {
			ass = -VerySmall
		} else {
			ass = VerySmall
		}
	case ass == 0:
		if sinx < 0 {
			ass = -90
		} else {
			ass = 90
		}
	default:
		ass = Atand(sinx / ass)
	}

	if ass < 0 {
		ass += 180
	}
	return ass
}

// Asc1 returns the ecliptic longitude where the circle of position through
// equator point x (degrees of right ascension) with pole height f meets the
// ecliptic. Results within VerySmall of a cardinal point are snapped to it.
func Asc1(x, f, sinE, cosE float64) float64 {
	x = Normalize(x)
	n := int(x/90) + 1

	if math.Abs(90-f) < VerySmall {
		return 180
	}
	if math.Abs(90+f) < VerySmall {
		return 0
	}

	var ass float64
	switch n {
	case 1:
		ass = Asc2(x, f, sinE, cosE)
	case 2:
		ass = 180 - Asc2(180-x, -f, sinE, cosE)
	case 3:
		ass = 180 + Asc2(x-180, -f, sinE, cosE)
	default:
		ass = 360 - Asc2(360-x, f, sinE, cosE)
	}

	ass = Normalize(ass)
	for _, cardinal := range []float64{90, 180, 270} {
		if math.Abs(ass-cardinal) < VerySmall {
			ass = cardinal
		}
	}
	if math.Abs(ass-360) < VerySmall {
		ass = 0
	}
	return ass
}

// MCToARMC converts a midheaven longitude to the right ascension of the MC
func MCToARMC(mc, obliquity float64) float64 {
	if math.Abs(mc-90) < VerySmall {
		return 90
	}
	if math.Abs(mc-270) < VerySmall {
		return 270
	}

	armc := Atand(Tand(mc) * Cosd(obliquity))
	if mc > 90 && mc <= 270 {
		armc += 180
	}
	return Normalize(armc)
}

// ARMCToMC is the inverse of MCToARMC
func ARMCToMC(armc, obliquity float64) float64 {
	if math.Abs(armc-90) < VerySmall {
		return 90
	}
	if math.Abs(armc-270) < VerySmall {
		return 270
	}

	mc := Atand(Tand(armc) / Cosd(obliquity))
	if armc > 90 && armc <= 270 {
		mc += 180
	}
	return Normalize(mc)
}

// EclipticToEquatorial converts ecliptic longitude/latitude to right ascension
// and declination, all in degrees.
func EclipticToEquatorial(lon, lat, obliquity float64) (ra, dec float64) {
	sinE, cosE := Sind(obliquity), Cosd(obliquity)
	ra = Normalize(Atan2d(Sind(lon)*cosE-Tand(lat)*sinE, Cosd(lon)))
	dec = Asind(Sind(lat)*cosE + Cosd(lat)*sinE*Sind(lon))
	return ra, dec
}
