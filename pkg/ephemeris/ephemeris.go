// Package ephemeris computes apparent geocentric ecliptic positions of the
// Sun, Moon, planets, four asteroids, Chiron, the lunar nodes and Lilith.
//
// Planets use mean orbital elements with secular rates and the principal
// Jupiter/Saturn/Uranus perturbations, solved with Kepler's equation and
// rotated into the ecliptic. Accuracy near J2000 is of the order of an
// arcminute for the Sun and major planets and a few degrees for the
// asteroid and Chiron theories decades away from their epoch.
package ephemeris

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chrissnell/skychart/pkg/obliquity"
	"github.com/chrissnell/skychart/pkg/spherical"
)

// aberration is the constant annual aberration correction in degrees
const aberration = -20.5 / 3600.0

var (
	// ErrInvalidDate is returned for non-finite Julian Dates
	ErrInvalidDate = errors.New("invalid julian date")

	// ErrNotHeliocentric is returned by Heliocentric for calculated lunar points
	ErrNotHeliocentric = errors.New("body has no heliocentric orbit")
)

func errNotHeliocentric(b Body) error {
	return fmt.Errorf("%w: %s", ErrNotHeliocentric, b)
}

// Position is an apparent geocentric ecliptic position
type Position struct {
	Longitude      float64 `json:"longitude"`       // degrees [0, 360)
	Latitude       float64 `json:"latitude"`        // degrees
	Distance       float64 `json:"distance"`        // AU
	LongitudeSpeed float64 `json:"longitude_speed"` // degrees/day
	IsRetrograde   bool    `json:"is_retrograde"`
}

// Options selects the corrections applied after the geometric position
type Options struct {
	Aberration bool
	Nutation   bool
}

// DefaultOptions applies both aberration and nutation
func DefaultOptions() Options {
	return Options{Aberration: true, Nutation: true}
}

// Calculator computes positions with a fixed set of corrections. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	opts Options
}

// NewCalculator returns a Calculator applying the corrections in opts
func NewCalculator(opts Options) *Calculator {
	return &Calculator{opts: opts}
}

var defaultCalculator = NewCalculator(DefaultOptions())

// Calculate returns the apparent position of body at Julian Date jd with the
// default corrections.
func Calculate(body Body, jd float64) (Position, error) {
	return defaultCalculator.Position(body, jd)
}

// CalculateAll returns every catalogued body at jd with the default corrections
func CalculateAll(jd float64) (map[Body]Position, error) {
	return defaultCalculator.All(jd)
}

// Position returns the apparent position of body at Julian Date jd
func (c *Calculator) Position(body Body, jd float64) (Position, error) {
	return c.position(body, jd, true, true)
}

// All returns the positions of every catalogued body at jd
func (c *Calculator) All(jd float64) (map[Body]Position, error) {
	positions := make(map[Body]Position, len(bodyNames))
	for _, b := range AllBodies() {
		p, err := c.Position(b, jd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b, err)
		}
		positions[b] = p
	}
	return positions, nil
}

// position is the single entry point of the pipeline. The speed derivation
// calls back in with corrections and withSpeed both false.
func (c *Calculator) position(body Body, jd float64, corrections, withSpeed bool) (Position, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidDate, jd)
	}
	if !body.valid() {
		return Position{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	}

	if body == SouthNode {
		p, err := c.position(TrueNode, jd, corrections, withSpeed)
		if err != nil {
			return Position{}, err
		}
		p.Longitude = spherical.Antipode(p.Longitude)
		return p, nil
	}

	lon, lat, dist, err := geometric(body, jd)
	if err != nil {
		return Position{}, err
	}

	if corrections {
		lon = c.correct(body, lon, jd)
	}

	p := Position{
		Longitude: lon,
		Latitude:  lat,
		Distance:  dist,
	}

	if withSpeed {
		speed, err := c.speed(body, jd)
		if err != nil {
			return Position{}, err
		}
		p.LongitudeSpeed = speed
		p.IsRetrograde = speed < 0
	}

	return p, nil
}

// geometric returns the geometric geocentric longitude, latitude and distance
func geometric(body Body, jd float64) (lon, lat, dist float64, err error) {
	switch {
	case body == Sun:
		v, err := sunVector(jd)
		if err != nil {
			return 0, 0, 0, err
		}
		lon, lat, dist = toSpherical(v)
		return lon, lat, dist, nil

	case body == Moon:
		return moonGeometric(jd)

	case body.IsLunarPoint():
		lon, lat, dist = lunarPointGeometric(body, jd)
		return lon, lat, dist, nil
	}

	helio, err := heliocentric(body, jd)
	if err != nil {
		return 0, 0, 0, err
	}
	earth, err := earthVector(jd)
	if err != nil {
		return 0, 0, 0, err
	}

	lon, lat, dist = toSpherical(r3.Sub(helio, earth))
	return lon, lat, dist, nil
}

// correct applies aberration and nutation in longitude. Calculated lunar
// points get no aberration.
func (c *Calculator) correct(body Body, lon, jd float64) float64 {
	if c.opts.Aberration && !body.IsLunarPoint() {
		lon += aberration
	}
	if c.opts.Nutation {
		dPsi, _ := obliquity.Nutation(jd)
		lon += dPsi
	}
	return spherical.Normalize(lon)
}

// speedStep returns the half-width in days of the central difference
func speedStep(body Body) float64 {
	switch body {
	case Moon:
		return 0.01
	case Sun, Mercury, Venus, Mars, MeanNode, TrueNode, SouthNode, Lilith:
		return 0.1
	case Ceres, Pallas, Juno, Vesta:
		return 0.5
	default:
		return 1.0
	}
}

// speed returns the longitude speed in degrees/day by central difference
func (c *Calculator) speed(body Body, jd float64) (float64, error) {
	step := speedStep(body)

	before, err := c.position(body, jd-step, false, false)
	if err != nil {
		return 0, err
	}
	after, err := c.position(body, jd+step, false, false)
	if err != nil {
		return 0, err
	}

	return spherical.Difference(after.Longitude, before.Longitude) / (2 * step), nil
}

// Heliocentric returns the heliocentric ecliptic position of body in AU,
// equinox of date. The Sun is at the origin; the Moon is offset from the
// Earth. Nodes and Lilith return ErrNotHeliocentric.
func Heliocentric(body Body, jd float64) (r3.Vec, error) {
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return r3.Vec{}, fmt.Errorf("%w: %v", ErrInvalidDate, jd)
	}

	switch {
	case !body.valid():
		return r3.Vec{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	case body == Sun:
		return r3.Vec{}, nil
	case body.IsLunarPoint():
		return r3.Vec{}, errNotHeliocentric(body)
	case body == Moon:
		earth, err := earthVector(jd)
		if err != nil {
			return r3.Vec{}, err
		}
		lon, lat, dist, err := moonGeometric(jd)
		if err != nil {
			return r3.Vec{}, err
		}
		return r3.Add(earth, fromSpherical(lon, lat, dist)), nil
	}

	return heliocentric(body, jd)
}
