// Package houses computes the chart angles and the twelve house cusps for
// seven house systems. Koch and Placidus fall back to Porphyry where they
// are undefined (inside the polar circles) or where Placidus fails to
// converge; the fallback is reported through the logger and an optional
// hook, never as an error.
package houses

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/obliquity"
	sph "github.com/chrissnell/skychart/pkg/spherical"
)

const (
	// DefaultMaxIterations is the Placidus iteration cap and its upper bound
	DefaultMaxIterations = 50

	// DefaultTolerance is the Placidus convergence threshold in degrees and
	// its lower bound
	DefaultTolerance = sph.VerySmall
)

// ErrInvalidDate is returned by Calculate for non-finite Julian Dates
var ErrInvalidDate = errors.New("invalid julian date")

// Options bounds the Placidus iteration. Zero values select the defaults;
// MaxIterations is capped at DefaultMaxIterations and Tolerance is raised to
// at least DefaultTolerance.
type Options struct {
	MaxIterations int
	Tolerance     float64
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 || o.MaxIterations > DefaultMaxIterations {
		o.MaxIterations = DefaultMaxIterations
	}
	if !(o.Tolerance >= DefaultTolerance) {
		o.Tolerance = DefaultTolerance
	}
	return o
}

// FallbackFunc is called when a requested system is replaced by Porphyry
type FallbackFunc func(requested System, latitude float64, reason error)

// Engine dispatches cusp calculations to the house systems. It holds only
// configuration and is safe for concurrent use.
type Engine struct {
	opts       Options
	logger     *zap.SugaredLogger
	onFallback FallbackFunc
}

// NewEngine returns an Engine. A nil logger discards fallback warnings.
func NewEngine(opts Options, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// OnFallback registers fn to be called on every Porphyry substitution
func (e *Engine) OnFallback(fn FallbackFunc) *Engine {
	e.onFallback = fn
	return e
}

// Options returns the effective iteration bounds
func (e *Engine) Options() Options {
	return e.opts
}

// Cusps computes the cusps of system for the given angles. Koch and Placidus
// failures are replaced by the Porphyry cusps of the same angles. The only
// error is ErrUnknownSystem.
func (e *Engine) Cusps(system System, a Angles, latitude, obliquity float64) (Cusps, error) {
	var (
		c   Cusps
		err error
	)

	switch system {
	case Equal:
		return EqualCusps(a), nil
	case WholeSign:
		return WholeSignCusps(a), nil
	case Porphyry:
		return PorphyryCusps(a), nil
	case Campanus:
		return CampanusCusps(a, latitude, obliquity), nil
	case Regiomontanus:
		return RegiomontanusCusps(a, latitude, obliquity), nil
	case Koch:
		c, err = KochCusps(a, latitude, obliquity)
	case Placidus:
		c, err = PlacidusCusps(a, latitude, obliquity, e.opts)
	default:
		return Cusps{}, fmt.Errorf("%w: %d", ErrUnknownSystem, int(system))
	}

	if err != nil {
		e.logger.Warnw("house system fell back to Porphyry",
			"system", system.String(),
			"latitude", latitude,
			"obliquity", obliquity,
			"reason", err,
		)
		if e.onFallback != nil {
			e.onFallback(system, latitude, err)
		}
		return PorphyryCusps(a), nil
	}
	return c, nil
}

// Result is a complete house calculation for one moment and place
type Result struct {
	JulianDay    float64  `json:"julian_day"`
	Location     Location `json:"location"`
	System       System   `json:"system"`
	Obliquity    float64  `json:"obliquity"`
	SiderealTime float64  `json:"sidereal_time"`
	Angles       Angles   `json:"angles"`
	Cusps        Cusps    `json:"cusps"`
}

// Calculate validates loc, then derives the true obliquity, the local
// apparent sidereal time, the angles and the cusps of system at jd.
func (e *Engine) Calculate(jd float64, loc Location, system System) (Result, error) {
	if err := loc.Validate(); err != nil {
		return Result{}, err
	}
	if !system.valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownSystem, int(system))
	}
	if math.IsNaN(jd) || math.IsInf(jd, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidDate, jd)
	}

	eps := obliquity.True(jd)
	lst := astrotime.LocalSiderealTime(jd, loc.Longitude)
	angles := CalculateAngles(lst, eps, loc.Latitude)

	cusps, err := e.Cusps(system, angles, loc.Latitude, eps)
	if err != nil {
		return Result{}, err
	}

	return Result{
		JulianDay:    jd,
		Location:     loc,
		System:       system,
		Obliquity:    eps,
		SiderealTime: lst,
		Angles:       angles,
		Cusps:        cusps,
	}, nil
}
