// Package kepler solves Kepler's equation for elliptical orbits and converts
// between mean, eccentric and true anomaly. All angles are in degrees.
package kepler

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MaxIterations caps the Newton-Raphson loop in SolveKepler
	MaxIterations = 30

	// Tolerance is the convergence threshold on |ΔE|, 1e-4 degrees expressed in radians
	Tolerance = 1e-4 * math.Pi / 180.0
)

var (
	// ErrEccentricity is returned for parabolic, hyperbolic or negative eccentricities
	ErrEccentricity = errors.New("eccentricity must be in [0, 1)")

	// ErrNoConvergence is returned when the solver exhausts MaxIterations
	ErrNoConvergence = errors.New("kepler equation did not converge")
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// SolveKepler returns the eccentric anomaly E (degrees) for mean anomaly M
// (degrees) and eccentricity e, solving E - e·sin(E) = M.
func SolveKepler(meanAnomaly, eccentricity float64) (float64, error) {
	if eccentricity < 0 || eccentricity >= 1 || math.IsNaN(eccentricity) {
		return 0, fmt.Errorf("%w: got %v", ErrEccentricity, eccentricity)
	}
	if eccentricity == 0 {
		return meanAnomaly, nil
	}

	M := degToRad(meanAnomaly)
	E := M

	for i := 0; i < MaxIterations; i++ {
		f := E - eccentricity*math.Sin(E) - M
		fPrime := 1 - eccentricity*math.Cos(E)
		delta := f / fPrime
		E -= delta

		if math.Abs(delta) < Tolerance {
			return radToDeg(E), nil
		}
	}

	return 0, fmt.Errorf("%w: M=%v e=%v after %d iterations", ErrNoConvergence, meanAnomaly, eccentricity, MaxIterations)
}

// EccentricToTrue converts eccentric anomaly E to true anomaly ν, both in
// degrees. The result stays in the same revolution as E, so a negative E
// yields a negative ν rather than one wrapped into [0, 360).
func EccentricToTrue(eccentricAnomaly, eccentricity float64) float64 {
	if eccentricity == 0 {
		return eccentricAnomaly
	}

	E := degToRad(eccentricAnomaly)
	sinV := math.Sqrt(1-eccentricity*eccentricity) * math.Sin(E)
	cosV := math.Cos(E) - eccentricity
	v := radToDeg(math.Atan2(sinV, cosV))

	// ν and E always share a half-plane, so they differ by less than half a turn
	return v + 360.0*math.Round((eccentricAnomaly-v)/360.0)
}

// MeanFromEccentric is the inverse of SolveKepler: M = E - e·sin(E), degrees.
func MeanFromEccentric(eccentricAnomaly, eccentricity float64) float64 {
	return eccentricAnomaly - radToDeg(eccentricity*math.Sin(degToRad(eccentricAnomaly)))
}

// RadiusVector returns the body's distance from the focus, in the units of
// the semi-major axis a.
func RadiusVector(eccentricAnomaly, semiMajorAxis, eccentricity float64) float64 {
	return semiMajorAxis * (1 - eccentricity*math.Cos(degToRad(eccentricAnomaly)))
}

// TrueAnomaly solves Kepler's equation and returns (ν, E) in degrees.
func TrueAnomaly(meanAnomaly, eccentricity float64) (trueAnomaly, eccentricAnomaly float64, err error) {
	E, err := SolveKepler(meanAnomaly, eccentricity)
	if err != nil {
		return 0, 0, err
	}
	return EccentricToTrue(E, eccentricity), E, nil
}
