package kepler

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSolveKeplerCircular(t *testing.T) {
	for _, M := range []float64{-720, -123.456, 0, 1e-9, 45, 179.999, 359.5, 1000} {
		E, err := SolveKepler(M, 0)
		if err != nil {
			t.Fatalf("SolveKepler(%v, 0) error = %v", M, err)
		}
		if E != M {
			t.Errorf("SolveKepler(%v, 0) = %v, expected exactly %v", M, E, M)
		}
	}
}

func TestSolveKeplerResidual(t *testing.T) {
	eccentricities := []float64{0.0068, 0.0167, 0.0485, 0.0934, 0.2056, 0.2488, 0.3786, 0.6, 0.9}

	for _, e := range eccentricities {
		for M := -350.0; M <= 350.0; M += 12.5 {
			E, err := SolveKepler(M, e)
			if err != nil {
				t.Fatalf("SolveKepler(%v, %v) error = %v", M, e, err)
			}

			residual := math.Abs(MeanFromEccentric(E, e) - M)
			if residual >= 1e-4 {
				t.Errorf("SolveKepler(%v, %v): residual %.3g°, expected < 1e-4°", M, e, residual)
			}
		}
	}
}

func TestSolveKeplerDomain(t *testing.T) {
	tests := []struct {
		name string
		e    float64
	}{
		{"parabolic", 1.0},
		{"hyperbolic", 1.5},
		{"negative", -0.1},
		{"NaN", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveKepler(30, tt.e)
			if !errors.Is(err, ErrEccentricity) {
				t.Errorf("SolveKepler(30, %v) error = %v, expected ErrEccentricity", tt.e, err)
			}
		})
	}
}

func TestEccentricToTrueCircular(t *testing.T) {
	for _, E := range []float64{-300, -90, 0, 33.3, 270, 359.99} {
		if v := EccentricToTrue(E, 0); v != E {
			t.Errorf("EccentricToTrue(%v, 0) = %v, expected %v", E, v, E)
		}
	}
}

func TestEccentricToTrueSign(t *testing.T) {
	tests := []struct {
		name string
		E    float64
		e    float64
	}{
		{"small positive", 10, 0.2},
		{"second quadrant", 135, 0.3},
		{"just before aphelion", 179, 0.5},
		{"third quadrant", 225, 0.2},
		{"small negative", -10, 0.2},
		{"negative second quadrant", -135, 0.3},
		{"negative third quadrant", -225, 0.2},
		{"negative full turn side", -350, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EccentricToTrue(tt.E, tt.e)

			if math.Signbit(v) != math.Signbit(tt.E) {
				t.Errorf("EccentricToTrue(%v, %v) = %v, expected the sign of E", tt.E, tt.e, v)
			}
			if math.Abs(v-tt.E) >= 180 {
				t.Errorf("EccentricToTrue(%v, %v) = %v, expected to stay within half a turn of E", tt.E, tt.e, v)
			}
		})
	}
}

func TestEccentricToTrueKnownValue(t *testing.T) {
	// tan(ν/2) = sqrt((1+e)/(1-e)) · tan(E/2)
	E, e := 60.0, 0.5
	expected := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(degToRad(E/2)))
	if v := EccentricToTrue(E, e); !scalar.EqualWithinAbs(v, radToDeg(expected), 1e-9) {
		t.Errorf("EccentricToTrue(%v, %v) = %v, expected %v", E, e, v, radToDeg(expected))
	}
}

func TestTrueAnomalyTracksMeanAnomaly(t *testing.T) {
	for _, M := range []float64{30, 60, 120, 170, -30, -120} {
		prev := M
		for e := 0.0; e < 0.95; e += 0.1 {
			v, _, err := TrueAnomaly(M, e)
			if err != nil {
				t.Fatalf("TrueAnomaly(%v, %v) error = %v", M, e, err)
			}

			if math.Signbit(v) != math.Signbit(M) {
				t.Fatalf("TrueAnomaly(%v, %v) = %v, sign differs from M", M, e, v)
			}

			// Away from perihelion the true anomaly runs ahead of M, more so as e grows
			if math.Abs(v) < math.Abs(prev)-1e-9 {
				t.Errorf("TrueAnomaly(%v, %.1f) = %v, expected |ν| >= %v", M, e, v, math.Abs(prev))
			}
			prev = v
		}
	}
}

func TestRadiusVector(t *testing.T) {
	tests := []struct {
		name     string
		E        float64
		a        float64
		e        float64
		expected float64
	}{
		{"perihelion", 0, 1.0, 0.0167, 0.9833},
		{"aphelion", 180, 1.0, 0.0167, 1.0167},
		{"circular", 77, 5.2, 0, 5.2},
		{"quadrature", 90, 2.0, 0.3, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RadiusVector(tt.E, tt.a, tt.e)
			if !scalar.EqualWithinAbs(r, tt.expected, 1e-12) {
				t.Errorf("RadiusVector(%v, %v, %v) = %v, expected %v", tt.E, tt.a, tt.e, r, tt.expected)
			}
		})
	}
}
