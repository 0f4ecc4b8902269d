package ephemeris

import (
	"errors"
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solar"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/obliquity"
	"github.com/chrissnell/skychart/pkg/spherical"
)

const j2000 = 2451545.0

func angularError(a, b float64) float64 {
	return math.Abs(spherical.Difference(a, b))
}

func TestSunAtJ2000(t *testing.T) {
	p, err := Calculate(Sun, j2000)
	if err != nil {
		t.Fatalf("Calculate(Sun) error = %v", err)
	}

	if angularError(p.Longitude, 280.37) > 0.034 {
		t.Errorf("Sun longitude = %.4f, expected 280.37 ± 0.034", p.Longitude)
	}
	if math.Abs(p.Latitude) > 1e-9 {
		t.Errorf("Sun latitude = %v, expected 0", p.Latitude)
	}
	if !scalar.EqualWithinAbs(p.Distance, 0.9833, 0.001) {
		t.Errorf("Sun distance = %v AU, expected ~0.9833", p.Distance)
	}
	if !scalar.EqualWithinAbs(p.LongitudeSpeed, 1.019, 0.005) {
		t.Errorf("Sun speed = %v°/day, expected ~1.019", p.LongitudeSpeed)
	}
	if p.IsRetrograde {
		t.Error("Sun reported retrograde")
	}
}

func TestPlanetsAtJ2000(t *testing.T) {
	// Apparent geocentric longitudes at 2000 January 1.5
	tests := []struct {
		body      Body
		longitude float64
		tolerance float64
	}{
		{Mercury, 271.89, 0.034},
		{Venus, 241.57, 0.034},
		{Mars, 327.96, 0.034},
		{Jupiter, 25.25, 0.034},
		{Saturn, 40.3956, 0.034},
		{Uranus, 314.81, 0.034},
		{Neptune, 303.19, 0.034},
		{Pluto, 251.45, 0.5},
		{Chiron, 251.5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.body.String(), func(t *testing.T) {
			p, err := Calculate(tt.body, j2000)
			if err != nil {
				t.Fatalf("Calculate(%s) error = %v", tt.body, err)
			}
			if e := angularError(p.Longitude, tt.longitude); e > tt.tolerance {
				t.Errorf("%s longitude = %.4f, expected %.2f (off by %.4f°)", tt.body, p.Longitude, tt.longitude, e)
			}
		})
	}
}

var referenceEpochs = []struct {
	name string
	jd   float64
}{
	{"1900-01-01", 2415020.5},
	{"1970-01-01", 2440587.5},
	{"1992-04-12", 2448724.5},
	{"J2000", j2000},
	{"2022-01-01", 2459580.5},
	{"2100-01-01", 2488069.5},
}

func TestSunAndMoonAcrossEpochs(t *testing.T) {
	for _, tt := range referenceEpochs {
		t.Run(tt.name, func(t *testing.T) {
			sun, err := Calculate(Sun, tt.jd)
			if err != nil {
				t.Fatalf("Calculate(Sun) error = %v", err)
			}
			expected := spherical.Normalize(solar.ApparentLongitude(base.J2000Century(tt.jd)).Deg())
			if e := angularError(sun.Longitude, expected); e > 0.01 {
				t.Errorf("Sun longitude = %.4f, expected %.4f (off by %.4f°)", sun.Longitude, expected, e)
			}

			moon, err := Calculate(Moon, tt.jd)
			if err != nil {
				t.Fatalf("Calculate(Moon) error = %v", err)
			}
			λ, _, _ := moonposition.Position(tt.jd)
			dPsi, _ := obliquity.Nutation(tt.jd)
			expected = spherical.Normalize(λ.Deg() + dPsi)
			if e := angularError(moon.Longitude, expected); e > 0.25 {
				t.Errorf("Moon longitude = %.4f, expected %.4f (off by %.4f°)", moon.Longitude, expected, e)
			}
		})
	}
}

func TestMeeusWorkedExamples(t *testing.T) {
	// Apparent longitudes from Meeus, Astronomical Algorithms, 2nd ed.
	tests := []struct {
		name      string
		body      Body
		jd        float64
		longitude float64
		tolerance float64
	}{
		{"example 25.b", Sun, 2448908.5, 199.90601, 0.01},
		{"example 33.a", Venus, 2448976.5, 313.08102, 0.034},
		{"example 47.a", Moon, 2448724.5, 133.167265, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Calculate(tt.body, tt.jd)
			if err != nil {
				t.Fatalf("Calculate(%s) error = %v", tt.body, err)
			}
			if e := angularError(p.Longitude, tt.longitude); e > tt.tolerance {
				t.Errorf("%s longitude = %.5f, expected %.5f (off by %.4f°)", tt.body, p.Longitude, tt.longitude, e)
			}
		})
	}
}

func TestMoonAgainstMeeus(t *testing.T) {
	for jd := j2000; jd < j2000+400; jd += 7.3 {
		p, err := Calculate(Moon, jd)
		if err != nil {
			t.Fatalf("Calculate(Moon, %v) error = %v", jd, err)
		}

		λ, β, Δ := moonposition.Position(jd)
		dPsi, _ := obliquity.Nutation(jd)
		expected := spherical.Normalize(λ.Deg() + dPsi)

		if e := angularError(p.Longitude, expected); e > 0.25 {
			t.Errorf("Moon longitude at %v = %.4f, expected %.4f (off by %.4f°)", jd, p.Longitude, expected, e)
		}
		if math.Abs(p.Latitude-β.Deg()) > 0.1 {
			t.Errorf("Moon latitude at %v = %.4f, expected %.4f", jd, p.Latitude, β.Deg())
		}
		if km := p.Distance * auKm; math.Abs(km-Δ) > 4000 {
			t.Errorf("Moon distance at %v = %.0f km, expected %.0f km", jd, km, Δ)
		}
		if p.LongitudeSpeed < 11 || p.LongitudeSpeed > 15.5 {
			t.Errorf("Moon speed at %v = %v°/day, expected 11-15.5", jd, p.LongitudeSpeed)
		}
	}
}

func TestLunarPoints(t *testing.T) {
	geometric := NewCalculator(Options{})

	mean, err := geometric.Position(MeanNode, j2000)
	if err != nil {
		t.Fatalf("Position(MeanNode) error = %v", err)
	}
	if !scalar.EqualWithinAbs(mean.Longitude, 125.0445479, 1e-9) {
		t.Errorf("mean node = %v, expected 125.0445479", mean.Longitude)
	}
	if !scalar.EqualWithinAbs(mean.LongitudeSpeed, -1934.1362891/36525, 1e-5) {
		t.Errorf("mean node speed = %v, expected %v", mean.LongitudeSpeed, -1934.1362891/36525)
	}
	if !mean.IsRetrograde {
		t.Error("mean node should be retrograde")
	}

	lilith, err := geometric.Position(Lilith, j2000)
	if err != nil {
		t.Fatalf("Position(Lilith) error = %v", err)
	}
	if !scalar.EqualWithinAbs(lilith.Longitude, 263.3532465, 1e-9) {
		t.Errorf("Lilith = %v, expected 263.3532465", lilith.Longitude)
	}
	if !scalar.EqualWithinAbs(lilith.LongitudeSpeed, 4069.0137287/36525, 1e-4) {
		t.Errorf("Lilith speed = %v, expected %v", lilith.LongitudeSpeed, 4069.0137287/36525)
	}

	for jd := 2440000.5; jd < 2470000; jd += 1234.5 {
		trueNode, err := Calculate(TrueNode, jd)
		if err != nil {
			t.Fatalf("Calculate(TrueNode, %v) error = %v", jd, err)
		}
		meanNode, err := Calculate(MeanNode, jd)
		if err != nil {
			t.Fatalf("Calculate(MeanNode, %v) error = %v", jd, err)
		}
		southNode, err := Calculate(SouthNode, jd)
		if err != nil {
			t.Fatalf("Calculate(SouthNode, %v) error = %v", jd, err)
		}

		if e := angularError(trueNode.Longitude, meanNode.Longitude); e > 2.0 {
			t.Errorf("true node at %v is %.3f° from the mean node, expected under 2°", jd, e)
		}
		if southNode.Longitude != spherical.Antipode(trueNode.Longitude) {
			t.Errorf("south node at %v = %v, expected antipode of %v", jd, southNode.Longitude, trueNode.Longitude)
		}
		if southNode.LongitudeSpeed != trueNode.LongitudeSpeed {
			t.Errorf("south node speed %v differs from true node speed %v", southNode.LongitudeSpeed, trueNode.LongitudeSpeed)
		}
	}
}

func TestRetrograde(t *testing.T) {
	tests := []struct {
		name       string
		body       Body
		jd         float64
		retrograde bool
	}{
		{"Mars at 2020 opposition", Mars, 2459135.5, true},
		{"Mars in spring 2020", Mars, 2459000.5, false},
		{"Mercury at 2024 April inferior conjunction", Mercury, 2460410.5, true},
		{"Jupiter at 2023 opposition", Jupiter, 2460251.5, true},
		{"Jupiter in spring 2023", Jupiter, 2460050.5, false},
		{"Sun", Sun, 2460251.5, false},
		{"Moon", Moon, 2460251.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Calculate(tt.body, tt.jd)
			if err != nil {
				t.Fatalf("Calculate(%s, %v) error = %v", tt.body, tt.jd, err)
			}
			if p.IsRetrograde != tt.retrograde {
				t.Errorf("%s retrograde = %v (speed %.4f), expected %v", tt.body, p.IsRetrograde, p.LongitudeSpeed, tt.retrograde)
			}
			if p.IsRetrograde != (p.LongitudeSpeed < 0) {
				t.Errorf("IsRetrograde = %v but speed = %v", p.IsRetrograde, p.LongitudeSpeed)
			}
		})
	}
}

func TestPositionInvariants(t *testing.T) {
	dates := []float64{
		j2000 - 3652500, // ten millennia before J2000
		2415020.0,
		j2000,
		2460676.5,
		j2000 + 3652500,
	}

	for _, jd := range dates {
		for _, b := range AllBodies() {
			p, err := Calculate(b, jd)
			if err != nil {
				t.Errorf("Calculate(%s, %v) error = %v", b, jd, err)
				continue
			}
			if p.Longitude < 0 || p.Longitude >= 360 || math.IsNaN(p.Longitude) {
				t.Errorf("%s at %v: longitude %v out of [0, 360)", b, jd, p.Longitude)
			}
			if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) {
				t.Errorf("%s at %v: latitude %v not finite", b, jd, p.Latitude)
			}
			if !(p.Distance > 0) {
				t.Errorf("%s at %v: distance %v, expected > 0", b, jd, p.Distance)
			}
			if math.IsNaN(p.LongitudeSpeed) {
				t.Errorf("%s at %v: speed is NaN", b, jd)
			}
		}
	}
}

func TestCorrections(t *testing.T) {
	apparent, err := NewCalculator(DefaultOptions()).Position(Sun, j2000)
	if err != nil {
		t.Fatal(err)
	}
	geometric, err := NewCalculator(Options{}).Position(Sun, j2000)
	if err != nil {
		t.Fatal(err)
	}

	dPsi, _ := obliquity.Nutation(j2000)
	expected := aberration + dPsi
	if d := spherical.Difference(apparent.Longitude, geometric.Longitude); !scalar.EqualWithinAbs(d, expected, 1e-9) {
		t.Errorf("apparent - geometric = %v, expected %v", d, expected)
	}

	// corrections never enter the derivative
	if apparent.LongitudeSpeed != geometric.LongitudeSpeed {
		t.Errorf("speed with corrections %v differs from speed without %v", apparent.LongitudeSpeed, geometric.LongitudeSpeed)
	}

	nutationOnly, err := NewCalculator(Options{Nutation: true}).Position(MeanNode, j2000)
	if err != nil {
		t.Fatal(err)
	}
	if d := nutationOnly.Longitude - 125.0445479; !scalar.EqualWithinAbs(d, dPsi, 1e-9) {
		t.Errorf("node correction = %v, expected nutation only %v", d, dPsi)
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     Body
		jd       float64
		expected error
	}{
		{"NaN date", Sun, math.NaN(), ErrInvalidDate},
		{"infinite date", Mars, math.Inf(1), ErrInvalidDate},
		{"unknown body", Body(99), j2000, ErrUnknownBody},
		{"negative body", Body(-1), j2000, ErrUnknownBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.body, tt.jd)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Calculate(%v, %v) error = %v, expected %v", tt.body, tt.jd, err, tt.expected)
			}
		})
	}
}

func TestCalculateAll(t *testing.T) {
	positions, err := CalculateAll(j2000)
	if err != nil {
		t.Fatalf("CalculateAll error = %v", err)
	}
	if len(positions) != len(AllBodies()) {
		t.Errorf("CalculateAll returned %d bodies, expected %d", len(positions), len(AllBodies()))
	}

	single, _ := Calculate(Venus, j2000)
	if positions[Venus] != single {
		t.Errorf("CalculateAll Venus = %+v, Calculate = %+v", positions[Venus], single)
	}
}

func TestHeliocentric(t *testing.T) {
	tests := []struct {
		body     Body
		min, max float64
	}{
		{Sun, 0, 0},
		{Moon, 0.98, 1.02},
		{Mercury, 0.30, 0.47},
		{Mars, 1.38, 1.67},
		{Jupiter, 4.95, 5.46},
		{Pluto, 29.6, 49.4},
		{Ceres, 2.5, 3.0},
		{Chiron, 8.4, 18.9},
	}

	for _, tt := range tests {
		t.Run(tt.body.String(), func(t *testing.T) {
			v, err := Heliocentric(tt.body, j2000)
			if err != nil {
				t.Fatalf("Heliocentric(%s) error = %v", tt.body, err)
			}
			if r := r3.Norm(v); r < tt.min || r > tt.max {
				t.Errorf("Heliocentric(%s) radius = %v AU, expected %v-%v", tt.body, r, tt.min, tt.max)
			}
		})
	}

	if _, err := Heliocentric(TrueNode, j2000); !errors.Is(err, ErrNotHeliocentric) {
		t.Errorf("Heliocentric(TrueNode) error = %v, expected ErrNotHeliocentric", err)
	}
}

func TestElementsAt(t *testing.T) {
	chiron := planetElements[Chiron]
	o0 := chiron.At(astrotime.J2000)
	o1 := chiron.At(astrotime.J2000 + daysPerCentury)

	if !scalar.EqualWithinAbs(o0.MeanAnomaly, 27.709, 1e-9) {
		t.Errorf("Chiron mean anomaly at epoch = %v, expected 27.709", o0.MeanAnomaly)
	}
	if d := spherical.Difference(o1.Node, o0.Node); !scalar.EqualWithinAbs(d, precessionRate-0.90, 1e-9) {
		t.Errorf("Chiron node drift per century = %v, expected %v", d, precessionRate-0.90)
	}

	// equinox-of-date elements get no precession term
	mars := planetElements[Mars]
	if d := mars.At(mars.Epoch+1).Node - mars.Node; !scalar.EqualWithinAbs(d, mars.NodeRate, 1e-12) {
		t.Errorf("Mars node drift per day = %v, expected %v", d, mars.NodeRate)
	}

	if n := planetElements[Ceres].MeanMotion(); !scalar.EqualWithinAbs(n, 0.2141, 1e-3) {
		t.Errorf("Ceres mean motion = %v, expected ~0.2141°/day", n)
	}
}

func TestParseBody(t *testing.T) {
	tests := []struct {
		input    string
		expected Body
		wantErr  bool
	}{
		{"Sun", Sun, false},
		{"moon", Moon, false},
		{"TRUE NODE", TrueNode, false},
		{"true_node", TrueNode, false},
		{"north-node", TrueNode, false},
		{"SouthNode", SouthNode, false},
		{"mean node", MeanNode, false},
		{"lilith", Lilith, false},
		{"chiron", Chiron, false},
		{"Eris", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, err := ParseBody(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownBody) {
					t.Errorf("ParseBody(%q) error = %v, expected ErrUnknownBody", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBody(%q) error = %v", tt.input, err)
			}
			if b != tt.expected {
				t.Errorf("ParseBody(%q) = %v, expected %v", tt.input, b, tt.expected)
			}
		})
	}
}

func TestBodyNamesRoundTrip(t *testing.T) {
	bodies := AllBodies()
	if len(bodies) != 19 {
		t.Fatalf("AllBodies() returned %d bodies, expected 19", len(bodies))
	}
	for _, b := range bodies {
		parsed, err := ParseBody(b.String())
		if err != nil || parsed != b {
			t.Errorf("ParseBody(%q) = %v, %v", b.String(), parsed, err)
		}
	}
	if s := Body(42).String(); s != "Body(42)" {
		t.Errorf("Body(42).String() = %q", s)
	}
}
