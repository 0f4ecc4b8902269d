package ephemeris

import (
	"math"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/spherical"
)

const (
	daysPerCentury = 36525.0

	// gaussianMotion is the Gaussian gravitational constant in degrees/day,
	// the mean daily motion of a massless body at a = 1 AU
	gaussianMotion = 0.9856076686

	// precessionRate is the general precession in longitude, degrees/century
	precessionRate = 1.396971
)

// Frame is the equinox the angular elements are referred to
type Frame int

const (
	// EquinoxOfDate elements already include precession in their rates
	EquinoxOfDate Frame = iota

	// J2000 elements are referred to the fixed equinox of J2000.0 and get
	// general precession added to the node when evaluated
	J2000
)

// Elements describes a Keplerian orbit and its linear secular drift.
// Angles are in degrees, rates are per day measured from Epoch.
type Elements struct {
	SemiMajorAxis float64 // AU (Earth radii for the Moon)
	Eccentricity  float64
	Inclination   float64
	Node          float64 // longitude of the ascending node
	Perihelion    float64 // argument of perihelion
	MeanAnomaly   float64 // at Epoch
	DailyMotion   float64 // degrees/day; zero derives it from SemiMajorAxis
	Epoch         float64 // Julian Date

	SemiMajorAxisRate float64
	EccentricityRate  float64
	InclinationRate   float64
	NodeRate          float64
	PerihelionRate    float64

	Frame Frame
}

// Orbit is a set of elements evaluated at one instant
type Orbit struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Inclination   float64
	Node          float64
	Perihelion    float64
	MeanAnomaly   float64
}

// MeanMotion returns the mean daily motion in degrees/day
func (el Elements) MeanMotion() float64 {
	if el.DailyMotion != 0 {
		return el.DailyMotion
	}
	return gaussianMotion / math.Pow(el.SemiMajorAxis, 1.5)
}

// At evaluates the elements at Julian Date jd
func (el Elements) At(jd float64) Orbit {
	dt := jd - el.Epoch

	o := Orbit{
		SemiMajorAxis: el.SemiMajorAxis + el.SemiMajorAxisRate*dt,
		Eccentricity:  el.Eccentricity + el.EccentricityRate*dt,
		Inclination:   el.Inclination + el.InclinationRate*dt,
		Node:          el.Node + el.NodeRate*dt,
		Perihelion:    el.Perihelion + el.PerihelionRate*dt,
		MeanAnomaly:   spherical.Normalize(el.MeanAnomaly + el.MeanMotion()*dt),
	}

	if el.Frame == J2000 {
		o.Node += precessionRate * astrotime.Centuries(jd)
	}

	o.Node = spherical.Normalize(o.Node)
	o.Perihelion = spherical.Normalize(o.Perihelion)
	return o
}

// centuryElements builds Elements from J2000 mean elements given as mean
// longitude L and longitude of perihelion ϖ with rates per Julian century.
func centuryElements(a, aDot, e, eDot, i, iDot, L, LDot, peri, periDot, node, nodeDot float64) Elements {
	return Elements{
		SemiMajorAxis:     a,
		SemiMajorAxisRate: aDot / daysPerCentury,
		Eccentricity:      e,
		EccentricityRate:  eDot / daysPerCentury,
		Inclination:       i,
		InclinationRate:   iDot / daysPerCentury,
		Node:              node,
		NodeRate:          nodeDot / daysPerCentury,
		Perihelion:        peri - node,
		PerihelionRate:    (periDot - nodeDot) / daysPerCentury,
		MeanAnomaly:       spherical.Normalize(L - peri),
		DailyMotion:       (LDot - periDot) / daysPerCentury,
		Epoch:             astrotime.J2000,
		Frame:             J2000,
	}
}

// Mean elements referred to the equinox of date, day zero 1999 Dec 31.0.
// Rates per day.
var planetElements = map[Body]Elements{
	Mercury: {
		Node: 48.3313, NodeRate: 3.24587e-5,
		Inclination: 7.0047, InclinationRate: 5.00e-8,
		Perihelion: 29.1241, PerihelionRate: 1.01444e-5,
		SemiMajorAxis: 0.387098,
		Eccentricity: 0.205635, EccentricityRate: 5.59e-10,
		MeanAnomaly: 168.6562, DailyMotion: 4.0923344368,
		Epoch: astrotime.ElementEpoch,
	},
	Venus: {
		Node: 76.6799, NodeRate: 2.46590e-5,
		Inclination: 3.3946, InclinationRate: 2.75e-8,
		Perihelion: 54.8910, PerihelionRate: 1.38374e-5,
		SemiMajorAxis: 0.723330,
		Eccentricity: 0.006773, EccentricityRate: -1.302e-9,
		MeanAnomaly: 48.0052, DailyMotion: 1.6021302244,
		Epoch: astrotime.ElementEpoch,
	},
	Mars: {
		Node: 49.5574, NodeRate: 2.11081e-5,
		Inclination: 1.8497, InclinationRate: -1.78e-8,
		Perihelion: 286.5016, PerihelionRate: 2.92961e-5,
		SemiMajorAxis: 1.523688,
		Eccentricity: 0.093405, EccentricityRate: 2.516e-9,
		MeanAnomaly: 18.6021, DailyMotion: 0.5240207766,
		Epoch: astrotime.ElementEpoch,
	},
	Jupiter: {
		Node: 100.4542, NodeRate: 2.76854e-5,
		Inclination: 1.3030, InclinationRate: -1.557e-7,
		Perihelion: 273.8777, PerihelionRate: 1.64505e-5,
		SemiMajorAxis: 5.20256,
		Eccentricity: 0.048498, EccentricityRate: 4.469e-9,
		MeanAnomaly: 19.8950, DailyMotion: 0.0830853001,
		Epoch: astrotime.ElementEpoch,
	},
	Saturn: {
		Node: 113.6634, NodeRate: 2.38980e-5,
		Inclination: 2.4886, InclinationRate: -1.081e-7,
		Perihelion: 339.3939, PerihelionRate: 2.97661e-5,
		SemiMajorAxis: 9.55475,
		Eccentricity: 0.055546, EccentricityRate: -9.499e-9,
		MeanAnomaly: 316.9670, DailyMotion: 0.0334442282,
		Epoch: astrotime.ElementEpoch,
	},
	Uranus: {
		Node: 74.0005, NodeRate: 1.3978e-5,
		Inclination: 0.7733, InclinationRate: 1.9e-8,
		Perihelion: 96.6612, PerihelionRate: 3.0565e-5,
		SemiMajorAxis: 19.18171, SemiMajorAxisRate: -1.55e-8,
		Eccentricity: 0.047318, EccentricityRate: 7.45e-9,
		MeanAnomaly: 142.5905, DailyMotion: 0.011725806,
		Epoch: astrotime.ElementEpoch,
	},
	Neptune: {
		Node: 131.7806, NodeRate: 3.0173e-5,
		Inclination: 1.7700, InclinationRate: -2.55e-7,
		Perihelion: 272.8461, PerihelionRate: -6.027e-6,
		SemiMajorAxis: 30.05826, SemiMajorAxisRate: 3.313e-8,
		Eccentricity: 0.008606, EccentricityRate: 2.15e-9,
		MeanAnomaly: 260.2471, DailyMotion: 0.005995147,
		Epoch: astrotime.ElementEpoch,
	},

	// Mean elements valid 1800-2050, referred to J2000
	Pluto: centuryElements(
		39.48211675, -0.00031596,
		0.24882730, 0.00005170,
		17.14001206, 0.00004818,
		238.92903833, 145.20780515,
		224.06891629, -0.04062942,
		110.30393684, -0.01183482,
	),

	// Osculating elements at J2000.0, equinox J2000. Mean motion follows
	// from the semi-major axis.
	Ceres: {
		SemiMajorAxis: 2.7675, Eccentricity: 0.0785, Inclination: 10.59,
		Node: 80.48, Perihelion: 73.60, MeanAnomaly: 7.043,
		Epoch: astrotime.J2000, Frame: J2000,
	},
	Pallas: {
		SemiMajorAxis: 2.7724, Eccentricity: 0.2302, Inclination: 34.84,
		Node: 173.09, Perihelion: 310.05, MeanAnomaly: 352.95,
		Epoch: astrotime.J2000, Frame: J2000,
	},
	Juno: {
		SemiMajorAxis: 2.6691, Eccentricity: 0.2569, Inclination: 12.99,
		Node: 169.85, Perihelion: 248.41, MeanAnomaly: 22.71,
		Epoch: astrotime.J2000, Frame: J2000,
	},
	Vesta: {
		SemiMajorAxis: 2.3615, Eccentricity: 0.0887, Inclination: 7.14,
		Node: 103.85, Perihelion: 150.73, MeanAnomaly: 341.91,
		Epoch: astrotime.J2000, Frame: J2000,
	},

	// Perihelion passage 1996 Feb 14 (JD 2450127.5). Node and perihelion
	// drift under Saturn and Uranus perturbations.
	Chiron: {
		SemiMajorAxis: 13.648, Eccentricity: 0.3786, Inclination: 6.93,
		Node: 209.35, Perihelion: 339.46, MeanAnomaly: 27.709,
		NodeRate: -0.90 / daysPerCentury, PerihelionRate: 1.10 / daysPerCentury,
		Epoch: astrotime.J2000, Frame: J2000,
	},
}

// elementsFor returns the orbital elements of a heliocentric body
func elementsFor(b Body) (Elements, bool) {
	el, ok := planetElements[b]
	return el, ok
}
