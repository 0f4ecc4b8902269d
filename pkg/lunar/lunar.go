// Package lunar derives the Moon's phase from the apparent geocentric
// positions of the Sun and Moon.
package lunar

import (
	"math"
	"time"

	"github.com/chrissnell/skychart/pkg/astrotime"
	"github.com/chrissnell/skychart/pkg/ephemeris"
	sph "github.com/chrissnell/skychart/pkg/spherical"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// MoonPhase contains calculated moon phase information
type MoonPhase struct {
	Phase        float64 `json:"phase"`        // fraction of the cycle [0,1): 0=new, 0.5=full
	Elongation   float64 `json:"elongation"`   // Moon minus Sun longitude, degrees [0,360)
	PhaseAngle   float64 `json:"phase_angle"`  // Sun-Moon-Earth angle, degrees [0,180]
	Illumination float64 `json:"illumination"` // illuminated fraction [0,1]
	AgeDays      float64 `json:"age_days"`     // days since new moon [0,SynodicMonth)
	IsWaxing     bool    `json:"is_waxing"`
	PhaseName    string  `json:"phase_name"`
}

// Calculate computes the moon phase for a given time
func Calculate(t time.Time) (MoonPhase, error) {
	return Phase(astrotime.FromTime(t))
}

// Phase computes the moon phase at Julian Date jd
func Phase(jd float64) (MoonPhase, error) {
	sun, err := ephemeris.Calculate(ephemeris.Sun, jd)
	if err != nil {
		return MoonPhase{}, err
	}
	moon, err := ephemeris.Calculate(ephemeris.Moon, jd)
	if err != nil {
		return MoonPhase{}, err
	}

	elongation := sph.Normalize(moon.Longitude - sun.Longitude)
	i := phaseAngle(sun, moon)
	illumination := (1 + sph.Cosd(i)) / 2
	phase := elongation / 360.0
	isWaxing := elongation < 180

	return MoonPhase{
		Phase:        phase,
		Elongation:   elongation,
		PhaseAngle:   i,
		Illumination: illumination,
		AgeDays:      phase * SynodicMonth,
		IsWaxing:     isWaxing,
		PhaseName:    phaseName(illumination, isWaxing),
	}, nil
}

// phaseAngle returns the Sun-Moon-Earth angle from the geocentric positions
func phaseAngle(sun, moon ephemeris.Position) float64 {
	// geocentric elongation of the Moon from the Sun
	cosPsi := sph.Cosd(moon.Latitude) * sph.Cosd(moon.Longitude-sun.Longitude)
	sinPsi := math.Sqrt(math.Max(0, 1-cosPsi*cosPsi))

	return sph.Atan2d(sun.Distance*sinPsi, moon.Distance-sun.Distance*cosPsi)
}

// phaseName returns the 8-phase name based on illumination and direction
func phaseName(illumination float64, isWaxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if isWaxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if isWaxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if isWaxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
