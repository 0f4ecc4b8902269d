package restserver

import (
	"github.com/chrissnell/skychart/pkg/ephemeris"
	"github.com/chrissnell/skychart/pkg/houses"
	"github.com/chrissnell/skychart/pkg/lunar"
)

// PositionsResponse is the body of /positions
type PositionsResponse struct {
	JulianDay float64                       `json:"julian_day"`
	Time      string                        `json:"time"`
	Positions map[string]ephemeris.Position `json:"positions"`
}

// PositionResponse is the body of /positions/{body}
type PositionResponse struct {
	JulianDay float64            `json:"julian_day"`
	Time      string             `json:"time"`
	Body      string             `json:"body"`
	Position  ephemeris.Position `json:"position"`
}

// HousesResponse is the body of /houses
type HousesResponse struct {
	Time string `json:"time"`
	houses.Result
}

// SystemInfo describes one supported house system
type SystemInfo struct {
	Name             string `json:"name"`
	Code             string `json:"code"`
	UsesLatitude     bool   `json:"uses_latitude"`
	PorphyryFallback bool   `json:"porphyry_fallback"`
}

// SystemsResponse is the body of /systems
type SystemsResponse struct {
	Default string       `json:"default"`
	Systems []SystemInfo `json:"systems"`
}

// MoonPhaseResponse is the body of /moon
type MoonPhaseResponse struct {
	JulianDay float64 `json:"julian_day"`
	Time      string  `json:"time"`
	lunar.MoonPhase
}
