package config

import (
	"fmt"
	"math"

	"github.com/chrissnell/skychart/pkg/houses"
)

const (
	DefaultHouseSystem = "Placidus"
	DefaultListenAddr  = "0.0.0.0"
	DefaultHTTPPort    = 8080
	DefaultRateLimit   = 10.0
	DefaultRateBurst   = 20
)

// Default returns a configuration with every default applied
func Default() *ConfigData {
	c := &ConfigData{
		Engine: EngineData{Nutation: true, Aberration: true},
	}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields
func (c *ConfigData) ApplyDefaults() {
	if c.Engine.HouseSystem == "" {
		c.Engine.HouseSystem = DefaultHouseSystem
	}
	if c.Engine.MaxIterations == 0 {
		c.Engine.MaxIterations = houses.DefaultMaxIterations
	}
	if c.Engine.Tolerance == 0 {
		c.Engine.Tolerance = houses.DefaultTolerance
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = DefaultHTTPPort
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = DefaultRateBurst
	}
}

// Validate checks the configuration for values the engine cannot use
func (c *ConfigData) Validate() error {
	if _, err := houses.ParseSystem(c.Engine.HouseSystem); err != nil {
		return fmt.Errorf("engine.house_system: %w", err)
	}
	if c.Engine.MaxIterations < 1 || c.Engine.MaxIterations > houses.DefaultMaxIterations {
		return fmt.Errorf("engine.max_iterations must be between 1 and %d, got %d", houses.DefaultMaxIterations, c.Engine.MaxIterations)
	}
	if !(c.Engine.Tolerance >= houses.DefaultTolerance) || math.IsInf(c.Engine.Tolerance, 1) {
		return fmt.Errorf("engine.tolerance must be finite and at least %g, got %g", houses.DefaultTolerance, c.Engine.Tolerance)
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must not be negative")
	}
	if err := c.Location.Location().Validate(); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	return nil
}

// Location converts the configured default place
func (l LocationData) Location() houses.Location {
	return houses.Location{Latitude: l.Latitude, Longitude: l.Longitude}
}

// HouseOptions returns the Placidus iteration bounds
func (e EngineData) HouseOptions() houses.Options {
	return houses.Options{MaxIterations: e.MaxIterations, Tolerance: e.Tolerance}
}

// System returns the configured default house system
func (e EngineData) System() (houses.System, error) {
	return houses.ParseSystem(e.HouseSystem)
}
