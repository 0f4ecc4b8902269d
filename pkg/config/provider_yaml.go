package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := parseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

// parseYAML decodes, defaults and validates a YAML document
func parseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	// Convert to our internal format. Corrections default to on, so an
	// absent key is distinguished from an explicit false.
	config := &ConfigData{
		Engine: EngineData{
			HouseSystem:   yamlConfig.Engine.HouseSystem,
			MaxIterations: yamlConfig.Engine.MaxIterations,
			Tolerance:     yamlConfig.Engine.Tolerance,
			Nutation:      yamlConfig.Engine.Nutation == nil || *yamlConfig.Engine.Nutation,
			Aberration:    yamlConfig.Engine.Aberration == nil || *yamlConfig.Engine.Aberration,
		},
		Server: ServerData{
			ListenAddr: yamlConfig.Server.ListenAddr,
			HTTPPort:   yamlConfig.Server.HTTPPort,
			RateLimit:  yamlConfig.Server.RateLimit,
			RateBurst:  yamlConfig.Server.RateBurst,
		},
		Location: LocationData{
			Latitude:  yamlConfig.Location.Latitude,
			Longitude: yamlConfig.Location.Longitude,
		},
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (y *YAMLProvider) loaded() (*ConfigData, error) {
	if y.config == nil {
		return y.LoadConfig()
	}
	return y.config, nil
}

// GetEngineConfig returns the calculation settings
func (y *YAMLProvider) GetEngineConfig() (*EngineData, error) {
	config, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &config.Engine, nil
}

// GetServerConfig returns the HTTP service settings
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	config, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &config.Server, nil
}

// GetLocation returns the default location
func (y *YAMLProvider) GetLocation() (*LocationData, error) {
	config, err := y.loaded()
	if err != nil {
		return nil, err
	}
	return &config.Location, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags
type ConfigYAML struct {
	Engine   EngineYAML   `yaml:"engine"`
	Server   ServerYAML   `yaml:"server"`
	Location LocationYAML `yaml:"location"`
}

type EngineYAML struct {
	HouseSystem   string  `yaml:"house_system,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
	Nutation      *bool   `yaml:"nutation,omitempty"`
	Aberration    *bool   `yaml:"aberration,omitempty"`
}

type ServerYAML struct {
	ListenAddr string  `yaml:"listen_addr,omitempty"`
	HTTPPort   int     `yaml:"http_port,omitempty"`
	RateLimit  float64 `yaml:"rate_limit,omitempty"`
	RateBurst  int     `yaml:"rate_burst,omitempty"`
}

type LocationYAML struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}
