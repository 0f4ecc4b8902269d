package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration, with defaults applied and validated
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetEngineConfig() (*EngineData, error)
	GetServerConfig() (*ServerData, error)
	GetLocation() (*LocationData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Engine   EngineData   `json:"engine"`
	Server   ServerData   `json:"server"`
	Location LocationData `json:"location"`
}

// EngineData holds the calculation settings
type EngineData struct {
	HouseSystem   string  `json:"house_system"`
	MaxIterations int     `json:"max_iterations,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`
	Nutation      bool    `json:"nutation"`
	Aberration    bool    `json:"aberration"`
}

// ServerData holds the HTTP chart service settings
type ServerData struct {
	ListenAddr string  `json:"listen_addr,omitempty"`
	HTTPPort   int     `json:"http_port,omitempty"`
	RateLimit  float64 `json:"rate_limit,omitempty"` // requests per second per client
	RateBurst  int     `json:"rate_burst,omitempty"`
}

// LocationData is the place used when a request omits coordinates
type LocationData struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
