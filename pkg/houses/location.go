package houses

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidLocation is wrapped by every ValidationError
var ErrInvalidLocation = errors.New("invalid geographic location")

// Location is a point on the Earth in degrees: latitude north positive,
// longitude east positive.
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// ValidationError names the field of a Location that is out of range
type ValidationError struct {
	Field string
	Value float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %v out of range", ErrInvalidLocation, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidLocation
}

// Validate checks latitude ∈ [-90, 90] and longitude ∈ [-180, 180]
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return &ValidationError{Field: "latitude", Value: l.Latitude}
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return &ValidationError{Field: "longitude", Value: l.Longitude}
	}
	return nil
}
