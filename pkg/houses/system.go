package houses

import (
	"errors"
	"fmt"
	"strings"
)

// System identifies a house-division method
type System int

const (
	Placidus System = iota
	Koch
	Equal
	WholeSign
	Porphyry
	Regiomontanus
	Campanus
)

// ErrUnknownSystem is returned for house system names outside Systems()
var ErrUnknownSystem = errors.New("unknown house system")

var systemNames = [...]string{
	Placidus:      "Placidus",
	Koch:          "Koch",
	Equal:         "Equal",
	WholeSign:     "WholeSign",
	Porphyry:      "Porphyry",
	Regiomontanus: "Regiomontanus",
	Campanus:      "Campanus",
}

var systemCodes = [...]string{
	Placidus:      "P",
	Koch:          "K",
	Equal:         "E",
	WholeSign:     "W",
	Porphyry:      "O",
	Regiomontanus: "R",
	Campanus:      "C",
}

func (s System) valid() bool {
	return s >= 0 && int(s) < len(systemNames)
}

func (s System) String() string {
	if !s.valid() {
		return fmt.Sprintf("System(%d)", int(s))
	}
	return systemNames[s]
}

// Code returns the single-letter abbreviation accepted by ParseSystem
func (s System) Code() string {
	if !s.valid() {
		return ""
	}
	return systemCodes[s]
}

// UsesLatitude reports whether the cusps depend on the observer's latitude
// beyond the Ascendant.
func (s System) UsesLatitude() bool {
	switch s {
	case Placidus, Koch, Regiomontanus, Campanus:
		return true
	}
	return false
}

// FallsBack reports whether the system can fail and be replaced by Porphyry
func (s System) FallsBack() bool {
	return s == Placidus || s == Koch
}

// MarshalText encodes the system by name
func (s System) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSystem, int(s))
	}
	return []byte(systemNames[s]), nil
}

// UnmarshalText decodes a name accepted by ParseSystem
func (s *System) UnmarshalText(text []byte) error {
	parsed, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSystem resolves a house system by name, ignoring case, spaces,
// hyphens and underscores. Single-letter codes P K E W O R C are accepted.
func ParseSystem(name string) (System, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(name))

	for s, code := range systemCodes {
		if strings.ToLower(code) == key {
			return System(s), nil
		}
	}
	for s, n := range systemNames {
		if strings.ToLower(n) == key {
			return System(s), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
}

// Systems returns every supported house system
func Systems() []System {
	systems := make([]System, len(systemNames))
	for i := range systemNames {
		systems[i] = System(i)
	}
	return systems
}
