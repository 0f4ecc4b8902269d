package ephemeris

import (
	"errors"
	"fmt"
	"strings"
)

// Body identifies a point whose geocentric position can be computed
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Ceres
	Pallas
	Juno
	Vesta
	Chiron
	MeanNode
	TrueNode
	SouthNode
	Lilith
)

// ErrUnknownBody is returned for body names or values outside the catalogue
var ErrUnknownBody = errors.New("unknown body")

var bodyNames = [...]string{
	Sun:       "Sun",
	Moon:      "Moon",
	Mercury:   "Mercury",
	Venus:     "Venus",
	Mars:      "Mars",
	Jupiter:   "Jupiter",
	Saturn:    "Saturn",
	Uranus:    "Uranus",
	Neptune:   "Neptune",
	Pluto:     "Pluto",
	Ceres:     "Ceres",
	Pallas:    "Pallas",
	Juno:      "Juno",
	Vesta:     "Vesta",
	Chiron:    "Chiron",
	MeanNode:  "MeanNode",
	TrueNode:  "TrueNode",
	SouthNode: "SouthNode",
	Lilith:    "Lilith",
}

func (b Body) String() string {
	if !b.valid() {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

func (b Body) valid() bool {
	return b >= Sun && b <= Lilith
}

// IsLunarPoint reports whether b is a node or Lilith, a calculated point on
// the lunar orbit rather than a physical body.
func (b Body) IsLunarPoint() bool {
	return b == MeanNode || b == TrueNode || b == SouthNode || b == Lilith
}

// MarshalText encodes the body by name
func (b Body) MarshalText() ([]byte, error) {
	if !b.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, int(b))
	}
	return []byte(bodyNames[b]), nil
}

// UnmarshalText decodes a body name accepted by ParseBody
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody resolves a body name. Matching ignores case, spaces, hyphens and
// underscores, so "true node", "True_Node" and "truenode" are equivalent.
// "NorthNode" is accepted as an alias of TrueNode.
func ParseBody(name string) (Body, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(name))
	if key == "northnode" {
		return TrueNode, nil
	}
	for b, n := range bodyNames {
		if strings.ToLower(n) == key {
			return Body(b), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

// AllBodies returns every body in catalogue order
func AllBodies() []Body {
	bodies := make([]Body, 0, len(bodyNames))
	for b := range bodyNames {
		bodies = append(bodies, Body(b))
	}
	return bodies
}
