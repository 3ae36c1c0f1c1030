package astro

import (
	"fmt"

	"github.com/stelliumhq/stellium/errors"
)

// Body is a celestial body tracked by the tool surface. The set is fixed:
// the ten classical chart bodies plus the true lunar north node.
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
	NorthNode
)

var bodyNames = [...]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter",
	"Saturn", "Uranus", "Neptune", "Pluto", "North Node",
}

var bodyKeys = [...]string{
	"sun", "moon", "mercury", "venus", "mars", "jupiter",
	"saturn", "uranus", "neptune", "pluto", "north_node",
}

// Bodies returns all bodies in canonical order for iteration.
func Bodies() []Body {
	return []Body{
		Sun, Moon, Mercury, Venus, Mars, Jupiter,
		Saturn, Uranus, Neptune, Pluto, NorthNode,
	}
}

// CanRetrograde reports whether this body can show apparent retrograde
// motion. The Sun and Moon never do; the node is always retrograde in mean
// motion but still counts as capable here.
func (b Body) CanRetrograde() bool {
	return b != Sun && b != Moon
}

// IsLunarNode reports whether this body is a lunar node rather than a
// physical body.
func (b Body) IsLunarNode() bool {
	return b == NorthNode
}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// MarshalText serializes the body as its lowercase wire name ("north_node").
// Implementing TextMarshaler also makes Body usable as a JSON map key.
func (b Body) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(bodyKeys) {
		return nil, errors.Newf("invalid body: %d", int(b))
	}
	return []byte(bodyKeys[b]), nil
}

// UnmarshalText parses the lowercase wire name back into a Body.
func (b *Body) UnmarshalText(text []byte) error {
	for i, key := range bodyKeys {
		if key == string(text) {
			*b = Body(i)
			return nil
		}
	}
	return errors.Newf("unknown body: %q", string(text))
}
