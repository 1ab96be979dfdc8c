// Package diet defines the tags that match a crab's appetite to the prey it can eat.
package diet

import (
	"fmt"
	"math/rand"
	"strings"
)

// Diet identifies what kind of prey a crab eats.
type Diet uint8

const (
	Fish Diet = iota
	Shellfish
	Plants

	numDiets
)

// All returns every diet tag in declaration order.
func All() []Diet {
	return []Diet{Fish, Shellfish, Plants}
}

// Random draws a diet uniformly from the tag space.
func Random(rng *rand.Rand) Diet {
	return Diet(rng.Intn(int(numDiets)))
}

// Valid reports whether d is one of the declared tags.
func (d Diet) Valid() bool {
	return d < numDiets
}

func (d Diet) String() string {
	switch d {
	case Fish:
		return "fish"
	case Shellfish:
		return "shellfish"
	case Plants:
		return "plants"
	default:
		return fmt.Sprintf("diet(%d)", uint8(d))
	}
}

// Parse maps a name such as "shellfish" to its tag (case-insensitive).
func Parse(s string) (Diet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fish":
		return Fish, nil
	case "shellfish":
		return Shellfish, nil
	case "plants":
		return Plants, nil
	}
	return 0, fmt.Errorf("unknown diet %q", s)
}

// MarshalText implements encoding.TextMarshaler so diets read naturally in YAML.
func (d Diet) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid diet %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Diet) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
