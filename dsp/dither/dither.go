package dither

import "fmt"

// Kind selects the probability distribution of the dither noise.
type Kind int

const (
	// None rounds without dither.
	None Kind = iota
	// Rectangular adds uniform noise of one LSB peak.
	Rectangular
	// Triangular adds triangular-PDF noise of one LSB peak.
	Triangular

	kindCount
)

var kindNames = [kindCount]string{"none", "rectangular", "triangular"}

// String returns the kind name.
func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// ParseKind maps a kind name to its Kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}
