package enums

import "strings"

// Size is one of the four fixed print dimensions, in inches.
type Size string

const (
	Size20x40 Size = "20x40"
	Size24x36 Size = "24x36"
	Size20x30 Size = "20x30"
	Size16x24 Size = "16x24"
)

var validSizes = []Size{
	Size20x40,
	Size24x36,
	Size20x30,
	Size16x24,
}

// Sizes returns the size enumeration in display order (largest first).
func Sizes() []Size {
	out := make([]Size, len(validSizes))
	copy(out, validSizes)
	return out
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return string(s)
}

// Valid reports whether the size is part of the enumeration.
func (s Size) Valid() bool {
	for _, candidate := range validSizes {
		if s == candidate {
			return true
		}
	}
	return false
}

// ParseSize normalizes raw input to a Size, reporting whether it matched.
func ParseSize(raw string) (Size, bool) {
	s := Size(strings.ToLower(strings.TrimSpace(raw)))
	if s.Valid() {
		return s, true
	}
	return "", false
}
