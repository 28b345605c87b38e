package enums

import "strings"

// Finish represents the physical print medium a piece is produced on.
type Finish string

const (
	FinishAcrylic Finish = "acrylic"
	FinishMetal   Finish = "metal"
	FinishCanvas  Finish = "canvas"
)

var validFinishes = []Finish{
	FinishAcrylic,
	FinishMetal,
	FinishCanvas,
}

// Finishes returns the finish enumeration in display order.
func Finishes() []Finish {
	out := make([]Finish, len(validFinishes))
	copy(out, validFinishes)
	return out
}

// String implements fmt.Stringer.
func (f Finish) String() string {
	return string(f)
}

// Valid reports whether the finish is part of the enumeration.
func (f Finish) Valid() bool {
	for _, candidate := range validFinishes {
		if f == candidate {
			return true
		}
	}
	return false
}

// ParseFinish normalizes raw input to a Finish, reporting whether it matched.
// Matching is case-insensitive; anything unrecognized fails.
func ParseFinish(raw string) (Finish, bool) {
	f := Finish(strings.ToLower(strings.TrimSpace(raw)))
	if f.Valid() {
		return f, true
	}
	return "", false
}
