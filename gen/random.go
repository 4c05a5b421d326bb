// Package gen generates the random input sequences used by benchmark runs.
// The generators are not cryptographically secure; a seed makes their output
// reproducible.
package gen

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ElementType selects the kind of elements a sequence holds.
type ElementType string

const (
	// Numeric sequences hold integers in [0, count].
	Numeric ElementType = "numeric"
	// String sequences hold single character strings.
	String ElementType = "string"
)

// first and last code points used for string elements
const (
	minCodePoint = 32
	maxCodePoint = 255
)

// ParseElementType converts a name into an ElementType. The empty string
// maps to Numeric.
func ParseElementType(s string) (ElementType, error) {
	switch ElementType(s) {
	case "", Numeric:
		return Numeric, nil
	case String:
		return String, nil
	}
	return "", fmt.Errorf("unknown element type %q", s)
}

// NewRand returns a PCG backed generator seeded with seed. A zero seed is
// replaced by the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Ints returns count integers chosen uniformly in [0, count].
func Ints(count int, rng *rand.Rand) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = rng.IntN(count + 1)
	}
	return out
}

// Strings returns count single character strings whose code points are
// chosen uniformly in [32, 255].
func Strings(count int, rng *rand.Rand) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = string(rune(minCodePoint + rng.IntN(maxCodePoint-minCodePoint+1)))
	}
	return out
}

// Sequence is a generated sequence tagged with its element type. Exactly one
// of Ints and Strings is set.
type Sequence struct {
	Type    ElementType
	Ints    []int
	Strings []string
}

// Len returns the number of elements in the sequence.
func (s Sequence) Len() int {
	if s.Type == String {
		return len(s.Strings)
	}
	return len(s.Ints)
}

// Generate returns count random elements of the given type.
func Generate(count int, typ ElementType, rng *rand.Rand) (Sequence, error) {
	if count < 0 {
		return Sequence{}, fmt.Errorf("negative element count %d", count)
	}
	switch typ {
	case Numeric, "":
		return Sequence{Type: Numeric, Ints: Ints(count, rng)}, nil
	case String:
		return Sequence{Type: String, Strings: Strings(count, rng)}, nil
	}
	return Sequence{}, fmt.Errorf("unknown element type %q", typ)
}
