package headers

import "math/rand"

// Picker is the random source used for every selection.
// *rand.Rand satisfies it, which lets tests pin a seed.
type Picker interface {
	Intn(n int) int
}

type globalPicker struct{}

// Intn draws from the global source, safe for concurrent use
func (globalPicker) Intn(n int) int {
	return rand.Intn(n) //nolint:gosec // non-cryptographic randomness is fine for header variation
}

// DefaultPicker draws from math/rand's global source
var DefaultPicker Picker = globalPicker{}

// Pick returns a uniformly chosen element. items must not be empty.
func Pick[T any](p Picker, items []T) T {
	return items[p.Intn(len(items))]
}
