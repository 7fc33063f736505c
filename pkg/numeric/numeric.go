// Package numeric provides epsilon-tolerant comparison of float64 values.
package numeric

import "math"

// DefaultEpsilon is the absolute tolerance used by Equal.
const DefaultEpsilon = 1e-9

// Comparator decides whether two floats denote the same number.
type Comparator struct {
	Epsilon float64
}

// Default returns a comparator using DefaultEpsilon.
func Default() Comparator {
	return Comparator{Epsilon: DefaultEpsilon}
}

// Equal reports whether |a-b| <= Epsilon. NaN is never equal to anything.
func (c Comparator) Equal(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if a == b {
		return true // covers equal infinities
	}
	return math.Abs(a-b) <= c.Epsilon
}

// Compare returns 0 when a and b are Equal, -1 when a < b and +1 otherwise.
// NaN sorts after every other value.
func (c Comparator) Compare(a, b float64) int {
	switch {
	case c.Equal(a, b):
		return 0
	case math.IsNaN(a):
		if math.IsNaN(b) {
			return 0
		}
		return 1
	case math.IsNaN(b):
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

func (c Comparator) IsOne(v float64) bool      { return c.Equal(v, 1) }
func (c Comparator) IsMinusOne(v float64) bool { return c.Equal(v, -1) }

// Equal compares a and b with DefaultEpsilon.
func Equal(a, b float64) bool {
	return Default().Equal(a, b)
}
