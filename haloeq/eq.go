/*Package haloeq is a small package for telling whether two values are equal
to one another in tests, in place of an assertion library.
*/
package haloeq

import "github.com/phil-mansfield/haloflow/geom"

// Generic returns true if x and y are slices of the same comparable element
// type with equal contents, and false otherwise.
func Generic[T comparable](x, y []T) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64s returns true if x and y have the same length and are equal to
// within an absolute tolerance of eps at every index.
func Float64s(x, y []float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		d := x[i] - y[i]
		if d < 0 {
			d = -d
		}
		if d > eps {
			return false
		}
	}
	return true
}

// Ints returns true if x and y are slices of equal ints.
func Ints(x, y []int) bool {
	return Generic(x, y)
}

// IntVects returns true if x and y are slices of equal IntVects.
func IntVects(x, y []geom.IntVect) bool {
	return Generic(x, y)
}

// Boxes returns true if x and y are slices of Boxes that are pairwise Eq.
func Boxes(x, y []geom.Box) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !x[i].Eq(y[i]) {
			return false
		}
	}
	return true
}
