/*Package geom implements the integer lattice geometry that the rest of
haloflow is built on: D-dimensional integer points (IntVect) and the
axis-aligned integer intervals (Box) that they bound.

SpaceDim plays the role of the CHOMBO-style "SpaceDim" compile-time constant:
it fixes the number of spatial dimensions for this build of the module. It
may be edited to 1 or 2 for a 1D/2D build; unused trailing components of an
IntVect are simply left at zero by every constructor in this package.
*/
package geom

import "fmt"

// SpaceDim is the number of spatial dimensions built into this copy of the
// module. Valid values are 1, 2, or 3.
const SpaceDim = 3

// IntVect is an ordered tuple of SpaceDim signed integers. All methods are
// total, allocation-free functions on their receivers.
type IntVect [SpaceDim]int

var (
	// Zero is the all-0 IntVect.
	Zero = IntVect{}
	// Unit is the all-1 IntVect.
	Unit = unitVect()
)

func unitVect() IntVect {
	var v IntVect
	for i := range v {
		v[i] = 1
	}
	return v
}

// Vect builds an IntVect from its components. Trailing arguments beyond
// SpaceDim are ignored; missing ones default to zero.
func Vect(components ...int) IntVect {
	var v IntVect
	for i := 0; i < len(components) && i < SpaceDim; i++ {
		v[i] = components[i]
	}
	return v
}

// Add returns v + w componentwise.
func (v IntVect) Add(w IntVect) IntVect {
	var out IntVect
	for i := range v {
		out[i] = v[i] + w[i]
	}
	return out
}

// Sub returns v - w componentwise.
func (v IntVect) Sub(w IntVect) IntVect {
	var out IntVect
	for i := range v {
		out[i] = v[i] - w[i]
	}
	return out
}

// Scale returns v scaled by the integer s.
func (v IntVect) Scale(s int) IntVect {
	var out IntVect
	for i := range v {
		out[i] = v[i] * s
	}
	return out
}

// Neg returns -v.
func (v IntVect) Neg() IntVect {
	var out IntVect
	for i := range v {
		out[i] = -v[i]
	}
	return out
}

// AddScalar returns v with s added to every component.
func (v IntVect) AddScalar(s int) IntVect {
	var out IntVect
	for i := range v {
		out[i] = v[i] + s
	}
	return out
}

// Mul returns the componentwise (Hadamard) product of v and w.
func (v IntVect) Mul(w IntVect) IntVect {
	var out IntVect
	for i := range v {
		out[i] = v[i] * w[i]
	}
	return out
}

// Div returns the componentwise integer quotient of v and w. w must have no
// zero components.
func (v IntVect) Div(w IntVect) IntVect {
	var out IntVect
	for i := range v {
		out[i] = v[i] / w[i]
	}
	return out
}

// Min returns the componentwise minimum of v and w.
func Min(v, w IntVect) IntVect {
	var out IntVect
	for i := range v {
		if v[i] < w[i] {
			out[i] = v[i]
		} else {
			out[i] = w[i]
		}
	}
	return out
}

// Max returns the componentwise maximum of v and w.
func Max(v, w IntVect) IntVect {
	var out IntVect
	for i := range v {
		if v[i] > w[i] {
			out[i] = v[i]
		} else {
			out[i] = w[i]
		}
	}
	return out
}

// L1Norm returns sum(|v_i|).
func (v IntVect) L1Norm() int {
	n := 0
	for _, c := range v {
		if c < 0 {
			n -= c
		} else {
			n += c
		}
	}
	return n
}

// Sum returns the sum of v's components.
func (v IntVect) Sum() int {
	s := 0
	for _, c := range v {
		s += c
	}
	return s
}

// Product returns the product of v's components.
func (v IntVect) Product() int {
	p := 1
	for _, c := range v {
		p *= c
	}
	return p
}

// Eq returns true iff v and w agree in every component.
func (v IntVect) Eq(w IntVect) bool {
	return v == w
}

// LE returns true iff v <= w componentwise.
func (v IntVect) LE(w IntVect) bool {
	for i := range v {
		if v[i] > w[i] {
			return false
		}
	}
	return true
}

// LT returns true iff v < w componentwise (a conjunction, not lexicographic).
func (v IntVect) LT(w IntVect) bool {
	for i := range v {
		if v[i] >= w[i] {
			return false
		}
	}
	return true
}

func (v IntVect) String() string {
	s := "("
	for i, c := range v {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", c)
	}
	return s + ")"
}
