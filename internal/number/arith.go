package number

import "math"

// saturate splits a signed field result into a raw ordinal and a sign flag.
// The representable signed range is [OrdinalMin, -OrdinalMin]: -2^19 is the raw
// ordinal OrdinalMin with a positive flag, +2^19 the same ordinal with a
// negative flag. Results outside that range saturate to its nearer end.
//
// This is the only place overflow policy lives.
func saturate(v int64) (int32, bool) {
	switch {
	case v >= -OrdinalMin:
		return OrdinalMin, true
	case v <= OrdinalMin:
		return OrdinalMin, false
	case v < 0:
		return int32(-v), true
	}
	return int32(v), false
}

// fieldwise applies f to every pair of signed fields and stores the saturated result.
func fieldwise(a, b Number, f func(x, y int64) int64) Number {
	var r Number
	for i := range r.ordinals {
		r.ordinals[i], r.signs[i] = saturate(f(a.signed(i), b.signed(i)))
	}
	r.seal()
	return r
}

// Add returns the field-wise signed sum, saturating each field.
func (n Number) Add(o Number) Number {
	return fieldwise(n, o, func(x, y int64) int64 { return x + y })
}

// Sub returns n + (-o).
func (n Number) Sub(o Number) Number {
	return n.Add(o.Negate())
}

// Negate flips every sign flag. Magnitudes are unchanged.
func (n Number) Negate() Number {
	r := n
	for i := range r.signs {
		r.signs[i] = !r.signs[i]
	}
	r.seal()
	return r
}

// Mul returns the field-wise signed product, saturating each field.
//
// This is a field-wise operator, not a rational multiplication of the nested
// division the fields denote.
func (n Number) Mul(o Number) Number {
	return fieldwise(n, o, func(x, y int64) int64 { return x * y })
}

// Div returns the field-wise signed quotient, truncated toward zero.
//
// A field whose divisor is zero does not fail: it becomes magnitude 1 carrying
// the sign of the dividend field. Whole-value division by zero is a separate
// rule applied by expression evaluation.
func (n Number) Div(o Number) Number {
	return fieldwise(n, o, func(x, y int64) int64 {
		if y == 0 {
			if x < 0 {
				return -1
			}
			return 1
		}
		return x / y
	})
}

// Abs makes every signed field non-negative. Magnitudes are kept.
func (n Number) Abs() Number {
	var r Number
	for i := range r.ordinals {
		v := n.signed(i)
		if v < 0 {
			v = -v
		}
		r.ordinals[i], r.signs[i] = saturate(v)
	}
	r.seal()
	return r
}

// Sqrt takes the integer square root of every field magnitude. Every sign of
// the result is positive.
func (n Number) Sqrt() Number {
	var r Number
	for i := range r.ordinals {
		v := n.signed(i)
		if v < 0 {
			v = -v
		}
		r.ordinals[i], _ = saturate(isqrt(v))
	}
	r.seal()
	return r
}

func isqrt(v int64) int64 {
	s := int64(math.Sqrt(float64(v)))
	for s*s > v {
		s--
	}
	for (s+1)*(s+1) <= v {
		s++
	}
	return s
}
