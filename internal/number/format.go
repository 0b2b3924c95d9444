package number

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders every signed field, the checksum in hex and the nested
// division structure. The layout is for diagnostics and may change.
func (n Number) String() string {
	var b strings.Builder
	b.WriteString("Number{")
	for i := range n.ordinals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%+d", OrdinalNames[i], n.signed(i))
	}
	fmt.Fprintf(&b, "} checksum=0x%X\n", n.checksum)

	v := func(i int) string { return strconv.FormatInt(n.signed(i), 10) }
	fmt.Fprintf(&b, "  structure: (((a+g)/(b+g))/(c+h)) / (((d*(b+h))/(e*b*i))/(f*b*j))\n")
	fmt.Fprintf(&b, "  expanded:  (((%s+%s)/(%s+%s))/(%s+%s)) / (((%s*(%s+%s))/(%s*%s*%s))/(%s*%s*%s))",
		v(FieldA), v(FieldG), v(FieldB), v(FieldG), v(FieldC), v(FieldH),
		v(FieldD), v(FieldB), v(FieldH), v(FieldE), v(FieldB), v(FieldI),
		v(FieldF), v(FieldB), v(FieldJ))
	return b.String()
}

// Parse reads a signed decimal integer into field a of the identity pattern.
// The sign flag of a is set for negative input.
func Parse(s string) (Number, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Number{}, &Error{
			Code:    ErrCodeInvalidLiteral,
			Message: fmt.Sprintf("cannot parse %q as an integer", s),
		}
	}
	if v < -OrdinalMax || v > OrdinalMax {
		return Number{}, rangeError(FieldA, v)
	}
	return FromInt(int(v))
}

// FromInt returns One with field a replaced by v, stored as magnitude plus sign.
func FromInt(v int) (Number, error) {
	if v < -OrdinalMax || v > OrdinalMax {
		return Number{}, rangeError(FieldA, int64(v))
	}
	n := One()
	n.ordinals[FieldA], n.signs[FieldA] = saturate(int64(v))
	n.seal()
	return n, nil
}
