package number

import "math/big"

// Fraction returns the signed a/b field pair as a normalized rational.
// It reports false when b is zero.
func (n Number) Fraction() (*big.Rat, bool) {
	den := n.signed(FieldB)
	if den == 0 {
		return nil, false
	}
	return big.NewRat(n.signed(FieldA), den), true
}
