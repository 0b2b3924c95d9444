package number

import "fmt"

// Shape of a structured number.
const (
	NumOrdinals = 12
	OrdinalMin  = -(1 << 19)    // -524288
	OrdinalMax  = (1 << 19) - 1 // 524287
)

// Field indices. Names follow the nested division notation.
const (
	FieldA = iota
	FieldB
	FieldC
	FieldD
	FieldE
	FieldF
	FieldG
	FieldH
	FieldI
	FieldJ
	FieldK
	FieldL
)

// OrdinalNames maps field index to its letter.
var OrdinalNames = [NumOrdinals]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}

// FieldIndex returns the index for a field letter, or -1.
func FieldIndex(name string) int {
	for i, n := range OrdinalNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Number is a structured number. The zero value is not sealed; use Zero, One,
// New or FromFields to obtain a checksummed value.
//
// Number is comparable with ==, which compares raw ordinals, sign flags and the
// checksum. Use Equal for value equality of signed fields.
type Number struct {
	ordinals [NumOrdinals]int32
	signs    [NumOrdinals]bool
	checksum uint8
}

// Zero returns the additive identity: every ordinal 0, every sign positive.
func Zero() Number {
	var n Number
	n.seal()
	return n
}

// One returns the multiplicative identity pattern: every field 1 except g and h,
// which are 0.
func One() Number {
	var n Number
	for i := range n.ordinals {
		if i != FieldG && i != FieldH {
			n.ordinals[i] = 1
		}
	}
	n.seal()
	return n
}

// New returns a number holding the default ordinal pattern, which is the
// identity pattern of One.
func New() Number {
	return One()
}

// FromFields builds a number from explicit ordinals and sign flags.
// Fails with INVALID_ORDINAL_RANGE on the first out-of-range ordinal.
func FromFields(ordinals [NumOrdinals]int, signs [NumOrdinals]bool) (Number, error) {
	var n Number
	for i, v := range ordinals {
		if !inRange(int64(v)) {
			return Number{}, rangeError(i, int64(v))
		}
		n.ordinals[i] = int32(v)
	}
	n.signs = signs
	n.seal()
	return n, nil
}

// MustFromFields is like FromFields but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFromFields(ordinals [NumOrdinals]int, signs [NumOrdinals]bool) Number {
	n, err := FromFields(ordinals, signs)
	if err != nil {
		panic(err)
	}
	return n
}

// Ordinal returns the raw ordinal stored at index.
func (n Number) Ordinal(index int) (int, error) {
	if !validIndex(index) {
		return 0, indexError(index)
	}
	return int(n.ordinals[index]), nil
}

// SetOrdinal stores value at index and reseals the checksum.
// On error the number is left unchanged.
func (n *Number) SetOrdinal(index int, value int) error {
	if !validIndex(index) {
		return indexError(index)
	}
	if !inRange(int64(value)) {
		return rangeError(index, int64(value))
	}
	n.ordinals[index] = int32(value)
	n.seal()
	return nil
}

// Sign reports whether the sign flag at index is negative.
func (n Number) Sign(index int) (bool, error) {
	if !validIndex(index) {
		return false, indexError(index)
	}
	return n.signs[index], nil
}

// SetSign sets the sign flag at index and reseals the checksum.
func (n *Number) SetSign(index int, negative bool) error {
	if !validIndex(index) {
		return indexError(index)
	}
	n.signs[index] = negative
	n.seal()
	return nil
}

// SignedOrdinal returns the ordinal at index with its sign flag applied.
func (n Number) SignedOrdinal(index int) (int, error) {
	if !validIndex(index) {
		return 0, indexError(index)
	}
	return int(n.signed(index)), nil
}

// Checksum returns the stored 4-bit checksum.
func (n Number) Checksum() uint8 {
	return n.checksum
}

// VerifyChecksum recomputes the checksum and compares it with the stored one.
// The stored checksum is never modified.
func (n Number) VerifyChecksum() bool {
	return n.computeChecksum() == n.checksum
}

// Verify is VerifyChecksum in error form: it returns a CHECKSUM_MISMATCH error
// when the stored checksum is stale. Arithmetic never calls it; callers decide
// whether to trust a value.
func (n Number) Verify() error {
	if want := n.computeChecksum(); want != n.checksum {
		return &Error{
			Code:    ErrCodeChecksumMismatch,
			Message: fmt.Sprintf("stored checksum 0x%X, computed 0x%X", n.checksum, want),
			Value:   int64(n.checksum),
		}
	}
	return nil
}

// IsZero reports whether every ordinal is 0. Sign flags are ignored.
func (n Number) IsZero() bool {
	for _, o := range n.ordinals {
		if o != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether every field has the same signed value.
// A zero ordinal compares equal regardless of its sign flag.
func (n Number) Equal(o Number) bool {
	for i := range n.ordinals {
		if n.signed(i) != o.signed(i) {
			return false
		}
	}
	return true
}

// Identical reports bit-for-bit equality of ordinals, signs and checksum.
func (n Number) Identical(o Number) bool {
	return n == o
}

func (n Number) signed(index int) int64 {
	v := int64(n.ordinals[index])
	if n.signs[index] {
		return -v
	}
	return v
}

func (n *Number) seal() {
	n.checksum = n.computeChecksum()
}

func (n Number) computeChecksum() uint8 {
	var sum int64
	for i, o := range n.ordinals {
		v := int64(o)
		if v < 0 {
			v = -v
		}
		sum += v
		if n.signs[i] {
			sum++
		}
	}
	return uint8(sum & 0x0F)
}

func validIndex(index int) bool {
	return index >= 0 && index < NumOrdinals
}

func inRange(v int64) bool {
	return v >= OrdinalMin && v <= OrdinalMax
}
