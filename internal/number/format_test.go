package number

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringShowsSignedFieldsAndChecksum(t *testing.T) {
	s := sample(3, -2).String()

	assert.True(t, strings.HasPrefix(s, "Number{a:+3, b:-2, c:+0"))
	assert.Contains(t, s, "checksum=0x6")
	assert.Contains(t, s, "structure:")
	assert.Contains(t, s, "expanded:  (((3+0)/(-2+0))/(0+0))")
}

func TestParse(t *testing.T) {
	n, err := Parse(" -42 ")
	require.NoError(t, err)

	v, _ := n.Ordinal(FieldA)
	neg, _ := n.Sign(FieldA)
	assert.Equal(t, 42, v)
	assert.True(t, neg)
	b, _ := n.Ordinal(FieldB)
	assert.Equal(t, 1, b, "remaining fields keep the identity pattern")

	_, err = Parse("4x")
	var ne *Error
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, ErrCodeInvalidLiteral, ne.Code)

	_, err = Parse("600000")
	assert.True(t, IsRangeError(err))
}

func TestPackRoundTrip(t *testing.T) {
	for _, x := range fixtures() {
		packed := x.Pack()
		got, err := Unpack(packed)
		require.NoError(t, err)
		assert.True(t, got.Identical(x), "%v", x)
	}

	raw := Zero()
	require.NoError(t, raw.SetOrdinal(FieldK, OrdinalMin))
	got, err := Unpack(raw.Pack())
	require.NoError(t, err)
	assert.True(t, got.Identical(raw))
}

func TestPackLayout(t *testing.T) {
	p := sample(1).Pack()
	assert.Equal(t, byte(0x01), p[0])

	// Sign bit of a is bit 20.
	p = sample(-1).Pack()
	assert.Equal(t, byte(0x10), p[2])

	// Checksum occupies the top nibble.
	p = sample(3).Pack()
	assert.Equal(t, byte(0x30), p[31])
}

func TestUnpackRejectsCorruption(t *testing.T) {
	p := sample(9, 9).Pack()
	p[0] ^= 0x01

	_, err := Unpack(p)
	require.Error(t, err)
	assert.True(t, IsChecksumError(err))
}

func TestHexRoundTrip(t *testing.T) {
	x := sample(5, -6, 7)
	h := x.Hex()
	assert.Len(t, h, 64)

	got, err := ParseHex(h)
	require.NoError(t, err)
	assert.True(t, got.Identical(x))

	_, err = ParseHex("abcd")
	assert.Error(t, err)
}

func TestFractionSum(t *testing.T) {
	third := sample(1, 3)
	twoThirds := sample(2, 3)

	// Numerators add; the shared denominator is carried over.
	sum := sample(1).Add(sample(2))
	b, _ := third.Ordinal(FieldB)
	require.NoError(t, sum.SetOrdinal(FieldB, b))

	a, _ := sum.SignedOrdinal(FieldA)
	assert.Equal(t, 3, a)

	got, ok := sum.Fraction()
	require.True(t, ok)
	bs, _ := sum.SignedOrdinal(FieldB)
	assert.Equal(t, "3/3", fmt.Sprintf("%d/%d", a, bs))
	one, ok := One().Fraction()
	require.True(t, ok)
	assert.Equal(t, 0, got.Cmp(one))

	r, _ := twoThirds.Fraction()
	assert.Equal(t, "2/3", r.RatString())

	_, ok = Zero().Fraction()
	assert.False(t, ok)
}
