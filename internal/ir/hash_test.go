package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	a := Object{"ordinals": Array{Int(1), Int(2)}, "checksum": Int(3)}
	b := Object{"checksum": Int(3), "ordinals": Array{Int(1), Int(2)}}

	h1, err := Hash(DomainNumber, a)
	require.NoError(t, err)
	h2, err := Hash(DomainNumber, b)
	require.NoError(t, err)

	assert.Equal(t, h1, h2, "key order must not affect the hash")
	assert.Len(t, h1, 64)
}

func TestHashDomainSeparation(t *testing.T) {
	v := Object{"kind": String("literal")}

	assert.NotEqual(t, MustHash(DomainNumber, v), MustHash(DomainTree, v))
	assert.NotEqual(t, MustHash(DomainTree, v), MustHash(DomainRun, v))
}

func TestHashChangesWithContent(t *testing.T) {
	assert.NotEqual(t,
		MustHash(DomainNumber, Array{Int(1)}),
		MustHash(DomainNumber, Array{Int(-1)}))
}

func TestDomainsCarryFormatVersion(t *testing.T) {
	assert.Equal(t, "quantix/number/v1", DomainNumber)
	assert.Equal(t, "quantix/tree/v1", DomainTree)
}
