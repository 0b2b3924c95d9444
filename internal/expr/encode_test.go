package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbitrary-number/quantix/internal/ir"
)

func TestEncodeDecodeThroughJSON(t *testing.T) {
	tree := Div(
		NewFunc(FnSqrt, Add(NewVariable("x"), lit(4, -1))),
		NewUnary(OpNegate, NewBinary(OpPower, lit(2), lit(3))),
	)

	data, err := ir.MarshalCanonical(Encode(tree))
	require.NoError(t, err)
	obj, err := ir.UnmarshalObject(data)
	require.NoError(t, err)

	got, err := Decode(obj)
	require.NoError(t, err)
	assert.True(t, Equal(tree, got))
	assert.Equal(t, ID(tree), ID(got))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		obj  ir.Object
	}{
		{"missing kind", ir.Object{}},
		{"unknown kind", ir.Object{"kind": ir.String("matrix")}},
		{"unknown op", ir.Object{"kind": ir.String("binary"), "op": ir.String("modulo")}},
		{"missing child", ir.Object{"kind": ir.String("function"), "fn": ir.String("abs")}},
		{"bad literal", ir.Object{"kind": ir.String("literal"), "value": ir.Object{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.obj)
			assert.Error(t, err)
		})
	}
}

func TestIDDistinguishesTrees(t *testing.T) {
	assert.NotEqual(t, ID(Add(lit(1), lit(2))), ID(Add(lit(2), lit(1))))
	assert.Equal(t, ID(Add(lit(1), lit(2))), ID(Add(lit(1), lit(2))))
}
