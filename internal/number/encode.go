package number

import (
	"fmt"

	"github.com/arbitrary-number/quantix/internal/ir"
)

// IR returns the canonical interchange form:
// {"checksum": int, "ordinals": [12]int, "signs": [12]bool}.
func (n Number) IR() ir.Object {
	ords := make(ir.Array, NumOrdinals)
	signs := make(ir.Array, NumOrdinals)
	for i := range n.ordinals {
		ords[i] = ir.Int(n.ordinals[i])
		signs[i] = ir.Bool(n.signs[i])
	}
	return ir.Object{
		"checksum": ir.Int(n.checksum),
		"ordinals": ords,
		"signs":    signs,
	}
}

// FromIR decodes the output of IR. The stored checksum must match.
func FromIR(obj ir.Object) (Number, error) {
	ords, err := obj.Array("ordinals")
	if err != nil {
		return Number{}, fmt.Errorf("decode number: %w", err)
	}
	signs, err := obj.Array("signs")
	if err != nil {
		return Number{}, fmt.Errorf("decode number: %w", err)
	}
	sum, err := obj.Int("checksum")
	if err != nil {
		return Number{}, fmt.Errorf("decode number: %w", err)
	}
	if len(ords) != NumOrdinals || len(signs) != NumOrdinals {
		return Number{}, fmt.Errorf("decode number: want %d ordinals and signs, got %d and %d",
			NumOrdinals, len(ords), len(signs))
	}

	var n Number
	for i := range NumOrdinals {
		o, ok := ords[i].(ir.Int)
		if !ok {
			return Number{}, fmt.Errorf("decode number: ordinal %s is %T", OrdinalNames[i], ords[i])
		}
		if !inRange(int64(o)) {
			return Number{}, rangeError(i, int64(o))
		}
		s, ok := signs[i].(ir.Bool)
		if !ok {
			return Number{}, fmt.Errorf("decode number: sign %s is %T", OrdinalNames[i], signs[i])
		}
		n.ordinals[i] = int32(o)
		n.signs[i] = bool(s)
	}
	n.checksum = uint8(sum & 0x0F)
	if int64(n.checksum) != sum {
		return Number{}, fmt.Errorf("decode number: checksum %d is not a nibble", sum)
	}
	if err := n.Verify(); err != nil {
		return Number{}, err
	}
	return n, nil
}

// ID returns the content identifier of the number.
func (n Number) ID() string {
	return ir.MustHash(ir.DomainNumber, n.IR())
}
