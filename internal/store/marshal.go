package store

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arbitrary-number/quantix/internal/ir"
	"github.com/arbitrary-number/quantix/internal/register"
)

// marshalTargets stores target qubits as a canonical JSON array.
func marshalTargets(targets []int) (string, error) {
	arr := make(ir.Array, len(targets))
	for i, t := range targets {
		arr[i] = ir.Int(t)
	}
	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal targets: %w", err)
	}
	return string(data), nil
}

func unmarshalTargets(data string) ([]int, error) {
	v, err := ir.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal targets: %w", err)
	}
	arr, ok := v.(ir.Array)
	if !ok {
		return nil, fmt.Errorf("unmarshal targets: expected array, got %T", v)
	}
	targets := make([]int, len(arr))
	for i, e := range arr {
		n, ok := e.(ir.Int)
		if !ok {
			return nil, fmt.Errorf("unmarshal targets: element %d is %T", i, e)
		}
		targets[i] = int(n)
	}
	return targets, nil
}

func marshalSnapshot(s register.Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

func unmarshalSnapshot(data []byte) (register.Snapshot, error) {
	var s register.Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return register.Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return s, nil
}
