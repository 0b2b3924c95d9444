package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/ir"
	"github.com/arbitrary-number/quantix/internal/number"
)

// PutNumber stores n under its content ID and returns the ID.
// Storing an existing number is a no-op.
func (s *Store) PutNumber(ctx context.Context, n number.Number) (string, error) {
	body, err := ir.MarshalCanonical(n.IR())
	if err != nil {
		return "", fmt.Errorf("put number: %w", err)
	}
	id := n.ID()
	packed := n.Pack()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO numbers (id, packed, body)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, packed[:], string(body))
	if err != nil {
		return "", fmt.Errorf("put number %s: %w", id, err)
	}
	return id, nil
}

// GetNumber loads a number by content ID. The packed form is verified
// against its checksum.
func (s *Store) GetNumber(ctx context.Context, id string) (number.Number, error) {
	var packed []byte
	err := s.db.QueryRowContext(ctx, `SELECT packed FROM numbers WHERE id = ?`, id).Scan(&packed)
	if errors.Is(err, sql.ErrNoRows) {
		return number.Number{}, fmt.Errorf("get number %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return number.Number{}, fmt.Errorf("get number %s: %w", id, err)
	}
	if len(packed) != number.PackedSize {
		return number.Number{}, fmt.Errorf("get number %s: packed form is %d bytes", id, len(packed))
	}

	var b [number.PackedSize]byte
	copy(b[:], packed)
	n, err := number.Unpack(b)
	if err != nil {
		return number.Number{}, fmt.Errorf("get number %s: %w", id, err)
	}
	return n, nil
}

// PutTree stores an expression tree under its content ID and returns the ID.
func (s *Store) PutTree(ctx context.Context, root expr.Node) (string, error) {
	body, err := ir.MarshalCanonical(expr.Encode(root))
	if err != nil {
		return "", fmt.Errorf("put tree: %w", err)
	}
	id := expr.ID(root)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trees (id, body, height, node_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, string(body), expr.Height(root), expr.NodeCount(root))
	if err != nil {
		return "", fmt.Errorf("put tree %s: %w", id, err)
	}
	return id, nil
}

// GetTree loads and decodes a tree by content ID.
func (s *Store) GetTree(ctx context.Context, id string) (expr.Node, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM trees WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get tree %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tree %s: %w", id, err)
	}

	obj, err := ir.UnmarshalObject([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("get tree %s: %w", id, err)
	}
	root, err := expr.Decode(obj)
	if err != nil {
		return nil, fmt.Errorf("get tree %s: %w", id, err)
	}
	return root, nil
}
