package compiler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arbitrary-number/quantix/internal/cnumber"
)

// Document is the decoded, uncompiled form of a quantix document.
type Document struct {
	Expr     *NodeDecl          `yaml:"expr,omitempty" json:"expr,omitempty"`
	Values   map[string]int     `yaml:"values,omitempty" json:"values,omitempty"`
	Collapse *CollapseDecl      `yaml:"collapse,omitempty" json:"collapse,omitempty"`
	Bindings map[string]Complex `yaml:"bindings,omitempty" json:"bindings,omitempty"`
	Register *RegisterDecl      `yaml:"register,omitempty" json:"register,omitempty"`

	// source resolves document paths to positions. Nil for YAML.
	source positioner
}

// NodeDecl declares one expression tree node. Exactly one of Int, Fields,
// Const, Var, Op or Fn selects the kind.
//
//	{int: -3}                      literal: One with field a = -3
//	{fields: {a: 1, b: 3}}         literal: Zero with the listed signed fields
//	{const: zero|one}              literal constant
//	{var: x}                       variable
//	{op: add, args: [l, r]}        add|subtract|multiply|divide|power|root
//	{op: negate, args: [x]}
//	{fn: abs, args: [x]}           abs|sqrt|sin|cos|tan|exp|log
type NodeDecl struct {
	Int    *int           `yaml:"int,omitempty" json:"int,omitempty"`
	Fields map[string]int `yaml:"fields,omitempty" json:"fields,omitempty"`
	Const  string         `yaml:"const,omitempty" json:"const,omitempty"`
	Var    string         `yaml:"var,omitempty" json:"var,omitempty"`
	Op     string         `yaml:"op,omitempty" json:"op,omitempty"`
	Fn     string         `yaml:"fn,omitempty" json:"fn,omitempty"`
	Args   []NodeDecl     `yaml:"args,omitempty" json:"args,omitempty"`
}

// CollapseDecl declares one collapse tree node. Exactly one of Const, Sym,
// Op or Number selects the kind.
//
//	{const: "1+2i"}
//	{sym: x}
//	{op: add|sub|mul|div, args: [l, r]}
//	{number: {a: "1", b: "0.5i"}}  nested division of a complex number
type CollapseDecl struct {
	Const  *Complex           `yaml:"const,omitempty" json:"const,omitempty"`
	Sym    string             `yaml:"sym,omitempty" json:"sym,omitempty"`
	Op     string             `yaml:"op,omitempty" json:"op,omitempty"`
	Args   []CollapseDecl     `yaml:"args,omitempty" json:"args,omitempty"`
	Number map[string]Complex `yaml:"number,omitempty" json:"number,omitempty"`
}

// RegisterDecl declares a register. Without amplitudes the register starts
// in |0…0⟩.
type RegisterDecl struct {
	Qubits     int        `yaml:"qubits" json:"qubits"`
	Amplitudes []Complex  `yaml:"amplitudes,omitempty" json:"amplitudes,omitempty"`
	Normalize  bool       `yaml:"normalize,omitempty" json:"normalize,omitempty"`
	Gates      []GateDecl `yaml:"gates,omitempty" json:"gates,omitempty"`
	Targets    []int      `yaml:"targets,omitempty" json:"targets,omitempty"`
}

// GateDecl applies a named single-qubit gate.
type GateDecl struct {
	Gate  string `yaml:"gate" json:"gate"`
	Qubit int    `yaml:"qubit" json:"qubit"`
}

// Complex is a complex literal written as a number or as a string such as
// "0.5", "-2i" or "1+2i".
type Complex complex128

// ParseComplex parses the string form of a Complex.
func ParseComplex(s string) (Complex, error) {
	c, err := strconv.ParseComplex(strings.ReplaceAll(s, " ", ""), 128)
	if err != nil {
		return 0, fmt.Errorf("invalid complex literal %q", s)
	}
	return Complex(c), nil
}

// UnmarshalYAML accepts any scalar.
func (c *Complex) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: complex literal must be a scalar", n.Line)
	}
	v, err := ParseComplex(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = v
	return nil
}

// UnmarshalJSON accepts a JSON number or string.
func (c *Complex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	v, err := ParseComplex(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// String formats c as "re+imi".
func (c Complex) String() string {
	return cnumber.FormatComplex(complex128(c))
}
