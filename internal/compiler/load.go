package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

type positioner interface {
	pos(path string) token.Pos
}

type cueSource struct {
	v cue.Value
}

func (s cueSource) pos(path string) token.Pos {
	p := cue.ParsePath(path)
	if p.Err() != nil {
		return token.NoPos
	}
	if v := s.v.LookupPath(p); v.Exists() {
		return v.Pos()
	}
	return token.NoPos
}

// LoadDocument reads a .cue, .yaml or .yml document from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return ParseCUE(data, path)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, &CompileError{
			Field:   "document",
			Message: fmt.Sprintf("unsupported extension %q (want .cue, .yaml or .yml)", filepath.Ext(path)),
		}
	}
}

// ParseCUE compiles CUE source and decodes it into a Document. The value
// must be concrete. Unknown top-level or nested keys are rejected.
func ParseCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &CompileError{Field: "document", Message: err.Error(), Pos: v.Pos()}
	}
	doc.source = cueSource{v: v}
	return &doc, nil
}

// ParseYAML decodes a YAML document. Unknown keys are rejected.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &CompileError{Field: "document", Message: "document is empty"}
		}
		return nil, &CompileError{Field: "document", Message: err.Error()}
	}
	return &doc, nil
}
