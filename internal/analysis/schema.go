package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/community-analyzer/internal/models"
)

// FallbackSummary is the sentinel summary of a unit that could not be analyzed
const FallbackSummary = "Failed to analyze this segment"

var (
	// ErrMalformedResponse means the reply was not a JSON object
	ErrMalformedResponse = errors.New("malformed inference response")

	// ErrSchemaMismatch means a required field was missing or had the wrong shape
	ErrSchemaMismatch = errors.New("inference response does not match schema")
)

// FieldKind is the JSON container kind a required field must have
type FieldKind int

const (
	// KindString is a non-empty JSON string
	KindString FieldKind = iota
	// KindArray is a JSON array
	KindArray
	// KindObject is a JSON object
	KindObject
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "non-empty string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Field is a top-level field every reply of a variant must carry
type Field struct {
	Name string
	Kind FieldKind
}

// Schema describes how one variant is validated, defaulted and merged
type Schema[U any] struct {
	Variant  models.Variant
	Required []Field
	Fallback func() U
	Merge    func(units []U) U
}

type normalizer interface {
	Normalize()
}

// Decode parses a sanitized reply, checks required fields and decodes the typed unit
func (s Schema[U]) Decode(text string) (U, error) {
	var unit U

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return unit, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		return unit, fmt.Errorf("%w: null payload", ErrMalformedResponse)
	}

	for _, f := range s.Required {
		if err := checkField(fields, f); err != nil {
			return unit, err
		}
	}

	if err := json.Unmarshal([]byte(text), &unit); err != nil {
		return unit, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	normalize(&unit)

	return unit, nil
}

func checkField(fields map[string]json.RawMessage, f Field) error {
	raw, ok := fields[f.Name]
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("%w: missing field %q", ErrSchemaMismatch, f.Name)
	}

	switch f.Kind {
	case KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: field %q must be a %s", ErrSchemaMismatch, f.Name, f.Kind)
		}
	case KindArray:
		if raw[0] != '[' {
			return fmt.Errorf("%w: field %q must be an %s", ErrSchemaMismatch, f.Name, f.Kind)
		}
	case KindObject:
		if raw[0] != '{' {
			return fmt.Errorf("%w: field %q must be an %s", ErrSchemaMismatch, f.Name, f.Kind)
		}
	}
	return nil
}

func normalize[U any](unit *U) {
	if n, ok := any(unit).(normalizer); ok {
		n.Normalize()
	}
}
