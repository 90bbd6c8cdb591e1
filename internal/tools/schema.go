package tools

import (
	"encoding/json"
	"fmt"
)

// FieldType is the primitive JSON type of a tool argument.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
)

// Field declares one tool argument. Optional fields may carry a Default,
// which is applied by Validate before the handler runs.
type Field struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool
	Default     any
}

// Schema is the ordered set of arguments a tool accepts.
type Schema []Field

// ValidationError describes an argument that failed its declared shape.
type ValidationError struct {
	Field    string
	Expected FieldType
	Got      string
}

func (e *ValidationError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("missing required argument %q", e.Field)
	}
	return fmt.Sprintf("invalid argument %q: expected %s, got %s", e.Field, e.Expected, e.Got)
}

// Validate checks raw arguments against the schema and returns the coerced
// argument record. Absent or null optional fields take their default.
// Arguments the schema does not declare are dropped.
func (s Schema) Validate(raw map[string]any) (Args, error) {
	args := make(Args, len(s))
	for _, f := range s {
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, &ValidationError{Field: f.Name, Expected: f.Type}
			}
			if f.Default != nil {
				args[f.Name] = f.Default
			}
			continue
		}

		coerced, ok := coerce(f.Type, v)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Expected: f.Type, Got: kindOf(v)}
		}
		args[f.Name] = coerced
	}
	return args, nil
}

// check verifies the schema itself: named, unique fields whose defaults
// match their declared type.
func (s Schema) check() error {
	seen := make(map[string]bool, len(s))
	for _, f := range s {
		if f.Name == "" {
			return fmt.Errorf("field has empty name")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case TypeString, TypeNumber, TypeBoolean:
		default:
			return fmt.Errorf("field %q has unsupported type %q", f.Name, f.Type)
		}
		if f.Default != nil {
			if f.Required {
				return fmt.Errorf("field %q is required and cannot have a default", f.Name)
			}
			if _, ok := coerce(f.Type, f.Default); !ok {
				return fmt.Errorf("field %q default %v is not a %s", f.Name, f.Default, f.Type)
			}
		}
	}
	return nil
}

// coerce normalises v to the Go type used for t: string, float64 or bool.
func coerce(t FieldType, v any) (any, bool) {
	switch t {
	case TypeString:
		s, ok := v.(string)
		return s, ok
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			f, err := n.Float64()
			return f, err == nil
		}
		return nil, false
	case TypeBoolean:
		b, ok := v.(bool)
		return b, ok
	}
	return nil, false
}

// kindOf names the JSON kind of a decoded value for error messages.
func kindOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// Args is a validated argument record. Accessors return the zero value for
// fields that are absent, which Validate only allows for optional fields
// without a default.
type Args map[string]any

// String returns the string argument named key.
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Float returns the number argument named key.
func (a Args) Float(key string) float64 {
	f, _ := a[key].(float64)
	return f
}

// Bool returns the boolean argument named key.
func (a Args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}
