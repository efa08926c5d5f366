// Package schema declares the per-entity field maps and the pure,
// bidirectional translation between external table rows and normalized
// domain records.
package schema

import (
	"fmt"
	"strconv"

	"github.com/mwalimu/darasa/core/table"
)

// Kind is the normalized type of a domain field.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	// Reference is a relation to another entity; the external value may be
	// a bare integer id or a nested object carrying one.
	Reference
)

type (
	// Field maps one external column to one domain key. Default is
	// substituted when the external value is absent or null; translation
	// never fails on missing fields.
	Field struct {
		External string
		Domain   string
		Kind     Kind
		Default  interface{}
		// CreateOnly fields are written on create and immutable thereafter.
		CreateOnly bool
	}

	// Schema is the declarative mapping descriptor for one entity type.
	Schema struct {
		Table     string
		Fields    []Field
		PageLimit int
		// DisplayName synthesizes the external schema's required Name
		// column from domain values.
		DisplayName func(dom table.Record) string
	}
)

// Selectors returns the field selectors a fetch for this schema requests:
// the display name plus every mapped column.
func (s Schema) Selectors() []table.FieldSelector {
	sel := make([]table.FieldSelector, 0, len(s.Fields)+1)
	sel = append(sel, table.FieldSelector{Field: "Name"})
	for _, f := range s.Fields {
		sel = append(sel, table.FieldSelector{Field: f.External, Reference: f.Kind == Reference})
	}
	return sel
}

// ToDomain translates an external row into a normalized domain record.
// Missing or null columns get the field's declared default; reference
// columns are unwrapped to scalar ids in both of their external forms.
func (s Schema) ToDomain(ext table.Record) table.Record {
	dom := make(table.Record, len(s.Fields)+1)
	if id, ok := AsInt(ext["Id"]); ok {
		dom["id"] = id
	}
	for _, f := range s.Fields {
		v, ok := ext[f.External]
		if !ok || v == nil {
			dom[f.Domain] = f.Default
			continue
		}
		switch f.Kind {
		case String:
			if str, ok := v.(string); ok {
				dom[f.Domain] = str
			} else {
				dom[f.Domain] = f.Default
			}
		case Int:
			if n, ok := AsInt(v); ok {
				dom[f.Domain] = n
			} else {
				dom[f.Domain] = f.Default
			}
		case Float:
			if n, ok := AsFloat(v); ok {
				dom[f.Domain] = n
			} else {
				dom[f.Domain] = f.Default
			}
		case Bool:
			if b, ok := v.(bool); ok {
				dom[f.Domain] = b
			} else {
				dom[f.Domain] = f.Default
			}
		case Reference:
			if id, ok := RefID(v); ok {
				dom[f.Domain] = id
			} else {
				dom[f.Domain] = f.Default
			}
		}
	}
	return dom
}

// ToExternal translates a domain record into the row shape the external
// write API accepts: a strict allow-list of the declared columns, numeric
// values coerced to numeric type, the display name synthesized, and a
// positive id carried through as the row's Id so translation loses no
// domain field. Fields not declared in the schema are never forwarded.
// When update is true, create-only columns are dropped.
func (s Schema) ToExternal(dom table.Record, update bool) table.Record {
	ext := make(table.Record, len(s.Fields)+2)
	if id, ok := AsInt(dom["id"]); ok && id > 0 {
		ext["Id"] = id
	}
	if s.DisplayName != nil {
		ext["Name"] = s.DisplayName(dom)
	}
	for _, f := range s.Fields {
		if update && f.CreateOnly {
			continue
		}
		v, ok := dom[f.Domain]
		if !ok || v == nil {
			v = f.Default
		}
		switch f.Kind {
		case String:
			ext[f.External] = stringOf(v)
		case Int:
			if n, ok := AsInt(v); ok {
				ext[f.External] = n
			} else if d, ok := AsInt(f.Default); ok {
				ext[f.External] = d
			} else {
				ext[f.External] = 0
			}
		case Float:
			if n, ok := AsFloat(v); ok {
				ext[f.External] = n
			} else if d, ok := AsFloat(f.Default); ok {
				ext[f.External] = d
			} else {
				ext[f.External] = 0.0
			}
		case Bool:
			if b, ok := v.(bool); ok {
				ext[f.External] = b
			} else {
				ext[f.External] = false
			}
		case Reference:
			// unset relations are written as null, not 0
			if id, ok := RefID(v); ok && id > 0 {
				ext[f.External] = id
			} else {
				ext[f.External] = nil
			}
		}
	}
	return ext
}

// AsInt coerces an external value to an integer. JSON numbers arrive as
// float64; numeric strings are accepted too.
func AsInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

// AsFloat coerces an external value to a float.
func AsFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// RefID extracts the scalar id from a reference value, which the boundary
// may resolve lazily into a nested object.
func RefID(v interface{}) (int, bool) {
	switch ref := v.(type) {
	case map[string]interface{}:
		return AsInt(ref["Id"])
	default:
		return AsInt(v)
	}
}

func stringOf(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}
