// Package schema declares form fields once and validates raw input against
// them. The same definitions are served to the UI so client-side checks and
// server-side checks never drift apart.
package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
)

var ErrSchemaNotFound = errors.New("form schema not found")

type FieldType string

const (
	TypeText    FieldType = "text"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeDate    FieldType = "date"
	TypeMonth   FieldType = "month"
	TypeEnum    FieldType = "enum"
	TypeBool    FieldType = "bool"
)

type Field struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	Scale     int       `json:"scale,omitempty"`
	MaxLength int       `json:"max_length,omitempty"`
	Pattern   string    `json:"pattern,omitempty"`
	Options   []string  `json:"options,omitempty"`
	Default   any       `json:"default,omitempty"`

	// DefaultToday fills an absent date field with the submission date.
	DefaultToday bool `json:"default_today,omitempty"`

	// Locked fields always carry Default; a different submitted value is rejected.
	Locked bool `json:"locked,omitempty"`

	// Derived fields are computed by the server when absent but may be overridden.
	Derived bool `json:"derived,omitempty"`
}

// Span declares that the date in Start must not be after the date in End.
type Span struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Schema struct {
	Form   string  `json:"form"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	Spans  []Span  `json:"spans,omitempty"`
}

// Field returns the definition of the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks a complete submission. Absent optional fields receive their
// defaults; the result holds only normalized, typed values.
func (s Schema) Validate(raw map[string]any, now time.Time) (Values, error) {
	var errs validator.ValidationErrors
	out := Values{}

	for _, f := range s.Fields {
		val, present := lookup(raw, f.Name)

		if f.Locked {
			if present && !f.matchesDefault(val) {
				errs.Add(f.Name, fmt.Sprintf("%s cannot be changed", f.Name))
				continue
			}
			out[f.Name] = f.defaultValue()
			continue
		}

		if !present {
			switch {
			case f.DefaultToday:
				out[f.Name] = civilDate(now)
			case f.Default != nil:
				out[f.Name] = f.defaultValue()
			case f.Required:
				errs.Add(f.Name, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}

		normalized, msg := f.coerce(val)
		if msg != "" {
			errs.Add(f.Name, msg)
			continue
		}
		out[f.Name] = normalized
	}

	if len(errs) == 0 {
		if err := s.CheckSpans(out); err != nil {
			return nil, err
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return out, nil
}

// ValidatePartial checks only the fields present in raw. An explicit null or
// empty string clears an optional field (the key maps to nil); clearing a
// required field is an error. Spans are left to the caller, who must check
// them after merging the patch onto the stored values.
func (s Schema) ValidatePartial(raw map[string]any) (Values, error) {
	var errs validator.ValidationErrors
	out := Values{}

	for _, f := range s.Fields {
		if _, exists := raw[f.Name]; !exists {
			continue
		}
		val, present := lookup(raw, f.Name)

		if f.Locked {
			if present && !f.matchesDefault(val) {
				errs.Add(f.Name, fmt.Sprintf("%s cannot be changed", f.Name))
			}
			continue
		}

		if !present {
			if f.Required {
				errs.Add(f.Name, fmt.Sprintf("%s must not be empty", f.Name))
				continue
			}
			out[f.Name] = nil
			continue
		}

		normalized, msg := f.coerce(val)
		if msg != "" {
			errs.Add(f.Name, msg)
			continue
		}
		out[f.Name] = normalized
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return out, nil
}

// CheckSpans verifies start <= end for every declared span whose two ends are set.
func (s Schema) CheckSpans(values Values) error {
	var errs validator.ValidationErrors
	for _, span := range s.Spans {
		start := values.Date(span.Start)
		end := values.Date(span.End)
		if start == nil || end == nil {
			continue
		}
		if end.Before(*start) {
			errs.Add(span.End, fmt.Sprintf("%s must be on or after %s", span.End, span.Start))
		}
	}
	return errs.Err()
}

// lookup treats a missing key, JSON null and a blank string alike.
func lookup(raw map[string]any, name string) (any, bool) {
	val, ok := raw[name]
	if !ok || val == nil {
		return nil, false
	}
	if s, isString := val.(string); isString && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return val, true
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Supplied reports whether raw carries a non-empty value for name.
func Supplied(raw map[string]any, name string) bool {
	_, ok := lookup(raw, name)
	return ok
}

// DropClearedDefaults removes explicit clears of fields that carry a default,
// so a patch sending null for them leaves the stored value alone.
func (s Schema) DropClearedDefaults(patch Values) {
	for _, f := range s.Fields {
		if f.Default == nil && !f.DefaultToday {
			continue
		}
		if v, ok := patch[f.Name]; ok && v == nil {
			delete(patch, f.Name)
		}
	}
}

// Patch validates the fields supplied in raw and overlays them on base. It
// returns the merged values together with the validated patch, after
// re-checking spans against the merged result.
func (s Schema) Patch(base Values, raw map[string]any) (merged, patch Values, err error) {
	patch, err = s.ValidatePartial(raw)
	if err != nil {
		return nil, nil, err
	}
	s.DropClearedDefaults(patch)

	merged = base.Merge(patch)
	if err := s.CheckSpans(merged); err != nil {
		return nil, nil, err
	}
	return merged, patch, nil
}
