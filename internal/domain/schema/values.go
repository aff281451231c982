package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Values holds normalized field values keyed by field name. A key mapped to
// nil records an explicit clear.
type Values map[string]any

// Has reports whether name was supplied, including explicit clears.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) *string {
	if s, ok := v[name].(string); ok {
		return &s
	}
	return nil
}

func (v Values) Decimal(name string) *decimal.Decimal {
	if d, ok := v[name].(decimal.Decimal); ok {
		return &d
	}
	return nil
}

func (v Values) Int(name string) *int64 {
	if n, ok := v[name].(int64); ok {
		return &n
	}
	return nil
}

func (v Values) Date(name string) *time.Time {
	if t, ok := v[name].(time.Time); ok {
		return &t
	}
	return nil
}

func (v Values) Bool(name string) *bool {
	if b, ok := v[name].(bool); ok {
		return &b
	}
	return nil
}

// Merge returns a copy of v overlaid with patch.
func (v Values) Merge(patch Values) Values {
	out := make(Values, len(v)+len(patch))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range patch {
		out[k] = val
	}
	return out
}

// Set stores val, mapping nil pointers to an explicit nil.
func (v Values) Set(name string, val any) {
	switch p := val.(type) {
	case *string:
		if p == nil {
			v[name] = nil
			return
		}
		v[name] = *p
	case *decimal.Decimal:
		if p == nil {
			v[name] = nil
			return
		}
		v[name] = *p
	case *int64:
		if p == nil {
			v[name] = nil
			return
		}
		v[name] = *p
	case *time.Time:
		if p == nil {
			v[name] = nil
			return
		}
		v[name] = *p
	case *bool:
		if p == nil {
			v[name] = nil
			return
		}
		v[name] = *p
	default:
		v[name] = val
	}
}

// Changed reports whether name is in patch with a value different from base.
func Changed(base, patch Values, name string) bool {
	next, ok := patch[name]
	if !ok {
		return false
	}
	prev := base[name]
	switch n := next.(type) {
	case time.Time:
		p, isTime := prev.(time.Time)
		return !isTime || !p.Equal(n)
	case decimal.Decimal:
		p, isDec := prev.(decimal.Decimal)
		return !isDec || !p.Equal(n)
	case nil:
		return prev != nil
	}
	return prev != next
}

// Float is a helper for declaring Min and Max bounds.
func Float(v float64) *float64 {
	return &v
}
