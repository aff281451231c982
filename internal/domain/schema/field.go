package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/butters-makana/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// patterns caches compiled Field.Pattern expressions by source.
var patterns sync.Map

func compiledPattern(expr string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	actual, _ := patterns.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}

// coerce converts a raw JSON value into the field's normalized Go type:
// string for text, enum and month, decimal.Decimal for number, int64 for
// integer, time.Time (UTC midnight) for date and bool for bool. A non-empty
// message means the value was rejected.
func (f Field) coerce(val any) (any, string) {
	switch f.Type {
	case TypeText:
		return f.coerceText(val)
	case TypeNumber:
		return f.coerceNumber(val)
	case TypeInteger:
		n, msg := f.coerceNumber(val)
		if msg != "" {
			return nil, msg
		}
		d := n.(decimal.Decimal)
		if !d.IsInteger() {
			return nil, fmt.Sprintf("%s must be a whole number", f.Name)
		}
		if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
			return nil, fmt.Sprintf("%s is out of range", f.Name)
		}
		return d.IntPart(), ""
	case TypeDate:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", f.Name)
		}
		d, ok := validator.ParseCalendarDate(s)
		if !ok {
			return nil, fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", f.Name)
		}
		return d, ""
	case TypeMonth:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be a valid month (YYYY-MM)", f.Name)
		}
		m, ok := validator.IsValidMonth(strings.TrimSpace(s))
		if !ok {
			return nil, fmt.Sprintf("%s must be a valid month (YYYY-MM)", f.Name)
		}
		return m.Format(validator.MonthLayout), ""
	case TypeEnum:
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Options, ", "))
		}
		for _, opt := range f.Options {
			if strings.EqualFold(strings.TrimSpace(s), opt) {
				return opt, ""
			}
		}
		return nil, fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Options, ", "))
	case TypeBool:
		switch v := val.(type) {
		case bool:
			return v, ""
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Sprintf("%s must be true or false", f.Name)
			}
			return b, ""
		}
		return nil, fmt.Sprintf("%s must be true or false", f.Name)
	}
	return nil, fmt.Sprintf("%s has an unsupported type", f.Name)
}

func (f Field) coerceText(val any) (any, string) {
	var s string
	switch v := val.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = v.String()
	default:
		return nil, fmt.Sprintf("%s must be text", f.Name)
	}

	if f.MaxLength > 0 && utf8.RuneCountInString(s) > f.MaxLength {
		return nil, fmt.Sprintf("%s must not exceed %d characters", f.Name, f.MaxLength)
	}
	if f.Pattern != "" {
		re, err := compiledPattern(f.Pattern)
		if err != nil || !re.MatchString(s) {
			return nil, fmt.Sprintf("%s has an invalid format", f.Name)
		}
	}
	return s, ""
}

func (f Field) coerceNumber(val any) (any, string) {
	var (
		d   decimal.Decimal
		err error
	)
	switch v := val.(type) {
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case decimal.Decimal:
		d = v
	default:
		return nil, fmt.Sprintf("%s must be a number", f.Name)
	}
	if err != nil {
		return nil, fmt.Sprintf("%s must be a number", f.Name)
	}

	if f.Min != nil && d.LessThan(decimal.NewFromFloat(*f.Min)) {
		return nil, fmt.Sprintf("%s must be at least %s", f.Name, formatBound(*f.Min))
	}
	if f.Max != nil && d.GreaterThan(decimal.NewFromFloat(*f.Max)) {
		return nil, fmt.Sprintf("%s must be at most %s", f.Name, formatBound(*f.Max))
	}
	if f.Scale > 0 && !d.Equal(d.Truncate(int32(f.Scale))) {
		return nil, fmt.Sprintf("%s must have at most %d decimal places", f.Name, f.Scale)
	}
	if len(f.Options) > 0 {
		for _, opt := range f.Options {
			if o, err := decimal.NewFromString(opt); err == nil && o.Equal(d) {
				return d, ""
			}
		}
		return nil, fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Options, ", "))
	}
	return d, ""
}

func (f Field) defaultValue() any {
	if f.Default == nil {
		return nil
	}
	if v, msg := f.coerce(f.Default); msg == "" {
		return v
	}
	return f.Default
}

func (f Field) matchesDefault(val any) bool {
	got, msg := f.coerce(val)
	if msg != "" {
		return false
	}
	return got == f.defaultValue()
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
