package form

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Formatter coerces raw user text into a typed value.
type Formatter func(raw string) (any, error)

// Validator checks a typed value against a format refinement.
type Validator func(v any) error

// DateLayout is the only accepted date format: DD.MM.YYYY.
const DateLayout = "02.01.2006"

var (
	trueTokens  = []string{"Да", "Yes"}
	falseTokens = []string{"Нет", "No"}
)

var formatters = map[string]Formatter{
	TypeString:  formatString,
	TypeInteger: formatInteger,
	TypeNumber:  formatNumber,
	TypeBoolean: formatBoolean,
}

var validators = map[string]Validator{
	"date": validateDate,
}

// FormatterFor returns the formatter of a declared type. Unknown types get an
// identity formatter that never fails.
func FormatterFor(typ string) Formatter {
	if f, ok := formatters[typ]; ok {
		return f
	}
	return formatDummy
}

// ValidatorFor returns the validator of a format. Unknown or empty formats
// always pass.
func ValidatorFor(format string) Validator {
	if v, ok := validators[format]; ok {
		return v
	}
	return validateDummy
}

// Format runs the formatter registered for typ.
func Format(typ, raw string) (any, error) { return FormatterFor(typ)(raw) }

// Validate runs the validator registered for format.
func Validate(format string, v any) error { return ValidatorFor(format)(v) }

func formatString(raw string) (any, error) { return raw, nil }

func formatDummy(raw string) (any, error) { return raw, nil }

func formatInteger(raw string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, invalidInput(CodeInvalidInteger, raw)
	}
	return n, nil
}

func formatNumber(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalidInput(CodeInvalidNumber, raw)
	}
	return f, nil
}

func formatBoolean(raw string) (any, error) {
	switch {
	case slices.Contains(trueTokens, raw):
		return true, nil
	case slices.Contains(falseTokens, raw):
		return false, nil
	}
	return nil, invalidInput(CodeInvalidBoolean, raw)
}

func validateDummy(any) error { return nil }

func validateDate(v any) error {
	s, ok := v.(string)
	if !ok {
		return formatMismatch(fmt.Sprint(v))
	}
	// time.Parse also rejects impossible days such as 31.02.
	if _, err := time.Parse(DateLayout, s); err != nil {
		return formatMismatch(s)
	}
	return nil
}

// normalize converts a decoded default or stored value to the Go type the
// formatter of typ would produce. Values that do not fit are kept as is.
func normalize(typ string, v any) any {
	switch typ {
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return int64(n)
		case int32:
			return int64(n)
		case uint64:
			if n <= math.MaxInt64 {
				return int64(n)
			}
		case float64:
			if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
				return int64(n)
			}
		}
	case TypeNumber:
		switch n := v.(type) {
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return v
}

// defaultValue turns a schema default into the value SetValue would store for
// the same text. Defaults of another type are printed and reparsed, so
// `default: 5` on a string field becomes "5" and a YAML date on a date field
// becomes DD.MM.YYYY.
func defaultValue(typ, format string, v any) (any, error) {
	v = normalize(typ, v)
	if !hasType(typ, v) {
		var raw string
		switch d := v.(type) {
		case string:
			raw = d
		case time.Time:
			raw = d.Format(time.RFC3339)
			if format == "date" {
				raw = d.Format(DateLayout)
			}
		case bool, int, int64, uint64, float64:
			raw = fmt.Sprint(d)
		default:
			return nil, fmt.Errorf("%T is not a %s", v, typ)
		}
		var err error
		if v, err = Format(typ, raw); err != nil {
			return nil, err
		}
	}
	if err := Validate(format, v); err != nil {
		return nil, err
	}
	return v, nil
}

func hasType(typ string, v any) bool {
	switch typ {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		_, ok := v.(int64)
		return ok
	case TypeNumber:
		_, ok := v.(float64)
		return ok
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	}
	return true
}
