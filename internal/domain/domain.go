// Package domain holds what every entity package shares: the validation
// error, the raw field mapping entities are built from, and the text layout
// timestamps are stored in.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// TimeLayout is how timestamps are written to and read from the store.
const TimeLayout = "2006-01-02 15:04:05"

// ValidationError reports bad input to an entity constructor or a lifecycle operation.
type ValidationError struct {
	Entity string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Entity == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("%s: validation: %s", e.Entity, e.Reason)
}

func Invalid(entity, format string, args ...any) error {
	return &ValidationError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Fields is the field-name-to-value mapping entities are built from.
// Values may come from code (typed) or from imported files (strings).
type Fields map[string]any

// String returns the trimmed string under key; ok is false when the key is
// absent or the value is empty.
func (f Fields) String(key string) (string, bool) {
	v, found := f[key]
	if !found || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Int returns the integer under key. Zero and absent values report ok=false
// so they never overwrite a previously set field.
func (f Fields) Int(entity, key string) (int64, bool, error) {
	v, found := f[key]
	if !found || v == nil {
		return 0, false, nil
	}
	if s, isStr := v.(string); isStr {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		v = s
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false, Invalid(entity, "%s must be a number, got %v", key, v)
	}
	return n, n != 0, nil
}

// Decimal returns the monetary/decimal value under key, zero and absent
// values report ok=false.
func (f Fields) Decimal(entity, key string) (decimal.Decimal, bool, error) {
	v, found := f[key]
	if !found || v == nil {
		return decimal.Zero, false, nil
	}
	var (
		d   decimal.Decimal
		err error
	)
	switch x := v.(type) {
	case decimal.Decimal:
		d = x
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return decimal.Zero, false, nil
		}
		d, err = decimal.NewFromString(x)
	case float64:
		d = decimal.NewFromFloat(x)
	case float32:
		d = decimal.NewFromFloat32(x)
	default:
		var n int64
		n, err = cast.ToInt64E(x)
		d = decimal.NewFromInt(n)
	}
	if err != nil {
		return decimal.Zero, false, Invalid(entity, "%s must be a number, got %v", key, v)
	}
	return d, !d.IsZero(), nil
}

// Time returns the timestamp under key, accepting time.Time or TimeLayout text.
func (f Fields) Time(entity, key string) (time.Time, bool, error) {
	v, found := f[key]
	if !found || v == nil {
		return time.Time{}, false, nil
	}
	if t, isTime := v.(time.Time); isTime {
		return t, !t.IsZero(), nil
	}
	s, ok := f.String(key)
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}, false, Invalid(entity, "%s is not a timestamp: %q", key, s)
	}
	return t, true, nil
}

// FormatTime renders t in TimeLayout; the zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseTime parses TimeLayout text in the local zone.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, strings.TrimSpace(s), time.Local)
}

// Now is the current time truncated to the stored precision.
func Now() time.Time {
	return time.Now().Truncate(time.Second)
}
