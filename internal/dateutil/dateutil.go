// Package dateutil resolves the build date shown on a resume.
//
// Values are either literal text or "auto" forms that render the current
// date with a token format:
//
//	auto               -> DefaultDateFormat ("MMMM YYYY")
//	auto:DD/MM/YYYY    -> explicit tokens
//	auto:long          -> named preset
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used for a bare "auto". Resumes are dated by month.
const DefaultDateFormat = "MMMM YYYY"

// autoPrefix introduces a formatted current date.
const autoPrefix = "auto"

// dateTokens maps format tokens to Go layout components.
// Longer tokens come first so "MMMM" wins over "MM" and "M".
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets are named formats accepted after "auto:" (case-insensitive).
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"month":    "MMMM YYYY",
	"short":    "MMM YYYY",
}

// ParseDateFormat converts a token format to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in [brackets] is copied
// literally; any other character is kept as is.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		if tok, goLayout, ok := matchToken(format[i:]); ok {
			layout.WriteString(goLayout)
			i += len(tok)
			continue
		}

		layout.WriteByte(format[i])
		i++
	}

	return layout.String(), nil
}

// matchToken returns the longest token at the start of s.
func matchToken(s string) (token, layout string, ok bool) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.layout, true
		}
	}
	return "", "", false
}

// ResolveDate returns value unchanged unless it starts with "auto", in which
// case it formats t. The time is injected so callers resolve once per build.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, autoPrefix) {
		return value, nil
	}

	format := DefaultDateFormat
	switch {
	case lower == autoPrefix:
	case strings.HasPrefix(lower, autoPrefix+":"):
		format = value[len(autoPrefix)+1:]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := DatePresets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
