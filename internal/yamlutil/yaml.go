// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Resume content is decoded into generic trees (maps, slices, scalars);
// configuration is decoded strictly into structs.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

func checkSize(data []byte) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if err := checkSize(data); err != nil {
		return err
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeDocument decodes a YAML document into a generic value.
// Blank or comment-only input decodes to nil without error.
func DecodeDocument(data []byte) (any, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return v, nil
}

// DecodeMapping decodes a YAML document whose root must be a mapping.
// Keys are converted to strings.
func DecodeMapping(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNilData
	}

	v, err := DecodeDocument(data)
	if err != nil {
		return nil, err
	}

	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[fmt.Sprint(k)] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, v)
	}
}
