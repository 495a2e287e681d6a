package yamlutil_test

// Notes:
// - DecodeDocument returns goccy/go-yaml's generic shapes; we only assert on
//   the shapes templates rely on (string-keyed maps, []any, scalars).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-resume/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML with known fields only",
			data: []byte("name: strict\ncount: 10\nenabled: true"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.Name != "strict" {
					t.Errorf("Name = %q, want %q", cfg.Name, "strict")
				}
				if cfg.Count != 10 {
					t.Errorf("Count = %d, want %d", cfg.Count, 10)
				}
				if !cfg.Enabled {
					t.Error("Enabled = false, want true")
				}
			},
		},
		{
			name:    "unknown field causes error",
			data:    []byte("name: test\nunknown_field: value"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecodeDocument - Generic content decoding
// ---------------------------------------------------------------------------

func TestDecodeDocument(t *testing.T) {
	t.Parallel()

	t.Run("blank input decodes to nil", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "   \n\t\n"} {
			v, err := yamlutil.DecodeDocument([]byte(in))
			if err != nil {
				t.Fatalf("DecodeDocument(%q) error: %v", in, err)
			}
			if v != nil {
				t.Errorf("DecodeDocument(%q) = %#v, want nil", in, v)
			}
		}
	})

	t.Run("list of mappings", func(t *testing.T) {
		t.Parallel()

		data := []byte("- title: Engineer\n  highlights:\n    - a\n    - b\n- title: Intern\n")
		v, err := yamlutil.DecodeDocument(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		list, ok := v.([]any)
		if !ok {
			t.Fatalf("got %T, want []any", v)
		}
		if len(list) != 2 {
			t.Fatalf("len = %d, want 2", len(list))
		}
		first, ok := list[0].(map[string]any)
		if !ok {
			t.Fatalf("list[0] is %T, want map[string]any", list[0])
		}
		if first["title"] != "Engineer" {
			t.Errorf("title = %v, want Engineer", first["title"])
		}
		if hl, ok := first["highlights"].([]any); !ok || len(hl) != 2 {
			t.Errorf("highlights = %#v, want 2-element list", first["highlights"])
		}
	})

	t.Run("markup characters survive decoding", func(t *testing.T) {
		t.Parallel()

		v, err := yamlutil.DecodeDocument([]byte("summary: \"*Go* & _Rust_ at 100%\"\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m := v.(map[string]any)
		if m["summary"] != "*Go* & _Rust_ at 100%" {
			t.Errorf("summary = %q", m["summary"])
		}
	})

	t.Run("syntax error is prefixed", func(t *testing.T) {
		t.Parallel()

		_, err := yamlutil.DecodeDocument([]byte("key: [unclosed"))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %q, want prefix 'yamlutil:'", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestDecodeMapping - Root must be a mapping
// ---------------------------------------------------------------------------

func TestDecodeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantErr  error
		wantKeys []string
	}{
		{
			name:     "mapping root",
			data:     "personal:\n  name: Jane\nskills: []\n",
			wantKeys: []string{"personal", "skills"},
		},
		{
			name:    "sequence root",
			data:    "- a\n- b\n",
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "scalar root",
			data:    "just text",
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "blank input",
			data:    "\n\n",
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := yamlutil.DecodeMapping([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, k := range tt.wantKeys {
				if _, ok := m[k]; !ok {
					t.Errorf("missing key %q in %#v", k, m)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := []byte("name: " + strings.Repeat("x", 94))

	t.Run("UnmarshalStrict enforces limit", func(t *testing.T) {
		var cfg testConfig
		err := yamlutil.UnmarshalStrict(data, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("DecodeDocument enforces limit", func(t *testing.T) {
		_, err := yamlutil.DecodeDocument(data)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		_, err := yamlutil.DecodeDocument(data)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		msg := err.Error()
		if !strings.Contains(msg, "100 bytes") {
			t.Errorf("error should contain actual size, got: %s", msg)
		}
		if !strings.Contains(msg, "max 50") {
			t.Errorf("error should contain max size, got: %s", msg)
		}
	})
}
