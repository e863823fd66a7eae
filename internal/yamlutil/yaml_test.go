package yamlutil_test

// Notes:
// - MaxInputSize is a package variable; tests that change it are not
//   parallel and restore it with t.Cleanup.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdreport/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Strict decoding into structs
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		data        []byte
		dest        any
		wantErr     error
		wantErrText string
	}{
		{name: "valid YAML", data: []byte("name: test\ncount: 42\nenabled: true"), dest: &testConfig{}},
		{name: "nil data", data: nil, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("name: test"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "unknown field", data: []byte("name: test\nbogus: 1"), dest: &testConfig{}, wantErrText: "bogus"},
		{name: "invalid syntax", data: []byte("name: [unclosed"), dest: &testConfig{}, wantErrText: "yamlutil:"},
		{name: "type mismatch", data: []byte("count: many"), dest: &testConfig{}, wantErrText: "yamlutil:"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantErrText != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrText) {
					t.Errorf("UnmarshalStrict() error = %v, want containing %q", err, tt.wantErrText)
				}
			default:
				if err != nil {
					t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
				}
				cfg := tt.dest.(*testConfig)
				if cfg.Name != "test" || cfg.Count != 42 || !cfg.Enabled {
					t.Errorf("UnmarshalStrict() = %+v, want {test 42 true}", cfg)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReadStrict - Decoding from a reader
// ---------------------------------------------------------------------------

func TestReadStrict(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.ReadStrict(strings.NewReader("name: reader\n"), &cfg); err != nil {
		t.Fatalf("ReadStrict() unexpected error: %v", err)
	}
	if cfg.Name != "reader" {
		t.Errorf("Name = %q, want %q", cfg.Name, "reader")
	}
}

func TestReadStrict_Empty(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.ReadStrict(strings.NewReader(""), &cfg); !errors.Is(err, yamlutil.ErrNilData) {
		t.Errorf("ReadStrict() error = %v, want ErrNilData", err)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 32
	t.Cleanup(func() { yamlutil.MaxInputSize = original })

	big := "name: " + strings.Repeat("x", 64)

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte(big), &cfg); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
	if err := yamlutil.ReadStrict(strings.NewReader(big), &cfg); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("ReadStrict() error = %v, want ErrInputTooLarge", err)
	}

	small := "name: ok"
	if err := yamlutil.UnmarshalStrict([]byte(small), &cfg); err != nil {
		t.Errorf("UnmarshalStrict() under limit unexpected error: %v", err)
	}
}
