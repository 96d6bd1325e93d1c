// Package manifest declares native bindings in TOML files and binds them in one step.
//
//	library = "libc.so.6"
//
//	[[function]]
//	name = "abs"
//	params = "I"
//	return = "I"
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/win32api"
)

// Manifest is the parsed form of a binding file.
type Manifest struct {
	// Library is handed to the platform loader as is.
	Library string `toml:"library"`
	// Convention is "default", "stdcall" or empty for the process selection.
	Convention string     `toml:"convention,omitempty"`
	Functions  []Function `toml:"function"`
}

// Function declares one binding.
type Function struct {
	Name string `toml:"name"`
	// Symbol is the exported native name when it differs from Name.
	Symbol string `toml:"symbol,omitempty"`
	Params string `toml:"params"`
	Return string `toml:"return"`
}

// NativeName returns the symbol looked up in the library.
func (f Function) NativeName() string {
	if f.Symbol != "" {
		return f.Symbol
	}
	return f.Name
}

// Parse decodes a manifest. It does not validate it.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("manifest line %d column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Load reads and validates the manifest at path. A relative library path that exists
// next to the manifest is made absolute; any other value goes to the loader untouched.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Library != "" && !filepath.IsAbs(m.Library) {
		candidate := filepath.Join(filepath.Dir(path), m.Library)
		if _, err := os.Stat(candidate); err == nil {
			if abs, err := filepath.Abs(candidate); err == nil {
				m.Library = abs
			} else {
				m.Library = candidate
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Marshal encodes m back into TOML.
func (m *Manifest) Marshal() ([]byte, error) {
	return toml.Marshal(m)
}

// Validate reports every problem in m at once.
func (m *Manifest) Validate() error {
	var errs []error
	if m.Library == "" {
		errs = append(errs, errors.New("library is required"))
	}
	if m.Convention != "" {
		if _, ok := win32api.ParseConvention(m.Convention); !ok {
			errs = append(errs, fmt.Errorf("unknown convention %q", m.Convention))
		}
	}
	if len(m.Functions) == 0 {
		errs = append(errs, errors.New("no functions declared"))
	}

	seen := make(map[string]bool, len(m.Functions))
	for i, f := range m.Functions {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("function %d: name is required", i))
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("function %s: declared twice", f.Name))
		}
		seen[f.Name] = true

		if _, err := win32api.ResolveSequence(f.Params); err != nil {
			errs = append(errs, fmt.Errorf("function %s: params: %w", f.Name, err))
		}
		ret, err := win32api.ResolveSequence(f.Return)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("function %s: return: %w", f.Name, err))
		case len(ret) != 1:
			errs = append(errs, fmt.Errorf("function %s: %w: got %q", f.Name, win32api.ErrInvalidReturnSpec, f.Return))
		}
	}
	return errors.Join(errs...)
}

// Options returns the binding options implied by the manifest.
func (m *Manifest) Options() []win32api.Option {
	if c, ok := win32api.ParseConvention(m.Convention); ok {
		return []win32api.Option{win32api.WithConvention(c)}
	}
	return nil
}
