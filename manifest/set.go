package manifest

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/agiangrant/win32api"
)

// Set holds the bindings created from a manifest.
type Set struct {
	apis map[string]*win32api.API
}

// Bind creates a binding for every function in m against lib. It either binds all of
// them or none: bindings already made are closed when one fails. opts are applied
// after the manifest's own options.
func (m *Manifest) Bind(lib *win32api.Library, opts ...win32api.Option) (*Set, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	all := append(m.Options(), opts...)

	s := &Set{apis: make(map[string]*win32api.API, len(m.Functions))}
	for _, f := range m.Functions {
		api, err := win32api.New(f.NativeName(), f.Params, f.Return, lib, all...)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("function %s: %w", f.Name, err)
		}
		s.apis[f.Name] = api
	}
	win32api.Logger().Debug("manifest bound",
		zap.Stringer("library", lib),
		zap.Int("functions", len(s.apis)))
	return s, nil
}

// Get returns the binding declared under name.
func (s *Set) Get(name string) (*win32api.API, bool) {
	api, ok := s.apis[name]
	return api, ok
}

// Call invokes the binding declared under name.
func (s *Set) Call(name string, args ...any) (any, error) {
	api, ok := s.apis[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not declared in the manifest", win32api.ErrSymbolNotFound, name)
	}
	return api.Call(args...)
}

// Names returns the declared names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.apis))
	for name := range s.apis {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Set) Len() int { return len(s.apis) }

// Close releases every binding. The library stays open.
func (s *Set) Close() error {
	var errs []error
	for name, api := range s.apis {
		if err := api.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	s.apis = map[string]*win32api.API{}
	return errors.Join(errs...)
}
