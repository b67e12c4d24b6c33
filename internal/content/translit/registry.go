package translit

import (
	"fmt"
	"strings"
)

const (
	// NameTable selects the built-in table only.
	NameTable = "table"
	// NameLibrary puts gosimple/slug in front of the table.
	NameLibrary = "slug"
)

// Registry keeps a mapping from strategy names to converters.
type Registry struct {
	converters map[string]Converter
}

// NewRegistry returns a registry with the built-in strategies registered.
func NewRegistry() *Registry {
	r := &Registry{converters: map[string]Converter{}}
	r.Register(NameTable, TableConverter{})
	r.Register(NameLibrary, LibraryConverter{})
	return r
}

// Register adds or replaces a converter.
func (r *Registry) Register(name string, c Converter) {
	if r.converters == nil {
		r.converters = map[string]Converter{}
	}
	r.converters[strings.ToLower(strings.TrimSpace(name))] = c
}

// Resolve returns a converter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Converter, error) {
	if c, ok := r.converters[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("transliterator %q is not registered", name)
}

// Build assembles a Transliterator for the named strategy. Unknown names
// still yield a working table-only Transliterator alongside the error.
func (r *Registry) Build(name string) (*Transliterator, error) {
	if name == "" || strings.EqualFold(name, NameTable) {
		return New(), nil
	}
	c, err := r.Resolve(name)
	if err != nil {
		return New(), err
	}
	return New(WithConverter(c)), nil
}
