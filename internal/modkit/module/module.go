// Package module is the contract every API module satisfies, plus the
// plumbing to pull typed ports out of one module and hand them to another
package module

import (
	"reflect"
	"slices"

	phttp "deploytrack/internal/platform/net/http"
)

// Module mounts routes and exposes a port set for other modules.
// It lives apart from modkit so module packages can declare their own Ports
// type without an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds a T in m's port set: either the set itself or one of its
// exported struct fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || len(f.Index) != 1 {
			continue
		}
		if v, ok := rv.Field(f.Index[0]).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap code, where a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		var zero T
		panic("module: " + m.Name() + " exposes no " + reflect.TypeOf(&zero).Elem().String())
	}
	return v
}

// Set is an ordered group of modules with unique names
type Set struct {
	order  []Module
	byName map[string]Module
}

// NewSet adds ms in order
func NewSet(ms ...Module) *Set {
	s := &Set{byName: make(map[string]Module, len(ms))}
	s.Add(ms...)
	return s
}

// Add appends ms. A name already in the set panics
func (s *Set) Add(ms ...Module) {
	for _, m := range ms {
		name := m.Name()
		if _, dup := s.byName[name]; dup {
			panic("module: duplicate module " + name)
		}
		s.byName[name] = m
		s.order = append(s.order, m)
	}
}

// Get looks a module up by name
func (s *Set) Get(name string) (Module, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// All is the modules in the order they were added
func (s *Set) All() []Module { return slices.Clone(s.order) }

// Names lists the module names in order
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	for i, m := range s.order {
		out[i] = m.Name()
	}
	return out
}

// MountRoutes mounts every module on r in order
func (s *Set) MountRoutes(r phttp.Router) {
	for _, m := range s.order {
		m.MountRoutes(r)
	}
}

// PortsAs is PortsOf for the module called name in s
func PortsAs[T any](s *Set, name string) (T, bool) {
	m, ok := s.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}
