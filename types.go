//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// TypeRegistry maps the full type names QML asks for to Go struct types.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Types is the registry used by the process default callbacks.
var Types = NewTypeRegistry()

// RegisterType registers prototype's type in Types. See TypeRegistry.Register.
func RegisterType(name string, prototype any) (string, error) {
	return Types.Register(name, prototype)
}

// Register makes the struct type of prototype (a struct or a pointer to one)
// available under name and returns the name used. An empty name registers
// the type under "<package path>.<type name>".
//
// Registering the same type under the same name again is a no-op. Reusing a
// name for a different type fails with ErrTypeConflict.
func (r *TypeRegistry) Register(name string, prototype any) (string, error) {
	t := reflect.TypeOf(prototype)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: %v is not a struct", ErrUnsupportedKind, t)
	}
	if name == "" {
		name = goTypeName(t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[name]; ok {
		if existing == t {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s is %v", ErrTypeConflict, name, existing)
	}
	r.byName[name] = t
	if _, ok := r.byType[t]; !ok {
		r.byType[t] = name
	}
	return name, nil
}

// Lookup returns the struct type registered under name.
func (r *TypeRegistry) Lookup(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// NameOf returns the first name t was registered under.
func (r *TypeRegistry) NameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byType[t]
	return name, ok
}

// Names returns the registered names in sorted order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// typeNameOf returns the name QML sees for t: the registered name for
// registered structs (or pointers to them), otherwise the Go spelling.
func (r *TypeRegistry) typeNameOf(t reflect.Type) string {
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if name, ok := r.NameOf(base); ok {
		return name
	}
	return goTypeName(t)
}

func goTypeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
