//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import "sync/atomic"

// Registry holds the Callbacks implementation currently answering native
// calls. The slot is never empty: it starts out holding the registry's
// default implementation.
//
// The slot is a single atomic pointer. Registration is last-writer-wins;
// nothing is queued or merged. A caller that registers a custom
// implementation must restore the default on every exit path. Swap returns
// a restore func for use with defer.
type Registry struct {
	def     Callbacks
	current atomic.Pointer[callbacksSlot]
}

type callbacksSlot struct {
	impl      Callbacks
	isDefault bool
}

// NewRegistry returns a registry whose default implementation is def.
// A nil def uses the process default callbacks.
func NewRegistry(def Callbacks) *Registry {
	if def == nil {
		def = defaultCallbacks
	}
	r := &Registry{def: def}
	r.current.Store(&callbacksSlot{impl: def, isDefault: true})
	return r
}

// Register makes impl the active implementation. A nil impl restores the
// default.
func (r *Registry) Register(impl Callbacks) {
	if impl == nil {
		r.SetDefault()
		return
	}
	r.current.Store(&callbacksSlot{impl: impl})
}

// SetDefault restores the default implementation. Calling it when the default
// is already active has no further effect.
func (r *Registry) SetDefault() {
	if r.current.Load().isDefault {
		return
	}
	r.current.Store(&callbacksSlot{impl: r.def, isDefault: true})
}

// Current returns the active implementation. It is never nil.
func (r *Registry) Current() Callbacks {
	return r.current.Load().impl
}

// Default returns the implementation SetDefault restores.
func (r *Registry) Default() Callbacks {
	return r.def
}

// IsDefault reports whether the default implementation is active.
func (r *Registry) IsDefault() bool {
	return r.current.Load().isDefault
}

// Swap makes impl active and returns a func that reinstates whatever was
// active before.
//
//	restore := r.Swap(stub)
//	defer restore()
func (r *Registry) Swap(impl Callbacks) (restore func()) {
	slot := &callbacksSlot{impl: impl}
	if impl == nil {
		slot = &callbacksSlot{impl: r.def, isDefault: true}
	}
	prev := r.current.Swap(slot)
	return func() { r.current.Store(prev) }
}

var processRegistry = NewRegistry(nil)

// DefaultRegistry returns the process-wide registry consulted by the native
// entry points.
func DefaultRegistry() *Registry {
	return processRegistry
}

// RegisterCallbacks makes impl the process-wide implementation. A nil impl
// restores the default.
func RegisterCallbacks(impl Callbacks) {
	processRegistry.Register(impl)
}

// SetDefaultCallbacks restores the process-wide default implementation.
func SetDefaultCallbacks() {
	processRegistry.SetDefault()
}

// CurrentCallbacks returns the process-wide active implementation.
func CurrentCallbacks() Callbacks {
	return processRegistry.Current()
}
