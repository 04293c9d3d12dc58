//go:build !ios && !android && (amd64 || arm64)

// Package qmlnettest provides helpers for testing code that serves or
// exercises QmlNet callbacks without a native library.
package qmlnettest

import (
	"sync"
	"testing"

	"github.com/obinnaokechukwu/qmlnet"
)

// Call is one recorded invocation of a Recorder.
type Call struct {
	Op       string
	TypeName string          // IsTypeValid, InstantiateType
	Handles  []qmlnet.Handle // Handles of the arguments, in parameter order
}

// Recorder is a qmlnet.Callbacks that records every call and answers with
// the matching func field. A nil func field returns the zero result.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	IsTypeValidFunc     func(typeName string) bool
	BuildTypeInfoFunc   func(typeInfo qmlnet.NetTypeInfo)
	ReleaseGCHandleFunc func(handle qmlnet.Handle)
	InstantiateTypeFunc func(typeName string) qmlnet.Handle
	ReadPropertyFunc    func(property qmlnet.NetPropertyInfo, instance qmlnet.NetInstance, result qmlnet.NetVariant)
	WritePropertyFunc   func(property qmlnet.NetPropertyInfo, instance qmlnet.NetInstance, value qmlnet.NetVariant)

	mu    sync.Mutex
	calls []Call
}

var _ qmlnet.Callbacks = (*Recorder)(nil)

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns the recorded calls of op in order. An empty op returns every
// call.
func (r *Recorder) Calls(op string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times op was called.
func (r *Recorder) Count(op string) int {
	return len(r.Calls(op))
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

// IsTypeValid records the call and returns IsTypeValidFunc(typeName), or
// false when it is nil.
func (r *Recorder) IsTypeValid(typeName string) bool {
	r.record(Call{Op: qmlnet.OpIsTypeValid, TypeName: typeName})
	if r.IsTypeValidFunc == nil {
		return false
	}
	return r.IsTypeValidFunc(typeName)
}

// BuildTypeInfo records the call and runs BuildTypeInfoFunc if set.
func (r *Recorder) BuildTypeInfo(typeInfo qmlnet.NetTypeInfo) {
	r.record(Call{Op: qmlnet.OpBuildTypeInfo, Handles: []qmlnet.Handle{typeInfo.Handle()}})
	if r.BuildTypeInfoFunc != nil {
		r.BuildTypeInfoFunc(typeInfo)
	}
}

// ReleaseGCHandle records the call and runs ReleaseGCHandleFunc if set.
func (r *Recorder) ReleaseGCHandle(handle qmlnet.Handle) {
	r.record(Call{Op: qmlnet.OpReleaseGCHandle, Handles: []qmlnet.Handle{handle}})
	if r.ReleaseGCHandleFunc != nil {
		r.ReleaseGCHandleFunc(handle)
	}
}

// InstantiateType records the call and returns InstantiateTypeFunc(typeName),
// or the zero handle when it is nil.
func (r *Recorder) InstantiateType(typeName string) qmlnet.Handle {
	r.record(Call{Op: qmlnet.OpInstantiateType, TypeName: typeName})
	if r.InstantiateTypeFunc == nil {
		return qmlnet.Handle{}
	}
	return r.InstantiateTypeFunc(typeName)
}

// ReadProperty records the call and runs ReadPropertyFunc if set.
func (r *Recorder) ReadProperty(property qmlnet.NetPropertyInfo, instance qmlnet.NetInstance, result qmlnet.NetVariant) {
	r.record(Call{Op: qmlnet.OpReadProperty, Handles: []qmlnet.Handle{property.Handle(), instance.Handle(), result.Handle()}})
	if r.ReadPropertyFunc != nil {
		r.ReadPropertyFunc(property, instance, result)
	}
}

// WriteProperty records the call and runs WritePropertyFunc if set.
func (r *Recorder) WriteProperty(property qmlnet.NetPropertyInfo, instance qmlnet.NetInstance, value qmlnet.NetVariant) {
	r.record(Call{Op: qmlnet.OpWriteProperty, Handles: []qmlnet.Handle{property.Handle(), instance.Handle(), value.Handle()}})
	if r.WritePropertyFunc != nil {
		r.WritePropertyFunc(property, instance, value)
	}
}

// UseCallbacks registers impl process-wide for the duration of t and restores
// the default implementation when t finishes.
func UseCallbacks(t testing.TB, impl qmlnet.Callbacks) {
	t.Helper()
	qmlnet.RegisterCallbacks(impl)
	t.Cleanup(qmlnet.SetDefaultCallbacks)
}

// UseNative installs a fresh in-process native backend for the duration of t
// and returns it. The previous backend is reinstated when t finishes.
func UseNative(t testing.TB) qmlnet.Native {
	t.Helper()
	n := qmlnet.NewMemoryNative()
	prev := qmlnet.SetNative(n)
	t.Cleanup(func() { qmlnet.SetNative(prev) })
	return n
}

// UseDispatcher installs d as the process dispatcher for the duration of t.
func UseDispatcher(t testing.TB, d *qmlnet.Dispatcher) {
	t.Helper()
	prev := qmlnet.SetDispatcher(d)
	t.Cleanup(func() { qmlnet.SetDispatcher(prev) })
}
