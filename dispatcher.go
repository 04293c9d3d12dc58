//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrorHandler receives panics recovered at the native boundary.
type ErrorHandler func(err *DispatchError)

// Dispatcher adapts raw native calls to the active Callbacks implementation.
//
// Each entry point takes only handle-sized integers and strings, wraps them
// into typed views, calls the implementation from its Registry, and returns
// the result as a raw value. A panic in the implementation never unwinds into
// native code: it is recovered, reported, and the operation returns its zero
// result (false, a zero handle, or nothing).
type Dispatcher struct {
	registry *Registry
	logger   *zap.Logger
	metrics  *Metrics
	onError  ErrorHandler
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchLogger sets the logger panics are reported to. The default is
// the package logger at the time of the panic.
func WithDispatchLogger(l *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics records every dispatch in m.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithErrorHandler calls fn with every recovered panic, after it is logged.
func WithErrorHandler(fn ErrorHandler) DispatcherOption {
	return func(d *Dispatcher) { d.onError = fn }
}

// NewDispatcher returns a dispatcher reading implementations from r.
// A nil r uses the process registry.
func NewDispatcher(r *Registry, opts ...DispatcherOption) *Dispatcher {
	if r == nil {
		r = processRegistry
	}
	d := &Dispatcher{registry: r}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher reads from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// IsTypeValid reports whether the active callbacks know typeName.
// A panic yields false.
func (d *Dispatcher) IsTypeValid(typeName string) (valid bool) {
	defer d.finish(OpIsTypeValid, time.Now())
	return d.registry.Current().IsTypeValid(typeName)
}

// BuildTypeInfo asks the active callbacks to populate the type info behind
// typeInfo.
func (d *Dispatcher) BuildTypeInfo(typeInfo uintptr) {
	defer d.finish(OpBuildTypeInfo, time.Now())
	d.registry.Current().BuildTypeInfo(NetTypeInfoFromHandle(HandleFromUintptr(typeInfo)))
}

// ReleaseGCHandle passes handle to the active callbacks for release.
func (d *Dispatcher) ReleaseGCHandle(handle uintptr) {
	defer d.finish(OpReleaseGCHandle, time.Now())
	d.registry.Current().ReleaseGCHandle(HandleFromUintptr(handle))
}

// InstantiateType creates an object of typeName and returns its GC handle,
// or 0 when the callbacks fail or panic.
func (d *Dispatcher) InstantiateType(typeName string) (handle uintptr) {
	defer d.finish(OpInstantiateType, time.Now())
	return d.registry.Current().InstantiateType(typeName).Uintptr()
}

// ReadProperty reads property of instance into the result variant.
func (d *Dispatcher) ReadProperty(property, instance, result uintptr) {
	defer d.finish(OpReadProperty, time.Now())
	d.registry.Current().ReadProperty(
		NetPropertyInfoFromHandle(HandleFromUintptr(property)),
		NetInstanceFromHandle(HandleFromUintptr(instance)),
		NetVariantFromHandle(HandleFromUintptr(result)),
	)
}

// WriteProperty writes the value variant into property of instance.
func (d *Dispatcher) WriteProperty(property, instance, value uintptr) {
	defer d.finish(OpWriteProperty, time.Now())
	d.registry.Current().WriteProperty(
		NetPropertyInfoFromHandle(HandleFromUintptr(property)),
		NetInstanceFromHandle(HandleFromUintptr(instance)),
		NetVariantFromHandle(HandleFromUintptr(value)),
	)
}

// finish must be deferred directly by each entry point so recover applies.
// Named results left unassigned by a panic stay at their zero value, which is
// the sentinel for every operation.
func (d *Dispatcher) finish(op string, start time.Time) {
	d.metrics.observe(op, time.Since(start))
	r := recover()
	if r == nil {
		return
	}
	d.metrics.recovered(op)
	err := &DispatchError{Op: op, Value: r}
	l := d.logger
	if l == nil {
		l = Logger()
	}
	l.Error("callback panicked", zap.String("op", op), zap.Any("panic", r), zap.Stack("stack"))
	if d.onError != nil {
		d.reportSafely(err)
	}
}

// reportSafely keeps a panicking error handler from escaping finish.
func (d *Dispatcher) reportSafely(err *DispatchError) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("error handler panicked", zap.String("op", err.Op), zap.Any("panic", r))
		}
	}()
	d.onError(err)
}

var processDispatcher atomic.Pointer[Dispatcher]

func init() {
	processDispatcher.Store(NewDispatcher(processRegistry))
}

// Dispatch returns the dispatcher the native entry points forward to.
func Dispatch() *Dispatcher {
	return processDispatcher.Load()
}

// SetDispatcher replaces the process dispatcher, for example to attach
// metrics or an error handler. A nil d installs a plain dispatcher over the
// process registry. It returns the previous dispatcher.
func SetDispatcher(d *Dispatcher) *Dispatcher {
	if d == nil {
		d = NewDispatcher(processRegistry)
	}
	return processDispatcher.Swap(d)
}
