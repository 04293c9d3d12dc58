//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import "github.com/obinnaokechukwu/qmlnet/internal/handles"

// NetInstance is a view over a native instance: the native-side stand-in for
// a Go object shown to QML. It pairs the object's GC handle with the type
// info describing it.
type NetInstance struct {
	handle Handle
}

// NewNetInstance allocates a native instance for the object retained under
// gcHandle. Release it with Free; the GC handle has its own lifetime.
func NewNetInstance(gcHandle Handle, typeInfo NetTypeInfo) NetInstance {
	h := native().InstanceCreate(gcHandle.Uintptr(), typeInfo.handle.Uintptr())
	return NetInstance{handle: HandleFromUintptr(h)}
}

// NetInstanceFromHandle wraps a raw instance handle.
func NetInstanceFromHandle(h Handle) NetInstance {
	return NetInstance{handle: h}
}

// Handle returns the underlying native handle.
func (i NetInstance) Handle() Handle { return i.handle }

// Equal reports whether i and o view the same native object.
func (i NetInstance) Equal(o NetInstance) bool { return i.handle == o.handle }

// GCHandle returns the handle of the retained Go object.
func (i NetInstance) GCHandle() Handle {
	gc, _ := native().InstanceGCHandle(i.handle.Uintptr())
	return HandleFromUintptr(gc)
}

// TypeInfo returns the type info describing the instance's object.
func (i NetInstance) TypeInfo() NetTypeInfo {
	return NetTypeInfoFromHandle(HandleFromUintptr(native().InstanceTypeInfo(i.handle.Uintptr())))
}

// Object returns the Go object behind the instance. ok is false when the
// instance handle is invalid or its GC handle was already released.
func (i NetInstance) Object() (any, bool) {
	gc, ok := native().InstanceGCHandle(i.handle.Uintptr())
	if !ok {
		return nil, false
	}
	return handles.Value(gc)
}

// RetainObject pins v for native code and returns its GC handle. The object
// stays reachable until ReleaseGCHandle is dispatched for the handle.
func RetainObject(v any) Handle {
	return HandleFromUintptr(handles.Alloc(v))
}

// RetainedObject returns the Go object retained under h.
func RetainedObject(h Handle) (any, bool) {
	return handles.Value(h.Uintptr())
}

// ReleaseRetained drops the reference taken by RetainObject and reports
// whether h was live. Native code reaches this through ReleaseGCHandle.
func ReleaseRetained(h Handle) bool {
	return handles.Release(h.Uintptr())
}

// GCHandleCount returns the number of Go objects currently retained for
// native code.
func GCHandleCount() int {
	return handles.Count()
}
