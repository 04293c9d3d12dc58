//go:build !ios && !android && (amd64 || arm64)

package qmlnet

// NetTypeInfo is a view over a native type description: the metadata QML
// needs to expose a Go type (class name, properties, methods, signals).
//
// A NetTypeInfo owns nothing; it is only the handle. Accessors ask the native
// runtime each time they are called.
type NetTypeInfo struct {
	handle Handle
}

// NewNetTypeInfo allocates a native type info for fullTypeName. The result
// starts unloaded; EnsureLoaded populates it. Release it with Free.
func NewNetTypeInfo(fullTypeName string) NetTypeInfo {
	return NetTypeInfo{handle: HandleFromUintptr(native().TypeInfoCreate(fullTypeName))}
}

// NetTypeInfoFromHandle wraps a raw type info handle. It never fails; an
// invalid handle surfaces when an accessor is used.
func NetTypeInfoFromHandle(h Handle) NetTypeInfo {
	return NetTypeInfo{handle: h}
}

// Handle returns the underlying native handle.
func (ti NetTypeInfo) Handle() Handle { return ti.handle }

// Equal reports whether ti and o view the same native object.
func (ti NetTypeInfo) Equal(o NetTypeInfo) bool { return ti.handle == o.handle }

// FullTypeName returns the name the type was registered under.
// It returns "" when the handle is not a live type info.
func (ti NetTypeInfo) FullTypeName() string {
	name, _ := native().TypeInfoFullTypeName(ti.handle.Uintptr())
	return name
}

// ClassName returns the short class name exposed to QML.
func (ti NetTypeInfo) ClassName() string {
	name, _ := native().TypeInfoClassName(ti.handle.Uintptr())
	return name
}

// SetClassName sets the class name exposed to QML.
func (ti NetTypeInfo) SetClassName(name string) bool {
	return native().TypeInfoSetClassName(ti.handle.Uintptr(), name)
}

// PrefVariantType is the variant type QML should use when boxing values of
// this type.
func (ti NetTypeInfo) PrefVariantType() VariantType {
	vt, _ := native().TypeInfoPrefVariantType(ti.handle.Uintptr())
	return VariantType(vt)
}

// SetPrefVariantType sets the variant type used to box values of this type.
func (ti NetTypeInfo) SetPrefVariantType(vt VariantType) bool {
	return native().TypeInfoSetPrefVariantType(ti.handle.Uintptr(), int32(vt))
}

// AddMethod appends m to the type's methods. The type info keeps m alive,
// so the caller may Free its own handle afterwards.
func (ti NetTypeInfo) AddMethod(m NetMethodInfo) bool {
	return native().TypeInfoAddMethod(ti.handle.Uintptr(), m.handle.Uintptr())
}

// MethodCount returns the number of methods added so far.
func (ti NetTypeInfo) MethodCount() int {
	return int(native().TypeInfoMethodCount(ti.handle.Uintptr()))
}

// Method returns the method at index, or a zero-handle wrapper when index
// is out of range.
func (ti NetTypeInfo) Method(index int) NetMethodInfo {
	return NetMethodInfoFromHandle(HandleFromUintptr(native().TypeInfoMethod(ti.handle.Uintptr(), int32(index))))
}

// AddProperty appends p to the type's properties and keeps it alive.
func (ti NetTypeInfo) AddProperty(p NetPropertyInfo) bool {
	return native().TypeInfoAddProperty(ti.handle.Uintptr(), p.handle.Uintptr())
}

// PropertyCount returns the number of properties added so far.
func (ti NetTypeInfo) PropertyCount() int {
	return int(native().TypeInfoPropertyCount(ti.handle.Uintptr()))
}

// Property returns the property at index, or a zero-handle wrapper when
// index is out of range.
func (ti NetTypeInfo) Property(index int) NetPropertyInfo {
	return NetPropertyInfoFromHandle(HandleFromUintptr(native().TypeInfoProperty(ti.handle.Uintptr(), int32(index))))
}

// AddSignal appends s to the type's signals and keeps it alive.
func (ti NetTypeInfo) AddSignal(s NetSignalInfo) bool {
	return native().TypeInfoAddSignal(ti.handle.Uintptr(), s.handle.Uintptr())
}

// SignalCount returns the number of signals added so far.
func (ti NetTypeInfo) SignalCount() int {
	return int(native().TypeInfoSignalCount(ti.handle.Uintptr()))
}

// Signal returns the signal at index, or a zero-handle wrapper when index
// is out of range.
func (ti NetTypeInfo) Signal(index int) NetSignalInfo {
	return NetSignalInfoFromHandle(HandleFromUintptr(native().TypeInfoSignal(ti.handle.Uintptr(), int32(index))))
}

// IsLoaded reports whether BuildTypeInfo has completed for this type info.
func (ti NetTypeInfo) IsLoaded() bool {
	loaded, _, _ := native().TypeInfoLoadState(ti.handle.Uintptr())
	return loaded
}

// IsLoading reports whether BuildTypeInfo is currently running for it.
func (ti NetTypeInfo) IsLoading() bool {
	_, loading, _ := native().TypeInfoLoadState(ti.handle.Uintptr())
	return loading
}

// EnsureLoaded populates the type info through the process dispatcher the
// first time it is called. Only the caller that moves the type info to
// loading runs BuildTypeInfo; any other call, including one made while
// loading is in progress (a type referring to itself), returns immediately.
func (ti NetTypeInfo) EnsureLoaded() {
	n := native()
	h := ti.handle.Uintptr()
	if !n.TypeInfoBeginLoad(h) {
		return
	}
	Dispatch().BuildTypeInfo(h)
	n.TypeInfoSetLoadState(h, true, false)
}
