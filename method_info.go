//go:build !ios && !android && (amd64 || arm64)

package qmlnet

// NetMethodInfo is a view over a native method description.
type NetMethodInfo struct {
	handle Handle
}

// NewNetMethodInfo allocates a native method description. returnType is the
// zero NetTypeInfo for methods without a result.
func NewNetMethodInfo(parent NetTypeInfo, name string, returnType NetTypeInfo) NetMethodInfo {
	h := native().MethodInfoCreate(parent.handle.Uintptr(), name, returnType.handle.Uintptr())
	return NetMethodInfo{handle: HandleFromUintptr(h)}
}

// NetMethodInfoFromHandle wraps a raw method info handle.
func NetMethodInfoFromHandle(h Handle) NetMethodInfo {
	return NetMethodInfo{handle: h}
}

// Handle returns the underlying native handle.
func (m NetMethodInfo) Handle() Handle { return m.handle }

// Equal reports whether m and o view the same native object.
func (m NetMethodInfo) Equal(o NetMethodInfo) bool { return m.handle == o.handle }

// ParentType returns the type the method belongs to.
func (m NetMethodInfo) ParentType() NetTypeInfo {
	return NetTypeInfoFromHandle(HandleFromUintptr(native().MethodInfoParentType(m.handle.Uintptr())))
}

// Name returns the method name.
func (m NetMethodInfo) Name() string {
	name, _ := native().MethodInfoName(m.handle.Uintptr())
	return name
}

// ReturnType returns the result type, or a zero-handle wrapper for methods
// without a result.
func (m NetMethodInfo) ReturnType() NetTypeInfo {
	return NetTypeInfoFromHandle(HandleFromUintptr(native().MethodInfoReturnType(m.handle.Uintptr())))
}

// AddParameter appends a named parameter of type typeInfo.
func (m NetMethodInfo) AddParameter(name string, typeInfo NetTypeInfo) bool {
	return native().MethodInfoAddParameter(m.handle.Uintptr(), name, typeInfo.handle.Uintptr())
}

// ParameterCount returns the number of parameters.
func (m NetMethodInfo) ParameterCount() int {
	return int(native().MethodInfoParameterCount(m.handle.Uintptr()))
}

// Parameter returns the name and type of the parameter at index.
// ok is false when index is out of range.
func (m NetMethodInfo) Parameter(index int) (name string, typeInfo NetTypeInfo, ok bool) {
	name, h, ok := native().MethodInfoParameter(m.handle.Uintptr(), int32(index))
	return name, NetTypeInfoFromHandle(HandleFromUintptr(h)), ok
}
