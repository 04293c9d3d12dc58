//go:build !ios && !android && (amd64 || arm64)

package qmlnet

// NetSignalInfo is a view over a native signal description. Signal
// parameters are described by variant type only.
type NetSignalInfo struct {
	handle Handle
}

// NewNetSignalInfo allocates a native signal description attached to parent.
// Release it with Free.
func NewNetSignalInfo(parent NetTypeInfo, name string) NetSignalInfo {
	return NetSignalInfo{handle: HandleFromUintptr(native().SignalInfoCreate(parent.handle.Uintptr(), name))}
}

// NetSignalInfoFromHandle wraps a raw signal info handle.
func NetSignalInfoFromHandle(h Handle) NetSignalInfo {
	return NetSignalInfo{handle: h}
}

// Handle returns the underlying native handle.
func (s NetSignalInfo) Handle() Handle { return s.handle }

// Equal reports whether s and o view the same native object.
func (s NetSignalInfo) Equal(o NetSignalInfo) bool { return s.handle == o.handle }

// ParentType returns the type the signal belongs to.
func (s NetSignalInfo) ParentType() NetTypeInfo {
	return NetTypeInfoFromHandle(HandleFromUintptr(native().SignalInfoParentType(s.handle.Uintptr())))
}

// Name returns the signal name.
func (s NetSignalInfo) Name() string {
	name, _ := native().SignalInfoName(s.handle.Uintptr())
	return name
}

// AddParameter appends a parameter carried as vt.
func (s NetSignalInfo) AddParameter(vt VariantType) bool {
	return native().SignalInfoAddParameter(s.handle.Uintptr(), int32(vt))
}

// ParameterCount returns the number of parameters.
func (s NetSignalInfo) ParameterCount() int {
	return int(native().SignalInfoParameterCount(s.handle.Uintptr()))
}

// Parameter returns the variant type of the parameter at index.
func (s NetSignalInfo) Parameter(index int) (VariantType, bool) {
	vt, ok := native().SignalInfoParameter(s.handle.Uintptr(), int32(index))
	return VariantType(vt), ok
}
