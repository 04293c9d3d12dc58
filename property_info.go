//go:build !ios && !android && (amd64 || arm64)

package qmlnet

// NetPropertyInfo is a view over a native property description.
type NetPropertyInfo struct {
	handle Handle
}

// NewNetPropertyInfo allocates a native property description attached to
// parent. notify may be the zero signal for properties without a change
// notification.
func NewNetPropertyInfo(parent NetTypeInfo, name string, returnType NetTypeInfo, canRead, canWrite bool, notify NetSignalInfo) NetPropertyInfo {
	h := native().PropertyInfoCreate(parent.handle.Uintptr(), name, returnType.handle.Uintptr(), canRead, canWrite, notify.handle.Uintptr())
	return NetPropertyInfo{handle: HandleFromUintptr(h)}
}

// NetPropertyInfoFromHandle wraps a raw property info handle.
func NetPropertyInfoFromHandle(h Handle) NetPropertyInfo {
	return NetPropertyInfo{handle: h}
}

// Handle returns the underlying native handle.
func (p NetPropertyInfo) Handle() Handle { return p.handle }

// Equal reports whether p and o view the same native object.
func (p NetPropertyInfo) Equal(o NetPropertyInfo) bool { return p.handle == o.handle }

// ParentType returns the type the property belongs to.
func (p NetPropertyInfo) ParentType() NetTypeInfo {
	return NetTypeInfoFromHandle(HandleFromUintptr(native().PropertyInfoParentType(p.handle.Uintptr())))
}

// Name returns the property name, or "" when the handle is not a live
// property info.
func (p NetPropertyInfo) Name() string {
	name, _ := native().PropertyInfoName(p.handle.Uintptr())
	return name
}

// ReturnType returns the type of the property value.
func (p NetPropertyInfo) ReturnType() NetTypeInfo {
	return NetTypeInfoFromHandle(HandleFromUintptr(native().PropertyInfoReturnType(p.handle.Uintptr())))
}

// CanRead reports whether QML may read the property.
func (p NetPropertyInfo) CanRead() bool {
	v, _ := native().PropertyInfoCanRead(p.handle.Uintptr())
	return v
}

// CanWrite reports whether QML may assign the property.
func (p NetPropertyInfo) CanWrite() bool {
	v, _ := native().PropertyInfoCanWrite(p.handle.Uintptr())
	return v
}

// NotifySignal returns the signal raised when the property changes. The
// result wraps a zero handle when there is none.
func (p NetPropertyInfo) NotifySignal() NetSignalInfo {
	return NetSignalInfoFromHandle(HandleFromUintptr(native().PropertyInfoNotifySignal(p.handle.Uintptr())))
}
