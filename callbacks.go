//go:build !ios && !android && (amd64 || arm64)

package qmlnet

// Callbacks is the fixed set of operations the native runtime invokes on the
// Go side. Arguments arrive as typed wrappers built fresh for each call.
//
// Implementations must not panic for valid handles. For malformed or foreign
// handles they should leave state untouched and return the zero result.
type Callbacks interface {
	// IsTypeValid reports whether typeName names a type Go can provide.
	IsTypeValid(typeName string) bool

	// BuildTypeInfo fills in the class name, properties, methods and
	// signals of a type info created by the native side.
	BuildTypeInfo(typeInfo NetTypeInfo)

	// ReleaseGCHandle releases a handle previously returned by
	// InstantiateType or otherwise retained for native code.
	ReleaseGCHandle(handle Handle)

	// InstantiateType creates a new instance of typeName and returns its GC
	// handle, or the zero Handle if the type cannot be created.
	InstantiateType(typeName string) Handle

	// ReadProperty reads property from instance into result.
	ReadProperty(property NetPropertyInfo, instance NetInstance, result NetVariant)

	// WriteProperty writes value into property of instance.
	WriteProperty(property NetPropertyInfo, instance NetInstance, value NetVariant)
}

// Operation names, used in logs and metric labels.
const (
	OpIsTypeValid     = "IsTypeValid"
	OpBuildTypeInfo   = "BuildTypeInfo"
	OpReleaseGCHandle = "ReleaseGCHandle"
	OpInstantiateType = "InstantiateType"
	OpReadProperty    = "ReadProperty"
	OpWriteProperty   = "WriteProperty"
)

// Operations lists every Callbacks operation in native table order.
var Operations = []string{
	OpIsTypeValid,
	OpBuildTypeInfo,
	OpReleaseGCHandle,
	OpInstantiateType,
	OpReadProperty,
	OpWriteProperty,
}
