//go:build !ios && !android && (amd64 || arm64)

package bindings

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Library is a loaded QmlNet native library. Its methods mirror the C
// accessor functions exported by the library.
//
// Every accessor treats a zero handle as invalid and does not cross into
// native code for it.
type Library struct {
	handle uintptr
	path   string
	loadMu sync.Mutex // serializes TypeInfoBeginLoad

	freeString       func(s *byte)
	destroy          func(h uintptr)
	registerCallback func(table unsafe.Pointer)
	logSetCallback   func(cb uintptr) // optional

	typeInfoCreate             func(name string) uintptr
	typeInfoFullTypeName       func(h uintptr) *byte
	typeInfoClassName          func(h uintptr) *byte
	typeInfoSetClassName       func(h uintptr, name string) bool
	typeInfoPrefVariantType    func(h uintptr, out *int32) bool
	typeInfoSetPrefVariantType func(h uintptr, vt int32) bool
	typeInfoAddMethod          func(h, method uintptr) bool
	typeInfoMethodCount        func(h uintptr) int32
	typeInfoMethod             func(h uintptr, index int32) uintptr
	typeInfoAddProperty        func(h, property uintptr) bool
	typeInfoPropertyCount      func(h uintptr) int32
	typeInfoProperty           func(h uintptr, index int32) uintptr
	typeInfoAddSignal          func(h, signal uintptr) bool
	typeInfoSignalCount        func(h uintptr) int32
	typeInfoSignal             func(h uintptr, index int32) uintptr
	typeInfoLoadState          func(h uintptr, loaded, loading *bool) bool
	typeInfoSetLoadState       func(h uintptr, loaded, loading bool) bool

	propertyInfoCreate       func(parent uintptr, name string, ret uintptr, canRead, canWrite bool, notify uintptr) uintptr
	propertyInfoParentType   func(h uintptr) uintptr
	propertyInfoName         func(h uintptr) *byte
	propertyInfoReturnType   func(h uintptr) uintptr
	propertyInfoCanRead      func(h uintptr, out *bool) bool
	propertyInfoCanWrite     func(h uintptr, out *bool) bool
	propertyInfoNotifySignal func(h uintptr) uintptr

	methodInfoCreate         func(parent uintptr, name string, ret uintptr) uintptr
	methodInfoParentType     func(h uintptr) uintptr
	methodInfoName           func(h uintptr) *byte
	methodInfoReturnType     func(h uintptr) uintptr
	methodInfoAddParameter   func(h uintptr, name string, typeInfo uintptr) bool
	methodInfoParameterCount func(h uintptr) int32
	methodInfoParameter      func(h uintptr, index int32, typeInfo *uintptr) *byte

	signalInfoCreate         func(parent uintptr, name string) uintptr
	signalInfoParentType     func(h uintptr) uintptr
	signalInfoName           func(h uintptr) *byte
	signalInfoAddParameter   func(h uintptr, vt int32) bool
	signalInfoParameterCount func(h uintptr) int32
	signalInfoParameter      func(h uintptr, index int32, out *int32) bool

	instanceCreate   func(gcHandle, typeInfo uintptr) uintptr
	instanceGCHandle func(h uintptr, out *uintptr) bool
	instanceTypeInfo func(h uintptr) uintptr

	variantCreate      func() uintptr
	variantType        func(h uintptr, out *int32) bool
	variantClear       func(h uintptr) bool
	variantSetBool     func(h uintptr, b bool) bool
	variantBool        func(h uintptr, out *bool) bool
	variantSetChar     func(h uintptr, c uint16) bool
	variantChar        func(h uintptr, out *uint16) bool
	variantSetInt      func(h uintptr, i int64) bool
	variantInt         func(h uintptr, out *int64) bool
	variantSetUInt     func(h uintptr, u uint64) bool
	variantUInt        func(h uintptr, out *uint64) bool
	variantSetDouble   func(h uintptr, d float64) bool
	variantDouble      func(h uintptr, out *float64) bool
	variantSetString   func(h uintptr, s string) bool
	variantString      func(h uintptr, out **byte) bool
	variantSetDateTime func(h uintptr, unixMilli int64) bool
	variantDateTime    func(h uintptr, out *int64) bool
	variantSetInstance func(h, instance uintptr) bool
	variantInstance    func(h uintptr) uintptr
}

// bind registers every export. Missing required symbols are collected and
// reported together.
func (l *Library) bind() error {
	var missing []string
	req := func(fptr any, name string) {
		defer func() {
			if recover() != nil { // purego.RegisterLibFunc panics if symbol is missing
				missing = append(missing, name)
			}
		}()
		purego.RegisterLibFunc(fptr, l.handle, name)
	}

	req(&l.freeString, "freeString")
	req(&l.destroy, "qmlnet_object_destroy")
	req(&l.registerCallback, "type_info_callbacks_registerCallbacks")
	registerOptionalLibFunc(&l.logSetCallback, l.handle, "qmlnet_log_set_callback")

	req(&l.typeInfoCreate, "type_info_create")
	req(&l.typeInfoFullTypeName, "type_info_getFullTypeName")
	req(&l.typeInfoClassName, "type_info_getClassName")
	req(&l.typeInfoSetClassName, "type_info_setClassName")
	req(&l.typeInfoPrefVariantType, "type_info_getPrefVariantType")
	req(&l.typeInfoSetPrefVariantType, "type_info_setPrefVariantType")
	req(&l.typeInfoAddMethod, "type_info_addMethod")
	req(&l.typeInfoMethodCount, "type_info_getMethodCount")
	req(&l.typeInfoMethod, "type_info_getMethodInfo")
	req(&l.typeInfoAddProperty, "type_info_addProperty")
	req(&l.typeInfoPropertyCount, "type_info_getPropertyCount")
	req(&l.typeInfoProperty, "type_info_getProperty")
	req(&l.typeInfoAddSignal, "type_info_addSignal")
	req(&l.typeInfoSignalCount, "type_info_getSignalCount")
	req(&l.typeInfoSignal, "type_info_getSignal")
	req(&l.typeInfoLoadState, "type_info_getLoadState")
	req(&l.typeInfoSetLoadState, "type_info_setLoadState")

	req(&l.propertyInfoCreate, "property_info_create")
	req(&l.propertyInfoParentType, "property_info_getParentType")
	req(&l.propertyInfoName, "property_info_getPropertyName")
	req(&l.propertyInfoReturnType, "property_info_getReturnType")
	req(&l.propertyInfoCanRead, "property_info_canRead")
	req(&l.propertyInfoCanWrite, "property_info_canWrite")
	req(&l.propertyInfoNotifySignal, "property_info_getNotifySignal")

	req(&l.methodInfoCreate, "method_info_create")
	req(&l.methodInfoParentType, "method_info_getParentType")
	req(&l.methodInfoName, "method_info_getMethodName")
	req(&l.methodInfoReturnType, "method_info_getReturnType")
	req(&l.methodInfoAddParameter, "method_info_addParameter")
	req(&l.methodInfoParameterCount, "method_info_getParameterCount")
	req(&l.methodInfoParameter, "method_info_getParameter")

	req(&l.signalInfoCreate, "signal_info_create")
	req(&l.signalInfoParentType, "signal_info_getParentType")
	req(&l.signalInfoName, "signal_info_getName")
	req(&l.signalInfoAddParameter, "signal_info_addParameter")
	req(&l.signalInfoParameterCount, "signal_info_getParameterCount")
	req(&l.signalInfoParameter, "signal_info_getParameter")

	req(&l.instanceCreate, "instance_create")
	req(&l.instanceGCHandle, "instance_getGCHandle")
	req(&l.instanceTypeInfo, "instance_getTypeInfo")

	req(&l.variantCreate, "net_variant_create")
	req(&l.variantType, "net_variant_getVariantType")
	req(&l.variantClear, "net_variant_clear")
	req(&l.variantSetBool, "net_variant_setBool")
	req(&l.variantBool, "net_variant_getBool")
	req(&l.variantSetChar, "net_variant_setChar")
	req(&l.variantChar, "net_variant_getChar")
	req(&l.variantSetInt, "net_variant_setLong")
	req(&l.variantInt, "net_variant_getLong")
	req(&l.variantSetUInt, "net_variant_setULong")
	req(&l.variantUInt, "net_variant_getULong")
	req(&l.variantSetDouble, "net_variant_setDouble")
	req(&l.variantDouble, "net_variant_getDouble")
	req(&l.variantSetString, "net_variant_setString")
	req(&l.variantString, "net_variant_getString")
	req(&l.variantSetDateTime, "net_variant_setDateTime")
	req(&l.variantDateTime, "net_variant_getDateTime")
	req(&l.variantSetInstance, "net_variant_setNetInstance")
	req(&l.variantInstance, "net_variant_getNetInstance")

	if len(missing) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrMissingSymbol, l.path, strings.Join(missing, ", "))
	}
	return nil
}

func registerOptionalLibFunc(fptr any, handle uintptr, name string) {
	defer func() { _ = recover() }()
	purego.RegisterLibFunc(fptr, handle, name)
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string { return l.path }

// RegisterCallbacks hands the callback table to the library. The library
// copies the table; table only needs to stay valid for the call.
func (l *Library) RegisterCallbacks(table unsafe.Pointer) {
	l.registerCallback(table)
}

// SetLogCallback installs cb as the native log sink. It reports false when the
// library does not export qmlnet_log_set_callback.
func (l *Library) SetLogCallback(cb uintptr) bool {
	if l.logSetCallback == nil {
		return false
	}
	l.logSetCallback(cb)
	return true
}

func (l *Library) Destroy(h uintptr) {
	if h == 0 {
		return
	}
	l.destroy(h)
}

// Type info

func (l *Library) TypeInfoCreate(fullTypeName string) uintptr {
	return l.typeInfoCreate(fullTypeName)
}

func (l *Library) TypeInfoFullTypeName(h uintptr) (string, bool) {
	if h == 0 {
		return "", false
	}
	return l.takeString(l.typeInfoFullTypeName(h))
}

func (l *Library) TypeInfoClassName(h uintptr) (string, bool) {
	if h == 0 {
		return "", false
	}
	return l.takeString(l.typeInfoClassName(h))
}

func (l *Library) TypeInfoSetClassName(h uintptr, name string) bool {
	return h != 0 && l.typeInfoSetClassName(h, name)
}

func (l *Library) TypeInfoPrefVariantType(h uintptr) (vt int32, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.typeInfoPrefVariantType(h, &vt)
	return vt, ok
}

func (l *Library) TypeInfoSetPrefVariantType(h uintptr, vt int32) bool {
	return h != 0 && l.typeInfoSetPrefVariantType(h, vt)
}

func (l *Library) TypeInfoAddMethod(h, method uintptr) bool {
	return h != 0 && method != 0 && l.typeInfoAddMethod(h, method)
}

func (l *Library) TypeInfoMethodCount(h uintptr) int32 {
	if h == 0 {
		return 0
	}
	return l.typeInfoMethodCount(h)
}

func (l *Library) TypeInfoMethod(h uintptr, index int32) uintptr {
	if h == 0 || index < 0 {
		return 0
	}
	return l.typeInfoMethod(h, index)
}

func (l *Library) TypeInfoAddProperty(h, property uintptr) bool {
	return h != 0 && property != 0 && l.typeInfoAddProperty(h, property)
}

func (l *Library) TypeInfoPropertyCount(h uintptr) int32 {
	if h == 0 {
		return 0
	}
	return l.typeInfoPropertyCount(h)
}

func (l *Library) TypeInfoProperty(h uintptr, index int32) uintptr {
	if h == 0 || index < 0 {
		return 0
	}
	return l.typeInfoProperty(h, index)
}

func (l *Library) TypeInfoAddSignal(h, signal uintptr) bool {
	return h != 0 && signal != 0 && l.typeInfoAddSignal(h, signal)
}

func (l *Library) TypeInfoSignalCount(h uintptr) int32 {
	if h == 0 {
		return 0
	}
	return l.typeInfoSignalCount(h)
}

func (l *Library) TypeInfoSignal(h uintptr, index int32) uintptr {
	if h == 0 || index < 0 {
		return 0
	}
	return l.typeInfoSignal(h, index)
}

func (l *Library) TypeInfoLoadState(h uintptr) (loaded, loading, ok bool) {
	if h == 0 {
		return false, false, false
	}
	ok = l.typeInfoLoadState(h, &loaded, &loading)
	return loaded, loading, ok
}

func (l *Library) TypeInfoSetLoadState(h uintptr, loaded, loading bool) bool {
	return h != 0 && l.typeInfoSetLoadState(h, loaded, loading)
}

// TypeInfoBeginLoad marks h as loading if it is neither loaded nor loading.
// The library exposes no compare-and-set, so claims made from Go are
// serialized on the Library.
func (l *Library) TypeInfoBeginLoad(h uintptr) bool {
	if h == 0 {
		return false
	}
	l.loadMu.Lock()
	defer l.loadMu.Unlock()
	var loaded, loading bool
	if !l.typeInfoLoadState(h, &loaded, &loading) || loaded || loading {
		return false
	}
	return l.typeInfoSetLoadState(h, false, true)
}

// Property info

func (l *Library) PropertyInfoCreate(parentType uintptr, name string, returnType uintptr, canRead, canWrite bool, notifySignal uintptr) uintptr {
	return l.propertyInfoCreate(parentType, name, returnType, canRead, canWrite, notifySignal)
}

func (l *Library) PropertyInfoParentType(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.propertyInfoParentType(h)
}

func (l *Library) PropertyInfoName(h uintptr) (string, bool) {
	if h == 0 {
		return "", false
	}
	return l.takeString(l.propertyInfoName(h))
}

func (l *Library) PropertyInfoReturnType(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.propertyInfoReturnType(h)
}

func (l *Library) PropertyInfoCanRead(h uintptr) (canRead, ok bool) {
	if h == 0 {
		return false, false
	}
	ok = l.propertyInfoCanRead(h, &canRead)
	return canRead, ok
}

func (l *Library) PropertyInfoCanWrite(h uintptr) (canWrite, ok bool) {
	if h == 0 {
		return false, false
	}
	ok = l.propertyInfoCanWrite(h, &canWrite)
	return canWrite, ok
}

func (l *Library) PropertyInfoNotifySignal(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.propertyInfoNotifySignal(h)
}

// Method info

func (l *Library) MethodInfoCreate(parentType uintptr, name string, returnType uintptr) uintptr {
	return l.methodInfoCreate(parentType, name, returnType)
}

func (l *Library) MethodInfoParentType(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.methodInfoParentType(h)
}

func (l *Library) MethodInfoName(h uintptr) (string, bool) {
	if h == 0 {
		return "", false
	}
	return l.takeString(l.methodInfoName(h))
}

func (l *Library) MethodInfoReturnType(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.methodInfoReturnType(h)
}

func (l *Library) MethodInfoAddParameter(h uintptr, name string, typeInfo uintptr) bool {
	return h != 0 && l.methodInfoAddParameter(h, name, typeInfo)
}

func (l *Library) MethodInfoParameterCount(h uintptr) int32 {
	if h == 0 {
		return 0
	}
	return l.methodInfoParameterCount(h)
}

func (l *Library) MethodInfoParameter(h uintptr, index int32) (name string, typeInfo uintptr, ok bool) {
	if h == 0 || index < 0 {
		return "", 0, false
	}
	name, ok = l.takeString(l.methodInfoParameter(h, index, &typeInfo))
	if !ok {
		return "", 0, false
	}
	return name, typeInfo, true
}

// Signal info

func (l *Library) SignalInfoCreate(parentType uintptr, name string) uintptr {
	return l.signalInfoCreate(parentType, name)
}

func (l *Library) SignalInfoParentType(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.signalInfoParentType(h)
}

func (l *Library) SignalInfoName(h uintptr) (string, bool) {
	if h == 0 {
		return "", false
	}
	return l.takeString(l.signalInfoName(h))
}

func (l *Library) SignalInfoAddParameter(h uintptr, vt int32) bool {
	return h != 0 && l.signalInfoAddParameter(h, vt)
}

func (l *Library) SignalInfoParameterCount(h uintptr) int32 {
	if h == 0 {
		return 0
	}
	return l.signalInfoParameterCount(h)
}

func (l *Library) SignalInfoParameter(h uintptr, index int32) (vt int32, ok bool) {
	if h == 0 || index < 0 {
		return 0, false
	}
	ok = l.signalInfoParameter(h, index, &vt)
	return vt, ok
}

// Instances

func (l *Library) InstanceCreate(gcHandle, typeInfo uintptr) uintptr {
	return l.instanceCreate(gcHandle, typeInfo)
}

func (l *Library) InstanceGCHandle(h uintptr) (gcHandle uintptr, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.instanceGCHandle(h, &gcHandle)
	return gcHandle, ok
}

func (l *Library) InstanceTypeInfo(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.instanceTypeInfo(h)
}

// Variants. Typed getters fail unless the variant holds that type.

func (l *Library) VariantCreate() uintptr { return l.variantCreate() }

func (l *Library) VariantType(h uintptr) (vt int32, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.variantType(h, &vt)
	return vt, ok
}

func (l *Library) VariantClear(h uintptr) bool {
	return h != 0 && l.variantClear(h)
}

func (l *Library) VariantSetBool(h uintptr, b bool) bool {
	return h != 0 && l.variantSetBool(h, b)
}

func (l *Library) VariantBool(h uintptr) (b, ok bool) {
	if h == 0 {
		return false, false
	}
	ok = l.variantBool(h, &b)
	return b, ok
}

func (l *Library) VariantSetChar(h uintptr, c uint16) bool {
	return h != 0 && l.variantSetChar(h, c)
}

func (l *Library) VariantChar(h uintptr) (c uint16, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.variantChar(h, &c)
	return c, ok
}

func (l *Library) VariantSetInt(h uintptr, i int64) bool {
	return h != 0 && l.variantSetInt(h, i)
}

func (l *Library) VariantInt(h uintptr) (i int64, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.variantInt(h, &i)
	return i, ok
}

func (l *Library) VariantSetUInt(h uintptr, u uint64) bool {
	return h != 0 && l.variantSetUInt(h, u)
}

func (l *Library) VariantUInt(h uintptr) (u uint64, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.variantUInt(h, &u)
	return u, ok
}

func (l *Library) VariantSetDouble(h uintptr, d float64) bool {
	return h != 0 && l.variantSetDouble(h, d)
}

func (l *Library) VariantDouble(h uintptr) (d float64, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.variantDouble(h, &d)
	return d, ok
}

func (l *Library) VariantSetString(h uintptr, s string) bool {
	return h != 0 && l.variantSetString(h, s)
}

func (l *Library) VariantString(h uintptr) (string, bool) {
	if h == 0 {
		return "", false
	}
	var p *byte
	if !l.variantString(h, &p) {
		return "", false
	}
	if p == nil {
		return "", true
	}
	return l.takeString(p)
}

func (l *Library) VariantSetDateTime(h uintptr, unixMilli int64) bool {
	return h != 0 && l.variantSetDateTime(h, unixMilli)
}

func (l *Library) VariantDateTime(h uintptr) (unixMilli int64, ok bool) {
	if h == 0 {
		return 0, false
	}
	ok = l.variantDateTime(h, &unixMilli)
	return unixMilli, ok
}

func (l *Library) VariantSetInstance(h, instance uintptr) bool {
	return h != 0 && instance != 0 && l.variantSetInstance(h, instance)
}

func (l *Library) VariantInstance(h uintptr) uintptr {
	if h == 0 {
		return 0
	}
	return l.variantInstance(h)
}
