//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"sync/atomic"

	"github.com/obinnaokechukwu/qmlnet/internal/bindings"
	"github.com/obinnaokechukwu/qmlnet/internal/memnative"
)

// Native is the native runtime that issues handles and answers accessor calls
// made through the typed wrappers. All values cross as raw native-ABI
// integers and strings.
//
// Getters report ok == false (or return a zero handle) when the runtime
// rejects the handle; they never panic on a foreign handle.
//
// Two implementations exist: the QmlNet shared library loaded by Init, and an
// in-process emulation that is active until Init succeeds.
type Native interface {
	// Destroy releases a native object created from Go. Objects still
	// referenced by other native objects live on until those drop them.
	Destroy(h uintptr)

	TypeInfoCreate(fullTypeName string) uintptr
	TypeInfoFullTypeName(h uintptr) (string, bool)
	TypeInfoClassName(h uintptr) (string, bool)
	TypeInfoSetClassName(h uintptr, name string) bool
	TypeInfoPrefVariantType(h uintptr) (int32, bool)
	TypeInfoSetPrefVariantType(h uintptr, vt int32) bool
	TypeInfoAddMethod(h, method uintptr) bool
	TypeInfoMethodCount(h uintptr) int32
	TypeInfoMethod(h uintptr, index int32) uintptr
	TypeInfoAddProperty(h, property uintptr) bool
	TypeInfoPropertyCount(h uintptr) int32
	TypeInfoProperty(h uintptr, index int32) uintptr
	TypeInfoAddSignal(h, signal uintptr) bool
	TypeInfoSignalCount(h uintptr) int32
	TypeInfoSignal(h uintptr, index int32) uintptr
	TypeInfoLoadState(h uintptr) (loaded, loading, ok bool)
	TypeInfoSetLoadState(h uintptr, loaded, loading bool) bool
	// TypeInfoBeginLoad atomically moves an unloaded, idle type info to
	// loading and reports whether this call did so.
	TypeInfoBeginLoad(h uintptr) bool

	PropertyInfoCreate(parentType uintptr, name string, returnType uintptr, canRead, canWrite bool, notifySignal uintptr) uintptr
	PropertyInfoParentType(h uintptr) uintptr
	PropertyInfoName(h uintptr) (string, bool)
	PropertyInfoReturnType(h uintptr) uintptr
	PropertyInfoCanRead(h uintptr) (bool, bool)
	PropertyInfoCanWrite(h uintptr) (bool, bool)
	PropertyInfoNotifySignal(h uintptr) uintptr

	MethodInfoCreate(parentType uintptr, name string, returnType uintptr) uintptr
	MethodInfoParentType(h uintptr) uintptr
	MethodInfoName(h uintptr) (string, bool)
	MethodInfoReturnType(h uintptr) uintptr
	MethodInfoAddParameter(h uintptr, name string, typeInfo uintptr) bool
	MethodInfoParameterCount(h uintptr) int32
	MethodInfoParameter(h uintptr, index int32) (name string, typeInfo uintptr, ok bool)

	SignalInfoCreate(parentType uintptr, name string) uintptr
	SignalInfoParentType(h uintptr) uintptr
	SignalInfoName(h uintptr) (string, bool)
	SignalInfoAddParameter(h uintptr, vt int32) bool
	SignalInfoParameterCount(h uintptr) int32
	SignalInfoParameter(h uintptr, index int32) (int32, bool)

	InstanceCreate(gcHandle, typeInfo uintptr) uintptr
	InstanceGCHandle(h uintptr) (uintptr, bool)
	InstanceTypeInfo(h uintptr) uintptr

	VariantCreate() uintptr
	VariantType(h uintptr) (int32, bool)
	VariantClear(h uintptr) bool
	VariantSetBool(h uintptr, b bool) bool
	VariantBool(h uintptr) (bool, bool)
	VariantSetChar(h uintptr, c uint16) bool
	VariantChar(h uintptr) (uint16, bool)
	VariantSetInt(h uintptr, i int64) bool
	VariantInt(h uintptr) (int64, bool)
	VariantSetUInt(h uintptr, u uint64) bool
	VariantUInt(h uintptr) (uint64, bool)
	VariantSetDouble(h uintptr, d float64) bool
	VariantDouble(h uintptr) (float64, bool)
	VariantSetString(h uintptr, s string) bool
	VariantString(h uintptr) (string, bool)
	VariantSetDateTime(h uintptr, unixMilli int64) bool
	VariantDateTime(h uintptr) (int64, bool)
	VariantSetInstance(h, instance uintptr) bool
	VariantInstance(h uintptr) uintptr
}

var (
	_ Native = (*memnative.Store)(nil)
	_ Native = (*bindings.Library)(nil)
)

type nativeSlot struct {
	n Native
}

var activeNative atomic.Pointer[nativeSlot]

func init() {
	activeNative.Store(&nativeSlot{n: newMemoryNative()})
}

// newMemoryNative returns an in-process backend that dispatches
// ReleaseGCHandle for every instance it frees, like the native runtime does
// when a NetInstance is destroyed.
func newMemoryNative() *memnative.Store {
	return memnative.New(memnative.WithRelease(func(gcHandle uintptr) {
		Dispatch().ReleaseGCHandle(gcHandle)
	}))
}

// native returns the backend the wrappers talk to.
func native() Native {
	return activeNative.Load().n
}

// CurrentNative returns the active native backend.
func CurrentNative() Native {
	return native()
}

// SetNative installs n as the native backend and returns the previous one.
// A nil n installs a fresh in-process emulation.
//
// Handles issued by one backend mean nothing to another, so swap backends
// only while no wrappers are in flight (at startup, or around a test).
func SetNative(n Native) Native {
	if n == nil {
		n = newMemoryNative()
	}
	prev := activeNative.Swap(&nativeSlot{n: n})
	return prev.n
}

// NewMemoryNative returns an in-process native backend, independent of the
// process-wide one.
func NewMemoryNative() Native {
	return newMemoryNative()
}

// Free releases a native object created from Go (NewNetTypeInfo,
// NewNetVariant, ...). Objects handed to another native object (a property
// added to a type info, an instance stored in a variant) stay alive until
// their holder lets go. When a native instance dies the runtime dispatches
// ReleaseGCHandle for its GC handle.
func Free(h Handle) {
	if h.IsZero() {
		return
	}
	native().Destroy(h.Uintptr())
}
