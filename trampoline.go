//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/qmlnet/internal/bindings"
)

// CallbacksTable is the C struct of function pointers handed to
// type_info_callbacks_registerCallbacks. Field order is the native layout.
type CallbacksTable struct {
	IsTypeValid     uintptr
	BuildTypeInfo   uintptr
	ReleaseGCHandle uintptr
	InstantiateType uintptr
	ReadProperty    uintptr
	WriteProperty   uintptr
}

var (
	trampolineOnce  sync.Once
	trampolineTable CallbacksTable
)

// Trampoline signatures:
//
//	int32_t   isTypeValid(const char *typeName)
//	void      buildTypeInfo(void *typeInfo)
//	void      releaseGCHandle(void *handle)
//	void     *instantiateType(const char *typeName)
//	void      readProperty(void *property, void *instance, void *result)
//	void      writeProperty(void *property, void *instance, void *value)

func isTypeValidTrampoline(_ purego.CDecl, typeName *byte) int32 {
	if Dispatch().IsTypeValid(goString(typeName)) {
		return 1
	}
	return 0
}

func buildTypeInfoTrampoline(_ purego.CDecl, typeInfo uintptr) {
	Dispatch().BuildTypeInfo(typeInfo)
}

func releaseGCHandleTrampoline(_ purego.CDecl, handle uintptr) {
	Dispatch().ReleaseGCHandle(handle)
}

func instantiateTypeTrampoline(_ purego.CDecl, typeName *byte) uintptr {
	return Dispatch().InstantiateType(goString(typeName))
}

func readPropertyTrampoline(_ purego.CDecl, property, instance, result uintptr) {
	Dispatch().ReadProperty(property, instance, result)
}

func writePropertyTrampoline(_ purego.CDecl, property, instance, value uintptr) {
	Dispatch().WriteProperty(property, instance, value)
}

// callbacksTable returns the table of C function pointers forwarding to the
// process dispatcher. The callbacks are created once per process.
func callbacksTable() *CallbacksTable {
	trampolineOnce.Do(func() {
		trampolineTable = CallbacksTable{
			IsTypeValid:     purego.NewCallback(isTypeValidTrampoline),
			BuildTypeInfo:   purego.NewCallback(buildTypeInfoTrampoline),
			ReleaseGCHandle: purego.NewCallback(releaseGCHandleTrampoline),
			InstantiateType: purego.NewCallback(instantiateTypeTrampoline),
			ReadProperty:    purego.NewCallback(readPropertyTrampoline),
			WriteProperty:   purego.NewCallback(writePropertyTrampoline),
		}
	})
	return &trampolineTable
}

// registerTrampolines hands the callback table to lib and routes native log
// messages into the package logger when lib supports it.
func registerTrampolines(lib *bindings.Library) (logForwarding bool) {
	table := *callbacksTable()
	lib.RegisterCallbacks(unsafe.Pointer(&table))
	return lib.SetLogCallback(nativeLogCallback())
}

func goString(p *byte) string {
	return bindings.GoString(p)
}
