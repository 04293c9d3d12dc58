//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"testing"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/assert"
)

type stubCallbacks struct {
	typeName string
	handles  []uintptr
}

func (s *stubCallbacks) IsTypeValid(typeName string) bool {
	s.typeName = typeName
	return typeName == "app.Counter"
}

func (s *stubCallbacks) BuildTypeInfo(ti NetTypeInfo) {
	s.handles = append(s.handles, ti.Handle().Uintptr())
}

func (s *stubCallbacks) ReleaseGCHandle(h Handle) {
	s.handles = append(s.handles, h.Uintptr())
}

func (s *stubCallbacks) InstantiateType(typeName string) Handle {
	s.typeName = typeName
	return HandleFromUintptr(0x99)
}

func (s *stubCallbacks) ReadProperty(p NetPropertyInfo, i NetInstance, r NetVariant) {
	s.handles = append(s.handles, p.Handle().Uintptr(), i.Handle().Uintptr(), r.Handle().Uintptr())
}

func (s *stubCallbacks) WriteProperty(p NetPropertyInfo, i NetInstance, v NetVariant) {
	s.handles = append(s.handles, p.Handle().Uintptr(), i.Handle().Uintptr(), v.Handle().Uintptr())
}

func cstr(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func TestTrampolines_ForwardToProcessDispatcher(t *testing.T) {
	stub := &stubCallbacks{}
	restore := processRegistry.Swap(stub)
	defer restore()

	var c purego.CDecl
	assert.Equal(t, int32(1), isTypeValidTrampoline(c, cstr("app.Counter")))
	assert.Equal(t, "app.Counter", stub.typeName)
	assert.Equal(t, int32(0), isTypeValidTrampoline(c, cstr("app.Other")))

	assert.Equal(t, uintptr(0x99), instantiateTypeTrampoline(c, cstr("app.Counter")))

	buildTypeInfoTrampoline(c, 1)
	releaseGCHandleTrampoline(c, 2)
	readPropertyTrampoline(c, 3, 4, 5)
	writePropertyTrampoline(c, 6, 7, 8)
	assert.Equal(t, []uintptr{1, 2, 3, 4, 5, 6, 7, 8}, stub.handles)
}

func TestTrampolines_NilTypeName(t *testing.T) {
	stub := &stubCallbacks{typeName: "unset"}
	restore := processRegistry.Swap(stub)
	defer restore()

	assert.Equal(t, int32(0), isTypeValidTrampoline(purego.CDecl{}, nil))
	assert.Empty(t, stub.typeName)
}

func TestCallbacksTable_Layout(t *testing.T) {
	var table CallbacksTable
	assert.Equal(t, uintptr(6)*unsafe.Sizeof(uintptr(0)), unsafe.Sizeof(table))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(table.IsTypeValid))
	assert.Equal(t, 5*unsafe.Sizeof(uintptr(0)), unsafe.Offsetof(table.WriteProperty))
}
