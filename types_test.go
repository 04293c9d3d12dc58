//go:build !ios && !android && (amd64 || arm64)

package qmlnet_test

import (
	"reflect"
	"testing"

	"github.com/obinnaokechukwu/qmlnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type other struct{ N int }

func TestTypeRegistry_Register(t *testing.T) {
	r := qmlnet.NewTypeRegistry()

	name, err := r.Register("test.Counter", counter{})
	require.NoError(t, err)
	assert.Equal(t, "test.Counter", name)

	got, ok := r.Lookup("test.Counter")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(counter{}), got)

	n, ok := r.NameOf(reflect.TypeOf(counter{}))
	require.True(t, ok)
	assert.Equal(t, "test.Counter", n)
}

func TestTypeRegistry_PointerPrototype(t *testing.T) {
	r := qmlnet.NewTypeRegistry()

	_, err := r.Register("test.Child", &child{})
	require.NoError(t, err)
	got, ok := r.Lookup("test.Child")
	require.True(t, ok)
	assert.Equal(t, reflect.Struct, got.Kind())
}

func TestTypeRegistry_DerivedName(t *testing.T) {
	r := qmlnet.NewTypeRegistry()

	name, err := r.Register("", other{})
	require.NoError(t, err)
	assert.Equal(t, "github.com/obinnaokechukwu/qmlnet_test.other", name)
}

func TestTypeRegistry_Duplicates(t *testing.T) {
	r := qmlnet.NewTypeRegistry()

	_, err := r.Register("test.Counter", counter{})
	require.NoError(t, err)
	_, err = r.Register("test.Counter", &counter{})
	assert.NoError(t, err, "same type under same name is a no-op")

	_, err = r.Register("test.Counter", other{})
	assert.ErrorIs(t, err, qmlnet.ErrTypeConflict)

	got, _ := r.Lookup("test.Counter")
	assert.Equal(t, reflect.TypeOf(counter{}), got, "conflict must not replace the registration")
}

func TestTypeRegistry_RejectsNonStruct(t *testing.T) {
	r := qmlnet.NewTypeRegistry()

	for _, proto := range []any{42, "s", nil, []int{1}, new(int)} {
		_, err := r.Register("bad", proto)
		assert.ErrorIs(t, err, qmlnet.ErrUnsupportedKind, "%T", proto)
	}
	assert.Empty(t, r.Names())
}

func TestTypeRegistry_NamesSorted(t *testing.T) {
	r := qmlnet.NewTypeRegistry()
	_, _ = r.Register("b.Second", other{})
	_, _ = r.Register("a.First", counter{})

	assert.Equal(t, []string{"a.First", "b.Second"}, r.Names())
}

func TestHandle(t *testing.T) {
	var zero qmlnet.Handle
	assert.True(t, zero.IsZero())

	h := qmlnet.HandleFromUintptr(0x1f)
	assert.False(t, h.IsZero())
	assert.Equal(t, uintptr(0x1f), h.Uintptr())
	assert.Equal(t, "0x1f", h.String())
	assert.Equal(t, h, qmlnet.HandleFromUintptr(0x1f))
	assert.NotEqual(t, h, qmlnet.HandleFromUintptr(0x20))
}
