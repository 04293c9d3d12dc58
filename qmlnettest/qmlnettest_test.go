//go:build !ios && !android && (amd64 || arm64)

package qmlnettest

import (
	"sync"
	"testing"

	"github.com/obinnaokechukwu/qmlnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ZeroResultsWithoutFuncs(t *testing.T) {
	r := &Recorder{}

	assert.False(t, r.IsTypeValid("Counter"))
	assert.True(t, r.InstantiateType("Counter").IsZero())
	r.ReleaseGCHandle(qmlnet.HandleFromUintptr(7))

	assert.Equal(t, 3, r.Count(""))
	assert.Equal(t, 1, r.Count(qmlnet.OpIsTypeValid))
	assert.Equal(t, "Counter", r.Calls(qmlnet.OpInstantiateType)[0].TypeName)
	assert.Equal(t, []qmlnet.Handle{qmlnet.HandleFromUintptr(7)}, r.Calls(qmlnet.OpReleaseGCHandle)[0].Handles)

	r.Reset()
	assert.Zero(t, r.Count(""))
}

func TestRecorder_Concurrent(t *testing.T) {
	r := &Recorder{IsTypeValidFunc: func(string) bool { return true }}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.IsTypeValid("t")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 16*50, r.Count(qmlnet.OpIsTypeValid))
}

func TestUseCallbacks_RestoresDefault(t *testing.T) {
	r := &Recorder{}

	t.Run("scoped", func(t *testing.T) {
		UseCallbacks(t, r)
		assert.Same(t, r, qmlnet.CurrentCallbacks())
		assert.False(t, qmlnet.DefaultRegistry().IsDefault())
	})

	assert.True(t, qmlnet.DefaultRegistry().IsDefault())
	assert.NotSame(t, r, qmlnet.CurrentCallbacks())
}

func TestUseNative_RestoresPrevious(t *testing.T) {
	before := qmlnet.CurrentNative()

	var inner qmlnet.Native
	t.Run("scoped", func(t *testing.T) {
		inner = UseNative(t)
		require.NotNil(t, inner)
		assert.Same(t, inner, qmlnet.CurrentNative())

		v := qmlnet.NewNetVariant()
		require.True(t, v.SetInt(42))
		got, ok := v.Int()
		require.True(t, ok)
		assert.Equal(t, int64(42), got)
	})

	assert.Same(t, before, qmlnet.CurrentNative())
	assert.NotSame(t, inner, qmlnet.CurrentNative())
}

func TestUseDispatcher_RestoresPrevious(t *testing.T) {
	before := qmlnet.Dispatch()

	t.Run("scoped", func(t *testing.T) {
		d := qmlnet.NewDispatcher(qmlnet.NewRegistry(&Recorder{IsTypeValidFunc: func(string) bool { return true }}))
		UseDispatcher(t, d)
		assert.Same(t, d, qmlnet.Dispatch())
		assert.True(t, qmlnet.Dispatch().IsTypeValid("anything"))
	})

	assert.Same(t, before, qmlnet.Dispatch())
}
