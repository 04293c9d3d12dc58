//go:build !ios && !android && (amd64 || arm64)

package qmlnet_test

import (
	"sync"
	"testing"

	"github.com/obinnaokechukwu/qmlnet"
	"github.com/obinnaokechukwu/qmlnet/qmlnettest"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_StartsWithDefault(t *testing.T) {
	def := &qmlnettest.Recorder{}
	r := qmlnet.NewRegistry(def)

	assert.True(t, r.IsDefault())
	assert.Same(t, def, r.Current())
	assert.Same(t, def, r.Default())
}

func TestRegistry_NilDefaultUsesProcessDefault(t *testing.T) {
	r := qmlnet.NewRegistry(nil)
	assert.Same(t, qmlnet.DefaultRegistry().Default(), r.Default())
	_, ok := r.Current().(*qmlnet.DefaultCallbacks)
	assert.True(t, ok)
}

func TestRegistry_RegisterIsLastWriterWins(t *testing.T) {
	r := qmlnet.NewRegistry(&qmlnettest.Recorder{})
	a, b := &qmlnettest.Recorder{}, &qmlnettest.Recorder{}

	r.Register(a)
	r.Register(b)
	assert.Same(t, b, r.Current())
	assert.False(t, r.IsDefault())

	r.Register(nil)
	assert.True(t, r.IsDefault())
}

func TestRegistry_RegisterDefaultExplicitlyIsNotDefaultState(t *testing.T) {
	def := &qmlnettest.Recorder{}
	r := qmlnet.NewRegistry(def)

	r.Register(def)
	assert.Same(t, def, r.Current())
	assert.False(t, r.IsDefault())
	r.SetDefault()
	assert.True(t, r.IsDefault())
}

func TestRegistry_SetDefaultIsIdempotent(t *testing.T) {
	def := &qmlnettest.Recorder{}
	r := qmlnet.NewRegistry(def)

	r.SetDefault()
	r.SetDefault()
	assert.True(t, r.IsDefault())
	assert.Same(t, def, r.Current())
}

func TestRegistry_SwapRestoresPrevious(t *testing.T) {
	def := &qmlnettest.Recorder{}
	a, b := &qmlnettest.Recorder{}, &qmlnettest.Recorder{}
	r := qmlnet.NewRegistry(def)

	r.Register(a)
	restore := r.Swap(b)
	assert.Same(t, b, r.Current())
	restore()
	assert.Same(t, a, r.Current())

	restore = r.Swap(nil)
	assert.True(t, r.IsDefault())
	restore()
	assert.Same(t, a, r.Current())
	assert.False(t, r.IsDefault())
}

func TestRegistry_ProcessWideFunctions(t *testing.T) {
	rec := &qmlnettest.Recorder{}
	qmlnet.RegisterCallbacks(rec)
	t.Cleanup(qmlnet.SetDefaultCallbacks)

	assert.Same(t, rec, qmlnet.CurrentCallbacks())
	qmlnet.SetDefaultCallbacks()
	assert.NotSame(t, rec, qmlnet.CurrentCallbacks())
	assert.True(t, qmlnet.DefaultRegistry().IsDefault())
}

func TestRegistry_ConcurrentReadersSeeWholeImplementations(t *testing.T) {
	def := &qmlnettest.Recorder{}
	custom := &qmlnettest.Recorder{}
	r := qmlnet.NewRegistry(def)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				c := r.Current()
				if c != qmlnet.Callbacks(def) && c != qmlnet.Callbacks(custom) {
					t.Errorf("unexpected implementation %T", c)
					return
				}
			}
		}()
	}
	for j := 0; j < 500; j++ {
		r.Register(custom)
		r.SetDefault()
	}
	wg.Wait()
	assert.True(t, r.IsDefault())
}
