//go:build !ios && !android && (amd64 || arm64)

package qmlnet_test

import (
	"sync"
	"testing"

	"github.com/obinnaokechukwu/qmlnet"
	"github.com/obinnaokechukwu/qmlnet/qmlnettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetTypeInfo_Fields(t *testing.T) {
	qmlnettest.UseNative(t)

	ti := qmlnet.NewNetTypeInfo("app.Counter")
	assert.Equal(t, "app.Counter", ti.FullTypeName())
	assert.Empty(t, ti.ClassName())
	assert.Equal(t, qmlnet.VariantInvalid, ti.PrefVariantType())

	require.True(t, ti.SetClassName("Counter"))
	require.True(t, ti.SetPrefVariantType(qmlnet.VariantObject))
	assert.Equal(t, "Counter", ti.ClassName())
	assert.Equal(t, qmlnet.VariantObject, ti.PrefVariantType())
}

func TestNetTypeInfo_Members(t *testing.T) {
	qmlnettest.UseNative(t)

	ti := qmlnet.NewNetTypeInfo("app.Counter")
	intType := qmlnet.NewNetTypeInfo("int64")

	sig := qmlnet.NewNetSignalInfo(ti, "countChanged")
	require.True(t, sig.AddParameter(qmlnet.VariantInt))
	require.True(t, ti.AddSignal(sig))

	prop := qmlnet.NewNetPropertyInfo(ti, "count", intType, true, false, sig)
	require.True(t, ti.AddProperty(prop))

	m := qmlnet.NewNetMethodInfo(ti, "add", intType)
	require.True(t, m.AddParameter("n", intType))
	require.True(t, ti.AddMethod(m))

	require.Equal(t, 1, ti.PropertyCount())
	got := ti.Property(0)
	assert.Equal(t, prop, got)
	assert.Equal(t, "count", got.Name())
	assert.True(t, got.CanRead())
	assert.False(t, got.CanWrite())
	assert.Equal(t, sig, got.NotifySignal())
	assert.Equal(t, ti, got.ParentType())
	assert.Equal(t, intType, got.ReturnType())

	require.Equal(t, 1, ti.MethodCount())
	assert.Equal(t, "add", ti.Method(0).Name())
	assert.Equal(t, ti, ti.Method(0).ParentType())
	name, pt, ok := ti.Method(0).Parameter(0)
	require.True(t, ok)
	assert.Equal(t, "n", name)
	assert.Equal(t, intType, pt)
	_, _, ok = ti.Method(0).Parameter(1)
	assert.False(t, ok)

	require.Equal(t, 1, ti.SignalCount())
	assert.Equal(t, ti, ti.Signal(0).ParentType())
	_, ok = ti.Signal(0).Parameter(3)
	assert.False(t, ok)

	assert.True(t, ti.Property(5).Handle().IsZero())
	assert.True(t, ti.Method(-1).Handle().IsZero())
}

func TestNetTypeInfo_AddRejectsWrongKind(t *testing.T) {
	qmlnettest.UseNative(t)

	ti := qmlnet.NewNetTypeInfo("app.Counter")
	other := qmlnet.NewNetTypeInfo("app.Other")

	assert.False(t, ti.AddProperty(qmlnet.NetPropertyInfoFromHandle(other.Handle())))
	assert.False(t, ti.AddMethod(qmlnet.NetMethodInfoFromHandle(other.Handle())))
	assert.False(t, ti.AddSignal(qmlnet.NetSignalInfoFromHandle(other.Handle())))
	assert.Zero(t, ti.PropertyCount())
}

func TestNetTypeInfo_EnsureLoadedBuildsOnce(t *testing.T) {
	qmlnettest.UseNative(t)

	var ti qmlnet.NetTypeInfo
	var loadingDuringBuild bool
	rec := &qmlnettest.Recorder{BuildTypeInfoFunc: func(got qmlnet.NetTypeInfo) {
		loadingDuringBuild = got.IsLoading()
		got.EnsureLoaded() // reentrant call returns immediately
		got.SetClassName("Built")
	}}
	qmlnettest.UseDispatcher(t, qmlnet.NewDispatcher(qmlnet.NewRegistry(rec)))

	ti = qmlnet.NewNetTypeInfo("app.Counter")
	assert.False(t, ti.IsLoaded())

	ti.EnsureLoaded()
	ti.EnsureLoaded()

	assert.True(t, loadingDuringBuild)
	assert.True(t, ti.IsLoaded())
	assert.False(t, ti.IsLoading())
	assert.Equal(t, "Built", ti.ClassName())
	assert.Equal(t, 1, rec.Count(qmlnet.OpBuildTypeInfo))
}

func TestNetTypeInfo_EnsureLoadedWithDefaultCallbacks(t *testing.T) {
	qmlnettest.UseNative(t)

	types := qmlnet.NewTypeRegistry()
	_, err := types.Register("test.Counter", counter{})
	require.NoError(t, err)
	qmlnettest.UseDispatcher(t, qmlnet.NewDispatcher(qmlnet.NewRegistry(qmlnet.NewDefaultCallbacks(types))))

	ti := qmlnet.NewNetTypeInfo("test.Counter")
	ti.EnsureLoaded()

	assert.True(t, ti.IsLoaded())
	assert.Equal(t, "counter", ti.ClassName())
	assert.Equal(t, 7, ti.PropertyCount())
}

func TestNetTypeInfo_ZeroHandle(t *testing.T) {
	qmlnettest.UseNative(t)

	var ti qmlnet.NetTypeInfo
	assert.Empty(t, ti.FullTypeName())
	assert.False(t, ti.SetClassName("x"))
	assert.Zero(t, ti.PropertyCount())
	assert.NotPanics(t, ti.EnsureLoaded)
	assert.False(t, ti.IsLoaded())
}

func TestNetInstance(t *testing.T) {
	qmlnettest.UseNative(t)

	obj := &child{Name: "root"}
	gc := qmlnet.RetainObject(obj)
	ti := qmlnet.NewNetTypeInfo("test.Child")
	inst := qmlnet.NewNetInstance(gc, ti)

	assert.Equal(t, gc, inst.GCHandle())
	assert.Equal(t, ti, inst.TypeInfo())
	got, ok := inst.Object()
	require.True(t, ok)
	assert.Same(t, obj, got)

	require.True(t, qmlnet.ReleaseRetained(gc))
	_, ok = inst.Object()
	assert.False(t, ok, "released GC handle no longer resolves")
	assert.False(t, qmlnet.ReleaseRetained(gc))
}

func TestNetTypeInfo_EnsureLoadedConcurrentBuildsOnce(t *testing.T) {
	qmlnettest.UseNative(t)

	types := qmlnet.NewTypeRegistry()
	_, err := types.Register("test.Counter", counter{})
	require.NoError(t, err)
	rec := &qmlnettest.Recorder{BuildTypeInfoFunc: qmlnet.NewDefaultCallbacks(types).BuildTypeInfo}
	qmlnettest.UseDispatcher(t, qmlnet.NewDispatcher(qmlnet.NewRegistry(rec)))

	ti := qmlnet.NewNetTypeInfo("test.Counter")
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ti.EnsureLoaded()
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, rec.Count(qmlnet.OpBuildTypeInfo))
	assert.True(t, ti.IsLoaded())
	assert.Equal(t, 7, ti.PropertyCount())
	assert.Equal(t, 2, ti.MethodCount())
}

func TestWrappers_Equal(t *testing.T) {
	qmlnettest.UseNative(t)

	a := qmlnet.NewNetTypeInfo("app.Counter")
	b := qmlnet.NewNetTypeInfo("app.Counter")
	assert.True(t, a.Equal(qmlnet.NetTypeInfoFromHandle(a.Handle())))
	assert.False(t, a.Equal(b), "same name, different native objects")

	v := qmlnet.NewNetVariant()
	assert.True(t, v.Equal(qmlnet.NetVariantFromHandle(v.Handle())))
	assert.False(t, v.Equal(qmlnet.NetVariant{}))

	p := qmlnet.NewNetPropertyInfo(a, "count", b, true, true, qmlnet.NetSignalInfo{})
	assert.True(t, p.Equal(qmlnet.NetPropertyInfoFromHandle(p.Handle())))
}
