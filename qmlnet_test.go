//go:build !ios && !android && (amd64 || arm64)

package qmlnet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/obinnaokechukwu/qmlnet"
	"github.com/obinnaokechukwu/qmlnet/qmlnettest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_LibraryNotFound(t *testing.T) {
	before := qmlnet.CurrentNative()
	t.Setenv("QMLNET_LIB_DIR", t.TempDir())

	err := qmlnet.Init(qmlnet.DefaultConfig())
	assert.ErrorIs(t, err, qmlnet.ErrLibraryNotFound)
	assert.False(t, qmlnet.IsLoaded())
	assert.Same(t, before, qmlnet.CurrentNative(), "failed Init keeps the in-process backend")

	_, err = qmlnet.LibraryPath()
	assert.ErrorIs(t, err, qmlnet.ErrNotLoaded)
}

func TestInit_NotASharedLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libQmlNet.so")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	cfg := qmlnet.DefaultConfig()
	cfg.Library.Path = path
	err := qmlnet.Init(cfg)
	require.Error(t, err)
	assert.False(t, qmlnet.IsLoaded())
}

func TestStatus(t *testing.T) {
	_, err := qmlnet.RegisterType("status.Counter", counter{})
	require.NoError(t, err)

	s := qmlnet.Status()
	assert.False(t, s.Loaded)
	assert.Empty(t, s.LibraryPath)
	assert.True(t, s.DefaultActive)
	assert.Contains(t, s.RegisteredTypes, "status.Counter")
	assert.Equal(t, qmlnet.GCHandleCount(), s.GCHandles)

	qmlnettest.UseCallbacks(t, &qmlnettest.Recorder{})
	assert.False(t, qmlnet.Status().DefaultActive)
}
