//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMessageType_String(t *testing.T) {
	assert.Equal(t, "debug", MsgDebug.String())
	assert.Equal(t, "warning", MsgWarning.String())
	assert.Equal(t, "critical", MsgCritical.String())
	assert.Equal(t, "fatal", MsgFatal.String())
	assert.Equal(t, "info", MsgInfo.String())
	assert.Equal(t, "MessageType(9)", MessageType(9).String())
}

func TestMessageType_ZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, MsgDebug.zapLevel())
	assert.Equal(t, zapcore.WarnLevel, MsgWarning.zapLevel())
	assert.Equal(t, zapcore.ErrorLevel, MsgCritical.zapLevel())
	assert.Equal(t, zapcore.ErrorLevel, MsgFatal.zapLevel())
	assert.Equal(t, zapcore.InfoLevel, MsgInfo.zapLevel())
}

func useObservedLogger(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := activeLogger.Load()
	SetLogger(zap.New(core))
	t.Cleanup(func() { activeLogger.Store(prev) })
	return logs
}

func TestNativeLogTrampoline_ForwardsToLogger(t *testing.T) {
	logs := useObservedLogger(t)

	msg := []byte("QML component not ready\n\x00")
	nativeLogTrampoline(purego.CDecl{}, int32(MsgWarning), &msg[0])

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "QML component not ready", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "qmlnet", entries[0].LoggerName)
	assert.Equal(t, "native", entries[0].ContextMap()["source"])
	assert.Equal(t, "warning", entries[0].ContextMap()["type"])
}

func TestNativeLogTrampoline_NilMessage(t *testing.T) {
	logs := useObservedLogger(t)

	assert.NotPanics(t, func() { nativeLogTrampoline(purego.CDecl{}, int32(MsgInfo), nil) })
	require.Equal(t, 1, logs.Len())
	assert.Empty(t, logs.All()[0].Message)
}

func TestSetLogger_NilDiscards(t *testing.T) {
	prev := activeLogger.Load()
	t.Cleanup(func() { activeLogger.Store(prev) })

	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qmlnet.log")

	l, err := NewLogger(LogConfig{Level: "info", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("native library loaded", zap.String("path", "/opt/libQmlNet.so"))
	_ = l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"msg":"native library loaded"`)
	assert.Contains(t, out, `"path":"/opt/libQmlNet.so"`)
	assert.False(t, strings.Contains(out, "hidden"))
}

func TestNewLogger_NoOutputs(t *testing.T) {
	l, err := NewLogger(LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(LogConfig{Level: "verbose", Console: true})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
