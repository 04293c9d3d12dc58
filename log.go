//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// MessageType is a Qt message severity, as reported by the native runtime's
// message handler.
type MessageType int32

// Message types matching QtMsgType.
const (
	MsgDebug    MessageType = 0
	MsgWarning  MessageType = 1
	MsgCritical MessageType = 2
	MsgFatal    MessageType = 3
	MsgInfo     MessageType = 4
)

// String returns the string representation of the message type.
func (m MessageType) String() string {
	switch m {
	case MsgDebug:
		return "debug"
	case MsgWarning:
		return "warning"
	case MsgCritical:
		return "critical"
	case MsgFatal:
		return "fatal"
	case MsgInfo:
		return "info"
	default:
		return fmt.Sprintf("MessageType(%d)", int32(m))
	}
}

// zapLevel maps a Qt severity onto zap. Fatal is logged at error level and
// never exits the process.
func (m MessageType) zapLevel() zapcore.Level {
	switch m {
	case MsgDebug:
		return zapcore.DebugLevel
	case MsgWarning:
		return zapcore.WarnLevel
	case MsgCritical, MsgFatal:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

var activeLogger atomic.Pointer[zap.Logger]

func init() {
	activeLogger.Store(zap.NewNop())
}

// Logger returns the package logger. It discards everything until SetLogger
// is called.
func Logger() *zap.Logger {
	return activeLogger.Load()
}

// SetLogger replaces the package logger. Pass nil to discard logs.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	activeLogger.Store(l.Named("qmlnet"))
}

// NewLogger builds a JSON logger from cfg. Output goes to stderr when
// cfg.Console is set and to a size-rotated file when cfg.File is set.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidConfig, cfg.Level)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core
	if cfg.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.Lock(os.Stderr), level))
	}
	if cfg.File != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}

var (
	nativeLogOnce   sync.Once
	nativeLogHandle uintptr
)

// nativeLogTrampoline receives messages from the native message handler.
// Signature: void (*)(int type, const char *msg)
func nativeLogTrampoline(_ purego.CDecl, msgType int32, msg *byte) {
	m := MessageType(msgType)
	text := strings.TrimRight(goString(msg), "\n")
	if ce := Logger().Check(m.zapLevel(), text); ce != nil {
		ce.Write(zap.String("source", "native"), zap.Stringer("type", m))
	}
}

// nativeLogCallback returns the C function pointer forwarding native
// messages to the package logger. It is created once per process.
func nativeLogCallback() uintptr {
	nativeLogOnce.Do(func() {
		nativeLogHandle = purego.NewCallback(nativeLogTrampoline)
	})
	return nativeLogHandle
}
