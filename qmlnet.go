//go:build !ios && !android && (amd64 || arm64)

// Package qmlnet is the Go side of the QmlNet interop layer. The native
// runtime (Qt/QML) calls back into Go to ask whether a type exists, to build
// a type's metadata, to instantiate objects, to read and write their
// properties and to release object handles.
//
// Those calls arrive through the process Dispatcher, which routes each one to
// the Callbacks implementation active in the process Registry. Until a custom
// implementation is registered, DefaultCallbacks serves Go structs registered
// with RegisterType.
//
// The native library is loaded with purego, so no cgo is needed. Before Init
// succeeds an in-process emulation of the native object model is active;
// everything except a QML engine works against it.
package qmlnet

import (
	"sync"

	"github.com/obinnaokechukwu/qmlnet/internal/bindings"
	"go.uber.org/zap"
)

var (
	initMu        sync.Mutex
	loadedLib     *bindings.Library
	logForwarding bool
)

// Init loads the QmlNet native library described by cfg.Library, makes it
// the active native backend and registers the callback table with it.
// It is safe to call multiple times; once a library is loaded later calls
// are no-ops.
func Init(cfg Config) error {
	initMu.Lock()
	defer initMu.Unlock()

	if loadedLib != nil {
		return nil
	}

	lib, err := bindings.Load(bindings.Options{
		Path:       cfg.Library.Path,
		SearchDirs: cfg.Library.SearchDirs,
	})
	if err != nil {
		return err
	}

	SetNative(lib)
	logForwarding = registerTrampolines(lib)
	loadedLib = lib

	Logger().Info("native library loaded",
		zap.String("path", lib.Path()),
		zap.Bool("log_forwarding", logForwarding))
	return nil
}

// IsLoaded returns true if the QmlNet native library has been loaded.
func IsLoaded() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return loadedLib != nil
}

// LibraryPath returns the path of the loaded native library, or
// ErrNotLoaded before Init has succeeded.
func LibraryPath() (string, error) {
	initMu.Lock()
	defer initMu.Unlock()
	if loadedLib == nil {
		return "", ErrNotLoaded
	}
	return loadedLib.Path(), nil
}

// State describes the binding layer's process state.
type State struct {
	Loaded          bool     // Native library loaded by Init
	LibraryPath     string   // Path of the loaded library
	LogForwarding   bool     // Native messages are forwarded to the logger
	DefaultActive   bool     // Default callbacks are serving dispatches
	GCHandles       int      // Go objects retained for native code
	RegisteredTypes []string // Names known to Types
}

// Status reports the current process state.
func Status() State {
	initMu.Lock()
	s := State{Loaded: loadedLib != nil, LogForwarding: logForwarding}
	if loadedLib != nil {
		s.LibraryPath = loadedLib.Path()
	}
	initMu.Unlock()

	s.DefaultActive = processRegistry.IsDefault()
	s.GCHandles = GCHandleCount()
	s.RegisteredTypes = Types.Names()
	return s
}
