//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/qmlnet/internal/bindings"
)

// Common errors
var (
	// ErrNotLoaded indicates the QmlNet native library is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates the QmlNet native library could not be found.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	// ErrUnknownType indicates a type name that is not registered.
	ErrUnknownType = errors.New("qmlnet: unknown type")

	// ErrUnknownProperty indicates a property name the instance's type does not have.
	ErrUnknownProperty = errors.New("qmlnet: unknown property")

	// ErrReadOnlyProperty indicates a write to a property that cannot be written.
	ErrReadOnlyProperty = errors.New("qmlnet: read-only property")

	// ErrTypeConflict indicates a type name already registered for another Go type.
	ErrTypeConflict = errors.New("qmlnet: type name already registered")

	// ErrInvalidHandle indicates a handle the native runtime does not recognize.
	ErrInvalidHandle = errors.New("qmlnet: invalid handle")

	// ErrUnsupportedKind indicates a Go kind that cannot cross the boundary.
	ErrUnsupportedKind = errors.New("qmlnet: unsupported kind")

	// ErrInvalidConfig indicates a configuration that failed validation.
	ErrInvalidConfig = errors.New("qmlnet: invalid config")
)

// DispatchError describes a panic recovered while a Callbacks implementation
// was serving a native call.
type DispatchError struct {
	Op    string // Operation being dispatched
	Value any    // Value passed to panic
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("qmlnet %s: callback panicked: %v", e.Op, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *DispatchError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// IsDispatchError reports whether err is, or wraps, a DispatchError.
func IsDispatchError(err error) bool {
	var de *DispatchError
	return errors.As(err, &de)
}
