//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import "fmt"

// Handle is an opaque, native-word-sized value identifying an object owned by
// one side of the boundary. The zero Handle means "absent".
//
// Handle deliberately exposes no arithmetic. Two Handles are equal when their
// underlying values are equal; compare them with ==.
type Handle struct {
	v uintptr
}

// HandleFromUintptr converts a raw native-ABI value into a Handle.
func HandleFromUintptr(v uintptr) Handle {
	return Handle{v: v}
}

// Uintptr returns the raw native-ABI value of h.
func (h Handle) Uintptr() uintptr {
	return h.v
}

// IsZero reports whether h is the absent handle.
func (h Handle) IsZero() bool {
	return h.v == 0
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return fmt.Sprintf("0x%x", h.v)
}
