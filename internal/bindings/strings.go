//go:build !ios && !android && (amd64 || arm64)

package bindings

import "unsafe"

// MaxStringLen bounds how far GoString scans for a terminating NUL.
const MaxStringLen = 1 << 20

// GoString copies a NUL-terminated C string into a Go string. A nil pointer
// yields "". Strings longer than MaxStringLen are truncated.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for n < MaxStringLen && *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// takeString copies a string allocated by the library and releases it.
func (l *Library) takeString(p *byte) (string, bool) {
	if p == nil {
		return "", false
	}
	s := GoString(p)
	l.freeString(p)
	return s, true
}
