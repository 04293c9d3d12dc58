// Package handles keeps Go objects alive while native code holds a reference
// to them.
//
// Native code cannot hold Go pointers, so every Go object handed across the
// boundary is retained here and represented by a uintptr handle. The object
// stays reachable until Release is called with that handle; nothing is
// released automatically.
package handles

import (
	"sync"
)

var (
	mu      sync.RWMutex
	objects = make(map[uintptr]any)
	nextID  uintptr = 1
)

// Alloc retains v and returns the handle that identifies it.
// Handles are never reused within a process, so a stale handle cannot alias a
// newer object.
//
// Thread-safe.
func Alloc(v any) uintptr {
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	objects[id] = v
	return id
}

// Value returns the object retained under h.
// ok is false when h was never issued or has already been released.
//
// Thread-safe.
func Value(h uintptr) (v any, ok bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok = objects[h]
	return v, ok
}

// Release drops the reference held for h so the object can be collected.
// It reports whether h was live.
//
// Thread-safe.
func Release(h uintptr) bool {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := objects[h]; !ok {
		return false
	}
	delete(objects, h)
	return true
}

// Count returns the number of live handles.
//
// Thread-safe.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(objects)
}
