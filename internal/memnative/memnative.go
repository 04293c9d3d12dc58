// Package memnative is an in-process stand-in for the QmlNet native runtime.
//
// It issues handles for type infos, property/method/signal infos, instances
// and variants exactly like the native library does, and answers the same
// accessor calls. Every handle records the kind of object it was issued for;
// an accessor called with a handle of another kind fails instead of
// reinterpreting the object.
package memnative

import "sync"

type kind uint8

const (
	kindTypeInfo kind = iota + 1
	kindPropertyInfo
	kindMethodInfo
	kindSignalInfo
	kindInstance
	kindVariant
)

// firstHandle keeps issued handles visibly distinct from small integers used
// by callers as placeholders.
const firstHandle uintptr = 0x1000

type typeInfo struct {
	fullTypeName    string
	className       string
	prefVariantType int32
	methods         []uintptr
	properties      []uintptr
	signals         []uintptr
	loaded          bool
	loading         bool
}

type propertyInfo struct {
	parentType   uintptr
	name         string
	returnType   uintptr
	canRead      bool
	canWrite     bool
	notifySignal uintptr
}

type parameter struct {
	name     string
	typeInfo uintptr
}

type methodInfo struct {
	parentType uintptr
	name       string
	returnType uintptr
	parameters []parameter
}

type signalInfo struct {
	parentType uintptr
	name       string
	parameters []int32
}

type instance struct {
	gcHandle uintptr
	typeInfo uintptr
}

type variant struct {
	variantType int32
	b           bool
	c           uint16
	i           int64
	u           uint64
	d           float64
	s           string
	instance    uintptr
}

// Store is an in-memory native object table. The zero value is not usable;
// call New.
//
// Objects are reference counted. The handle returned by a Create call holds
// one reference, released by Destroy; every native object that points at
// another (a type info listing its properties, a variant holding an instance)
// holds one more. An object is freed when no reference is left, and freeing
// an instance hands its GC handle to the release function. Handles returned
// by accessors are borrowed.
type Store struct {
	mu      sync.RWMutex
	objects map[uintptr]*entry
	next    uintptr
	release func(gcHandle uintptr)
}

type entry struct {
	kind  kind
	obj   any
	owned bool // the Create reference is still held
	refs  int  // references held by other native objects
}

// Option configures a Store.
type Option func(*Store)

// WithRelease sets the function called with the GC handle of every instance
// the store frees. It runs after the store lock is released.
func WithRelease(fn func(gcHandle uintptr)) Option {
	return func(s *Store) { s.release = fn }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		objects: make(map[uintptr]*entry),
		next:    firstHandle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of live native objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *Store) add(k kind, obj any) uintptr {
	return s.addWith(k, func() any { return obj })
}

// addWith inserts the object built by build. build runs under the store lock
// and may take references with retainLocked.
func (s *Store) addWith(k kind, build func() any) uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.next
	s.next++
	s.objects[h] = &entry{kind: k, obj: build(), owned: true}
	return h
}

// get returns the object under h if it was issued for k. Callers must hold mu.
func (s *Store) get(h uintptr, k kind) (any, bool) {
	e, ok := s.objects[h]
	if !ok || e.kind != k {
		return nil, false
	}
	return e.obj, true
}

func (s *Store) read(h uintptr, k kind, fn func(obj any)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.get(h, k)
	if !ok {
		return false
	}
	fn(obj)
	return true
}

func (s *Store) write(h uintptr, k kind, fn func(obj any)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.get(h, k)
	if !ok {
		return false
	}
	fn(obj)
	return true
}

// link appends child (of kind ck) to the object under h, taking a reference
// on it. It fails when either handle is not live with the expected kind.
func (s *Store) link(h uintptr, k kind, child uintptr, ck kind, fn func(obj any)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.get(h, k)
	if !ok || s.retainLocked(child, ck) == 0 {
		return false
	}
	fn(obj)
	return true
}

// retainLocked takes a reference on h when it is live with kind k and returns
// h, or returns 0. Callers must hold mu for writing.
func (s *Store) retainLocked(h uintptr, k kind) uintptr {
	e, ok := s.objects[h]
	if !ok || e.kind != k {
		return 0
	}
	e.refs++
	return h
}

// releaseLocked drops a reference taken by retainLocked. GC handles of freed
// instances are appended to gc. Callers must hold mu for writing.
func (s *Store) releaseLocked(h uintptr, gc *[]uintptr) {
	e, ok := s.objects[h]
	if !ok {
		return
	}
	e.refs--
	s.collectLocked(h, e, gc)
}

func (s *Store) collectLocked(h uintptr, e *entry, gc *[]uintptr) {
	if e.owned || e.refs > 0 {
		return
	}
	delete(s.objects, h)

	var children []uintptr
	switch obj := e.obj.(type) {
	case *typeInfo:
		children = append(children, obj.methods...)
		children = append(children, obj.properties...)
		children = append(children, obj.signals...)
	case *propertyInfo:
		children = append(children, obj.returnType, obj.notifySignal)
	case *methodInfo:
		children = append(children, obj.returnType)
		for _, p := range obj.parameters {
			children = append(children, p.typeInfo)
		}
	case *instance:
		children = append(children, obj.typeInfo)
		if obj.gcHandle != 0 {
			*gc = append(*gc, obj.gcHandle)
		}
	case *variant:
		children = append(children, obj.heldInstance())
	}
	for _, c := range children {
		if c != 0 {
			s.releaseLocked(c, gc)
		}
	}
}

// releaseGC hands the GC handles of freed instances to the release function.
func (s *Store) releaseGC(gc []uintptr) {
	if s.release == nil {
		return
	}
	for _, h := range gc {
		s.release(h)
	}
}

// Destroy drops the reference returned by the Create call for h. The object
// itself is freed once no other native object refers to it. Unknown handles
// and repeated calls are ignored.
func (s *Store) Destroy(h uintptr) {
	var gc []uintptr
	s.mu.Lock()
	if e, ok := s.objects[h]; ok && e.owned {
		e.owned = false
		s.collectLocked(h, e, &gc)
	}
	s.mu.Unlock()
	s.releaseGC(gc)
}
