//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// DefaultCallbacks serves native calls from Go types registered in a
// TypeRegistry, using reflection.
//
//   - Exported struct fields become properties; func-typed fields become
//     signals. A property named X is notified by a signal named XChanged.
//   - Exported methods on the pointer type become methods.
//   - Instances are created with reflect.New and retained in the GC handle
//     table until ReleaseGCHandle.
//
// Invalid input is logged at warn level and leaves all state unchanged.
type DefaultCallbacks struct {
	types     *TypeRegistry
	logger    *zap.Logger
	typeInfos typeInfoCache
}

// DefaultOption configures DefaultCallbacks.
type DefaultOption func(*DefaultCallbacks)

// WithLogger sets the logger for rejected calls. The default is the package
// logger at the time of the call.
func WithLogger(l *zap.Logger) DefaultOption {
	return func(c *DefaultCallbacks) { c.logger = l }
}

// NewDefaultCallbacks returns callbacks serving types. A nil types uses the
// process registry Types.
func NewDefaultCallbacks(types *TypeRegistry, opts ...DefaultOption) *DefaultCallbacks {
	if types == nil {
		types = Types
	}
	c := &DefaultCallbacks{types: types}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCallbacks Callbacks = NewDefaultCallbacks(Types)

var _ Callbacks = (*DefaultCallbacks)(nil)

func (c *DefaultCallbacks) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// IsTypeValid reports whether typeName is registered.
func (c *DefaultCallbacks) IsTypeValid(typeName string) bool {
	_, ok := c.types.Lookup(typeName)
	return ok
}

// BuildTypeInfo fills typeInfo from the registered struct type named by its
// full type name.
func (c *DefaultCallbacks) BuildTypeInfo(typeInfo NetTypeInfo) {
	name := typeInfo.FullTypeName()
	t, ok := c.types.Lookup(name)
	if !ok {
		c.log().Warn("build type info: unknown type",
			zap.String("type", name), zap.Stringer("handle", typeInfo.Handle()),
			zap.Error(ErrUnknownType))
		return
	}

	typeInfo.SetClassName(t.Name())
	typeInfo.SetPrefVariantType(VariantObject)

	// Members are freed once typeInfo holds them.
	l := layoutOf(t)
	signals := make(map[string]NetSignalInfo, len(l.signals))
	created := make([]NetSignalInfo, 0, len(l.signals))
	for _, f := range l.signals {
		sig := NewNetSignalInfo(typeInfo, f.name)
		for i := 0; i < f.typ.NumIn(); i++ {
			sig.AddParameter(variantTypeOf(f.typ.In(i)))
		}
		typeInfo.AddSignal(sig)
		signals[f.name] = sig
		created = append(created, sig)
	}

	for _, f := range l.properties {
		prop := NewNetPropertyInfo(typeInfo, f.name, c.typeInfoFor(f.typ), true, !f.readOnly, signals[f.name+"Changed"])
		typeInfo.AddProperty(prop)
		Free(prop.Handle())
	}
	for _, sig := range created {
		Free(sig.Handle())
	}

	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if !m.IsExported() {
			continue
		}
		var ret NetTypeInfo
		if m.Type.NumOut() > 0 {
			ret = c.typeInfoFor(m.Type.Out(0))
		}
		method := NewNetMethodInfo(typeInfo, m.Name, ret)
		// In(0) is the receiver.
		for j := 1; j < m.Type.NumIn(); j++ {
			method.AddParameter(fmt.Sprintf("arg%d", j-1), c.typeInfoFor(m.Type.In(j)))
		}
		typeInfo.AddMethod(method)
		Free(method.Handle())
	}

	c.log().Debug("built type info",
		zap.String("type", name),
		zap.Int("properties", len(l.properties)),
		zap.Int("signals", len(l.signals)),
		zap.Int("methods", pt.NumMethod()))
}

// typeInfoFor returns the unloaded native type info naming t, allocating it
// on first use.
func (c *DefaultCallbacks) typeInfoFor(t reflect.Type) NetTypeInfo {
	return c.typeInfos.get(c.types.typeNameOf(t))
}

// typeInfoCache keeps one type info per name for the native backend that
// issued it. Entries are dropped when the backend changes.
type typeInfoCache struct {
	mu     sync.Mutex
	native Native
	infos  map[string]NetTypeInfo
}

func (tc *typeInfoCache) get(name string) NetTypeInfo {
	n := native()
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.native != n {
		tc.native = n
		tc.infos = make(map[string]NetTypeInfo)
	}
	if ti, ok := tc.infos[name]; ok {
		return ti
	}
	ti := NewNetTypeInfo(name)
	if !ti.Handle().IsZero() {
		tc.infos[name] = ti
	}
	return ti
}

// ReleaseGCHandle drops the object retained under handle.
func (c *DefaultCallbacks) ReleaseGCHandle(handle Handle) {
	if !ReleaseRetained(handle) {
		c.log().Warn("release gc handle: handle not live", zap.Stringer("handle", handle))
	}
}

// InstantiateType allocates a zero value of the registered type and returns
// the GC handle retaining it.
func (c *DefaultCallbacks) InstantiateType(typeName string) Handle {
	t, ok := c.types.Lookup(typeName)
	if !ok {
		c.log().Warn("instantiate type: unknown type",
			zap.String("type", typeName), zap.Error(ErrUnknownType))
		return Handle{}
	}
	return RetainObject(reflect.New(t).Interface())
}

// ReadProperty stores the field behind property into result. On failure
// result is cleared.
func (c *DefaultCallbacks) ReadProperty(property NetPropertyInfo, instance NetInstance, result NetVariant) {
	fv, _, err := c.resolve(property, instance)
	if err == nil {
		err = c.storeValue(result, fv)
	}
	if err != nil {
		result.Clear()
		c.log().Warn("read property failed", c.fields(property, instance, err)...)
	}
}

// WriteProperty converts value to the field's type and assigns it.
func (c *DefaultCallbacks) WriteProperty(property NetPropertyInfo, instance NetInstance, value NetVariant) {
	fv, f, err := c.resolve(property, instance)
	if err == nil && (f.readOnly || !fv.CanSet()) {
		err = fmt.Errorf("%w: property %q is read-only", ErrReadOnlyProperty, f.name)
	}
	var nv reflect.Value
	if err == nil {
		nv, err = loadValue(value, fv.Type())
	}
	if err != nil {
		c.log().Warn("write property failed", c.fields(property, instance, err)...)
		return
	}
	fv.Set(nv)
}

// resolve finds the struct field behind property on the object of instance.
func (c *DefaultCallbacks) resolve(property NetPropertyInfo, instance NetInstance) (reflect.Value, field, error) {
	obj, ok := instance.Object()
	if !ok {
		return reflect.Value{}, field{}, fmt.Errorf("%w: instance %v", ErrInvalidHandle, instance.Handle())
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, field{}, fmt.Errorf("%w: instance object is %T", ErrUnsupportedKind, obj)
	}
	name := property.Name()
	if name == "" {
		return reflect.Value{}, field{}, fmt.Errorf("%w: property %v", ErrInvalidHandle, property.Handle())
	}
	f, ok := layoutOf(rv.Elem().Type()).property(name)
	if !ok {
		return reflect.Value{}, field{}, fmt.Errorf("%w: %T has no property %q", ErrUnknownProperty, obj, name)
	}
	fv, err := rv.Elem().FieldByIndexErr(f.index)
	if err != nil {
		return reflect.Value{}, field{}, fmt.Errorf("%w: %v", ErrInvalidHandle, err)
	}
	return fv, f, nil
}

func (c *DefaultCallbacks) fields(property NetPropertyInfo, instance NetInstance, err error) []zap.Field {
	return []zap.Field{
		zap.Stringer("property", property.Handle()),
		zap.Stringer("instance", instance.Handle()),
		zap.Error(err),
	}
}
