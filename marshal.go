//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// variantTypeOf returns the variant type used to carry values of t.
func variantTypeOf(t reflect.Type) VariantType {
	if t == timeType {
		return VariantDateTime
	}
	switch t.Kind() {
	case reflect.Bool:
		return VariantBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return VariantInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return VariantUInt
	case reflect.Float32, reflect.Float64:
		return VariantDouble
	case reflect.String:
		return VariantString
	case reflect.Struct, reflect.Interface:
		return VariantObject
	case reflect.Pointer:
		if t.Elem() == timeType {
			return VariantDateTime
		}
		if t.Elem().Kind() == reflect.Struct {
			return VariantObject
		}
	}
	return VariantInvalid
}

// field describes one exported struct field exposed to QML.
type field struct {
	name     string
	index    []int
	typ      reflect.Type
	readOnly bool
}

// layout is the QML view of a struct type: func fields become signals,
// every other exported field becomes a property.
type layout struct {
	properties []field
	signals    []field
	byName     map[string]int
}

func (l *layout) property(name string) (field, bool) {
	i, ok := l.byName[name]
	if !ok {
		return field{}, false
	}
	return l.properties[i], true
}

var layouts sync.Map // reflect.Type -> *layout

// layoutOf returns the cached layout of struct type t.
//
// The qml struct tag renames a field (`qml:"name"`), hides it (`qml:"-"`),
// or marks a property read-only (`qml:",readonly"`).
func layoutOf(t reflect.Type) *layout {
	if l, ok := layouts.Load(t); ok {
		return l.(*layout)
	}
	l := &layout{byName: make(map[string]int)}
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("qml")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		f := field{name: name, index: sf.Index, typ: sf.Type}
		for _, opt := range strings.Split(opts, ",") {
			if opt == "readonly" {
				f.readOnly = true
			}
		}
		if sf.Type.Kind() == reflect.Func {
			l.signals = append(l.signals, f)
			continue
		}
		if _, dup := l.byName[name]; dup {
			continue
		}
		l.byName[name] = len(l.properties)
		l.properties = append(l.properties, f)
	}
	actual, _ := layouts.LoadOrStore(t, l)
	return actual.(*layout)
}

// storeValue writes rv into result. Struct values are exposed as objects: the
// Go value is retained and wrapped in a new native instance.
func (c *DefaultCallbacks) storeValue(result NetVariant, rv reflect.Value) error {
	var ok bool
	switch rv.Kind() {
	case reflect.Bool:
		ok = result.SetBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ok = result.SetInt(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ok = result.SetUInt(rv.Uint())
	case reflect.Float32, reflect.Float64:
		ok = result.SetDouble(rv.Float())
	case reflect.String:
		ok = result.SetString(rv.String())
	case reflect.Interface:
		if rv.IsNil() {
			ok = result.Clear()
			break
		}
		return c.storeValue(result, rv.Elem())
	case reflect.Pointer:
		switch {
		case rv.IsNil():
			ok = result.Clear()
		case rv.Elem().Type() == timeType:
			ok = result.SetDateTime(rv.Elem().Interface().(time.Time))
		case rv.Elem().Kind() == reflect.Struct:
			ok = c.storeObject(result, rv)
		default:
			return fmt.Errorf("%w: %v", ErrUnsupportedKind, rv.Type())
		}
	case reflect.Struct:
		if rv.Type() == timeType {
			ok = result.SetDateTime(rv.Interface().(time.Time))
			break
		}
		if rv.CanAddr() {
			ok = c.storeObject(result, rv.Addr())
			break
		}
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		ok = c.storeObject(result, p)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedKind, rv.Type())
	}
	if !ok {
		return fmt.Errorf("%w: variant %v", ErrInvalidHandle, result.Handle())
	}
	return nil
}

// storeObject retains ptr for native code and stores a new instance for it
// in result. The variant then owns the instance; the GC handle is released
// when the runtime dispatches ReleaseGCHandle as the instance dies.
func (c *DefaultCallbacks) storeObject(result NetVariant, ptr reflect.Value) bool {
	gc := RetainObject(ptr.Interface())
	inst := NewNetInstance(gc, c.typeInfoFor(ptr.Type()))
	if inst.Handle().IsZero() {
		ReleaseRetained(gc)
		return false
	}
	ok := result.SetInstance(inst)
	Free(inst.Handle())
	return ok
}

// loadValue converts the value held by v into a Go value of type t.
// Numbers convert between kinds when the value fits; an invalid variant
// yields the zero value of t. Interface fields take the variant's own Go
// value (int64, string, time.Time, ...) when it satisfies the interface.
func loadValue(v NetVariant, t reflect.Type) (reflect.Value, error) {
	vt := v.Type()
	if vt == VariantInvalid {
		return reflect.Zero(t), nil
	}
	mismatch := func() (reflect.Value, error) {
		return reflect.Value{}, fmt.Errorf("%w: cannot assign %s variant to %v", ErrUnsupportedKind, vt, t)
	}

	out := reflect.New(t).Elem()
	switch {
	case t == timeType:
		tm, ok := v.DateTime()
		if !ok {
			return mismatch()
		}
		out.Set(reflect.ValueOf(tm))
		return out, nil
	case t.Kind() == reflect.Pointer && t.Elem() == timeType:
		tm, ok := v.DateTime()
		if !ok {
			return mismatch()
		}
		out.Set(reflect.ValueOf(&tm))
		return out, nil
	case t.Kind() == reflect.Interface && vt != VariantObject:
		val := reflect.ValueOf(v.Value())
		if !val.IsValid() || !val.Type().AssignableTo(t) {
			return mismatch()
		}
		out.Set(val)
		return out, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		b, ok := v.Bool()
		if !ok {
			return mismatch()
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := variantInt(v, vt)
		if !ok || out.OverflowInt(i) {
			return mismatch()
		}
		out.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, ok := variantUint(v, vt)
		if !ok || out.OverflowUint(u) {
			return mismatch()
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		d, ok := variantFloat(v, vt)
		if !ok || out.OverflowFloat(d) {
			return mismatch()
		}
		out.SetFloat(d)
	case reflect.String:
		switch vt {
		case VariantString:
			s, _ := v.StringValue()
			out.SetString(s)
		case VariantChar:
			r, _ := v.Char()
			out.SetString(string(r))
		default:
			return mismatch()
		}
	case reflect.Pointer, reflect.Interface, reflect.Struct:
		if vt != VariantObject {
			return mismatch()
		}
		obj, ok := v.Instance().Object()
		if !ok || obj == nil {
			return reflect.Value{}, fmt.Errorf("%w: variant %v holds no live object", ErrInvalidHandle, v.Handle())
		}
		ov := reflect.ValueOf(obj)
		switch {
		case ov.Type().AssignableTo(t):
			out.Set(ov)
		case t.Kind() == reflect.Struct && ov.Kind() == reflect.Pointer && ov.Type().Elem() == t:
			out.Set(ov.Elem())
		default:
			return mismatch()
		}
	default:
		return mismatch()
	}
	return out, nil
}

func variantInt(v NetVariant, vt VariantType) (int64, bool) {
	switch vt {
	case VariantInt:
		return v.Int()
	case VariantUInt:
		u, ok := v.UInt()
		return int64(u), ok && u <= math.MaxInt64
	case VariantChar:
		r, ok := v.Char()
		return int64(r), ok
	case VariantDouble:
		d, ok := v.Double()
		if !ok || d != math.Trunc(d) || d < math.MinInt64 || d >= math.MaxInt64 {
			return 0, false
		}
		return int64(d), true
	}
	return 0, false
}

func variantUint(v NetVariant, vt VariantType) (uint64, bool) {
	switch vt {
	case VariantUInt:
		return v.UInt()
	case VariantInt:
		i, ok := v.Int()
		return uint64(i), ok && i >= 0
	case VariantChar:
		r, ok := v.Char()
		return uint64(r), ok
	case VariantDouble:
		d, ok := v.Double()
		if !ok || d != math.Trunc(d) || d < 0 || d >= math.MaxUint64 {
			return 0, false
		}
		return uint64(d), true
	}
	return 0, false
}

func variantFloat(v NetVariant, vt VariantType) (float64, bool) {
	switch vt {
	case VariantDouble:
		return v.Double()
	case VariantInt:
		i, ok := v.Int()
		return float64(i), ok
	case VariantUInt:
		u, ok := v.UInt()
		return float64(u), ok
	}
	return 0, false
}
