//go:build !ios && !android && (amd64 || arm64)

package qmlnet

import (
	"time"
	"unicode/utf16"
)

// VariantType tags the value held by a NetVariant.
// The values match NetVariantTypeEnum in the native library.
type VariantType int32

const (
	VariantInvalid  VariantType = 0
	VariantBool     VariantType = 1
	VariantChar     VariantType = 2
	VariantInt      VariantType = 3
	VariantUInt     VariantType = 4
	VariantDouble   VariantType = 5
	VariantString   VariantType = 6
	VariantDateTime VariantType = 7
	VariantObject   VariantType = 8
)

// String returns the string representation of the variant type.
func (vt VariantType) String() string {
	switch vt {
	case VariantBool:
		return "bool"
	case VariantChar:
		return "char"
	case VariantInt:
		return "int"
	case VariantUInt:
		return "uint"
	case VariantDouble:
		return "double"
	case VariantString:
		return "string"
	case VariantDateTime:
		return "datetime"
	case VariantObject:
		return "object"
	default:
		return "invalid"
	}
}

// NetVariant is a view over a native variant: a tagged value slot used to
// carry property values across the boundary.
type NetVariant struct {
	handle Handle
}

// NewNetVariant allocates an empty native variant. Release it with Free.
func NewNetVariant() NetVariant {
	return NetVariant{handle: HandleFromUintptr(native().VariantCreate())}
}

// NetVariantFromHandle wraps a raw variant handle.
func NetVariantFromHandle(h Handle) NetVariant {
	return NetVariant{handle: h}
}

// Handle returns the underlying native handle.
func (v NetVariant) Handle() Handle { return v.handle }

// Equal reports whether v and o view the same native object.
func (v NetVariant) Equal(o NetVariant) bool { return v.handle == o.handle }

// Type returns the tag of the held value, or VariantInvalid when the handle
// is not a live variant.
func (v NetVariant) Type() VariantType {
	vt, ok := native().VariantType(v.handle.Uintptr())
	if !ok {
		return VariantInvalid
	}
	return VariantType(vt)
}

// Clear resets the variant to VariantInvalid.
func (v NetVariant) Clear() bool {
	return native().VariantClear(v.handle.Uintptr())
}

// SetBool stores b.
func (v NetVariant) SetBool(b bool) bool {
	return native().VariantSetBool(v.handle.Uintptr(), b)
}

// Bool returns the held bool; ok is false unless the variant holds one.
func (v NetVariant) Bool() (bool, bool) {
	return native().VariantBool(v.handle.Uintptr())
}

// SetChar stores a single UTF-16 code unit. Runes outside the Basic
// Multilingual Plane do not fit and are rejected.
func (v NetVariant) SetChar(r rune) bool {
	if r < 0 || r > 0xFFFF || utf16.IsSurrogate(r) {
		return false
	}
	return native().VariantSetChar(v.handle.Uintptr(), uint16(r))
}

// Char returns the held UTF-16 code unit as a rune.
func (v NetVariant) Char() (rune, bool) {
	c, ok := native().VariantChar(v.handle.Uintptr())
	return rune(c), ok
}

// SetInt stores a signed integer.
func (v NetVariant) SetInt(i int64) bool {
	return native().VariantSetInt(v.handle.Uintptr(), i)
}

// Int returns the held signed integer.
func (v NetVariant) Int() (int64, bool) {
	return native().VariantInt(v.handle.Uintptr())
}

// SetUInt stores an unsigned integer.
func (v NetVariant) SetUInt(u uint64) bool {
	return native().VariantSetUInt(v.handle.Uintptr(), u)
}

// UInt returns the held unsigned integer.
func (v NetVariant) UInt() (uint64, bool) {
	return native().VariantUInt(v.handle.Uintptr())
}

// SetDouble stores a floating-point number.
func (v NetVariant) SetDouble(d float64) bool {
	return native().VariantSetDouble(v.handle.Uintptr(), d)
}

// Double returns the held floating-point number.
func (v NetVariant) Double() (float64, bool) {
	return native().VariantDouble(v.handle.Uintptr())
}

// SetString stores s.
func (v NetVariant) SetString(s string) bool {
	return native().VariantSetString(v.handle.Uintptr(), s)
}

// StringValue returns the held string.
func (v NetVariant) StringValue() (string, bool) {
	return native().VariantString(v.handle.Uintptr())
}

// SetDateTime stores t with millisecond precision.
func (v NetVariant) SetDateTime(t time.Time) bool {
	return native().VariantSetDateTime(v.handle.Uintptr(), t.UnixMilli())
}

// DateTime returns the stored time in UTC.
func (v NetVariant) DateTime() (time.Time, bool) {
	ms, ok := native().VariantDateTime(v.handle.Uintptr())
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

// SetInstance stores a reference to inst. The variant keeps inst alive and
// drops it when the variant is overwritten or freed.
func (v NetVariant) SetInstance(inst NetInstance) bool {
	return native().VariantSetInstance(v.handle.Uintptr(), inst.handle.Uintptr())
}

// Instance returns the held instance; the result wraps a zero handle when the
// variant does not hold an object.
func (v NetVariant) Instance() NetInstance {
	return NetInstanceFromHandle(HandleFromUintptr(native().VariantInstance(v.handle.Uintptr())))
}

// Value returns the held value as a Go value: bool, rune, int64, uint64,
// float64, string, time.Time or NetInstance. It returns nil for an invalid
// variant.
func (v NetVariant) Value() any {
	switch v.Type() {
	case VariantBool:
		b, _ := v.Bool()
		return b
	case VariantChar:
		c, _ := v.Char()
		return c
	case VariantInt:
		i, _ := v.Int()
		return i
	case VariantUInt:
		u, _ := v.UInt()
		return u
	case VariantDouble:
		d, _ := v.Double()
		return d
	case VariantString:
		s, _ := v.StringValue()
		return s
	case VariantDateTime:
		t, _ := v.DateTime()
		return t
	case VariantObject:
		return v.Instance()
	default:
		return nil
	}
}
