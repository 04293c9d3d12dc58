package memnative

// Variant type tags, matching NetVariantTypeEnum on the native side.
const (
	variantInvalid int32 = iota
	variantBool
	variantChar
	variantInt
	variantUInt
	variantDouble
	variantString
	variantDateTime
	variantObject
)

// InstanceCreate allocates a native instance that pairs a retained Go object
// (gcHandle) with its type info. When the instance is freed, gcHandle is
// passed to the store's release function.
func (s *Store) InstanceCreate(gcHandle, typeInfo uintptr) uintptr {
	return s.addWith(kindInstance, func() any {
		return &instance{gcHandle: gcHandle, typeInfo: s.retainLocked(typeInfo, kindTypeInfo)}
	})
}

func (s *Store) InstanceGCHandle(h uintptr) (gcHandle uintptr, ok bool) {
	ok = s.read(h, kindInstance, func(obj any) { gcHandle = obj.(*instance).gcHandle })
	return gcHandle, ok
}

func (s *Store) InstanceTypeInfo(h uintptr) (typeInfo uintptr) {
	s.read(h, kindInstance, func(obj any) { typeInfo = obj.(*instance).typeInfo })
	return typeInfo
}

// VariantCreate allocates an empty (invalid) variant.
func (s *Store) VariantCreate() uintptr {
	return s.add(kindVariant, &variant{})
}

func (s *Store) VariantType(h uintptr) (vt int32, ok bool) {
	ok = s.read(h, kindVariant, func(obj any) { vt = obj.(*variant).variantType })
	return vt, ok
}

func (s *Store) VariantClear(h uintptr) bool {
	return s.set(h, func(v *variant) { v.variantType = variantInvalid })
}

func (s *Store) VariantSetBool(h uintptr, b bool) bool {
	return s.set(h, func(v *variant) { v.variantType, v.b = variantBool, b })
}

func (s *Store) VariantBool(h uintptr) (b bool, ok bool) {
	ok = s.get1(h, variantBool, func(v *variant) { b = v.b })
	return b, ok
}

func (s *Store) VariantSetChar(h uintptr, c uint16) bool {
	return s.set(h, func(v *variant) { v.variantType, v.c = variantChar, c })
}

func (s *Store) VariantChar(h uintptr) (c uint16, ok bool) {
	ok = s.get1(h, variantChar, func(v *variant) { c = v.c })
	return c, ok
}

func (s *Store) VariantSetInt(h uintptr, i int64) bool {
	return s.set(h, func(v *variant) { v.variantType, v.i = variantInt, i })
}

func (s *Store) VariantInt(h uintptr) (i int64, ok bool) {
	ok = s.get1(h, variantInt, func(v *variant) { i = v.i })
	return i, ok
}

func (s *Store) VariantSetUInt(h uintptr, u uint64) bool {
	return s.set(h, func(v *variant) { v.variantType, v.u = variantUInt, u })
}

func (s *Store) VariantUInt(h uintptr) (u uint64, ok bool) {
	ok = s.get1(h, variantUInt, func(v *variant) { u = v.u })
	return u, ok
}

func (s *Store) VariantSetDouble(h uintptr, d float64) bool {
	return s.set(h, func(v *variant) { v.variantType, v.d = variantDouble, d })
}

func (s *Store) VariantDouble(h uintptr) (d float64, ok bool) {
	ok = s.get1(h, variantDouble, func(v *variant) { d = v.d })
	return d, ok
}

func (s *Store) VariantSetString(h uintptr, str string) bool {
	return s.set(h, func(v *variant) { v.variantType, v.s = variantString, str })
}

func (s *Store) VariantString(h uintptr) (str string, ok bool) {
	ok = s.get1(h, variantString, func(v *variant) { str = v.s })
	return str, ok
}

// VariantSetDateTime stores a point in time as milliseconds since the Unix
// epoch, the resolution QDateTime round-trips.
func (s *Store) VariantSetDateTime(h uintptr, unixMilli int64) bool {
	return s.set(h, func(v *variant) { v.variantType, v.i = variantDateTime, unixMilli })
}

func (s *Store) VariantDateTime(h uintptr) (unixMilli int64, ok bool) {
	ok = s.get1(h, variantDateTime, func(v *variant) { unixMilli = v.i })
	return unixMilli, ok
}

// VariantSetInstance stores a reference to inst, which must be a live
// instance handle of this store.
func (s *Store) VariantSetInstance(h, inst uintptr) bool {
	return s.update(h, func(v *variant) bool {
		if s.retainLocked(inst, kindInstance) == 0 {
			return false
		}
		v.variantType, v.instance = variantObject, inst
		return true
	})
}

func (s *Store) VariantInstance(h uintptr) (inst uintptr) {
	s.get1(h, variantObject, func(v *variant) { inst = v.instance })
	return inst
}

func (s *Store) set(h uintptr, fn func(v *variant)) bool {
	return s.update(h, func(v *variant) bool {
		fn(v)
		return true
	})
}

// update applies fn to the variant under h. When fn succeeds, the reference
// to the instance the variant held before is dropped.
func (s *Store) update(h uintptr, fn func(v *variant) bool) bool {
	var gc []uintptr
	s.mu.Lock()
	obj, ok := s.get(h, kindVariant)
	if ok {
		v := obj.(*variant)
		old := v.heldInstance()
		if ok = fn(v); ok {
			if v.variantType != variantObject {
				v.instance = 0
			}
			if old != 0 {
				s.releaseLocked(old, &gc)
			}
		}
	}
	s.mu.Unlock()
	s.releaseGC(gc)
	return ok
}

// heldInstance returns the instance the variant refers to, or 0.
func (v *variant) heldInstance() uintptr {
	if v.variantType != variantObject {
		return 0
	}
	return v.instance
}

// get1 reads from the variant under h only when it currently holds vt.
func (s *Store) get1(h uintptr, vt int32, fn func(v *variant)) bool {
	matched := false
	s.read(h, kindVariant, func(obj any) {
		v := obj.(*variant)
		if v.variantType == vt {
			fn(v)
			matched = true
		}
	})
	return matched
}
