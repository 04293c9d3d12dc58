package memnative

// TypeInfoCreate allocates a type info for fullTypeName.
func (s *Store) TypeInfoCreate(fullTypeName string) uintptr {
	return s.add(kindTypeInfo, &typeInfo{fullTypeName: fullTypeName})
}

func (s *Store) TypeInfoFullTypeName(h uintptr) (name string, ok bool) {
	ok = s.read(h, kindTypeInfo, func(obj any) { name = obj.(*typeInfo).fullTypeName })
	return name, ok
}

func (s *Store) TypeInfoClassName(h uintptr) (name string, ok bool) {
	ok = s.read(h, kindTypeInfo, func(obj any) { name = obj.(*typeInfo).className })
	return name, ok
}

func (s *Store) TypeInfoSetClassName(h uintptr, name string) bool {
	return s.write(h, kindTypeInfo, func(obj any) { obj.(*typeInfo).className = name })
}

func (s *Store) TypeInfoPrefVariantType(h uintptr) (vt int32, ok bool) {
	ok = s.read(h, kindTypeInfo, func(obj any) { vt = obj.(*typeInfo).prefVariantType })
	return vt, ok
}

func (s *Store) TypeInfoSetPrefVariantType(h uintptr, vt int32) bool {
	return s.write(h, kindTypeInfo, func(obj any) { obj.(*typeInfo).prefVariantType = vt })
}

func (s *Store) TypeInfoAddMethod(h, method uintptr) bool {
	return s.link(h, kindTypeInfo, method, kindMethodInfo, func(obj any) {
		ti := obj.(*typeInfo)
		ti.methods = append(ti.methods, method)
	})
}

func (s *Store) TypeInfoMethodCount(h uintptr) (n int32) {
	s.read(h, kindTypeInfo, func(obj any) { n = int32(len(obj.(*typeInfo).methods)) })
	return n
}

func (s *Store) TypeInfoMethod(h uintptr, index int32) (method uintptr) {
	s.read(h, kindTypeInfo, func(obj any) { method = at(obj.(*typeInfo).methods, index) })
	return method
}

func (s *Store) TypeInfoAddProperty(h, property uintptr) bool {
	return s.link(h, kindTypeInfo, property, kindPropertyInfo, func(obj any) {
		ti := obj.(*typeInfo)
		ti.properties = append(ti.properties, property)
	})
}

func (s *Store) TypeInfoPropertyCount(h uintptr) (n int32) {
	s.read(h, kindTypeInfo, func(obj any) { n = int32(len(obj.(*typeInfo).properties)) })
	return n
}

func (s *Store) TypeInfoProperty(h uintptr, index int32) (property uintptr) {
	s.read(h, kindTypeInfo, func(obj any) { property = at(obj.(*typeInfo).properties, index) })
	return property
}

func (s *Store) TypeInfoAddSignal(h, signal uintptr) bool {
	return s.link(h, kindTypeInfo, signal, kindSignalInfo, func(obj any) {
		ti := obj.(*typeInfo)
		ti.signals = append(ti.signals, signal)
	})
}

func (s *Store) TypeInfoSignalCount(h uintptr) (n int32) {
	s.read(h, kindTypeInfo, func(obj any) { n = int32(len(obj.(*typeInfo).signals)) })
	return n
}

func (s *Store) TypeInfoSignal(h uintptr, index int32) (signal uintptr) {
	s.read(h, kindTypeInfo, func(obj any) { signal = at(obj.(*typeInfo).signals, index) })
	return signal
}

func (s *Store) TypeInfoLoadState(h uintptr) (loaded, loading, ok bool) {
	ok = s.read(h, kindTypeInfo, func(obj any) {
		ti := obj.(*typeInfo)
		loaded, loading = ti.loaded, ti.loading
	})
	return loaded, loading, ok
}

func (s *Store) TypeInfoSetLoadState(h uintptr, loaded, loading bool) bool {
	return s.write(h, kindTypeInfo, func(obj any) {
		ti := obj.(*typeInfo)
		ti.loaded, ti.loading = loaded, loading
	})
}

// TypeInfoBeginLoad marks h as loading if it is neither loaded nor loading,
// and reports whether it did. Exactly one caller wins for a given type info.
func (s *Store) TypeInfoBeginLoad(h uintptr) (begun bool) {
	s.write(h, kindTypeInfo, func(obj any) {
		ti := obj.(*typeInfo)
		if !ti.loaded && !ti.loading {
			ti.loading = true
			begun = true
		}
	})
	return begun
}

// PropertyInfoCreate allocates a property info. parentType and returnType may
// be zero; notifySignal is zero when the property has no change signal.
// The property references its return type and notify signal; the parent type
// is not referenced, since the parent lists the property.
func (s *Store) PropertyInfoCreate(parentType uintptr, name string, returnType uintptr, canRead, canWrite bool, notifySignal uintptr) uintptr {
	return s.addWith(kindPropertyInfo, func() any {
		return &propertyInfo{
			parentType:   parentType,
			name:         name,
			returnType:   s.retainLocked(returnType, kindTypeInfo),
			canRead:      canRead,
			canWrite:     canWrite,
			notifySignal: s.retainLocked(notifySignal, kindSignalInfo),
		}
	})
}

func (s *Store) PropertyInfoParentType(h uintptr) (parent uintptr) {
	s.read(h, kindPropertyInfo, func(obj any) { parent = obj.(*propertyInfo).parentType })
	return parent
}

func (s *Store) PropertyInfoName(h uintptr) (name string, ok bool) {
	ok = s.read(h, kindPropertyInfo, func(obj any) { name = obj.(*propertyInfo).name })
	return name, ok
}

func (s *Store) PropertyInfoReturnType(h uintptr) (ret uintptr) {
	s.read(h, kindPropertyInfo, func(obj any) { ret = obj.(*propertyInfo).returnType })
	return ret
}

func (s *Store) PropertyInfoCanRead(h uintptr) (canRead, ok bool) {
	ok = s.read(h, kindPropertyInfo, func(obj any) { canRead = obj.(*propertyInfo).canRead })
	return canRead, ok
}

func (s *Store) PropertyInfoCanWrite(h uintptr) (canWrite, ok bool) {
	ok = s.read(h, kindPropertyInfo, func(obj any) { canWrite = obj.(*propertyInfo).canWrite })
	return canWrite, ok
}

func (s *Store) PropertyInfoNotifySignal(h uintptr) (signal uintptr) {
	s.read(h, kindPropertyInfo, func(obj any) { signal = obj.(*propertyInfo).notifySignal })
	return signal
}

// MethodInfoCreate allocates a method info. returnType is zero for methods
// without a result.
func (s *Store) MethodInfoCreate(parentType uintptr, name string, returnType uintptr) uintptr {
	return s.addWith(kindMethodInfo, func() any {
		return &methodInfo{parentType: parentType, name: name, returnType: s.retainLocked(returnType, kindTypeInfo)}
	})
}

func (s *Store) MethodInfoParentType(h uintptr) (parent uintptr) {
	s.read(h, kindMethodInfo, func(obj any) { parent = obj.(*methodInfo).parentType })
	return parent
}

func (s *Store) MethodInfoName(h uintptr) (name string, ok bool) {
	ok = s.read(h, kindMethodInfo, func(obj any) { name = obj.(*methodInfo).name })
	return name, ok
}

func (s *Store) MethodInfoReturnType(h uintptr) (ret uintptr) {
	s.read(h, kindMethodInfo, func(obj any) { ret = obj.(*methodInfo).returnType })
	return ret
}

func (s *Store) MethodInfoAddParameter(h uintptr, name string, typeInfo uintptr) bool {
	return s.write(h, kindMethodInfo, func(obj any) {
		mi := obj.(*methodInfo)
		mi.parameters = append(mi.parameters, parameter{name: name, typeInfo: s.retainLocked(typeInfo, kindTypeInfo)})
	})
}

func (s *Store) MethodInfoParameterCount(h uintptr) (n int32) {
	s.read(h, kindMethodInfo, func(obj any) { n = int32(len(obj.(*methodInfo).parameters)) })
	return n
}

func (s *Store) MethodInfoParameter(h uintptr, index int32) (name string, typeInfo uintptr, ok bool) {
	s.read(h, kindMethodInfo, func(obj any) {
		params := obj.(*methodInfo).parameters
		if index >= 0 && int(index) < len(params) {
			name, typeInfo, ok = params[index].name, params[index].typeInfo, true
		}
	})
	return name, typeInfo, ok
}

// SignalInfoCreate allocates a signal info.
func (s *Store) SignalInfoCreate(parentType uintptr, name string) uintptr {
	return s.add(kindSignalInfo, &signalInfo{parentType: parentType, name: name})
}

func (s *Store) SignalInfoParentType(h uintptr) (parent uintptr) {
	s.read(h, kindSignalInfo, func(obj any) { parent = obj.(*signalInfo).parentType })
	return parent
}

func (s *Store) SignalInfoName(h uintptr) (name string, ok bool) {
	ok = s.read(h, kindSignalInfo, func(obj any) { name = obj.(*signalInfo).name })
	return name, ok
}

func (s *Store) SignalInfoAddParameter(h uintptr, vt int32) bool {
	return s.write(h, kindSignalInfo, func(obj any) {
		si := obj.(*signalInfo)
		si.parameters = append(si.parameters, vt)
	})
}

func (s *Store) SignalInfoParameterCount(h uintptr) (n int32) {
	s.read(h, kindSignalInfo, func(obj any) { n = int32(len(obj.(*signalInfo).parameters)) })
	return n
}

func (s *Store) SignalInfoParameter(h uintptr, index int32) (vt int32, ok bool) {
	s.read(h, kindSignalInfo, func(obj any) {
		params := obj.(*signalInfo).parameters
		if index >= 0 && int(index) < len(params) {
			vt, ok = params[index], true
		}
	})
	return vt, ok
}

func at(list []uintptr, index int32) uintptr {
	if index < 0 || int(index) >= len(list) {
		return 0
	}
	return list[index]
}
