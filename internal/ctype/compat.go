package ctype

// Same reports structural equality modulo qualifier wrappers (§4.2): two
// types are Same if, after peeling at most one Qualified wrapper from
// each, their underlying shapes match recursively. Struct/union/enum
// identity is by tag pointer, matching decl.c's pointer-equality checks on
// `struct type *` for tagged types (types.go on the teacher side takes the
// analogous "value equality for value types, identity for named types"
// split).
func Same(a, b Type) bool {
	ua, _ := Unqualify(a)
	ub, _ := Unqualify(b)
	return sameUnqualified(ua, ub)
}

func sameUnqualified(a, b Type) bool {
	switch av := a.(type) {
	case *Void:
		_, ok := b.(*Void)
		return ok
	case *Basic:
		bv, ok := b.(*Basic)
		return ok && av.Kind == bv.Kind
	case *Pointer:
		bv, ok := b.(*Pointer)
		return ok && Same(av.Base, bv.Base)
	case *Array:
		bv, ok := b.(*Array)
		if !ok || !Same(av.Base, bv.Base) {
			return false
		}
		if av.Incomplete || bv.Incomplete {
			return true
		}
		return av.Length == bv.Length
	case *Function:
		bv, ok := b.(*Function)
		return ok && sameFunction(av, bv)
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && av == bv
	case *Enum:
		bv, ok := b.(*Enum)
		return ok && av == bv
	}
	return false
}

func sameFunction(a, b *Function) bool {
	if !Same(a.Return, b.Return) {
		return false
	}
	if a.IsPrototype != b.IsPrototype || a.IsVararg != b.IsVararg {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Same(a.Params[i].Type, b.Params[i].Type) {
			return false
		}
	}
	return true
}

// Compatible implements C11 type compatibility (§4.2): identical after
// typedef expansion (our types never retain typedef identity, so this
// reduces to structural comparison), except that function compatibility
// additionally permits one prototyped declaration against one
// unprototyped declaration, provided the prototype's parameter types would
// survive default argument promotion unchanged.
func Compatible(a, b Type) bool {
	ua, qa := Unqualify(a)
	ub, qb := Unqualify(b)
	if qa != qb {
		return false
	}
	return compatibleUnqualified(ua, ub)
}

func compatibleUnqualified(a, b Type) bool {
	fa, aIsFunc := a.(*Function)
	fb, bIsFunc := b.(*Function)
	if aIsFunc && bIsFunc {
		return compatibleFunction(fa, fb)
	}
	if aIsFunc != bIsFunc {
		return false
	}

	aa, aIsArr := a.(*Array)
	ab, bIsArr := b.(*Array)
	if aIsArr && bIsArr {
		if !Compatible(aa.Base, ab.Base) {
			return false
		}
		if aa.Incomplete || ab.Incomplete {
			return true
		}
		return aa.Length == ab.Length
	}

	return sameUnqualified(a, b)
}

func compatibleFunction(a, b *Function) bool {
	if !Compatible(a.Return, b.Return) {
		return false
	}
	switch {
	case a.IsPrototype && b.IsPrototype:
		if a.IsVararg != b.IsVararg || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Compatible(a.Params[i].Type, b.Params[i].Type) {
				return false
			}
		}
		return true
	case a.IsPrototype && !b.IsPrototype:
		return prototypeSurvivesPromotion(a)
	case !a.IsPrototype && b.IsPrototype:
		return prototypeSurvivesPromotion(b)
	default:
		return true
	}
}

// prototypeSurvivesPromotion reports whether every parameter of a
// prototyped function type is unaffected by default argument promotion,
// the condition §4.2 requires for compatibility against an unprototyped
// declaration of the same function.
func prototypeSurvivesPromotion(f *Function) bool {
	if f.IsVararg {
		return false
	}
	for _, p := range f.Params {
		if b, ok := p.Type.(*Basic); ok {
			switch b.Kind {
			case Char, SChar, UChar, Short, UShort, Bool, Float:
				return false
			}
		}
	}
	return true
}

// Composite forms the type from two compatible declarations of the same
// identifier (§4.2): it chooses the known array length, the prototype
// function type, and recurses into bases elsewhere. Callers must check
// Compatible(a, b) first; Composite does not re-validate.
func Composite(a, b Type) Type {
	ua, quals := Unqualify(a)
	ub, _ := Unqualify(b)
	base := compositeUnqualified(ua, ub)
	if quals == 0 {
		return base
	}
	return &Qualified{Base: base, Quals: quals}
}

func compositeUnqualified(a, b Type) Type {
	if fa, ok := a.(*Function); ok {
		fb := b.(*Function)
		return compositeFunction(fa, fb)
	}
	if aa, ok := a.(*Array); ok {
		ab := b.(*Array)
		length := aa.Length
		incomplete := aa.Incomplete
		if incomplete && !ab.Incomplete {
			length = ab.Length
			incomplete = false
		}
		return &Array{Base: Composite(aa.Base, ab.Base), Length: length, Incomplete: incomplete}
	}
	if pa, ok := a.(*Pointer); ok {
		pb := b.(*Pointer)
		return &Pointer{Base: Composite(pa.Base, pb.Base), ByteSize: pa.ByteSize, ByteAlign: pa.ByteAlign}
	}
	return a
}

func compositeFunction(a, b *Function) *Function {
	proto, other := a, b
	if !a.IsPrototype && b.IsPrototype {
		proto, other = b, a
	}
	_ = other
	return &Function{
		Return:      Composite(a.Return, b.Return),
		Params:      proto.Params,
		IsPrototype: proto.IsPrototype,
		IsVararg:    proto.IsVararg,
		IsNoreturn:  a.IsNoreturn || b.IsNoreturn,
	}
}
