package ctype

import "testing"

func TestSamePointerRecurses(t *testing.T) {
	b := newBuilder(t)
	p1 := b.MakePointer(b.TInt)
	p2 := b.MakePointer(b.TInt)
	if !Same(p1, p2) {
		t.Error("pointers to the same base must be Same")
	}
	p3 := b.MakePointer(b.TChar)
	if Same(p1, p3) {
		t.Error("pointers to different bases must not be Same")
	}
}

func TestSameIgnoresQualifiers(t *testing.T) {
	b := newBuilder(t)
	qualified := b.MakeQualified(b.TInt, Const)
	if !Same(qualified, b.TInt) {
		t.Error("Same must ignore qualifier wrappers")
	}
}

func TestSameStructIdentity(t *testing.T) {
	b := newBuilder(t)
	s1 := b.MakeStruct("S")
	s2 := b.MakeStruct("S")
	if Same(s1, s2) {
		t.Error("distinct struct tags with the same name must not be Same")
	}
	if !Same(s1, s1) {
		t.Error("a struct type must be Same as itself")
	}
}

func TestCompatibleArrayLengths(t *testing.T) {
	b := newBuilder(t)
	known, _ := b.MakeArray(b.TInt, 10)
	unknown, _ := b.MakeArray(b.TInt, 0)
	if !Compatible(known, unknown) {
		t.Error("known and incomplete array of same base must be compatible")
	}
	other, _ := b.MakeArray(b.TInt, 5)
	if Compatible(known, other) {
		t.Error("arrays of differing known length must not be compatible")
	}
}

func TestCompositeArrayChoosesKnownLength(t *testing.T) {
	b := newBuilder(t)
	unknown, _ := b.MakeArray(b.TInt, 0)
	known, _ := b.MakeArray(b.TInt, 10)
	composite := Composite(unknown, known)
	arr, ok := composite.(*Array)
	if !ok {
		t.Fatalf("expected *Array, got %T", composite)
	}
	if arr.Incomplete || arr.Length != 10 {
		t.Errorf("got %+v, want complete length 10", arr)
	}
}

func TestCompositeCommutesUnderCompatible(t *testing.T) {
	b := newBuilder(t)
	unknown, _ := b.MakeArray(b.TInt, 0)
	known, _ := b.MakeArray(b.TInt, 10)
	if !Same(Composite(unknown, known), Composite(known, unknown)) {
		t.Error("Composite must commute for compatible types")
	}
}

func TestCompatibleFunctionPrototypeVsUnprototyped(t *testing.T) {
	b := newBuilder(t)
	proto := &Function{
		Return:      b.TInt,
		Params:      []Param{{Type: b.TInt}},
		IsPrototype: true,
	}
	unprotod := &Function{Return: b.TInt, IsPrototype: false}
	if !Compatible(proto, unprotod) {
		t.Error("prototype with only promotion-stable params must be compatible with unprototyped decl")
	}

	protoWithChar := &Function{
		Return:      b.TInt,
		Params:      []Param{{Type: b.TChar}},
		IsPrototype: true,
	}
	if Compatible(protoWithChar, unprotod) {
		t.Error("a char parameter does not survive default promotion, so this must be incompatible")
	}
}

func TestCompositeFunctionPrefersPrototype(t *testing.T) {
	b := newBuilder(t)
	proto := &Function{
		Return:      b.TInt,
		Params:      []Param{{Type: b.TInt}},
		IsPrototype: true,
	}
	unprotod := &Function{Return: b.TInt, IsPrototype: false}
	composite := Composite(unprotod, proto).(*Function)
	if !composite.IsPrototype || len(composite.Params) != 1 {
		t.Errorf("expected composite to adopt the prototype, got %+v", composite)
	}
}
