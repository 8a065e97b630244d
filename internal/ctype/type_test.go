package ctype

import (
	"testing"

	"github.com/cfront/cdecl/internal/target"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	tg, err := target.Init(target.Default)
	if err != nil {
		t.Fatal(err)
	}
	return NewBuilder(tg)
}

func TestBasicSizesOnX8664(t *testing.T) {
	b := newBuilder(t)
	if b.TInt.Size() != 4 || b.TInt.Align() != 4 {
		t.Errorf("int: got size %d align %d", b.TInt.Size(), b.TInt.Align())
	}
	if b.TLong.Size() != 8 {
		t.Errorf("long on x86_64-sysv: got size %d, want 8", b.TLong.Size())
	}
	if !b.TChar.IsSigned() {
		t.Error("plain char on x86_64-sysv must be signed")
	}
}

func TestBasicSizesOnRiscv32(t *testing.T) {
	tg, err := target.Lookup("riscv32")
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(&tg)
	if b.TLong.Size() != 4 {
		t.Errorf("long on riscv32: got size %d, want 4", b.TLong.Size())
	}
}

func TestMakePointerUsesTargetWidth(t *testing.T) {
	b := newBuilder(t)
	p := b.MakePointer(b.TInt)
	if p.Size() != 8 || p.Align() != 8 {
		t.Errorf("pointer: got size %d align %d, want 8 8", p.Size(), p.Align())
	}
}

func TestMakeArrayIncomplete(t *testing.T) {
	b := newBuilder(t)
	arr, err := b.MakeArray(b.TInt, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !arr.Incomplete || arr.Size() != 0 {
		t.Errorf("expected incomplete zero-size array, got %+v", arr)
	}
}

func TestMakeArraySize(t *testing.T) {
	b := newBuilder(t)
	arr, err := b.MakeArray(b.TInt, 10)
	if err != nil {
		t.Fatal(err)
	}
	if arr.Size() != 40 {
		t.Errorf("got size %d, want 40", arr.Size())
	}
}

func TestMakeArrayOverflow(t *testing.T) {
	b := newBuilder(t)
	_, err := b.MakeArray(b.TLong, 1<<62)
	if err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestMakeQualifiedEmptyReturnsBaseUnchanged(t *testing.T) {
	b := newBuilder(t)
	got := b.MakeQualified(b.TInt, 0)
	if got != Type(b.TInt) {
		t.Error("expected MakeQualified with no quals to return base unchanged")
	}
}

func TestMakeQualifiedMergesIdempotently(t *testing.T) {
	b := newBuilder(t)
	once := b.MakeQualified(b.TInt, Const)
	twice := b.MakeQualified(once, Volatile)
	q, ok := twice.(*Qualified)
	if !ok {
		t.Fatalf("expected *Qualified, got %T", twice)
	}
	if !q.Quals.Has(Const) || !q.Quals.Has(Volatile) {
		t.Errorf("expected merged quals, got %v", q.Quals)
	}
	if _, nested := q.Base.(*Qualified); nested {
		t.Error("Qualified must not nest")
	}
}

func TestUnqualifyRoundTrip(t *testing.T) {
	b := newBuilder(t)
	qualified := b.MakeQualified(b.TInt, Const)
	base, quals := Unqualify(qualified)
	if base != Type(b.TInt) || quals != Const {
		t.Errorf("got base %v quals %v", base, quals)
	}
	base2, quals2 := Unqualify(b.TInt)
	if base2 != Type(b.TInt) || quals2 != 0 {
		t.Error("unqualify of an unqualified type must be a no-op")
	}
}

func TestAdjustArrayAndFunctionDecay(t *testing.T) {
	b := newBuilder(t)
	arr, _ := b.MakeArray(b.TInt, 4)
	adjusted := b.Adjust(arr)
	ptr, ok := adjusted.(*Pointer)
	if !ok {
		t.Fatalf("expected array to decay to pointer, got %T", adjusted)
	}
	if ptr.Base != Type(b.TInt) {
		t.Errorf("got pointer base %v, want int", ptr.Base)
	}

	fn := b.MakeFunction(b.TInt)
	adjustedFn := b.Adjust(fn)
	if _, ok := adjustedFn.(*Pointer); !ok {
		t.Fatalf("expected function to decay to pointer, got %T", adjustedFn)
	}
}
