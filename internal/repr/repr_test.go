package repr

import (
	"testing"

	"github.com/cfront/cdecl/internal/ctype"
	"github.com/cfront/cdecl/internal/target"
)

func builder(t *testing.T) *ctype.Builder {
	t.Helper()
	tg, err := target.Init(target.Default)
	if err != nil {
		t.Fatal(err)
	}
	return ctype.NewBuilder(tg)
}

func TestReprOfBasic(t *testing.T) {
	b := builder(t)
	r := Of(b.TInt)
	if r.Class != ClassInteger || r.Size != 4 {
		t.Errorf("got %+v", r)
	}
}

func TestReprOfFloat(t *testing.T) {
	b := builder(t)
	r := Of(b.TDouble)
	if r.Class != ClassFloat || r.Size != 8 {
		t.Errorf("got %+v", r)
	}
}

func TestReprOfPointerIgnoresQualifiers(t *testing.T) {
	b := builder(t)
	p := b.MakeQualified(b.MakePointer(b.TInt), ctype.Const)
	r := Of(p)
	if r.Class != ClassPointer || r.Size != 8 {
		t.Errorf("got %+v", r)
	}
}

func TestReprOfStructIsAggregate(t *testing.T) {
	b := builder(t)
	s := b.MakeStruct("S")
	s.ByteSize, s.ByteAlign = 16, 8
	r := Of(s)
	if r.Class != ClassAggregate || r.Size != 16 || r.Align != 8 {
		t.Errorf("got %+v", r)
	}
}

func TestReprOfVoid(t *testing.T) {
	b := builder(t)
	r := Of(b.Void)
	if r.Class != ClassVoid {
		t.Errorf("got %+v", r)
	}
}
