package target

import "testing"

func TestLookupDefault(t *testing.T) {
	tg, err := Lookup("")
	if err != nil {
		t.Fatal(err)
	}
	if tg.Name != Default {
		t.Errorf("got %q, want %q", tg.Name, Default)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("sparc64"); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestRiscv32Is32Bit(t *testing.T) {
	tg, err := Lookup("riscv32")
	if err != nil {
		t.Fatal(err)
	}
	if tg.PointerSize != 4 || tg.LongSize != 4 {
		t.Errorf("riscv32: got pointer size %d long size %d, want 4 4", tg.PointerSize, tg.LongSize)
	}
}

func TestAarch64CharIsUnsigned(t *testing.T) {
	tg, err := Lookup("aarch64")
	if err != nil {
		t.Fatal(err)
	}
	if tg.SignedChar {
		t.Error("aarch64 plain char must be unsigned")
	}
}

func TestAllListsFourTargets(t *testing.T) {
	if len(All()) != 4 {
		t.Fatalf("got %d targets, want 4", len(All()))
	}
}

func TestInitReturnsIndependentCopy(t *testing.T) {
	t1, err := Init(Default)
	if err != nil {
		t.Fatal(err)
	}
	t1.PointerSize = 1234
	t2, err := Init(Default)
	if err != nil {
		t.Fatal(err)
	}
	if t2.PointerSize == 1234 {
		t.Error("Init must not share state across calls")
	}
}
