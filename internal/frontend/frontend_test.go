package frontend

import (
	"testing"
)

func TestTranslateEndToEnd(t *testing.T) {
	result, err := Translate(`
		typedef unsigned long size_t;
		static int counter;
		int add(int a, int b) { return a + b; }
		struct point { int x; int y; } origin;
	`, "")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if result.Target.Name != "x86_64-sysv" {
		t.Fatalf("expected default target, got %s", result.Target.Name)
	}
	if len(result.Recorder.Data) != 2 {
		t.Fatalf("expected 2 data emissions (counter, origin), got %d", len(result.Recorder.Data))
	}
	if len(result.Recorder.Funcs) != 1 {
		t.Fatalf("expected 1 function emission, got %d", len(result.Recorder.Funcs))
	}
}

func TestTranslateReportsDiagnosticOnError(t *testing.T) {
	_, err := Translate("int x y;", "")
	if err == nil {
		t.Fatal("expected a diagnostic error")
	}
}

func TestTranslateUnknownTargetIsAnError(t *testing.T) {
	_, err := Translate("int x;", "not-a-real-target")
	if err == nil {
		t.Fatal("expected an error for an unknown target")
	}
}

func TestTranslateRiscv32UsesNarrowerLong(t *testing.T) {
	result, err := Translate("long x;", "riscv32")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	d, _ := result.FileScope.LookupDecl("x", false)
	if d.Type.Size() != 4 {
		t.Fatalf("expected riscv32's long to be 4 bytes, got %d", d.Type.Size())
	}
}

func TestTypeNameAt(t *testing.T) {
	source := "int x; const int *"
	got, err := TypeNameAt(source, "", len("int x; "))
	if err != nil {
		t.Fatalf("TypeNameAt: %v", err)
	}
	want := "pointer to const int"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
