package stringfn

import (
	"reflect"
	"testing"
)

func TestConcat(t *testing.T) {
	if got := Concat("a", "b", "c"); got != "abc" {
		t.Fatalf("Concat = %q, want abc", got)
	}
}

func TestLengthCountsRunes(t *testing.T) {
	if got := Length("héllo"); got != 5 {
		t.Fatalf("Length = %d, want 5", got)
	}
}

func TestUpperLower(t *testing.T) {
	if got := Upper("MiXeD"); got != "MIXED" {
		t.Fatalf("Upper = %q, want MIXED", got)
	}
	if got := Lower("MiXeD"); got != "mixed" {
		t.Fatalf("Lower = %q, want mixed", got)
	}
}

func TestTrimVariants(t *testing.T) {
	if got := Trim("  hi  "); got != "hi" {
		t.Fatalf("Trim = %q, want hi", got)
	}
	if got := TrimStart("  hi  "); got != "hi  " {
		t.Fatalf("TrimStart = %q, want %q", got, "hi  ")
	}
	if got := TrimEnd("  hi  "); got != "  hi" {
		t.Fatalf("TrimEnd = %q, want %q", got, "  hi")
	}
}

func TestStartsEndsWith(t *testing.T) {
	if !StartsWith("hello", "he") {
		t.Fatal("expected StartsWith true")
	}
	if !EndsWith("hello", "lo") {
		t.Fatal("expected EndsWith true")
	}
}

func TestReplace(t *testing.T) {
	if got := Replace("a-b-c", "-", "+"); got != "a+b+c" {
		t.Fatalf("Replace = %q, want a+b+c", got)
	}
}

func TestSplitJoin(t *testing.T) {
	parts := Split("a,b,c", ",")
	if !reflect.DeepEqual(parts, []string{"a", "b", "c"}) {
		t.Fatalf("Split = %v", parts)
	}
	if got := Join(parts, "-"); got != "a-b-c" {
		t.Fatalf("Join = %q, want a-b-c", got)
	}
}

func TestPadStartEnd(t *testing.T) {
	if got := PadStart("7", 3, "0"); got != "007" {
		t.Fatalf("PadStart = %q, want 007", got)
	}
	if got := PadEnd("7", 3, "0"); got != "700" {
		t.Fatalf("PadEnd = %q, want 700", got)
	}
	if got := PadStart("abc", 2, "0"); got != "abc" {
		t.Fatalf("PadStart should no-op when already wide enough, got %q", got)
	}
}
