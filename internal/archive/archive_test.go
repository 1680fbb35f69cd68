package archive

import (
	"bytes"
	"testing"

	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	env := value.NewEnvironment()
	env.Define("pi", value.Number{Val: 0}, false) // stand-in so Builtin lookup below has a target
	env.Define("len", &value.Builtin{Name: "len", ArityN: 1}, false)

	rec := value.NewRecord()
	rec.Set("x", value.Number{Val: 1}, false)
	rec.Set("y", value.Number{Val: 2}, true)

	rt, err := tensor.New([]float64{1, 2, 3, 4}, []int{2, 2})
	if err != nil {
		t.Fatalf("tensor.New: %v", err)
	}

	tests := []struct {
		name string
		v    value.Value
	}{
		{"number", value.Number{Val: 3.5}},
		{"bool", value.Bool{Val: true}},
		{"string", value.Str{Val: "hello"}},
		{"null", value.Null{}},
		{"complex", value.Complex{Val: complex(1, 2)}},
		{"tensor", value.NewRealTensor(rt)},
		{"vector", &value.Vector{Items: []value.Value{value.Number{Val: 1}, value.Str{Val: "a"}}}},
		{"record", rec},
		{"edge", &value.Edge{From: value.Str{Val: "a"}, To: value.Str{Val: "b"}, Directed: true}},
		{"error", value.NewError(value.KindValueError, "bad value")},
		{"builtin", &value.Builtin{Name: "len", ArityN: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv, err := Serialize(tt.v)
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			got, err := Deserialize(sv, env)
			if err != nil {
				t.Fatalf("Deserialize: %v", err)
			}
			if got.Type() != tt.v.Type() {
				t.Errorf("type mismatch: got %s, want %s", got.Type(), tt.v.Type())
			}
			if got.String() != tt.v.String() {
				t.Errorf("value mismatch: got %q, want %q", got.String(), tt.v.String())
			}
		})
	}
}

func TestSerializeRejectsUserDefinedAndGenerator(t *testing.T) {
	if _, err := Serialize(&value.UserDefined{Name: "f"}); err == nil {
		t.Error("expected an error serializing a UserDefined function")
	}
	if _, err := Serialize(value.NewGenerator()); err == nil {
		t.Error("expected an error serializing a Generator")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	bindings, err := Save(map[string]value.Value{
		"x": value.Number{Val: 42},
		"s": value.Str{Val: "ok"},
	}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	var buf bytes.Buffer
	opts := WriteOptions{Description: "test archive", CreatorVersion: "0.1.0-dev", Now: 1700000000}
	if err := Write(&buf, bindings, opts); err != nil {
		t.Fatalf("Write: %v", err)
	}

	a, err := Read(&buf, false)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if a.Metadata.NumBindings != 2 {
		t.Errorf("got %d bindings, want 2", a.Metadata.NumBindings)
	}
	if a.Metadata.Description != "test archive" {
		t.Errorf("got description %q, want %q", a.Metadata.Description, "test archive")
	}
	if a.CreatedAt != 1700000000 {
		t.Errorf("got timestamp %d, want 1700000000", a.CreatedAt)
	}
}

func TestWriteReadRoundTripCompressed(t *testing.T) {
	bindings, err := Save(map[string]value.Value{"x": value.Number{Val: 1}}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, bindings, WriteOptions{Compress: true, Now: 1700000000}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	a, err := Read(&buf, false)
	if err != nil {
		t.Fatalf("Read (compressed): %v", err)
	}
	if a.Metadata.NumBindings != 1 {
		t.Errorf("got %d bindings, want 1", a.Metadata.NumBindings)
	}
}

func TestReadRejectsCorruptChecksum(t *testing.T) {
	bindings, err := Save(map[string]value.Value{"x": value.Number{Val: 1}}, func(string) bool { return false })
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, bindings, WriteOptions{Now: 1700000000}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	if _, err := Read(bytes.NewReader(corrupted), false); err == nil {
		t.Error("expected a checksum error on corrupted input")
	}
	if _, err := Read(bytes.NewReader(corrupted), true); err != nil {
		t.Errorf("skip-checksum read should still succeed: %v", err)
	}
}

func TestRestoreModes(t *testing.T) {
	bindings, err := Save(map[string]value.Value{
		"x": value.Number{Val: 1},
	}, func(string) bool { return true })
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	a := &Archive{
		Metadata: Metadata{BindingNames: []string{"x"}, NumBindings: 1},
		Bindings: bindings,
	}

	t.Run("merge keeps existing bindings", func(t *testing.T) {
		env := value.NewEnvironment()
		lookup := value.NewEnvironment()
		env.Define("y", value.Number{Val: 9}, false)
		if err := Restore(a, env, lookup, ModeMerge, ""); err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if v, ok := env.Get("y"); !ok || v.(value.Number).Val != 9 {
			t.Errorf("merge mode should not disturb pre-existing bindings")
		}
		if v, ok := env.Get("x"); !ok || v.(value.Number).Val != 1 {
			t.Errorf("merge mode should define archived bindings")
		}
	})

	t.Run("replace wipes the target scope first", func(t *testing.T) {
		env := value.NewEnvironment()
		lookup := value.NewEnvironment()
		env.Define("y", value.Number{Val: 9}, false)
		if err := Restore(a, env, lookup, ModeReplace, ""); err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if _, ok := env.Get("y"); ok {
			t.Errorf("replace mode should wipe pre-existing bindings")
		}
		if _, ok := env.Get("x"); !ok {
			t.Errorf("replace mode should define archived bindings")
		}
	})

	t.Run("namespace prefixes names", func(t *testing.T) {
		env := value.NewEnvironment()
		lookup := value.NewEnvironment()
		if err := Restore(a, env, lookup, ModeNamespace, "saved"); err != nil {
			t.Fatalf("Restore: %v", err)
		}
		if _, ok := env.Get("x"); ok {
			t.Errorf("namespace mode should not define the bare name")
		}
		if v, ok := env.Get("saved.x"); !ok || v.(value.Number).Val != 1 {
			t.Errorf("namespace mode should define the prefixed name")
		}
	})
}
