package pyvalue

import (
	"testing"
)

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
	}{
		{"int", "42", KindInt},
		{"negative int", "-7", KindInt},
		{"float", "3.14", KindFloat},
		{"none", "None", KindNone},
		{"true", "True", KindBool},
		{"false", "False", KindBool},
		{"single-quoted str", "'hello'", KindText},
		{"double-quoted str", "\"hello\"", KindText},
		{"bytes", "b'hello'", KindBytes},
		{"tuple", "(1, 2)", KindTuple},
		{"list", "[1, 2]", KindList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %v", tt.in, err)
			}
			if v.Kind() != tt.kind {
				t.Fatalf("Parse(%q) kind = %v, want %v", tt.in, v.Kind(), tt.kind)
			}
		})
	}
}

func TestParse_StringEscapes(t *testing.T) {
	v, err := Parse(`'a\nb\'c'`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, ok := v.Text()
	if !ok {
		t.Fatalf("expected text value")
	}
	if want := "a\nb'c"; text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}

func TestParse_TextTuple(t *testing.T) {
	v, err := Parse("('a', 'b', 'c')")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := v.TextTuple()
	if !ok {
		t.Fatalf("expected TextTuple to succeed")
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParse_SingletonTuple(t *testing.T) {
	v, err := Parse("(1,)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elts, ok := v.Tuple()
	if !ok || len(elts) != 1 {
		t.Fatalf("expected a 1-tuple, got %+v", v)
	}
}

func TestParse_EmptyTuple(t *testing.T) {
	v, err := Parse("()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elts, ok := v.Tuple()
	if !ok || len(elts) != 0 {
		t.Fatalf("expected an empty tuple, got %+v", v)
	}
}

func TestParse_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"<object at 0x7f>",
		"{'a': 1}",
		"1 2",
		"(1, 2",
	}
	for _, in := range invalid {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q): expected error, got none", in)
		}
	}
}

func TestValue_Repr_RoundTrip(t *testing.T) {
	tests := []string{
		"42",
		"-7",
		"'hello'",
		"(1, 2)",
		"(1,)",
		"None",
		"True",
	}
	for _, in := range tests {
		v, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		roundTripped, err := Parse(v.Repr())
		if err != nil {
			t.Fatalf("Parse(Repr(%q)=%q): %v", in, v.Repr(), err)
		}
		if roundTripped.Kind() != v.Kind() {
			t.Fatalf("round trip kind mismatch for %q: %v != %v", in, roundTripped.Kind(), v.Kind())
		}
	}
}
