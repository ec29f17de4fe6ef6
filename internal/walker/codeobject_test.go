package walker

import (
	"context"
	"testing"

	"formatic/internal/decompile"
)

// TestWalkConsts_E6 verifies that co_consts is walked index-by-index and
// probing stops as soon as an index comes back empty.
func TestWalkConsts_E6(t *testing.T) {
	responses := map[string]string{
		"0.co_consts[0]!r": "<code object inner at 0x2, file \"a.py\", line 5>",

		"0.co_consts[0].co_argcount!r":       "0",
		"0.co_consts[0].co_kwonlyargcount!r": "0",
		"0.co_consts[0].co_nlocals!r":        "0",
		"0.co_consts[0].co_stacksize!r":      "1",
		"0.co_consts[0].co_flags!r":          "67",
		"0.co_consts[0].co_code!r":           "b'd\\x00S\\x00'",
		"0.co_consts[0].co_lnotab!r":         "b''",
		"0.co_consts[0].co_names!r":          "()",
		"0.co_consts[0].co_varnames!r":       "()",
		"0.co_consts[0].co_filename!r":       "'a.py'",
		"0.co_consts[0].co_name!r":           "'inner'",
		"0.co_consts[0].co_firstlineno!r":    "5",
		"0.co_consts[0].co_freevars!r":       "()",
		"0.co_consts[0].co_cellvars!r":       "()",

		"0.co_consts[1]!r": "42",
		// co_consts[2] deliberately absent.
	}
	state := newTestState(responses)

	_, consts, ok := walkConsts(context.Background(), state, "0")
	if !ok {
		t.Fatalf("expected walkConsts to succeed")
	}

	if len(consts) != 2 {
		t.Fatalf("expected exactly 2 constants recovered, got %d: %v", len(consts), consts)
	}
	inner, ok := consts[0].(decompile.CodeObject)
	if !ok {
		t.Fatalf("expected consts[0] to be a decompile.CodeObject, got %T", consts[0])
	}
	if inner.Name != "inner" {
		t.Errorf("got inner code object name %q, want %q", inner.Name, "inner")
	}

	for _, call := range state.Harness.(interface{ Calls() []string }).Calls() {
		if call == "0.co_consts[2]!r" {
			t.Fatalf("expected no probe past the first missing index")
		}
	}
}

// TestWalkCodeObject_Fidelity verifies Testable Property 6: reconstructing a
// code object whose 15 fields were all recovered without fault reproduces
// the same field values.
func TestWalkCodeObject_Fidelity(t *testing.T) {
	responses := map[string]string{
		"0.co_argcount!r":       "2",
		"0.co_kwonlyargcount!r": "0",
		"0.co_nlocals!r":        "2",
		"0.co_stacksize!r":      "2",
		"0.co_flags!r":          "67",
		"0.co_code!r":           "b'|\\x00|\\x01\\x17\\x00S\\x00'",
		"0.co_lnotab!r":         "b'\\x00\\x01'",
		"0.co_names!r":          "()",
		"0.co_varnames!r":       "('a', 'b')",
		"0.co_filename!r":       "'a.py'",
		"0.co_name!r":           "'add'",
		"0.co_firstlineno!r":    "10",
		"0.co_freevars!r":       "()",
		"0.co_cellvars!r":       "()",
	}
	state := newTestState(responses)
	state.Decompiler = decompile.StubBackend{}

	events := Drain(context.Background(), walkCodeObject(state, "0")(context.Background()))

	var co *CodeObject
	for _, ev := range events {
		if c, ok := ev.Walker.(*CodeObject); ok {
			co = c
		}
	}
	if co == nil {
		t.Fatalf("expected a terminal CodeObject event, got %v", events)
	}
	if co.Fields.Name != "add" || co.Fields.ArgCount != 2 || co.Fields.FirstLineNo != 10 {
		t.Fatalf("recovered fields do not match input: %+v", co.Fields)
	}
	if co.Fields.NLocals != 2 {
		t.Errorf("got NLocals %d, want 2", co.Fields.NLocals)
	}
	if string(co.Fields.Lnotab) != "\x00\x01" {
		t.Errorf("got Lnotab %q, want %q", co.Fields.Lnotab, "\x00\x01")
	}
	if len(co.Fields.VarNames) != 2 || co.Fields.VarNames[0] != "a" || co.Fields.VarNames[1] != "b" {
		t.Fatalf("got VarNames %v, want [a b]", co.Fields.VarNames)
	}
}
