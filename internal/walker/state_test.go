package walker

import (
	"testing"

	"github.com/rs/zerolog"

	"formatic/internal/decompile"
	"formatic/internal/harness"
)

func newTestState(responses map[string]string) *State {
	return NewState(harness.NewFixture(responses), "MARK", "3.7", decompile.StubBackend{}, zerolog.Nop())
}

func TestNewState_SeedsDefaultBlacklists(t *testing.T) {
	s := newTestState(nil)
	if !s.classBlacklisted("object") {
		t.Fatalf("expected 'object' to be pre-seeded in ClassBlacklist")
	}
	if !s.attributeBlacklisted("__weakref__") {
		t.Fatalf("expected '__weakref__' to be pre-seeded in AttributeBlacklist")
	}
	if !s.moduleBlacklisted("os") {
		t.Fatalf("expected 'os' to be pre-seeded in ModuleBlacklist")
	}
	if !s.moduleBlacklisted("sys") {
		t.Fatalf("expected 'sys' to be pre-seeded in ModuleBlacklist")
	}
}

func TestState_MarkModuleVisited(t *testing.T) {
	s := newTestState(nil)
	if s.MarkModuleVisited("0.__dict__") {
		t.Fatalf("first visit should report not-already-visited")
	}
	if !s.MarkModuleVisited("0.__dict__") {
		t.Fatalf("second visit of same injection should report already-visited")
	}
}

func TestState_DecompileCache(t *testing.T) {
	s := newTestState(nil)
	co := decompile.CodeObject{Name: "f", FirstLineNo: 1}

	if _, ok := s.CachedDecompile(co); ok {
		t.Fatalf("expected no cache entry before StoreDecompile")
	}
	s.StoreDecompile(co, "return 1")
	got, ok := s.CachedDecompile(co)
	if !ok || got != "return 1" {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, "return 1")
	}
}
