package walker

import (
	"context"
	"testing"
)

// TestWalkModule_E5 verifies a blacklisted nested module ("os") is skipped
// entirely: no injection is ever sent for its __dict__.
func TestWalkModule_E5(t *testing.T) {
	responses := map[string]string{
		"0[__name__]!r": "'m'",
		"0[__doc__]!r":  "''",
		"0":             "{'os': <module 'os' from '/usr/lib/os.py'>}",
		"0[os]!r":       "<module 'os' from '/usr/lib/os.py'>",
	}
	state := newTestState(responses)

	events := Drain(context.Background(), walkModule(state, "0")(context.Background()))

	for _, ev := range events {
		if nm, ok := ev.Walker.(*Module); ok && nm.Name == "os" {
			t.Fatalf("expected no recursion into blacklisted module 'os', got %v", nm)
		}
	}

	for _, call := range state.Harness.(interface{ Calls() []string }).Calls() {
		if call == "0[os].__dict__" {
			t.Fatalf("expected no injection for os.__dict__, but one was sent")
		}
	}
}

func TestWalkModule_AbortsOnBlacklistedSelf(t *testing.T) {
	state := newTestState(map[string]string{
		"0[__name__]!r": "'sys'",
	})

	events := Drain(context.Background(), walkModule(state, "0")(context.Background()))

	for _, ev := range events {
		if _, ok := ev.Walker.(*Module); ok {
			t.Fatalf("expected no terminal Module event for an already-blacklisted module, got %v", events)
		}
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly one Failure event and nothing else, got %v", events)
	}
	if _, ok := events[0].Walker.(*Failure); !ok {
		t.Fatalf("expected a Failure event, got %T", events[0].Walker)
	}
}

func TestWalkModule_BlacklistsNameAfterWalk(t *testing.T) {
	state := newTestState(map[string]string{
		"0[__name__]!r": "'mymod'",
		"0[__doc__]!r":  "''",
		"0":             "{}",
	})
	if state.moduleBlacklisted("mymod") {
		t.Fatalf("'mymod' should not be blacklisted before the walk runs")
	}
	Drain(context.Background(), walkModule(state, "0")(context.Background()))
	if !state.moduleBlacklisted("mymod") {
		t.Fatalf("expected 'mymod' to be blacklisted after the walk completes")
	}
}
