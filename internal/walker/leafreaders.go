package walker

import "context"

// readNameAttr reads "<injection>.<field>!r" (a dotted attribute access,
// used by Function for __qualname__ and Class for __name__) and classifies
// the result as a Name walker on success or a Failure otherwise. This is
// the Go rendering of NameInjectionWalker being dispatched for any
// __name__/__qualname__/__module__-suffixed injection.
func readNameAttr(ctx context.Context, state *State, injection, field string) (*Name, Event, bool) {
	full := injection + "." + field
	raw, ok := state.Harness.SendInjection(ctx, full+"!r")
	if !ok {
		return nil, failf(full, "unable to read response from injection %s", full), false
	}
	s, err := parseText(raw)
	if err != nil {
		return nil, failf(full, "expected string literal for %s but got %q", field, raw), false
	}
	n := &Name{Injection: full, Value: s}
	return n, Event{Walker: n}, true
}

// readDocAttr reads "<injection>.__doc__!r" and classifies the result as a
// DocString walker on success or a Failure otherwise.
func readDocAttr(ctx context.Context, state *State, injection string) (*DocString, Event, bool) {
	full := injection + ".__doc__"
	raw, ok := state.Harness.SendInjection(ctx, full+"!r")
	if !ok {
		return nil, failf(full, "unable to inject __doc__ attribute via %s", full), false
	}
	s, err := parseText(raw)
	if err != nil {
		return nil, failf(full, "expected string literal for __doc__ but got %q", raw), false
	}
	d := &DocString{Injection: full, Value: s}
	return d, Event{Walker: d}, true
}

// readNameKey / readDocKey are the dict-indexed equivalents, used when
// injection already points at a __dict__-rendered mapping (the Module
// walker's entry point) rather than an object with dotted attribute access.
func readNameKey(ctx context.Context, state *State, injection, key string) (*Name, Event, bool) {
	full := injection + "[" + key + "]"
	raw, ok := state.Harness.SendInjection(ctx, full+"!r")
	if !ok {
		return nil, failf(full, "unable to read response from injection %s", full), false
	}
	s, err := parseText(raw)
	if err != nil {
		return nil, failf(full, "expected string literal for %s but got %q", key, raw), false
	}
	n := &Name{Injection: full, Value: s}
	return n, Event{Walker: n}, true
}

func readDocKey(ctx context.Context, state *State, injection string) (*DocString, Event, bool) {
	full := injection + "[__doc__]"
	raw, ok := state.Harness.SendInjection(ctx, full+"!r")
	if !ok {
		return nil, failf(full, "unable to inject __doc__ attribute via %s", full), false
	}
	s, err := parseText(raw)
	if err != nil {
		return nil, failf(full, "expected string literal for __doc__ but got %q", raw), false
	}
	d := &DocString{Injection: full, Value: s}
	return d, Event{Walker: d}, true
}
