package walker

import "context"

// Result is the outcome of a single Engine traversal: every event produced,
// the module walkers discovered along the way (collected here from the
// flattened event stream rather than threaded through every recursive
// call), and the single root walker the seed injection resolved to, for
// callers (such as internal/report) that want the reconstructed tree
// without re-scanning the flattened event list themselves.
type Result struct {
	Events  []Event
	Modules []*Module
	Root    Walker
}

// Run seeds the traversal at format index d by sending "<d>.__class__",
// classifies the response, constructs the matching root walker, and drains
// its event stream to completion. This is the Go rendering of
// InjectionEngine.run / injection_walker.py's walk, generalized from the
// original's "only ever constructs a Class walker" stub to dispatch on
// whatever Classify actually returns:
//
//	SEED → CLASSIFY → [DISPATCH → DRAIN]*  (terminal)
//	       ↘ FAIL (no response / unclassifiable)
func Run(ctx context.Context, state *State, index int) Result {
	seed := itoaIndex(index) + ".__class__"
	response, ok := state.Harness.SendInjection(ctx, seed)
	if !ok {
		return Result{Events: []Event{failf(seed, "unable to trigger initial injection at index %d", index)}}
	}

	switch Classify(seed, response) {
	case KindClass:
		events := Drain(ctx, walkClass(state, seed)(ctx))
		return Result{Events: events, Modules: collectModules(events), Root: findRoot(events, seed)}
	case KindFunction:
		events := Drain(ctx, walkFunction(state, seed)(ctx))
		return Result{Events: events, Modules: collectModules(events), Root: findRoot(events, seed)}
	case KindModule:
		moduleInjection := seed + ".__dict__"
		events := Drain(ctx, walkModule(state, moduleInjection)(ctx))
		return Result{Events: events, Modules: collectModules(events), Root: findRoot(events, moduleInjection)}
	default:
		return Result{Events: []Event{failf(seed, "unable to classify injection response: %q", response)}}
	}
}

// findRoot locates the single terminal walker whose Injection matches
// injection exactly, i.e. the root of the tree the seed resolved to, as
// opposed to any of the nested walkers also present in a flattened Drain.
func findRoot(events []Event, injection string) Walker {
	for _, ev := range events {
		switch w := ev.Walker.(type) {
		case *Class:
			if w.Injection == injection {
				return w
			}
		case *Function:
			if w.Injection == injection {
				return w
			}
		case *Module:
			if w.Injection == injection {
				return w
			}
		}
	}
	return nil
}

func collectModules(events []Event) []*Module {
	var mods []*Module
	for _, ev := range events {
		if m, ok := ev.Walker.(*Module); ok {
			mods = append(mods, m)
		}
	}
	return mods
}

func itoaIndex(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
