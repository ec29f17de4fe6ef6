package walker

import (
	"context"
	"strings"
)

// Module is the recovered view of a module's __dict__: its name, docstring,
// and every class/function/attribute/nested-module found among its
// top-level keys. Mirrors ModuleInjectionWalker. injection, for a Module
// walker, always points at an already-dict-rendered mapping (either the
// seed module's __dict__, a nested module's __dict__, or a function's
// __globals__ mapping reached via the Class walker's module escape).
type Module struct {
	Injection string
	Name      string
	Doc       string

	Classes    []*Class
	Functions  []*Function
	Attributes []*Attribute
	Modules    []*Module
}

func (*Module) isWalker() {}
func (m *Module) String() string { return "module " + m.Name + " at " + m.Injection }

var moduleDictSkipKeys = map[string]struct{}{
	"__name__": {}, "__doc__": {},
}

// walkModule reads [__name__]!r first; if the name is already in
// state.ModuleBlacklist, it aborts immediately with a single Failure event
// and no further injections sent. Otherwise it reads [__doc__]!r, parses the
// mapping's top-level keys and dispatches each one; a nested module whose
// repr names a blacklisted module is skipped without being entered. The
// module's name is appended to ModuleBlacklist once every key has been
// processed, or once the walk ends early because the mapping could not be
// read or held no keys.
func walkModule(state *State, injection string) thunk {
	return func(ctx context.Context) Stream {
		if state.MarkModuleVisited(injection) {
			return FromEvents(failf(injection, "skipping already-visited module injection %s", injection))
		}

		var events []Event
		mod := &Module{Injection: injection}

		nameWalker, nameEvent, nameOK := readNameKey(ctx, state, injection, "__name__")
		if nameOK {
			mod.Name = nameWalker.Value
			if state.moduleBlacklisted(mod.Name) {
				return FromEvents(failf(injection, "skipping already-visited module %s", mod.Name))
			}
		}
		events = append(events, nameEvent)

		if docWalker, docEvent, ok := readDocKey(ctx, state, injection); ok {
			mod.Doc = docWalker.Value
			events = append(events, docEvent)
		} else {
			events = append(events, docEvent)
		}

		dictRaw, ok := state.Harness.SendInjection(ctx, injection)
		if !ok {
			events = append(events, failf(injection, "unable to recover response for module injection %s", injection))
			if mod.Name != "" {
				state.ModuleBlacklist[mod.Name] = struct{}{}
			}
			return FromEvents(events...)
		}

		keys := parseDictTopLevelKeys(dictRaw)
		if len(keys) == 0 {
			events = append(events, failf(injection, "unable to parse dictionary keys from response for %s", injection))
			if mod.Name != "" {
				state.ModuleBlacklist[mod.Name] = struct{}{}
			}
			return FromEvents(events...)
		}

		for _, key := range keys {
			if _, skip := moduleDictSkipKeys[key]; skip {
				continue
			}
			if state.attributeBlacklisted(key) {
				continue
			}

			keyInjection := injection + "[" + key + "]"
			raw, ok := state.Harness.SendInjection(ctx, keyInjection+"!r")
			if !ok {
				events = append(events, failf(keyInjection, "unable to recover response from injection string %s", keyInjection))
				continue
			}

			switch Classify(keyInjection, raw) {
			case KindClass:
				nested := walkClass(state, keyInjection)(ctx)
				nestedEvents := Drain(ctx, nested)
				events = append(events, nestedEvents...)
				for _, ev := range nestedEvents {
					if c, isClass := ev.Walker.(*Class); isClass {
						mod.Classes = append(mod.Classes, c)
					}
				}
			case KindFunction:
				nested := walkFunction(state, keyInjection)(ctx)
				nestedEvents := Drain(ctx, nested)
				events = append(events, nestedEvents...)
				for _, ev := range nestedEvents {
					if fn, isFn := ev.Walker.(*Function); isFn {
						mod.Functions = append(mod.Functions, fn)
					}
				}
			case KindModule:
				if name, _, found := strings.Cut(strings.TrimPrefix(raw, "<module '"), "'"); found && state.moduleBlacklisted(name) {
					events = append(events, failf(keyInjection, "skipping blacklisted module %s", name))
					continue
				}
				modDictInjection := keyInjection + ".__dict__"
				nested := walkModule(state, modDictInjection)(ctx)
				nestedEvents := Drain(ctx, nested)
				events = append(events, nestedEvents...)
				for _, ev := range nestedEvents {
					if nm, isMod := ev.Walker.(*Module); isMod {
						mod.Modules = append(mod.Modules, nm)
					}
				}
			default:
				attr := attributeFromValue(keyInjection, key, raw)
				mod.Attributes = append(mod.Attributes, attr)
				events = append(events, Event{Walker: attr})
			}
		}

		events = append(events, Event{Walker: mod})
		if mod.Name != "" {
			state.ModuleBlacklist[mod.Name] = struct{}{}
		}
		return FromEvents(events...)
	}
}
