package walker

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// dictKeyRe extracts the top-level string keys out of a dict repr such as
// "{'__init__': <function ...>, '__doc__': None, ...}" without attempting a
// full parse of the dict's values, many of which (functions, classes,
// nested dicts) are not literal-evaluable. This regex-based parse is
// preserved exactly as the original describes it, punctuation/unicode-
// identifier misparses and all.
var dictKeyRe = regexp.MustCompile(`'(\w+)':`)

func parseDictTopLevelKeys(raw string) []string {
	matches := dictKeyRe.FindAllStringSubmatch(raw, -1)
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	return keys
}

var classDictSkipKeys = map[string]struct{}{
	"__name__": {}, "__doc__": {}, "__bases__": {}, "__dict__": {},
}

// Class is the recovered view of a class object: name, docstring, base
// class names, and every member recovered from __dict__ — nested classes,
// methods, slot wrappers, and plain attributes. Mirrors
// ClassInjectionWalker, completed beyond the original's "# TODO: get bases
// via __bases__ / find functions via __dict__ / blacklist of attributes"
// stub.
type Class struct {
	Injection string
	Name      string
	Doc       string

	// Bases lists every base class's name, whether or not it was
	// recursively descended; BaseClasses holds only the ones that were
	// (i.e. were not already in state.ClassBlacklist at the time they were
	// reached).
	Bases       []string
	BaseClasses []*Class

	Classes      []*Class
	Functions    []*Function
	SlotWrappers []*SlotWrapper
	Attributes   []*Attribute

	SrcCode string
}

func (*Class) isWalker() {}
func (c *Class) String() string { return "class " + c.Name + " at " + c.Injection }

// walkClass traverses, in strict order: name (added to class_blacklist
// immediately on success), docstring, bases, __dict__ members, source
// synthesis, then — if any member function was found — a module escape via
// that function's __globals__.
func walkClass(state *State, injection string) thunk {
	return func(ctx context.Context) Stream {
		var events []Event
		cls := &Class{Injection: injection}

		nameWalker, nameEvent, nameOK := readNameAttr(ctx, state, injection, "__name__")
		events = append(events, nameEvent)
		if nameOK {
			cls.Name = nameWalker.Value
			state.ClassBlacklist[cls.Name] = struct{}{}
		}

		docWalker, docEvent, docOK := readDocAttr(ctx, state, injection)
		events = append(events, docEvent)
		if docOK {
			cls.Doc = docWalker.Value
		}

		baseEvents, bases, baseClasses := walkBases(ctx, state, injection)
		events = append(events, baseEvents...)
		cls.Bases = bases
		cls.BaseClasses = baseClasses

		dictInjection := injection + ".__dict__"
		dictRaw, ok := state.Harness.SendInjection(ctx, dictInjection)
		if !ok {
			events = append(events, failf(dictInjection, "unable to recover __dict__ for class %s", cls.Name))
			cls.SrcCode = synthesizeClassSrc(cls)
			events = append(events, Event{Walker: cls})
			return FromEvents(events...)
		}

		for _, key := range parseDictTopLevelKeys(dictRaw) {
			if _, skip := classDictSkipKeys[key]; skip {
				continue
			}
			if state.attributeBlacklisted(key) {
				continue
			}

			keyInjection := injection + "." + key
			keyRaw, ok := state.Harness.SendInjection(ctx, keyInjection+"!r")
			if !ok {
				events = append(events, failf(keyInjection, "unable to read __dict__ key %s", key))
				continue
			}

			switch Classify(keyInjection, keyRaw) {
			case KindClass:
				nested := walkClass(state, keyInjection)(ctx)
				nestedEvents := Drain(ctx, nested)
				events = append(events, nestedEvents...)
				for _, ev := range nestedEvents {
					if nc, isClass := ev.Walker.(*Class); isClass {
						cls.Classes = append(cls.Classes, nc)
					}
				}
			case KindFunction:
				nested := walkFunction(state, keyInjection)(ctx)
				nestedEvents := Drain(ctx, nested)
				events = append(events, nestedEvents...)
				for _, ev := range nestedEvents {
					if fn, isFn := ev.Walker.(*Function); isFn {
						cls.Functions = append(cls.Functions, fn)
					}
				}
			case KindSlotWrapper:
				sw := &SlotWrapper{Injection: keyInjection}
				cls.SlotWrappers = append(cls.SlotWrappers, sw)
				events = append(events, Event{Walker: sw})
			default:
				// Anything that didn't classify as a class, function, or slot
				// wrapper — a literal value or an "<attribute ... of ...
				// objects>" descriptor repr alike — is demoted to a plain
				// Attribute.
				attr := attributeFromValue(keyInjection, key, keyRaw)
				cls.Attributes = append(cls.Attributes, attr)
				events = append(events, Event{Walker: attr})
			}
		}

		cls.SrcCode = synthesizeClassSrc(cls)
		events = append(events, Event{Walker: cls})

		if len(cls.Functions) > 0 {
			escapeInjection := cls.Functions[0].Injection + ".__globals__"
			nested := walkModule(state, escapeInjection)(ctx)
			events = append(events, Drain(ctx, nested)...)
		}

		return FromEvents(events...)
	}
}

// walkBases probes <inj>.__bases__[i] for i = 0, 1, ... until the target
// rejects the index (an absent oracle response). Each base is classified
// (expected to be a Class response), its name resolved, and — if that name
// is not already in class_blacklist at the time it is reached — recursively
// walked; otherwise it is recorded in Bases but not descended, so no base
// class is ever traversed twice.
func walkBases(ctx context.Context, state *State, injection string) ([]Event, []string, []*Class) {
	var events []Event
	var bases []string
	var baseClasses []*Class

	for i := 0; ; i++ {
		baseInjection := injection + ".__bases__[" + strconv.Itoa(i) + "]"
		baseRaw, ok := state.Harness.SendInjection(ctx, baseInjection)
		if !ok {
			break
		}
		if Classify(baseInjection, baseRaw) != KindClass {
			events = append(events, failf(baseInjection, "expected a class response for base %d, got %q", i, baseRaw))
			continue
		}

		nameRaw, ok := state.Harness.SendInjection(ctx, baseInjection+".__name__!r")
		if !ok {
			events = append(events, failf(baseInjection, "unable to resolve base class name"))
			continue
		}
		name, err := parseText(nameRaw)
		if err != nil {
			events = append(events, failf(baseInjection, "unable to parse base class name from %q", nameRaw))
			continue
		}
		bases = append(bases, name)

		if state.classBlacklisted(name) {
			continue
		}

		nested := walkClass(state, baseInjection)(ctx)
		nestedEvents := Drain(ctx, nested)
		events = append(events, nestedEvents...)
		for _, ev := range nestedEvents {
			if bc, isClass := ev.Walker.(*Class); isClass {
				baseClasses = append(baseClasses, bc)
			}
		}
	}

	return events, bases, baseClasses
}

func attributeFromValue(injection, name, raw string) *Attribute {
	v, err := parseValue(raw)
	if err != nil {
		return &Attribute{Injection: injection, Name: name, Raw: raw, SrcCode: name + " = " + raw}
	}
	return &Attribute{Injection: injection, Name: name, Raw: raw, SrcCode: name + " = " + v.Repr()}
}

func synthesizeClassSrc(cls *Class) string {
	var b strings.Builder
	b.WriteString("class ")
	b.WriteString(cls.Name)
	b.WriteString("(")
	b.WriteString(strings.Join(cls.Bases, ", "))
	b.WriteString("):\n")
	if cls.Doc != "" {
		b.WriteString("    \"\"\"")
		b.WriteString(cls.Doc)
		b.WriteString("\"\"\"\n")
	}
	for _, attr := range cls.Attributes {
		b.WriteString("    ")
		b.WriteString(attr.SrcCode)
		b.WriteString("\n")
	}
	for _, fn := range cls.Functions {
		b.WriteString(indent(fn.SrcCode))
		b.WriteString("\n")
	}
	return b.String()
}
