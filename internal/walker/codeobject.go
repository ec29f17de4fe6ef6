package walker

import (
	"context"
	"strconv"
	"strings"

	"formatic/internal/decompile"
	"formatic/internal/pyvalue"
)

// CodeObject is the reconstructed view of a function's __code__ attribute:
// every co_* field formatic could recover, plus the decompiled (or
// degraded) source body. Mirrors CodeObjectInjectionWalker.
type CodeObject struct {
	Injection string
	Fields    decompile.CodeObject
	SrcBody   string
}

func (*CodeObject) isWalker() {}
func (c *CodeObject) String() string {
	return "code object " + c.Fields.Name + " at " + c.Injection
}

// walkCodeObject reads every co_* field of the code object at injection,
// recursing into co_consts to recover nested code objects (e.g. closures
// and comprehensions), then invokes the configured decompile.Backend. State
// is threaded explicitly rather than through ctx: format() replacement
// fields support only attribute/index access (no function calls), so
// co_consts can't be measured with a len() injection and is instead walked
// index-by-index until the target raises IndexError and the oracle returns
// nothing — the same termination condition the original relies on.
func walkCodeObject(state *State, injection string) thunk {
	return func(ctx context.Context) Stream {
		co := decompile.CodeObject{}
		var events []Event
		ok := true

		readInt := func(field string) (int64, bool) {
			v, got := readIntField(ctx, state, injection, field)
			if !got {
				events = append(events, failf(injection, "%s", fieldErr(field)))
			}
			return v, got
		}
		readTuple := func(field string) ([]string, bool) {
			v, got := readTextTupleField(ctx, state, injection, field)
			if !got {
				events = append(events, failf(injection, "%s", fieldErr(field)))
			}
			return v, got
		}
		readText := func(field string) (string, bool) {
			f, got := readField(ctx, state, injection, field)
			if !got {
				events = append(events, failf(injection, "%s", fieldErr(field)))
				return "", false
			}
			s, isStr := f.Value.Text()
			if !isStr {
				events = append(events, failf(injection, "expected str for %s, got %s", field, f.Value.Kind()))
				return "", false
			}
			return s, true
		}

		if v, got := readInt("co_argcount"); got {
			co.ArgCount = int(v)
		} else {
			ok = false
		}
		if v, got := readInt("co_kwonlyargcount"); got {
			co.KwOnlyArgCount = int(v)
		} else {
			ok = false
		}
		if v, got := readInt("co_nlocals"); got {
			co.NLocals = int(v)
		} else {
			ok = false
		}
		if v, got := readInt("co_stacksize"); got {
			co.Stacksize = int(v)
		} else {
			ok = false
		}
		if v, got := readInt("co_flags"); got {
			co.Flags = v
		} else {
			ok = false
		}

		if bytecode, got := readBytesField(ctx, state, injection, "co_code"); got {
			co.Code = bytecode
		} else {
			events = append(events, failf(injection, "%s", fieldErr("co_code")))
			ok = false
		}

		if lnotab, got := readBytesField(ctx, state, injection, "co_lnotab"); got {
			co.Lnotab = lnotab
		} else {
			events = append(events, failf(injection, "%s", fieldErr("co_lnotab")))
			ok = false
		}

		if v, got := readTuple("co_names"); got {
			co.Names = v
		} else {
			ok = false
		}
		if v, got := readTuple("co_varnames"); got {
			co.VarNames = v
		} else {
			ok = false
		}
		if v, got := readText("co_filename"); got {
			co.Filename = v
		} else {
			ok = false
		}
		if v, got := readText("co_name"); got {
			co.Name = v
		} else {
			ok = false
		}
		if v, got := readInt("co_firstlineno"); got {
			co.FirstLineNo = int(v)
		} else {
			ok = false
		}
		if v, got := readTuple("co_freevars"); got {
			co.FreeVars = v
		} else {
			ok = false
		}
		if v, got := readTuple("co_cellvars"); got {
			co.CellVars = v
		} else {
			ok = false
		}

		constsEvents, consts, constsOK := walkConsts(ctx, state, injection)
		events = append(events, constsEvents...)
		co.Consts = consts
		if !constsOK {
			ok = false
		}

		if !ok {
			return FromEvents(events...)
		}

		src := decompileBody(state, co)
		events = append(events, Event{Walker: &CodeObject{Injection: injection, Fields: co, SrcBody: src}})
		return FromEvents(events...)
	}
}

// walkConsts reads co_consts[0], co_consts[1], ... until the target raises
// IndexError (the oracle returns nothing), recursing into a nested
// walkCodeObject for any element classified as a code object. An element
// that is neither a literal nor a code-object response is fatal for the
// field: probing stops immediately and the caller is told the field failed,
// rather than silently padding the constants tuple with a nil.
func walkConsts(ctx context.Context, state *State, injection string) ([]Event, []any, bool) {
	base := injection + ".co_consts"
	var events []Event
	var consts []any

	for i := 0; ; i++ {
		eltInjection := base + "[" + strconv.Itoa(i) + "]"
		raw, ok := state.Harness.SendInjection(ctx, eltInjection+"!r")
		if !ok {
			break
		}

		switch Classify(eltInjection, raw) {
		case KindCodeObject:
			nested := walkCodeObject(state, eltInjection)(ctx)
			nestedEvents := Drain(ctx, nested)
			events = append(events, nestedEvents...)
			consts = append(consts, codeObjectFrom(nestedEvents))
		default:
			v, err := pyvalue.Parse(raw)
			if err != nil {
				events = append(events, failf(eltInjection, "unable to parse co_consts[%d] value %q", i, raw))
				return events, consts, false
			}
			consts = append(consts, v)
		}
	}

	return events, consts, true
}

func codeObjectFrom(events []Event) any {
	for _, ev := range events {
		if co, ok := ev.Walker.(*CodeObject); ok {
			return co.Fields
		}
	}
	return nil
}

func decompileBody(state *State, co decompile.CodeObject) string {
	if cached, ok := state.CachedDecompile(co); ok {
		return cached
	}

	src, err := state.Decompiler.Decompile(state.BytecodeVersion, co)
	if err != nil {
		src = "<UNKNOWN BODY>"
	} else {
		src = cleanDecompiledSrc(src)
	}

	state.StoreDecompile(co, src)
	return src
}

// cleanDecompiledSrc mirrors the original's post-processing of the
// decompiler's output: collapsing runs of blank lines and dropping comment
// lines the decompiler emits for bytecode it could not fully resolve.
func cleanDecompiledSrc(src string) string {
	for strings.Contains(src, "\n\n\n") {
		src = strings.ReplaceAll(src, "\n\n\n", "\n\n")
	}

	lines := strings.Split(src, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
