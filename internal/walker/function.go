package walker

import (
	"context"
	"strings"
)

// Function is the recovered view of a function object: its qualified name,
// docstring, and (when a code object could be read and decompiled) a
// synthesized source listing. Mirrors FunctionInjectionWalker, completed
// beyond the original's documented "# TODO" stub.
type Function struct {
	Injection string
	QualName  string
	Doc       string
	Code      *CodeObject
	SrcCode   string
}

func (*Function) isWalker() {}
func (f *Function) String() string { return "function " + f.QualName + " at " + f.Injection }

// walkFunction recovers __qualname__, __doc__, and __code__ for the function
// at injection, in that order, synthesizing a best-effort signature from the
// recovered argument names when a code object is available, or
// "(*args, **kwargs)" when it is not. A decompiler failure keeps the
// synthesized signature and only replaces the body with "<UNKNOWN BODY>".
func walkFunction(state *State, injection string) thunk {
	return func(ctx context.Context) Stream {
		var events []Event

		nameWalker, nameEvent, _ := readNameAttr(ctx, state, injection, "__qualname__")
		events = append(events, nameEvent)
		qualName := ""
		if nameWalker != nil {
			qualName = nameWalker.Value
			if state.MarkFunctionVisited(qualName) {
				events = append(events, failf(injection, "function %s already walked, skipping", qualName))
				return FromEvents(events...)
			}
		}

		docWalker, docEvent, _ := readDocAttr(ctx, state, injection)
		events = append(events, docEvent)
		doc := ""
		if docWalker != nil {
			doc = docWalker.Value
		}

		codeInjection := injection + ".__code__"
		codeRaw, ok := state.Harness.SendInjection(ctx, codeInjection)
		var code *CodeObject

		if ok && Classify(codeInjection, codeRaw) == KindCodeObject {
			nested := walkCodeObject(state, codeInjection)(ctx)
			nestedEvents := Drain(ctx, nested)
			events = append(events, nestedEvents...)
			for _, ev := range nestedEvents {
				if co, isCO := ev.Walker.(*CodeObject); isCO {
					code = co
				}
			}
		} else {
			events = append(events, failf(codeInjection, "unable to recover __code__ for function %s", injection))
		}

		fn := &Function{
			Injection: injection,
			QualName:  qualName,
			Doc:       doc,
			Code:      code,
		}
		fn.SrcCode = synthesizeFunctionSrc(fn)
		events = append(events, Event{Walker: fn})
		return FromEvents(events...)
	}
}

func synthesizeFunctionSrc(fn *Function) string {
	name := fn.QualName
	if name == "" {
		name = "<unknown>"
	}

	sig := "(*args, **kwargs)"
	body := "    <UNKNOWN BODY>"
	if fn.Code != nil {
		sig = synthesizeSignature(fn.Code)
		if fn.Code.SrcBody != "" {
			body = indent(fn.Code.SrcBody)
		}
	}

	var b strings.Builder
	b.WriteString("def ")
	b.WriteString(name)
	b.WriteString(sig)
	b.WriteString(":\n")
	if fn.Doc != "" {
		b.WriteString("    \"\"\"")
		b.WriteString(fn.Doc)
		b.WriteString("\"\"\"\n")
	}
	b.WriteString(body)
	return b.String()
}

// synthesizeSignature builds a best-effort "(a, b, c)" signature from a code
// object's co_varnames and co_argcount/co_kwonlyargcount. It cannot recover
// default values (those live on the function object, not the code object,
// and formatic never reads __defaults__). It stands in for "synthesizing a
// callable from (code, {})" and is used whenever a code object was
// recovered, whether or not its body decompiled.
func synthesizeSignature(co *CodeObject) string {
	names := co.Fields.VarNames
	total := co.Fields.ArgCount + co.Fields.KwOnlyArgCount
	if total > len(names) {
		total = len(names)
	}
	return "(" + strings.Join(names[:total], ", ") + ")"
}

func indent(src string) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
