package walker

import (
	"context"
	"fmt"

	"formatic/internal/pyvalue"
)

// CodeObjectField is a single co_* field recovered from a code object, along
// with its parsed value. Mirrors CodeObjectFieldInjectionWalker, minus the
// walk() method: the original's version is a documented no-op ("there is
// nothing further to walk"), so this type, although it satisfies Walker, is
// only returned as a plain value by readField and is never emitted into a
// Stream.
type CodeObjectField struct {
	Name      string
	Injection string
	Value     pyvalue.Value
}

func (*CodeObjectField) isWalker() {}
func (f *CodeObjectField) String() string {
	return fmt.Sprintf("code object field %s = %s", f.Name, f.Value.Repr())
}

// readField sends "<base>.<field>!r" and parses the response as a Python
// literal. ok is false if the oracle produced nothing or the response did
// not parse, in which case the caller should emit a Failure event.
func readField(ctx context.Context, state *State, base, field string) (CodeObjectField, bool) {
	injection := base + "." + field
	raw, ok := state.Harness.SendInjection(ctx, injection+"!r")
	if !ok {
		return CodeObjectField{}, false
	}
	v, err := pyvalue.Parse(raw)
	if err != nil {
		return CodeObjectField{}, false
	}
	return CodeObjectField{Name: field, Injection: injection, Value: v}, true
}

// readIntField reads a field and asserts it parsed as an int.
func readIntField(ctx context.Context, state *State, base, field string) (int64, bool) {
	f, ok := readField(ctx, state, base, field)
	if !ok {
		return 0, false
	}
	return f.Value.Int()
}

// readBytesField reads a field and asserts it parsed as bytes.
func readBytesField(ctx context.Context, state *State, base, field string) ([]byte, bool) {
	f, ok := readField(ctx, state, base, field)
	if !ok {
		return nil, false
	}
	return f.Value.Bytes()
}

// readTextTupleField reads a field and asserts it parsed as a tuple of str.
func readTextTupleField(ctx context.Context, state *State, base, field string) ([]string, bool) {
	f, ok := readField(ctx, state, base, field)
	if !ok {
		return nil, false
	}
	return f.Value.TextTuple()
}

func fieldErr(field string) string {
	return fmt.Sprintf("unable to retrieve %s field from code object", field)
}
