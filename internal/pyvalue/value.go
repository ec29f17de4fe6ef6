// Package pyvalue implements a tagged union for values recovered by parsing
// Python literal reprs out of injection responses, along with the recursive
// descent parser (parse.go) that produces them.
//
// This stands in for Python's ast.literal_eval: formatic never runs Python,
// so every scalar or container the target echoes back has to be parsed from
// its textual repr by hand.
package pyvalue

import "fmt"

// Kind tags the underlying value carried by a Value.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindText
	KindTuple
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindText:
		return "str"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a parsed Python literal: exactly one of its typed fields is
// meaningful, selected by Kind.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	bytes []byte
	text  string
	elts  []Value
}

func None() Value                  { return Value{kind: KindNone} }
func Bool(v bool) Value            { return Value{kind: KindBool, b: v} }
func Int(v int64) Value            { return Value{kind: KindInt, i: v} }
func Float(v float64) Value        { return Value{kind: KindFloat, f: v} }
func Bytes(v []byte) Value         { return Value{kind: KindBytes, bytes: v} }
func Text(v string) Value          { return Value{kind: KindText, text: v} }
func Tuple(elts []Value) Value     { return Value{kind: KindTuple, elts: elts} }
func List(elts []Value) Value      { return Value{kind: KindList, elts: elts} }

// Kind reports which field of the union is populated.
func (v Value) Kind() Kind { return v.kind }

// Int returns the value as an int64 and true iff Kind is KindInt.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the value as a float64 and true iff Kind is KindFloat.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Bool returns the value as a bool and true iff Kind is KindBool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Bytes returns the value as a []byte and true iff Kind is KindBytes.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return v.bytes, true
}

// Text returns the value as a string and true iff Kind is KindText.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Tuple returns the element values and true iff Kind is KindTuple.
func (v Value) Tuple() ([]Value, bool) {
	if v.kind != KindTuple {
		return nil, false
	}
	return v.elts, true
}

// List returns the element values and true iff Kind is KindList.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.elts, true
}

// TextTuple returns the value as a []string iff Kind is KindTuple and every
// element is KindText. Used for co_names/co_varnames/co_freevars/co_cellvars,
// which are always tuples of strings.
func (v Value) TextTuple() ([]string, bool) {
	elts, ok := v.Tuple()
	if !ok {
		return nil, false
	}
	out := make([]string, len(elts))
	for i, e := range elts {
		s, ok := e.Text()
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// Repr renders the value back to a Python-literal-looking string, used when
// synthesizing attribute source lines ("name = repr(value)").
func (v Value) Repr() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBytes:
		return reprBytes(v.bytes)
	case KindText:
		return reprText(v.text)
	case KindTuple:
		return reprSeq(v.elts, '(', ')', true)
	case KindList:
		return reprSeq(v.elts, '[', ']', false)
	default:
		return "<unknown>"
	}
}

func reprSeq(elts []Value, open, close byte, singletonComma bool) string {
	s := string(open)
	for i, e := range elts {
		if i > 0 {
			s += ", "
		}
		s += e.Repr()
	}
	if singletonComma && len(elts) == 1 {
		s += ","
	}
	s += string(close)
	return s
}
