package walker

import "fmt"

// Name recovers a __name__ or similar dotted-attribute string value.
type Name struct {
	Injection string
	Value     string
}

func (*Name) isWalker() {}
func (n *Name) String() string {
	return fmt.Sprintf("name %q recovered via %s", n.Value, n.Injection)
}

// DocString recovers a __doc__ string.
type DocString struct {
	Injection string
	Value     string
}

func (*DocString) isWalker() {}
func (d *DocString) String() string {
	return fmt.Sprintf("docstring recovered via %s", d.Injection)
}

// Attribute is a plain literal value recovered from a __dict__ entry or any
// other field read, mirroring AttributeInjectionWalker: it carries the raw
// response text plus a synthesized "name = repr(value)" source line (the raw
// text is used on the right-hand side when it does not parse as a literal).
type Attribute struct {
	Injection string
	Name      string
	Raw       string
	SrcCode   string
}

func (*Attribute) isWalker() {}
func (a *Attribute) String() string {
	return fmt.Sprintf("attribute %s = %s", a.Name, a.Raw)
}

// SlotWrapper marks a C-level slot wrapper method (e.g. __init__ on a
// built-in type). There is nothing further to recover from one: it has no
// Python-level __code__ to reconstruct, exactly as in the original's
// SlotWrapperInjectionWalker.walk(), which is an intentional no-op.
type SlotWrapper struct {
	Injection string
}

func (*SlotWrapper) isWalker() {}
func (s *SlotWrapper) String() string {
	return fmt.Sprintf("slot wrapper at %s (no source available)", s.Injection)
}

// Failure marks a step that could not complete: an absent oracle response,
// an unparseable result, or a blacklist short-circuit. It is the Go
// analogue of FailedInjectionWalker.msg — failures are values, never errors
// raised across a Stream boundary.
type Failure struct {
	Injection string
	Message   string
}

func (*Failure) isWalker() {}
func (f *Failure) String() string { return f.Message }

func failf(injection, format string, args ...any) Event {
	return Event{Walker: &Failure{Injection: injection, Message: fmt.Sprintf(format, args...)}}
}
