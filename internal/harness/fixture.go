package harness

import "context"

// Fixture is a scripted, in-memory Harness used by walker and engine tests so
// they never shell out to a real interpreter. Responses are keyed by the
// exact injection string the walker sent.
type Fixture struct {
	responses map[string]string
	calls     []string
}

// NewFixture builds a Fixture pre-loaded with the given request/response
// pairs. Any injection not present in responses yields ("", false).
func NewFixture(responses map[string]string) *Fixture {
	f := &Fixture{responses: make(map[string]string, len(responses))}
	for k, v := range responses {
		f.responses[k] = v
	}
	return f
}

// SendInjection implements Harness.
func (f *Fixture) SendInjection(_ context.Context, payload string) (string, bool) {
	f.calls = append(f.calls, payload)
	resp, ok := f.responses[payload]
	if !ok {
		return "", false
	}
	return resp, true
}

// Set registers (or overwrites) the response for a given payload.
func (f *Fixture) Set(payload, response string) {
	if f.responses == nil {
		f.responses = make(map[string]string)
	}
	f.responses[payload] = response
}

// Calls returns every payload sent so far, in order. Tests use this to
// assert on traversal order without re-deriving it from the walker tree.
func (f *Fixture) Calls() []string {
	return append([]string(nil), f.calls...)
}
