package decompile

// StubBackend is the only Backend formatic ships: it always reports
// ErrUnsupported. Go has no equivalent of uncompyle6/decompyle3, so without a
// user-supplied Backend the function walker always falls back to
// "<UNKNOWN BODY>". A real backend would shell out to an external
// decompiler binary the same way SubprocessHarness shells out to the
// target; the seam exists so that integration stays a Backend
// implementation detail rather than a walker change.
type StubBackend struct{}

// Decompile always fails.
func (StubBackend) Decompile(version string, code CodeObject) (string, error) {
	return "", ErrUnsupported
}
