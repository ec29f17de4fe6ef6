package decompile

import "testing"

func TestStubBackend_AlwaysUnsupported(t *testing.T) {
	var b Backend = StubBackend{}
	_, err := b.Decompile("3.7", CodeObject{Name: "f"})
	if err != ErrUnsupported {
		t.Fatalf("got %v, want ErrUnsupported", err)
	}
}
