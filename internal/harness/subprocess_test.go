package harness

import (
	"context"
	"testing"
)

func TestNewSubprocessHarness_RequiresExactlyOneMarker(t *testing.T) {
	cases := []struct {
		name     string
		template []string
	}{
		{"zero occurrences", []string{"echo", "no marker here"}},
		{"two occurrences", []string{"sh", "-c", "echo @@; echo @@"}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSubprocessHarness(tt.template, "@@", "MARK"); err == nil {
				t.Fatalf("expected error for template %v", tt.template)
			}
		})
	}
}

func TestNewSubprocessHarness_RejectsEmptyMarkers(t *testing.T) {
	if _, err := NewSubprocessHarness([]string{"echo", "@@"}, "", "MARK"); err == nil {
		t.Fatalf("expected error for empty injection marker")
	}
	if _, err := NewSubprocessHarness([]string{"echo", "@@"}, "@@", ""); err == nil {
		t.Fatalf("expected error for empty response marker")
	}
}

func TestSubprocessHarness_SendInjection_RoundTrip(t *testing.T) {
	h, err := NewSubprocessHarness([]string{"sh", "-c", "echo @@"}, "@@", "MARK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, ok := h.SendInjection(context.Background(), "0.__class__")
	if !ok {
		t.Fatalf("expected a response")
	}
	// echo does not run format(), so the braces wrap() adds come back as-is.
	if want := "{0.__class__}"; resp != want {
		t.Fatalf("got %q, want %q", resp, want)
	}
}

func TestSubprocessHarness_SendInjection_NoMatch(t *testing.T) {
	h, err := NewSubprocessHarness([]string{"sh", "-c", "echo @@ >/dev/null"}, "@@", "MARK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := h.SendInjection(context.Background(), "payload"); ok {
		t.Fatalf("expected no response when output is suppressed")
	}
}

func TestSubprocessHarness_Extract_EmptyCaptureIsNoMatch(t *testing.T) {
	h, err := NewSubprocessHarness([]string{"echo", "@@"}, "@@", "MARK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := h.extract("MARKMARK"); ok {
		t.Fatalf("expected empty capture to be treated as no match")
	}
	if resp, ok := h.extract("noise MARKhelloMARK noise"); !ok || resp != "hello" {
		t.Fatalf("got (%q, %v), want (%q, true)", resp, ok, "hello")
	}
}
