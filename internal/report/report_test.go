package report

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"formatic/internal/walker"
)

func TestBuildTree_ClassRoot(t *testing.T) {
	cls := &walker.Class{Injection: "0.__class__", Name: "X", SrcCode: "class X():\n"}
	result := walker.Result{Root: cls}

	tree := BuildTree(result)
	if tree.Root != "class" || tree.Class == nil || tree.Class.Name != "X" {
		t.Fatalf("got %+v, want class root named X", tree)
	}
}

func TestBuildTree_CollectsFailureMessages(t *testing.T) {
	result := walker.Result{
		Events: []walker.Event{
			{Walker: &walker.Failure{Injection: "0.x", Message: "boom"}},
		},
	}
	tree := BuildTree(result)
	if len(tree.Failures) != 1 || tree.Failures[0] != "boom" {
		t.Fatalf("got %v, want [\"boom\"]", tree.Failures)
	}
}

func TestDump_PlainYAML(t *testing.T) {
	cls := &walker.Class{Injection: "0.__class__", Name: "X"}
	result := walker.Result{Root: cls}

	var buf bytes.Buffer
	if err := Dump(&buf, result, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "name: X") {
		t.Fatalf("expected plain YAML output, got %q", buf.String())
	}
}

func TestDump_Gzip(t *testing.T) {
	cls := &walker.Class{Injection: "0.__class__", Name: "X"}
	result := walker.Result{Root: cls}

	var buf bytes.Buffer
	if err := Dump(&buf, result, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zr, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatalf("expected valid gzip stream: %v", err)
	}
	defer zr.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(zr); err != nil {
		t.Fatalf("unexpected error reading gzip stream: %v", err)
	}
	if !strings.Contains(out.String(), "name: X") {
		t.Fatalf("expected decompressed YAML output, got %q", out.String())
	}
}
