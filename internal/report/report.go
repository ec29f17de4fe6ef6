// Package report assembles a walker.Result into a serializable tree and
// writes it as YAML, optionally gzip-compressed, as a persisted artifact
// rather than a single stdout print.
package report

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"

	"formatic/internal/walker"
)

// Tree is the YAML-serializable shape of a completed traversal: the root
// object the seed injection resolved to, plus every module walker
// encountered anywhere in the traversal.
type Tree struct {
	Root    string         `yaml:"root,omitempty"`
	Class   *walker.Class  `yaml:"class,omitempty"`
	Function *walker.Function `yaml:"function,omitempty"`
	Module  *walker.Module `yaml:"module,omitempty"`
	Modules []*walker.Module `yaml:"visited_modules,omitempty"`
	Failures []string `yaml:"failures,omitempty"`
}

// BuildTree converts a walker.Result into its serializable Tree form.
func BuildTree(result walker.Result) Tree {
	t := Tree{Modules: result.Modules}

	switch root := result.Root.(type) {
	case *walker.Class:
		t.Root = "class"
		t.Class = root
	case *walker.Function:
		t.Root = "function"
		t.Function = root
	case *walker.Module:
		t.Root = "module"
		t.Module = root
	}

	for _, ev := range result.Events {
		if f, ok := ev.Walker.(*walker.Failure); ok {
			t.Failures = append(t.Failures, f.Message)
		}
	}
	return t
}

// Dump writes result as YAML to w. When gzipCompress is true, the YAML is
// streamed through klauspost/compress/gzip before hitting w.
func Dump(w io.Writer, result walker.Result, gzipCompress bool) error {
	tree := BuildTree(result)

	if !gzipCompress {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil
	}

	gz := gzip.NewWriter(w)
	enc := yaml.NewEncoder(gz)
	if err := enc.Encode(tree); err != nil {
		enc.Close()
		gz.Close()
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := enc.Close(); err != nil {
		gz.Close()
		return fmt.Errorf("closing yaml encoder: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip writer: %w", err)
	}
	return nil
}
