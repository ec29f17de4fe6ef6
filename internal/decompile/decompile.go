// Package decompile seams off bytecode-to-source reconstruction behind an
// interface, the way the original leaned on uncompyle6/decompyle3: the
// engine always has a CodeObject's raw fields, but turning co_code back into
// readable source is a large, version-specific problem the original punted
// to an external tool. The interface exists so any concrete backend (an
// external decompiler binary invoked the way SubprocessHarness shells out to
// the target) can be plugged in without the walker package knowing about it.
package decompile

import "errors"

// ErrUnsupported is returned by a Backend that cannot decompile the given
// bytecode version or code object shape. Callers degrade to a placeholder
// body rather than treating this as fatal.
var ErrUnsupported = errors.New("decompile: unsupported bytecode version or code object")

// CodeObject carries the subset of a Python code object's fields needed to
// reconstruct source. Field names mirror CPython's co_* attributes.
type CodeObject struct {
	Name           string
	Filename       string
	FirstLineNo    int
	ArgCount       int
	KwOnlyArgCount int
	NLocals        int
	Flags          int64
	Code           []byte
	Consts         []any
	Names          []string
	VarNames       []string
	FreeVars       []string
	CellVars       []string
	Stacksize      int
	Lnotab         []byte
}

// Backend turns a CodeObject plus a target bytecode version (e.g. "3.7")
// into readable Python source, or reports ErrUnsupported.
type Backend interface {
	Decompile(version string, code CodeObject) (string, error)
}
