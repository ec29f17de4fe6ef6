package walker

import (
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	"formatic/internal/decompile"
	"formatic/internal/harness"
)

// attribute names and base-class names the original never follows, mirroring
// formatic/defaults.py's DEFAULT_ATTRIBUTE_BLACKLIST / DEFAULT_BASE_CLASS_BLACKLIST.
var (
	defaultAttributeBlacklist = []string{"__weakref__"}
	defaultClassBlacklist     = []string{"object"}
)

// State is the engine-wide, mutable traversal context every walker is given
// a non-owning pointer to. It plays the role of InjectionEngine in the
// original: blacklists and visited-sets live here instead of being threaded
// through walker constructors one field at a time, and instead of a walker
// holding a back-reference to its owning engine (a reference cycle Go has no
// need to reproduce).
type State struct {
	Harness         harness.Harness
	ResponseMarker  string
	BytecodeVersion string
	Decompiler      decompile.Backend
	Logger          zerolog.Logger

	AttributeBlacklist map[string]struct{}
	ClassBlacklist     map[string]struct{}
	ModuleBlacklist    map[string]struct{}
	FunctionBlacklist  map[string]struct{}

	visitedModules map[uint64]struct{}
	codeObjectSrc  map[uint64]string
}

// NewState builds a State with the default blacklists populated, matching
// defaults.py's DEFAULT_ATTRIBUTE_BLACKLIST and DEFAULT_BASE_CLASS_BLACKLIST.
func NewState(h harness.Harness, responseMarker, bytecodeVersion string, backend decompile.Backend, logger zerolog.Logger) *State {
	s := &State{
		Harness:            h,
		ResponseMarker:     responseMarker,
		BytecodeVersion:    bytecodeVersion,
		Decompiler:         backend,
		Logger:             logger,
		AttributeBlacklist: make(map[string]struct{}),
		ClassBlacklist:     make(map[string]struct{}),
		ModuleBlacklist:    make(map[string]struct{}),
		FunctionBlacklist:  make(map[string]struct{}),
		visitedModules:     make(map[uint64]struct{}),
		codeObjectSrc:      make(map[uint64]string),
	}
	for _, a := range defaultAttributeBlacklist {
		s.AttributeBlacklist[a] = struct{}{}
	}
	for _, c := range defaultClassBlacklist {
		s.ClassBlacklist[c] = struct{}{}
	}
	for _, m := range stdlibModuleBlacklist {
		s.ModuleBlacklist[m] = struct{}{}
	}
	return s
}

func fingerprint(s string) uint64 {
	return xxh3.HashString(s)
}

// MarkModuleVisited records that a module's injection string has been
// entered (it is called when a module walk starts, not when it completes),
// and reports whether it was already visited. Prevents
// infinite recursion when a function's __globals__ points back at a module
// already on the current traversal path.
func (s *State) MarkModuleVisited(injectionStr string) (alreadyVisited bool) {
	fp := fingerprint(injectionStr)
	if _, ok := s.visitedModules[fp]; ok {
		return true
	}
	s.visitedModules[fp] = struct{}{}
	return false
}

// MarkFunctionVisited records that a function's qualified name has already
// been walked, and reports whether it was already present in
// FunctionBlacklist. A method reachable via a class's __dict__, a module's
// __dict__, and a __globals__ escape all resolve to the same __qualname__,
// so this is what keeps it from being walked more than once.
func (s *State) MarkFunctionVisited(qualname string) (alreadyVisited bool) {
	if _, ok := s.FunctionBlacklist[qualname]; ok {
		return true
	}
	s.FunctionBlacklist[qualname] = struct{}{}
	return false
}

// CachedDecompile returns a previously-decompiled source body for a code
// object with the same structural fields, if one exists. The cache key is a
// structural hash of the CodeObject (mitchellh/hashstructure), not the
// injection string, so two distinct references to the same function object
// reuse one decompile rather than invoking the backend twice.
func (s *State) CachedDecompile(co decompile.CodeObject) (string, bool) {
	key, err := hashstructure.Hash(co, hashstructure.FormatV2, nil)
	if err != nil {
		return "", false
	}
	src, ok := s.codeObjectSrc[key]
	return src, ok
}

// StoreDecompile caches a decompiled source body under co's structural hash.
func (s *State) StoreDecompile(co decompile.CodeObject, src string) {
	key, err := hashstructure.Hash(co, hashstructure.FormatV2, nil)
	if err != nil {
		return
	}
	s.codeObjectSrc[key] = src
}

func (s *State) attributeBlacklisted(name string) bool {
	_, ok := s.AttributeBlacklist[name]
	return ok
}

func (s *State) classBlacklisted(name string) bool {
	_, ok := s.ClassBlacklist[name]
	return ok
}

func (s *State) moduleBlacklisted(name string) bool {
	_, ok := s.ModuleBlacklist[name]
	return ok
}
