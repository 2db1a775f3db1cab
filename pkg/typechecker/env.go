package typechecker

import "sort"

type scope struct {
	symbols map[string]Type
	parent  int
}

// ScopeTable is the chain of static scopes used while checking. Scopes live
// in one slice and link to their parent by index; the root has parent -1.
type ScopeTable struct {
	scopes  []scope
	current int
}

// NewScopeTable creates a table holding only the root scope.
func NewScopeTable() *ScopeTable {
	return &ScopeTable{
		scopes:  []scope{{symbols: make(map[string]Type), parent: -1}},
		current: 0,
	}
}

// CreateChild opens a scope nested in the current one.
func (s *ScopeTable) CreateChild() {
	s.scopes = append(s.scopes, scope{symbols: make(map[string]Type), parent: s.current})
	s.current = len(s.scopes) - 1
}

// ParentScope closes the current scope and discards its bindings.
func (s *ScopeTable) ParentScope() {
	if s.current == 0 {
		return
	}
	parent := s.scopes[s.current].parent
	s.scopes = s.scopes[:s.current]
	s.current = parent
}

// Depth returns the number of open scopes, including the root.
func (s *ScopeTable) Depth() int {
	depth := 0
	for idx := s.current; idx >= 0; idx = s.scopes[idx].parent {
		depth++
	}
	return depth
}

// Define binds name in the current scope.
func (s *ScopeTable) Define(name string, typ Type) {
	s.scopes[s.current].symbols[name] = typ.Named(name)
}

// Lookup searches for a name from the current scope outward.
func (s *ScopeTable) Lookup(name string) (Type, bool) {
	for idx := s.current; idx >= 0; idx = s.scopes[idx].parent {
		if typ, ok := s.scopes[idx].symbols[name]; ok {
			return typ, true
		}
	}
	return Type{}, false
}

// snapshotRoot copies the root scope bindings.
func (s *ScopeTable) snapshotRoot() map[string]Type {
	out := make(map[string]Type, len(s.scopes[0].symbols))
	for k, v := range s.scopes[0].symbols {
		out[k] = v
	}
	return out
}

// restoreRoot drops every nested scope and replaces the root bindings.
func (s *ScopeTable) restoreRoot(symbols map[string]Type) {
	s.scopes = s.scopes[:1]
	s.current = 0
	s.scopes[0].symbols = symbols
}

// Names returns the root bindings in sorted order.
func (s *ScopeTable) Names() []string {
	names := make([]string, 0, len(s.scopes[0].symbols))
	for k := range s.scopes[0].symbols {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
