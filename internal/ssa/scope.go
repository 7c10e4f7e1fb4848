package ssa

import "ssaform/internal/ir"

// ScopeKind tags what kind of control-flow region a scope belongs to.
type ScopeKind int

const (
	ScopeNormal ScopeKind = iota
	ScopeForLoop
	ScopeIfThen
	ScopeIfElse
)

// varKind distinguishes the two source variable namespaces (scalar
// variables and tensors) for the ordered lookup key.
type varKind int

const (
	kindVar varKind = iota
	kindTensor
)

// varKey identifies a source variable independent of its SSA version.
type varKey struct {
	kind varKind
	name string
}

// LoopEntryPhi pairs a loop-entry phi with the temporary var it was bound
// to at the moment it was created, so the for-loop back-edge fix-up can
// tell whether the source variable was ever reassigned afterwards (its
// status's current value would then no longer be Var).
type LoopEntryPhi struct {
	Var *ir.VarRef
	Phi *ir.Phi
}

// VarStatus is one source variable's status within one scope: its current
// SSA value, the scope it was first recorded in, and any loop-entry phis
// still awaiting a back-edge operand.
type VarStatus struct {
	CurrentValue  ir.Expr
	DefinedScope  int
	LoopEntryPhis []LoopEntryPhi
}

type scopeEntry struct {
	key    varKey
	status *VarStatus
}

// Scope is one entry on the ScopeStack. vars is kept sorted by (kind, name)
// at all times so iteration order — and therefore generated names and phi
// operand order — is deterministic (spec: "Determinism via ordered maps").
type Scope struct {
	Kind     ScopeKind
	ForDepth int
	vars     []scopeEntry
}

// getOrInsert returns the existing status for key if this scope already
// has one, otherwise inserts a fresh status (with the given initial value)
// and returns that. This mirrors the reference implementation's
// insert_local_var, which is a get-or-create despite its name — a write
// through an already-populated scope entry never clobbers it here; only
// the caller's own explicit field assignment on the returned pointer does.
func (s *Scope) getOrInsert(key varKey, initial ir.Expr, definedScope int) *VarStatus {
	lo, hi := 0, len(s.vars)
	for lo < hi {
		mid := (lo + hi) / 2
		if less(s.vars[mid].key, key) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.vars) && s.vars[lo].key == key {
		return s.vars[lo].status
	}
	status := &VarStatus{CurrentValue: initial, DefinedScope: definedScope}
	entry := scopeEntry{key: key, status: status}
	s.vars = append(s.vars, scopeEntry{})
	copy(s.vars[lo+1:], s.vars[lo:])
	s.vars[lo] = entry
	return status
}

// find returns this scope's own status for key, if any.
func (s *Scope) find(key varKey) (*VarStatus, bool) {
	for _, e := range s.vars {
		if e.key == key {
			return e.status, true
		}
	}
	return nil, false
}

// entries returns this scope's (key, status) pairs in sorted order.
func (s *Scope) entries() []scopeEntry { return s.vars }

func less(a, b varKey) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.name < b.name
}

// ScopeStack is the LIFO stack of scopes the statement/expression rewriter
// descends through.
type ScopeStack struct {
	scopes []*Scope
}

// Push creates and returns a new top-of-stack scope. for_depth is the
// parent's for_depth, plus one if kind is ScopeForLoop.
func (s *ScopeStack) Push(kind ScopeKind) *Scope {
	depth := 0
	if len(s.scopes) > 0 {
		depth = s.scopes[len(s.scopes)-1].ForDepth
	}
	if kind == ScopeForLoop {
		depth++
	}
	scope := &Scope{Kind: kind, ForDepth: depth}
	s.scopes = append(s.scopes, scope)
	return scope
}

// Pop removes and returns the top scope.
func (s *ScopeStack) Pop() *Scope {
	top := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return top
}

// Top returns the current top scope without popping it.
func (s *ScopeStack) Top() *Scope { return s.scopes[len(s.scopes)-1] }

// Len reports how many scopes are on the stack.
func (s *ScopeStack) Len() int { return len(s.scopes) }

// At returns the scope at position i (0 = outermost).
func (s *ScopeStack) At(i int) *Scope { return s.scopes[i] }

// lookup scans top-down for key, returning the first match.
func (s *ScopeStack) lookup(key varKey) (*VarStatus, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if st, ok := s.scopes[i].find(key); ok {
			return st, true
		}
	}
	return nil, false
}

// lookupForUpdate implements the Scope Stack's lookup_for_update: a global
// variable's status must already exist somewhere on the stack; a
// non-global write always lands in the top scope, inserted empty if this
// is the first write seen there.
func (s *ScopeStack) lookupForUpdate(key varKey, isGlobal bool) *VarStatus {
	if isGlobal {
		st, ok := s.lookup(key)
		if !ok {
			panic(newError(KindUndefinedVariable, "undefined global var: "+key.name))
		}
		return st
	}
	top := s.Top()
	if st, ok := top.find(key); ok {
		return st
	}
	return top.getOrInsert(key, nil, s.Len()-1)
}
