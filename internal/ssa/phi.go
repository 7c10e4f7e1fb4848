package ssa

import "ssaform/internal/ir"

// readForJoin resolves key's value as seen from the current top of the
// scope stack (the scope a branch/loop has just closed back into),
// through the same phi-aware path a variable read goes through. This
// matters whenever the merge point itself is nested inside an outer loop:
// pulling in the pre-branch/pre-loop value for a variable that turns out
// to live further up the stack must still insert a loop-entry phi if that
// value crosses a for-depth boundary, exactly as an explicit read would.
func (r *Rewriter) readForJoin(key varKey) (ir.Expr, bool) {
	status, ok := r.scopes.lookup(key)
	if !ok || status.CurrentValue == nil {
		return nil, false
	}
	return r.readLocal(key, status), true
}

// forLoopBackEdgeFixup implements the for-loop join half of Phi Synthesis
// (spec §4.3, "Back-edge fix-up"). loopScope is the just-popped for-loop
// scope; the scope stack's new top is the loop's enclosing scope.
//
// Every entry in a popped inner scope's own variable table names a purely
// local (non-global) source variable or tensor: a global write always
// resolves through the whole-stack lookup in lookupForUpdate and never
// gets an entry of its own in an inner scope, so no attribute re-check is
// needed here.
func (r *Rewriter) forLoopBackEdgeFixup(loopScope *Scope) {
	type pending struct {
		key    varKey
		parent ir.Expr
		tip    ir.Expr
	}
	var toMerge []pending
	var toForward []scopeEntry

	for _, e := range loopScope.entries() {
		parent, ok := r.readForJoin(e.key)
		if !ok {
			continue
		}

		changed := len(e.status.LoopEntryPhis) == 0
		for _, lep := range e.status.LoopEntryPhis {
			if identicalExpr(lep.Var, e.status.CurrentValue) {
				continue // this particular header phi was never reassigned
			}
			changed = true
			lep.Phi.Operands = append(lep.Phi.Operands, e.status.CurrentValue)
		}
		if !changed {
			// Read but never reassigned inside the loop: the header phi
			// stays a single-operand alias and no merge with the pre-loop
			// value is needed on exit (spec scenario: loop reading an
			// outer variable that the body never writes).
			continue
		}
		toMerge = append(toMerge, pending{key: e.key, parent: parent, tip: e.status.CurrentValue})
		if len(e.status.LoopEntryPhis) > 0 {
			toForward = append(toForward, e)
		}
	}

	for _, m := range toMerge {
		exitPhi := ir.NewPhi(m.parent.GetType(), m.parent, m.tip)
		exitVar := r.addDefAfter(exitPhi)
		if m.key.kind == kindVar {
			r.renameToVersion(exitVar, m.key.name)
		}
		upd := r.scopes.lookupForUpdate(m.key, false)
		upd.CurrentValue = exitVar
	}
	for _, e := range toForward {
		r.forwardLoopEntryPhis(e.key, e.status)
	}
}

// joinIfElse implements the two-branch half of Phi Synthesis for an if/else
// with both arms present: one exit phi per variable touched by either
// branch, operands in then-before-else order. A variable touched in only
// one branch takes the other operand from the pre-if value, resolved
// through readForJoin before any exit phis are written back so the lookup
// still finds the true ancestor rather than a phi this same join created.
func (r *Rewriter) joinIfElse(thenScope, elseScope *Scope) {
	order := make([]varKey, 0, len(thenScope.entries())+len(elseScope.entries()))
	thenVals := make(map[varKey]ir.Expr)
	elseVals := make(map[varKey]ir.Expr)
	seen := make(map[varKey]bool)

	record := func(dst map[varKey]ir.Expr, scope *Scope) {
		for _, e := range scope.entries() {
			dst[e.key] = e.status.CurrentValue
			if !seen[e.key] {
				seen[e.key] = true
				order = append(order, e.key)
			}
		}
	}
	record(thenVals, thenScope)
	record(elseVals, elseScope)

	type resolved struct {
		key      varKey
		then, els ir.Expr
	}
	var merges []resolved
	for _, key := range order {
		tv, tok := thenVals[key]
		if !tok {
			v, ok := r.readForJoin(key)
			if !ok {
				continue
			}
			tv = v
		}
		ev, eok := elseVals[key]
		if !eok {
			v, ok := r.readForJoin(key)
			if !ok {
				continue
			}
			ev = v
		}
		merges = append(merges, resolved{key: key, then: tv, els: ev})
	}

	for _, m := range merges {
		phi := ir.NewPhi(m.then.GetType(), m.then, m.els)
		exitVar := r.addDefAfter(phi)
		if m.key.kind == kindVar {
			r.renameToVersion(exitVar, m.key.name)
		}
		upd := r.scopes.lookupForUpdate(m.key, false)
		upd.CurrentValue = exitVar
	}

	for _, e := range thenScope.entries() {
		r.forwardLoopEntryPhis(e.key, e.status)
	}
	for _, e := range elseScope.entries() {
		r.forwardLoopEntryPhis(e.key, e.status)
	}
}

// joinIfThenOnly implements the one-branch half: only variables mutated in
// the then-branch that already existed in an enclosing scope get an exit
// phi, merging the pre-if value with the then-branch's tip.
func (r *Rewriter) joinIfThenOnly(thenScope *Scope) {
	type resolved struct {
		key            varKey
		parent, tip    ir.Expr
	}
	var merges []resolved
	for _, e := range thenScope.entries() {
		parent, ok := r.readForJoin(e.key)
		if !ok {
			continue
		}
		merges = append(merges, resolved{key: e.key, parent: parent, tip: e.status.CurrentValue})
	}

	for _, m := range merges {
		phi := ir.NewPhi(m.parent.GetType(), m.parent, m.tip)
		exitVar := r.addDefAfter(phi)
		if m.key.kind == kindVar {
			r.renameToVersion(exitVar, m.key.name)
		}
		upd := r.scopes.lookupForUpdate(m.key, false)
		upd.CurrentValue = exitVar
	}

	for _, e := range thenScope.entries() {
		r.forwardLoopEntryPhis(e.key, e.status)
	}
}

// forwardLoopEntryPhis lets a surrounding loop's own back-edge fix-up still
// see phis that were actually inserted inside a nested if/else branch, by
// pushing them onto the enclosing scope's status for the same variable.
func (r *Rewriter) forwardLoopEntryPhis(key varKey, status *VarStatus) {
	if len(status.LoopEntryPhis) == 0 {
		return
	}
	upd := r.scopes.lookupForUpdate(key, false)
	upd.LoopEntryPhis = append(upd.LoopEntryPhis, status.LoopEntryPhis...)
}

func identicalExpr(a, b ir.Expr) bool {
	av, aok := a.(*ir.VarRef)
	bv, bok := b.(*ir.VarRef)
	if aok && bok {
		return av == bv
	}
	return a == b
}
