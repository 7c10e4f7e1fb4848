package ssa

import "ssaform/internal/ir"

// rewriteSequence is the Statement Rewriter's outer loop (spec §4.3): each
// statement gets its own emission frame so add-def/add-def-after calls
// triggered while rewriting it land immediately before/after it, then the
// rewritten statement (if any — a purely local assign or a no-init local
// define may reduce to no statement at all) is appended between them.
func (r *Rewriter) rewriteSequence(seq *ir.Sequence) *ir.Sequence {
	out := &ir.Sequence{Stmts: make([]ir.Stmt, 0, len(seq.Stmts))}
	ir.CopyAttrs(seq, out)
	for _, stmt := range seq.Stmts {
		var rewritten ir.Stmt
		pre, post := r.withFrame(func() {
			rewritten = r.rewriteStmt(stmt)
		})
		out.Stmts = append(out.Stmts, pre...)
		if rewritten != nil {
			out.Stmts = append(out.Stmts, rewritten)
		}
		out.Stmts = append(out.Stmts, post...)
	}
	return out
}

func (r *Rewriter) rewriteStmt(stmt ir.Stmt) ir.Stmt {
	switch s := stmt.(type) {
	case *ir.Define:
		return r.rewriteDefine(s)
	case *ir.Assign:
		return r.rewriteAssign(s)
	case *ir.IfElse:
		return r.rewriteIfElse(s)
	case *ir.ForLoop:
		return r.rewriteForLoop(s)
	case *ir.Sequence:
		return r.rewriteSequence(s)
	default:
		panic(newError(KindTypeMismatch, "unsupported statement node %T", stmt))
	}
}

// rewriteDefine implements the Define classification rule (spec §4.3):
// local/global/tensor, with the local-no-init case collapsing to a
// zero-valued current value and no emitted statement at all.
func (r *Rewriter) rewriteDefine(d *ir.Define) ir.Stmt {
	if d.Linkage != ir.LinkageLocal {
		panic(newError(KindUnsupportedLinkage, "unsupported linkage %q", d.Linkage))
	}

	switch v := d.Var.(type) {
	case *ir.VarRef:
		isGlobal := v.IsModuleGlobal()
		status := r.scopes.Top().getOrInsert(varKey{kindVar, v.Name}, nil, r.scopes.Len()-1)

		if !isGlobal && d.Init == nil {
			status.CurrentValue = zeroConstant(v.Typ)
			return nil
		}

		newVar := ir.Remake(v).(*ir.VarRef)
		newVar.SetSSAMeta(&ir.Meta{IsGlobal: isGlobal})
		status.CurrentValue = newVar

		var init ir.Expr
		if d.Init != nil {
			init = r.rewriteExprRaw(d.Init)
		}
		out := ir.NewDefine(newVar, d.Linkage, init)
		ir.CopyAttrs(d, out)
		return out

	case *ir.TensorRef:
		status := r.scopes.Top().getOrInsert(varKey{kindTensor, v.Name}, nil, r.scopes.Len()-1)
		newVar := ir.Remake(v).(*ir.TensorRef)
		newVar.SetSSAMeta(&ir.Meta{})
		status.CurrentValue = newVar

		var init ir.Expr
		if d.Init != nil {
			init = r.rewriteExprRaw(d.Init)
		}
		out := ir.NewDefine(newVar, d.Linkage, init)
		ir.CopyAttrs(d, out)
		return out

	default:
		panic(newError(KindTypeMismatch, "define target must be a variable or tensor, got %T", d.Var))
	}
}

// rewriteAssign implements the Assign rule (spec §4.3). A variable lhs
// either updates the scope table silently (local path) or lowers to an
// explicit store (global path); an indexing lhs always lowers to an
// explicit store since tensor elements are never tracked in the var table.
func (r *Rewriter) rewriteAssign(a *ir.Assign) ir.Stmt {
	switch lhs := a.Lhs.(type) {
	case *ir.VarRef:
		rhs := r.rewriteExpr(a.Rhs)
		status := r.scopes.lookupForUpdate(varKey{kindVar, lhs.Name}, lhs.IsModuleGlobal())

		if status.CurrentValue == nil || !status.CurrentValue.GetSSAMeta().IsGlobal {
			switch rhs.(type) {
			case *ir.VarRef:
			default:
				panic(newError(KindMalformedAssign, "assign to %s did not reduce to a bare var or constant", lhs.Name))
			}
			status.CurrentValue = rhs
			if v, ok := rhs.(*ir.VarRef); ok {
				r.renameToVersion(v, lhs.Name)
			}
			return nil
		}

		out := ir.NewAssign(status.CurrentValue, rhs)
		ir.CopyAttrs(a, out)
		return out

	case *ir.Index:
		newLhs := r.rewriteExprRaw(lhs)
		rhs := r.rewriteExpr(a.Rhs)
		out := ir.NewAssign(newLhs, rhs)
		ir.CopyAttrs(a, out)
		return out

	default:
		panic(newError(KindTypeMismatch, "assign target must be a variable or indexing, got %T", a.Lhs))
	}
}

// rewriteIfElse implements the If/Else rule (spec §4.3): rewrite the
// condition in the enclosing scope, rewrite each branch in its own pushed
// scope, then synthesize exit phis at the join point per joinIfElse /
// joinIfThenOnly.
func (r *Rewriter) rewriteIfElse(s *ir.IfElse) ir.Stmt {
	cond := r.rewriteExpr(s.Cond)

	r.scopes.Push(ScopeIfThen)
	then := r.rewriteSequence(s.Then)
	thenScope := r.scopes.Pop()

	var els *ir.Sequence
	if s.Else != nil {
		r.scopes.Push(ScopeIfElse)
		els = r.rewriteSequence(s.Else)
		elseScope := r.scopes.Pop()
		r.joinIfElse(thenScope, elseScope)
	} else {
		r.joinIfThenOnly(thenScope)
	}

	out := ir.NewIfElse(cond, then, els)
	ir.CopyAttrs(s, out)
	return out
}

// rewriteForLoop implements the For-Loop rule (spec §4.3): begin/end/step
// rewrite in the enclosing scope, the induction variable gets a fresh SSA
// root inside a pushed for-loop scope, the body rewrites against it, and the
// back-edge fix-up runs once the loop scope is popped.
func (r *Rewriter) rewriteForLoop(s *ir.ForLoop) ir.Stmt {
	begin := r.rewriteExpr(s.Begin)
	end := r.rewriteExpr(s.End)
	var step ir.Expr
	if s.Step != nil {
		step = r.rewriteExpr(s.Step)
	}

	r.scopes.Push(ScopeForLoop)
	ind := ir.Remake(s.Ind).(*ir.VarRef)
	ind.SetSSAMeta(&ir.Meta{})
	r.scopes.Top().getOrInsert(varKey{kindVar, s.Ind.Name}, ind, r.scopes.Len()-1)

	body := r.rewriteSequence(s.Body)
	loopScope := r.scopes.Pop()
	r.forLoopBackEdgeFixup(loopScope)

	out := ir.NewForLoop(ind, begin, end, step, body, s.Kind, s.Incremental)
	ir.CopyAttrs(s, out)
	return out
}

func zeroConstant(t ir.Type) *ir.Constant {
	var val any
	switch t.(type) {
	case *ir.IntType:
		val = int64(0)
	case *ir.FloatType:
		val = float64(0)
	case *ir.BoolType:
		val = false
	}
	c := ir.NewConstant(val, t)
	c.SetSSAMeta(&ir.Meta{})
	return c
}
