package ssa

import "ssaform/internal/ir"

// Transform runs SSA construction over an entire function: parameters
// become SSA roots in the outermost scope, module-globals referenced
// anywhere in the body are pre-seeded so a global can be read or written
// even without a preceding local define, and the body is rewritten
// statement by statement. Any hard failure (spec §7) comes back as *Error.
func Transform(fn *ir.Function) (out *ir.Function, err error) {
	defer recoverError(&err)

	r := NewRewriter()
	r.scopes.Push(ScopeNormal)

	params := make([]*ir.Parameter, len(fn.Params))
	for i, p := range fn.Params {
		root := ir.NewVarRef(p.Name, p.Typ)
		root.SetSSAMeta(&ir.Meta{IsParam: true})
		r.scopes.Top().getOrInsert(varKey{kindVar, p.Name}, root, 0)
		params[i] = &ir.Parameter{Name: p.Name, Typ: p.Typ}
	}

	seedModuleGlobals(r, fn.Body)

	body := r.rewriteSequence(fn.Body)
	out = ir.NewFunction(fn.Name, params, body, fn.ReturnType)
	ir.CopyAttrs(fn, out)
	return out, nil
}

// TransformStmt runs the pass over a single free-standing statement, useful
// for tests and tools that want to observe the rewrite of one construct in
// isolation. It opens its own bare scope stack seeded only with the
// module-globals the statement references — Undefined-variable errors
// naturally result for any other variable the statement doesn't itself
// define.
func TransformStmt(stmt ir.Stmt) (out ir.Stmt, err error) {
	defer recoverError(&err)

	r := NewRewriter()
	r.scopes.Push(ScopeNormal)

	seq, ok := stmt.(*ir.Sequence)
	if !ok {
		seq = ir.NewSequence(stmt)
	}
	seedModuleGlobals(r, seq)
	rewritten := r.rewriteSequence(seq)

	if !ok && len(rewritten.Stmts) == 1 {
		return rewritten.Stmts[0], nil
	}
	return rewritten, nil
}

// seedModuleGlobals scans body for variable references carrying
// AttrGlobalOffset and records one canonical SSA root per unique global
// name in the outermost scope, so a global can be assigned or read even
// when the function never locally defines it (spec §6, the module-global
// table is an out-of-scope collaborator this pass only consults by
// attribute).
func seedModuleGlobals(r *Rewriter, body *ir.Sequence) {
	seen := make(map[string]bool)
	ir.Walk(body, func(n ir.Node) bool {
		v, ok := n.(*ir.VarRef)
		if !ok || !v.IsModuleGlobal() || seen[v.Name] {
			return true
		}
		seen[v.Name] = true

		root := ir.NewVarRef(v.Name, v.Typ)
		root.SetSSAMeta(&ir.Meta{IsGlobal: true})
		root.SetAttr(ir.AttrGlobalOffset, v.Attr(ir.AttrGlobalOffset))
		r.scopes.Top().getOrInsert(varKey{kindVar, v.Name}, root, 0)
		return true
	})
}
