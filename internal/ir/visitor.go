package ir

// Walk is the generic pre-order traversal scaffolding described as an
// external collaborator: it visits every expression and statement node
// reachable from stmt, calling fn on each before descending into its
// children. fn returning false stops the descent into that node's children
// (but sibling traversal continues).
//
// The SSA pass itself does not use Walk to dispatch its rewrite: per the
// transform's own design notes, that dispatch is an exhaustive switch over
// the tagged node union, not a subclassed visitor. Walk exists for
// collaborators that only need to observe the tree, such as the module
// global scanner in the ssa driver.
func Walk(stmt Stmt, fn func(Node) bool) {
	if stmt == nil || !fn(stmt) {
		return
	}
	switch s := stmt.(type) {
	case *Define:
		WalkExpr(s.Var, fn)
		if s.Init != nil {
			WalkExpr(s.Init, fn)
		}
	case *Assign:
		WalkExpr(s.Lhs, fn)
		WalkExpr(s.Rhs, fn)
	case *IfElse:
		WalkExpr(s.Cond, fn)
		Walk(s.Then, fn)
		if s.Else != nil {
			Walk(s.Else, fn)
		}
	case *ForLoop:
		WalkExpr(s.Begin, fn)
		WalkExpr(s.End, fn)
		if s.Step != nil {
			WalkExpr(s.Step, fn)
		}
		WalkExpr(s.Ind, fn)
		Walk(s.Body, fn)
	case *Sequence:
		for _, child := range s.Stmts {
			Walk(child, fn)
		}
	}
}

// WalkExpr is Walk's expression-side counterpart.
func WalkExpr(e Expr, fn func(Node) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch v := e.(type) {
	case *Index:
		WalkExpr(v.Arr, fn)
		WalkExpr(v.Idx, fn)
	case *Operator:
		for _, a := range v.Args {
			WalkExpr(a, fn)
		}
	case *Phi:
		for _, a := range v.Operands {
			WalkExpr(a, fn)
		}
	}
}
