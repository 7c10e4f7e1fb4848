package ssa

import (
	"fmt"

	"ssaform/internal/ir"
)

// emitFrame accumulates the statements the expression rewriter needs to
// splice in immediately before ("pre", from add-def) or immediately after
// ("post", from add-def-after-current-stmt) whichever source statement is
// currently being rewritten. rewriteSequence opens one frame per statement
// it processes; nested statement rewriting (an if/for body) opens and
// closes its own frames independently, so add-def calls always land in the
// frame for the statement that is actually executing when they fire.
type emitFrame struct {
	pre  []ir.Stmt
	post []ir.Stmt
}

// Rewriter carries all per-pass-instance state: the scope stack, the two
// independent monotonic counters (one for anonymous temporaries, one for
// renaming a value onto a source variable's name), and the currently open
// emission frame.
type Rewriter struct {
	scopes ScopeStack

	tempCounter    int
	versionCounter uint64

	frame *emitFrame
}

// NewRewriter returns a Rewriter with fresh, zeroed counters. Each
// Transform/TransformStmt call uses its own Rewriter so no state survives
// across function invocations (spec §5: single-threaded, no shared state).
func NewRewriter() *Rewriter { return &Rewriter{} }

// addDef allocates a fresh local SSA temporary bound to value via a new
// define statement, spliced in before the statement currently being
// rewritten.
func (r *Rewriter) addDef(value ir.Expr) *ir.VarRef {
	return r.emit(value, false)
}

// addDefAfter is add-def's twin: the new define statement is spliced in
// after the statement currently being rewritten (used for exit phis, which
// logically belong to the join point right after the if/for they close).
func (r *Rewriter) addDefAfter(value ir.Expr) *ir.VarRef {
	return r.emit(value, true)
}

func (r *Rewriter) emit(value ir.Expr, after bool) *ir.VarRef {
	tmp := ir.NewVarRef(fmt.Sprintf("t_%d", r.tempCounter), value.GetType())
	r.tempCounter++
	tmp.SetSSAMeta(&ir.Meta{})
	def := ir.NewDefine(tmp, ir.LinkageLocal, value)
	if after {
		r.frame.post = append(r.frame.post, def)
	} else {
		r.frame.pre = append(r.frame.pre, def)
	}
	return tmp
}

// renameToVersion renames value to "<base>_<counter>" using the single
// global version counter, but only when value is an ordinary local SSA
// value (spec invariant 6: the counter only advances for local vars).
func (r *Rewriter) renameToVersion(value ir.Expr, base string) {
	v, ok := value.(*ir.VarRef)
	if !ok || !v.GetSSAMeta().IsLocal() {
		return
	}
	v.Name = fmt.Sprintf("%s_%d", base, r.versionCounter)
	r.versionCounter++
}

// withFrame runs fn with a fresh emission frame current, then returns the
// frame's accumulated pre/post statements.
func (r *Rewriter) withFrame(fn func()) (pre, post []ir.Stmt) {
	saved := r.frame
	r.frame = &emitFrame{}
	fn()
	pre, post = r.frame.pre, r.frame.post
	r.frame = saved
	return pre, post
}
