package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssaform/internal/ir"
	"ssaform/internal/ssa"
)

var i64 = &ir.IntType{Bits: 64}
var boolT = &ir.BoolType{}

func c(v int64) *ir.Constant { return ir.NewConstant(v, i64) }

func collectPhis(fn *ir.Function) []*ir.Phi {
	var out []*ir.Phi
	var walkExpr func(e ir.Expr)
	walkExpr = func(e ir.Expr) {
		switch v := e.(type) {
		case *ir.Phi:
			out = append(out, v)
			for _, o := range v.Operands {
				walkExpr(o)
			}
		case *ir.Operator:
			for _, a := range v.Args {
				walkExpr(a)
			}
		case *ir.Index:
			walkExpr(v.Arr)
			walkExpr(v.Idx)
		}
	}
	var walkStmt func(s ir.Stmt)
	walkStmt = func(s ir.Stmt) {
		switch v := s.(type) {
		case *ir.Define:
			if v.Init != nil {
				walkExpr(v.Init)
			}
		case *ir.Assign:
			walkExpr(v.Rhs)
		case *ir.IfElse:
			walkExpr(v.Cond)
			for _, st := range v.Then.Stmts {
				walkStmt(st)
			}
			if v.Else != nil {
				for _, st := range v.Else.Stmts {
					walkStmt(st)
				}
			}
		case *ir.ForLoop:
			for _, st := range v.Body.Stmts {
				walkStmt(st)
			}
		case *ir.Sequence:
			for _, st := range v.Stmts {
				walkStmt(st)
			}
		}
	}
	walkStmt(fn.Body)
	return out
}

// S1 — straight line: no control flow means no phi anywhere.
func TestStraightLineHasNoPhi(t *testing.T) {
	a := ir.NewVarRef("a", i64)
	body := ir.NewSequence(
		ir.NewDefine(a, ir.LinkageLocal, nil),
		ir.NewAssign(a, c(1)),
		ir.NewAssign(a, ir.NewOperator("+", i64, a, c(2))),
	)
	fn := ir.NewFunction("f", nil, body, i64)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	assert.Empty(t, collectPhis(out))
}

// S2 — if without else: exit phi with two operands.
func TestIfWithoutElseProducesExitPhi(t *testing.T) {
	a := ir.NewVarRef("a", i64)
	cond := ir.NewVarRef("cnd", boolT)
	body := ir.NewSequence(
		ir.NewDefine(a, ir.LinkageLocal, c(1)),
		ir.NewIfElse(cond, ir.NewSequence(ir.NewAssign(a, c(2))), nil),
		ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, a),
	)
	fn := ir.NewFunction("f", []*ir.Parameter{{Name: "cnd", Typ: boolT}}, body, i64)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	phis := collectPhis(out)
	require.Len(t, phis, 1)
	assert.Len(t, phis[0].Operands, 2)
}

// S3 — if/else: exit phi, operands in then-before-else order.
func TestIfElseProducesExitPhiInOrder(t *testing.T) {
	a := ir.NewVarRef("a", i64)
	cond := ir.NewVarRef("cnd", boolT)
	body := ir.NewSequence(
		ir.NewDefine(a, ir.LinkageLocal, nil),
		ir.NewIfElse(cond,
			ir.NewSequence(ir.NewAssign(a, c(1))),
			ir.NewSequence(ir.NewAssign(a, c(2))),
		),
		ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, a),
	)
	fn := ir.NewFunction("f", []*ir.Parameter{{Name: "cnd", Typ: boolT}}, body, i64)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	phis := collectPhis(out)
	require.Len(t, phis, 1)
	require.Len(t, phis[0].Operands, 2)

	thenVal := phis[0].Operands[0].(*ir.VarRef)
	elseVal := phis[0].Operands[1].(*ir.VarRef)
	assert.NotEqual(t, thenVal.Name, elseVal.Name)
}

// S4 — loop with loop-carried scalar: a header phi (extended to two
// operands on the back edge) and a separate exit phi, both binary.
func TestLoopCarriedScalarProducesHeaderAndExitPhi(t *testing.T) {
	s := ir.NewVarRef("s", i64)
	i := ir.NewVarRef("i", i64)
	body := ir.NewSequence(
		ir.NewDefine(s, ir.LinkageLocal, c(0)),
		ir.NewForLoop(i, c(0), c(10), nil,
			ir.NewSequence(ir.NewAssign(s, ir.NewOperator("+", i64, s, c(1)))),
			"range", true),
		ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, s),
	)
	fn := ir.NewFunction("f", nil, body, i64)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	phis := collectPhis(out)
	require.Len(t, phis, 2)
	for _, p := range phis {
		assert.Len(t, p.Operands, 2)
	}
}

// S5 — loop reading an outer variable it never reassigns: a single-operand
// header phi only, no exit phi.
func TestLoopUnchangedOuterReadProducesOnlyHeaderPhi(t *testing.T) {
	k := ir.NewVarRef("k", i64)
	i := ir.NewVarRef("i", i64)
	body := ir.NewSequence(
		ir.NewDefine(k, ir.LinkageLocal, c(7)),
		ir.NewForLoop(i, c(0), c(10), nil,
			ir.NewSequence(ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, k)),
			"range", true),
	)
	fn := ir.NewFunction("f", nil, body, i64)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	phis := collectPhis(out)
	require.Len(t, phis, 1)
	assert.Len(t, phis[0].Operands, 1)
}

// S6 — nested if inside a loop: for a, an if-join inside the loop body, a
// header phi it pulls the pre-loop value through, and an exit phi after the
// loop. The condition parameter p is read inside the loop too, so it gets a
// single-operand header phi of its own: four phis in all.
func TestNestedIfInsideLoopProducesFourPhis(t *testing.T) {
	a := ir.NewVarRef("a", i64)
	i := ir.NewVarRef("i", i64)
	p := ir.NewVarRef("p", boolT)
	body := ir.NewSequence(
		ir.NewDefine(a, ir.LinkageLocal, c(0)),
		ir.NewForLoop(i, c(0), c(10), nil,
			ir.NewSequence(ir.NewIfElse(p, ir.NewSequence(ir.NewAssign(a, i)), nil)),
			"range", true),
		ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, a),
	)
	fn := ir.NewFunction("f", []*ir.Parameter{{Name: "p", Typ: boolT}}, body, i64)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	phis := collectPhis(out)
	require.Len(t, phis, 4)
	for _, ph := range phis {
		assert.LessOrEqual(t, len(ph.Operands), 2)
	}
}

// S7 — module-global read/modify/write: no SSA version of the global, an
// explicit load-def and an explicit store-assign.
func TestGlobalReadWriteLowersToExplicitLoadStore(t *testing.T) {
	g := ir.NewVarRef("g", i64)
	g.SetAttr(ir.AttrGlobalOffset, 3)
	body := ir.NewSequence(
		ir.NewAssign(g, ir.NewOperator("+", i64, g, c(1))),
	)
	fn := ir.NewFunction("f", nil, body, nil)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	assert.Empty(t, collectPhis(out))

	var sawStore bool
	for _, stmt := range out.Body.Stmts {
		if a, ok := stmt.(*ir.Assign); ok {
			if lhs, ok := a.Lhs.(*ir.VarRef); ok && lhs.Name == "g" {
				sawStore = true
			}
		}
	}
	assert.True(t, sawStore, "expected an explicit store to the global variable")
}

// Tensor handles are never phi'd: unlike a scalar, visitTensorRef hands
// back the current value unconditionally with no for-depth check at all,
// so reading and writing through the same handle across a loop boundary
// must not synthesize a loop-entry phi the way a scalar read would.
func TestTensorHandleNeverPhidAcrossLoopBoundary(t *testing.T) {
	buf := ir.NewTensorRef("buf", &ir.TensorType{Elem: i64})
	i := ir.NewVarRef("i", i64)
	body := ir.NewSequence(
		ir.NewDefine(buf, ir.LinkageLocal, nil),
		ir.NewForLoop(i, c(0), c(10), nil,
			ir.NewSequence(
				ir.NewAssign(ir.NewIndex(buf, i, i64), i),
				ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, ir.NewIndex(buf, i, i64)),
			),
			"range", true),
	)
	fn := ir.NewFunction("f", nil, body, nil)

	out, err := ssa.Transform(fn)
	require.NoError(t, err)
	assert.Empty(t, collectPhis(out))

	var sawIndexStore bool
	for _, stmt := range out.Body.Stmts {
		if fl, ok := stmt.(*ir.ForLoop); ok {
			for _, s := range fl.Body.Stmts {
				if a, ok := s.(*ir.Assign); ok {
					if _, ok := a.Lhs.(*ir.Index); ok {
						sawIndexStore = true
					}
				}
			}
		}
	}
	assert.True(t, sawIndexStore, "expected an explicit indexed store into the tensor")
}

// A scalar assign whose rhs reduces to a tensor handle is malformed: only
// var-or-constant may land in a scalar's current value.
func TestAssignScalarFromTensorHandleAborts(t *testing.T) {
	a := ir.NewVarRef("a", i64)
	buf := ir.NewTensorRef("buf", &ir.TensorType{Elem: i64})
	body := ir.NewSequence(
		ir.NewDefine(buf, ir.LinkageLocal, nil),
		ir.NewDefine(a, ir.LinkageLocal, c(0)),
		ir.NewAssign(a, buf),
	)
	fn := ir.NewFunction("f", nil, body, i64)

	_, err := ssa.Transform(fn)
	require.Error(t, err)
	ssaErr, ok := err.(*ssa.Error)
	require.True(t, ok)
	assert.Equal(t, ssa.KindMalformedAssign, ssaErr.Kind)
}

// Undefined-variable reads abort the whole pass.
func TestUndefinedVariableAborts(t *testing.T) {
	x := ir.NewVarRef("x", i64)
	body := ir.NewSequence(ir.NewDefine(ir.NewVarRef("y", i64), ir.LinkageLocal, x))
	fn := ir.NewFunction("f", nil, body, i64)

	_, err := ssa.Transform(fn)
	require.Error(t, err)
	ssaErr, ok := err.(*ssa.Error)
	require.True(t, ok)
	assert.Equal(t, ssa.KindUndefinedVariable, ssaErr.Kind)
}

// A non-local linkage is rejected outright.
func TestUnsupportedLinkageAborts(t *testing.T) {
	a := ir.NewVarRef("a", i64)
	def := ir.NewDefine(a, ir.Linkage("static"), c(1))
	fn := ir.NewFunction("f", nil, ir.NewSequence(def), i64)

	_, err := ssa.Transform(fn)
	require.Error(t, err)
	ssaErr, ok := err.(*ssa.Error)
	require.True(t, ok)
	assert.Equal(t, ssa.KindUnsupportedLinkage, ssaErr.Kind)
}
