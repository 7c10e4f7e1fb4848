package parser

import (
	"fmt"
	"strconv"

	"ssaform/internal/ir"
)

// builder turns the concrete grammar tree into internal/ir nodes. It keeps
// just enough of a symbol table (name -> declared type) to stamp types on
// the VarRef/TensorRef/Index nodes it mints; it performs no type checking
// of its own, since that is out of scope for both the grammar and the SSA
// pass that consumes its output.
type builder struct {
	globals map[string]int
	types   map[string]ir.Type
}

// Build converts a parsed Program into a single ir.Function, ready to hand
// to ssa.Transform.
func Build(prog *Program) (*ir.Function, error) {
	b := &builder{globals: map[string]int{}, types: map[string]ir.Type{}}

	for i, g := range prog.Globals {
		b.globals[g.Name] = i
		b.types[g.Name] = b.buildType(g.Type)
	}

	return b.buildFunction(prog.Function)
}

func (b *builder) buildType(t *Type) ir.Type {
	if t.Tensor != nil {
		return &ir.TensorType{Elem: b.buildType(t.Tensor)}
	}
	switch t.Name {
	case "int":
		return &ir.IntType{Bits: 64}
	case "bool":
		return &ir.BoolType{}
	case "float":
		return &ir.FloatType{Bits: 64}
	default:
		return &ir.IntType{Bits: 64}
	}
}

func (b *builder) buildFunction(fn *Function) (*ir.Function, error) {
	params := make([]*ir.Parameter, len(fn.Params))
	for i, p := range fn.Params {
		typ := b.buildType(p.Type)
		b.types[p.Name] = typ
		params[i] = &ir.Parameter{Name: p.Name, Typ: typ}
	}

	var ret ir.Type
	if fn.Return != nil {
		ret = b.buildType(fn.Return)
	}

	body, err := b.buildStmts(fn.Body)
	if err != nil {
		return nil, err
	}
	return ir.NewFunction(fn.Name, params, body, ret), nil
}

func (b *builder) buildStmts(stmts []*Stmt) (*ir.Sequence, error) {
	out := make([]ir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		stmt, err := b.buildStmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return ir.NewSequence(out...), nil
}

func (b *builder) buildStmt(s *Stmt) (ir.Stmt, error) {
	switch {
	case s.Define != nil:
		return b.buildDefine(s.Define)
	case s.If != nil:
		return b.buildIf(s.If)
	case s.For != nil:
		return b.buildFor(s.For)
	case s.Assign != nil:
		return b.buildAssign(s.Assign)
	default:
		return nil, fmt.Errorf("parser: empty statement")
	}
}

func (b *builder) buildDefine(d *DefineStmt) (ir.Stmt, error) {
	typ := b.buildType(d.Type)
	b.types[d.Name] = typ

	var target ir.Expr
	if _, isTensor := typ.(*ir.TensorType); isTensor {
		target = ir.NewTensorRef(d.Name, typ)
	} else {
		target = ir.NewVarRef(d.Name, typ)
	}
	b.markGlobal(target, d.Name)

	var init ir.Expr
	if d.Init != nil {
		e, err := b.buildExpr(d.Init)
		if err != nil {
			return nil, err
		}
		init = e
	}
	return ir.NewDefine(target, ir.LinkageLocal, init), nil
}

func (b *builder) buildAssign(a *AssignStmt) (ir.Stmt, error) {
	value, err := b.buildExpr(a.Value)
	if err != nil {
		return nil, err
	}

	if a.Index == nil {
		lhs := ir.NewVarRef(a.Name, b.typeOf(a.Name))
		b.markGlobal(lhs, a.Name)
		return ir.NewAssign(lhs, value), nil
	}

	idx, err := b.buildExpr(a.Index)
	if err != nil {
		return nil, err
	}
	arr := ir.NewTensorRef(a.Name, b.typeOf(a.Name))
	elem := elemType(b.typeOf(a.Name))
	lhs := ir.NewIndex(arr, idx, elem)
	return ir.NewAssign(lhs, value), nil
}

func (b *builder) buildIf(s *IfStmt) (ir.Stmt, error) {
	cond, err := b.buildExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := b.buildStmts(s.Then)
	if err != nil {
		return nil, err
	}
	var els *ir.Sequence
	if s.Else != nil {
		els, err = b.buildStmts(s.Else)
		if err != nil {
			return nil, err
		}
	}
	return ir.NewIfElse(cond, then, els), nil
}

func (b *builder) buildFor(s *ForStmt) (ir.Stmt, error) {
	begin, err := b.buildExpr(s.Begin)
	if err != nil {
		return nil, err
	}
	end, err := b.buildExpr(s.End)
	if err != nil {
		return nil, err
	}
	var step ir.Expr
	if s.Step != nil {
		step, err = b.buildExpr(s.Step)
		if err != nil {
			return nil, err
		}
	}

	indType := &ir.IntType{Bits: 64}
	b.types[s.Ind] = indType
	ind := ir.NewVarRef(s.Ind, indType)

	body, err := b.buildStmts(s.Body)
	if err != nil {
		return nil, err
	}
	return ir.NewForLoop(ind, begin, end, step, body, "range", true), nil
}

func (b *builder) buildExpr(e *Expr) (ir.Expr, error) {
	left, err := b.buildUnary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := b.buildUnary(op.Right)
		if err != nil {
			return nil, err
		}
		left = ir.NewOperator(op.Operator, left.GetType(), left, right)
	}
	return left, nil
}

func (b *builder) buildUnary(u *Unary) (ir.Expr, error) {
	prim, err := b.buildPrimary(u.Primary)
	if err != nil {
		return nil, err
	}
	if u.Negate {
		return ir.NewOperator("neg", prim.GetType(), prim), nil
	}
	return prim, nil
}

func (b *builder) buildPrimary(p *Primary) (ir.Expr, error) {
	switch {
	case p.Index != nil:
		idx, err := b.buildExpr(p.Index.Expr)
		if err != nil {
			return nil, err
		}
		arr := ir.NewTensorRef(p.Index.Name, b.typeOf(p.Index.Name))
		return ir.NewIndex(arr, idx, elemType(b.typeOf(p.Index.Name))), nil

	case p.Float != nil:
		v, err := strconv.ParseFloat(*p.Float, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: bad float literal %q: %w", *p.Float, err)
		}
		return ir.NewConstant(v, &ir.FloatType{Bits: 64}), nil

	case p.Int != nil:
		v, err := strconv.ParseInt(*p.Int, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parser: bad integer literal %q: %w", *p.Int, err)
		}
		return ir.NewConstant(v, &ir.IntType{Bits: 64}), nil

	case p.Ident != nil:
		v := ir.NewVarRef(*p.Ident, b.typeOf(*p.Ident))
		b.markGlobal(v, *p.Ident)
		return v, nil

	case p.Paren != nil:
		return b.buildExpr(p.Paren)

	default:
		return nil, fmt.Errorf("parser: empty primary expression")
	}
}

func (b *builder) typeOf(name string) ir.Type {
	if t, ok := b.types[name]; ok {
		return t
	}
	return &ir.IntType{Bits: 64}
}

func (b *builder) markGlobal(e ir.Expr, name string) {
	if offset, ok := b.globals[name]; ok {
		e.SetAttr(ir.AttrGlobalOffset, offset)
	}
}

func elemType(t ir.Type) ir.Type {
	if tt, ok := t.(*ir.TensorType); ok {
		return tt.Elem
	}
	return t
}
