package ir

// Linkage classifies a define statement's storage. The core pass rejects
// anything but LinkageLocal (spec: UnsupportedLinkage).
type Linkage string

const LinkageLocal Linkage = "local"

// Stmt is any statement node in the source or SSA IR.
type Stmt interface {
	Node
	stmtNode()
}

// Define declares Var, optionally initializing it from Init. Var is either
// a *VarRef or a *TensorRef.
type Define struct {
	Base
	Var     Expr
	Linkage Linkage
	Init    Expr
}

func NewDefine(v Expr, linkage Linkage, init Expr) *Define {
	return &Define{Var: v, Linkage: linkage, Init: init}
}

func (d *Define) stmtNode() {}

// Assign writes Rhs into Lhs, which is either a *VarRef or an *Index.
type Assign struct {
	Base
	Lhs Expr
	Rhs Expr
}

func NewAssign(lhs, rhs Expr) *Assign { return &Assign{Lhs: lhs, Rhs: rhs} }

func (a *Assign) stmtNode() {}

// IfElse is a conditional with an optional else branch.
type IfElse struct {
	Base
	Cond Expr
	Then *Sequence
	Else *Sequence
}

func NewIfElse(cond Expr, then, els *Sequence) *IfElse {
	return &IfElse{Cond: cond, Then: then, Else: els}
}

func (s *IfElse) stmtNode() {}

// ForLoop iterates Ind from Begin to End by Step over Body. Kind is an
// opaque tag the front end may use (e.g. "range", "parallel"); the SSA
// pass does not interpret it. Incremental marks step direction.
type ForLoop struct {
	Base
	Ind         *VarRef
	Begin       Expr
	End         Expr
	Step        Expr
	Body        *Sequence
	Kind        string
	Incremental bool
}

func NewForLoop(ind *VarRef, begin, end, step Expr, body *Sequence, kind string, incremental bool) *ForLoop {
	return &ForLoop{Ind: ind, Begin: begin, End: end, Step: step, Body: body, Kind: kind, Incremental: incremental}
}

func (f *ForLoop) stmtNode() {}

// Sequence is a straight-line block of statements.
type Sequence struct {
	Base
	Stmts []Stmt
}

func NewSequence(stmts ...Stmt) *Sequence { return &Sequence{Stmts: stmts} }

func (s *Sequence) stmtNode() {}

// Parameter is a function formal parameter.
type Parameter struct {
	Name string
	Typ  Type
}

// Function is the top-level unit the driver rewrites.
type Function struct {
	Base
	Name       string
	Params     []*Parameter
	Body       *Sequence
	ReturnType Type
}

func NewFunction(name string, params []*Parameter, body *Sequence, ret Type) *Function {
	return &Function{Name: name, Params: params, Body: body, ReturnType: ret}
}
