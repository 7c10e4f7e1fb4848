package ir

// Meta is the SSA metadata record attached to every expression node in the
// output IR (spec: "every expression node additionally carries an SSA
// metadata record"). is_local is derived, never stored.
type Meta struct {
	IsParam  bool
	IsGlobal bool
}

// IsLocal reports whether a value is an ordinary local SSA value: neither
// a function parameter nor a module-global load. The temp-name version
// counter only advances for values where this holds.
func (m *Meta) IsLocal() bool {
	return m != nil && !m.IsParam && !m.IsGlobal
}

// Expr is any expression node in the source or SSA IR.
type Expr interface {
	Node
	exprNode()
	GetType() Type
	GetSSAMeta() *Meta
	SetSSAMeta(*Meta)
}

// VarRef is a reference to a scalar source variable ("variable reference"
// in spec terms). Module-globals are VarRefs carrying AttrGlobalOffset.
type VarRef struct {
	Base
	Name string
	Typ  Type
	Meta *Meta
}

func NewVarRef(name string, typ Type) *VarRef { return &VarRef{Name: name, Typ: typ} }

func (v *VarRef) exprNode()             {}
func (v *VarRef) GetType() Type         { return v.Typ }
func (v *VarRef) GetSSAMeta() *Meta     { return v.Meta }
func (v *VarRef) SetSSAMeta(m *Meta)    { v.Meta = m }
func (v *VarRef) IsModuleGlobal() bool  { return v.HasAttr(AttrGlobalOffset) }
func (v *VarRef) GlobalOffset() (int, bool) {
	off, ok := v.Attr(AttrGlobalOffset).(int)
	return off, ok
}

// TensorRef is a reference to a source tensor. Tensors are never versioned;
// a single SSA handle stands for the whole tensor across its lifetime.
type TensorRef struct {
	Base
	Name string
	Typ  Type
	Meta *Meta
}

func NewTensorRef(name string, typ Type) *TensorRef { return &TensorRef{Name: name, Typ: typ} }

func (t *TensorRef) exprNode()          {}
func (t *TensorRef) GetType() Type      { return t.Typ }
func (t *TensorRef) GetSSAMeta() *Meta  { return t.Meta }
func (t *TensorRef) SetSSAMeta(m *Meta) { t.Meta = m }

// Constant is a compile-time literal value.
type Constant struct {
	Base
	Value any
	Typ   Type
	Meta  *Meta
}

func NewConstant(value any, typ Type) *Constant { return &Constant{Value: value, Typ: typ} }

func (c *Constant) exprNode()          {}
func (c *Constant) GetType() Type      { return c.Typ }
func (c *Constant) GetSSAMeta() *Meta  { return c.Meta }
func (c *Constant) SetSSAMeta(m *Meta) { c.Meta = m }

// Index is an array/tensor element access, e.g. a[i].
type Index struct {
	Base
	Arr  Expr
	Idx  Expr
	Typ  Type
	Meta *Meta
}

func NewIndex(arr, idx Expr, typ Type) *Index { return &Index{Arr: arr, Idx: idx, Typ: typ} }

func (x *Index) exprNode()          {}
func (x *Index) GetType() Type      { return x.Typ }
func (x *Index) GetSSAMeta() *Meta  { return x.Meta }
func (x *Index) SetSSAMeta(m *Meta) { x.Meta = m }

// Operator is an opaque n-ary operator (binary/unary/call/whatever the
// front end produces); the SSA pass never inspects Op, only recurses into
// Args and flattens the result.
type Operator struct {
	Base
	Op   string
	Args []Expr
	Typ  Type
	Meta *Meta
}

func NewOperator(op string, typ Type, args ...Expr) *Operator {
	return &Operator{Op: op, Args: args, Typ: typ}
}

func (o *Operator) exprNode()          {}
func (o *Operator) GetType() Type      { return o.Typ }
func (o *Operator) GetSSAMeta() *Meta  { return o.Meta }
func (o *Operator) SetSSAMeta(m *Meta) { o.Meta = m }

// Phi is a control-flow join pseudo-operation with an ordered operand list,
// one per predecessor. Loop-entry phis start with a single operand and
// grow a second one on the back edge; join phis get their full operand
// list at construction time.
type Phi struct {
	Base
	Operands []Expr
	Typ      Type
	Meta     *Meta
}

func NewPhi(typ Type, operands ...Expr) *Phi { return &Phi{Operands: operands, Typ: typ} }

func (p *Phi) exprNode()          {}
func (p *Phi) GetType() Type      { return p.Typ }
func (p *Phi) GetSSAMeta() *Meta  { return p.Meta }
func (p *Phi) SetSSAMeta(m *Meta) { p.Meta = m }
