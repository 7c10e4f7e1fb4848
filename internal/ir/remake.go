package ir

// Remake produces a fresh node with the same type/name/shape as e but with
// no SSA metadata and a copy (not a share) of e's attributes. It is used
// wherever the pass mints a brand new SSA value bound to a source name:
// define targets and for-loop induction variables.
func Remake(e Expr) Expr {
	switch v := e.(type) {
	case *VarRef:
		n := NewVarRef(v.Name, v.Typ)
		copyAttrsInto(&v.Base, &n.Base)
		return n
	case *TensorRef:
		n := NewTensorRef(v.Name, v.Typ)
		copyAttrsInto(&v.Base, &n.Base)
		return n
	default:
		panic("ir: Remake only supports VarRef and TensorRef")
	}
}

func copyAttrsInto(src, dst *Base) {
	for k, val := range src.Attrs {
		dst.SetAttr(k, val)
	}
}
