package ir

import "fmt"

// Type is the minimal scalar/tensor type system the pass needs to carry
// through rewriting. It never drives type checking; the SSA pass only
// needs a Type to stamp on the temporaries it introduces.
type Type interface {
	String() string
}

// IntType is a fixed-width integer.
type IntType struct{ Bits int }

func (t *IntType) String() string { return fmt.Sprintf("i%d", t.Bits) }

// BoolType is a single-bit boolean.
type BoolType struct{}

func (t *BoolType) String() string { return "bool" }

// FloatType is a floating point scalar.
type FloatType struct{ Bits int }

func (t *FloatType) String() string { return fmt.Sprintf("f%d", t.Bits) }

// TensorType describes a named tensor's element type; tensors themselves
// are never versioned (spec invariant: single SSA handle per source
// tensor), so this is only used to type Index results and TensorRef nodes.
type TensorType struct{ Elem Type }

func (t *TensorType) String() string { return fmt.Sprintf("tensor<%s>", t.Elem) }
