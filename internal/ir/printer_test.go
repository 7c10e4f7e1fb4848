package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ssaform/internal/ir"
)

func TestPrintSimpleFunction(t *testing.T) {
	i64 := &ir.IntType{Bits: 64}
	x := ir.NewVarRef("x", i64)
	body := ir.NewSequence(
		ir.NewDefine(x, ir.LinkageLocal, ir.NewConstant(int64(1), i64)),
		ir.NewAssign(x, ir.NewOperator("+", i64, x, ir.NewConstant(int64(2), i64))),
	)
	fn := ir.NewFunction("f", []*ir.Parameter{{Name: "n", Typ: i64}}, body, i64)

	out := ir.Print(fn)
	assert.Contains(t, out, "func f(n: i64) -> i64 {")
	assert.Contains(t, out, "define x = 1")
	assert.Contains(t, out, "x = +(x, 2)")
}

func TestPrintPhi(t *testing.T) {
	i64 := &ir.IntType{Bits: 64}
	a := ir.NewVarRef("a_0", i64)
	b := ir.NewVarRef("a_1", i64)
	phi := ir.NewPhi(i64, a, b)
	body := ir.NewSequence(ir.NewDefine(ir.NewVarRef("a_2", i64), ir.LinkageLocal, phi))
	fn := ir.NewFunction("g", nil, body, nil)

	out := ir.Print(fn)
	assert.Contains(t, out, "phi(a_0, a_1)")
}
