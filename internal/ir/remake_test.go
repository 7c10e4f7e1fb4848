package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssaform/internal/ir"
)

func TestRemakeVarRefPreservesShapeDropsMeta(t *testing.T) {
	v := ir.NewVarRef("x", &ir.IntType{Bits: 64})
	v.SetSSAMeta(&ir.Meta{IsParam: true})
	v.SetAttr("k", 1)

	remade := ir.Remake(v)
	rv, ok := remade.(*ir.VarRef)
	require.True(t, ok)

	assert.Equal(t, "x", rv.Name)
	assert.Equal(t, v.Typ, rv.Typ)
	assert.Nil(t, rv.GetSSAMeta())
	assert.True(t, rv.HasAttr("k"))
	assert.NotSame(t, v, rv)
}

func TestRemakeTensorRef(t *testing.T) {
	tt := &ir.TensorType{Elem: &ir.IntType{Bits: 32}}
	tr := ir.NewTensorRef("buf", tt)
	remade := ir.Remake(tr).(*ir.TensorRef)
	assert.Equal(t, "buf", remade.Name)
	assert.Nil(t, remade.GetSSAMeta())
}

func TestRemakeRejectsOtherNodes(t *testing.T) {
	c := ir.NewConstant(int64(1), &ir.IntType{Bits: 64})
	assert.Panics(t, func() { ir.Remake(c) })
}
