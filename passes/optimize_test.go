// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frost/core"
	"frost/ir"
)

func constNode(g *ir.Graph, payload any, typ core.Type) *ir.Node {
	c := g.NewNode(core.KindConstant)
	c.SetPayload(payload)
	c.AddOutput(typ)
	g.Block().Append(c)
	return c
}

func arithNode(g *ir.Graph, k core.Kind, a, b *ir.Value, typ core.Type) *ir.Node {
	n := g.NewNode(k)
	n.AddInput(a)
	n.AddInput(b)
	n.AddOutput(typ)
	g.Block().Append(n)
	return n
}

func returning(g *ir.Graph, vs ...*ir.Value) {
	ret := g.NewNode(core.KindReturn)
	for _, v := range vs {
		ret.AddInput(v)
	}
	g.Block().Append(ret)
}

func TestOptimizeFoldsIntAdd(t *testing.T) {
	g := ir.NewGraph()
	a := constNode(g, int64(2), core.IntType)
	b := constNode(g, int64(3), core.IntType)
	sum := arithNode(g, core.KindAdd, a.Output(0), b.Output(0), core.IntType)
	returning(g, sum.Output(0))

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 0, countKind(g, core.KindAdd))
	assert.Equal(t, 1, countKind(g, core.KindConstant))
	assert.Equal(t, int64(5), g.Outputs()[0].Node().Payload())
}

func TestOptimizeFoldsFloatChain(t *testing.T) {
	g := ir.NewGraph()
	a := constNode(g, float64(2), core.FloatType)
	b := constNode(g, float64(4), core.FloatType)
	c := constNode(g, float64(3), core.FloatType)
	mul := arithNode(g, core.KindMul, a.Output(0), b.Output(0), core.FloatType)
	sub := arithNode(g, core.KindSub, mul.Output(0), c.Output(0), core.FloatType)
	returning(g, sub.Output(0))

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 0, countKind(g, core.KindMul))
	assert.Equal(t, 0, countKind(g, core.KindSub))
	assert.Equal(t, float64(5), g.Outputs()[0].Node().Payload())
}

func TestOptimizeSkipsDivByZero(t *testing.T) {
	g := ir.NewGraph()
	a := constNode(g, int64(7), core.IntType)
	b := constNode(g, int64(0), core.IntType)
	div := arithNode(g, core.KindDiv, a.Output(0), b.Output(0), core.IntType)
	returning(g, div.Output(0))

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 1, countKind(g, core.KindDiv))
	assert.Equal(t, 2, countKind(g, core.KindConstant))
}

func TestOptimizeSkipsMixedOperands(t *testing.T) {
	g := ir.NewGraph()
	a := constNode(g, int64(2), core.IntType)
	b := constNode(g, float64(3), core.FloatType)
	add := arithNode(g, core.KindAdd, a.Output(0), b.Output(0), core.FloatType)
	returning(g, add.Output(0))

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 1, countKind(g, core.KindAdd))
}

func TestOptimizeRemovesDeadNodes(t *testing.T) {
	g := ir.NewGraph()
	m := newScaled()
	self := g.AddInput("self", m.Type())

	get := g.NewNode(core.KindGetAttr)
	get.SetStr(ir.AttrName, "scale")
	get.AddInput(self)
	get.AddOutput(core.IntType)
	g.Block().Append(get)

	kept := constNode(g, int64(1), core.IntType)
	returning(g, kept.Output(0))

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 0, countKind(g, core.KindGetAttr))
	assert.Equal(t, 1, countKind(g, core.KindConstant))
}

func TestOptimizeKeepsWrites(t *testing.T) {
	g := ir.NewGraph()
	m := newScaled()
	self := g.AddInput("self", m.Type())

	v := constNode(g, int64(9), core.IntType)
	set := g.NewNode(core.KindSetAttr)
	set.SetStr(ir.AttrName, "scale")
	set.AddInput(self)
	set.AddInput(v.Output(0))
	g.Block().Append(set)
	returning(g)

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 1, countKind(g, core.KindSetAttr))
	assert.Equal(t, 1, countKind(g, core.KindConstant))
}

// a conditional whose branch writes an attribute is not dead even though it
// produces no value
func TestOptimizeKeepsEffectfulBranch(t *testing.T) {
	g := ir.NewGraph()
	m := newScaled()
	self := g.AddInput("self", m.Type())
	cond := g.AddInput("cond", core.BoolType)

	v := constNode(g, int64(9), core.IntType)
	cnd := g.NewNode(core.KindIf)
	cnd.AddInput(cond)
	g.Block().Append(cnd)
	then := cnd.NewBlock()
	set := g.NewNode(core.KindSetAttr)
	set.SetStr(ir.AttrName, "scale")
	set.AddInput(self)
	set.AddInput(v.Output(0))
	then.Append(set)
	then.Append(g.NewNode(core.KindReturn))
	returning(g)

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 1, countKind(g, core.KindIf))
	assert.Equal(t, 1, countKind(g, core.KindSetAttr))
}

func TestOptimizeRemovesEmptyBranch(t *testing.T) {
	g := ir.NewGraph()
	cond := g.AddInput("cond", core.BoolType)

	cnd := g.NewNode(core.KindIf)
	cnd.AddInput(cond)
	g.Block().Append(cnd)
	then := cnd.NewBlock()
	then.Append(g.NewNode(core.KindReturn))
	returning(g)

	assert.Nil(t, Optimize(g))
	assert.Equal(t, 0, countKind(g, core.KindIf))
}
