// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frost/core"
	"frost/ir"
)

// newTree returns a module M{weight: Tensor, sub: S{scale: 3}} whose forward
// reads self.weight.
func newTree() *Object {
	s := NewObject(NewClassType("frost.S"))
	s.SetAttr("scale", IntValue(3))

	m := NewObject(NewClassType("frost.M"))
	m.SetAttr("weight", TensorValue(&core.Tensor{Data: []float64{1, 2}, Shape: []int{2}}))
	m.SetAttr("sub", ModuleValue(s))

	g := ir.NewGraph()
	self := g.AddInput("self", m.Type())
	get := g.NewNode(core.KindGetAttr)
	get.SetStr(ir.AttrName, "weight")
	get.AddInput(self)
	w := get.AddOutput(core.TensorType)
	g.Block().Append(get)
	ret := g.NewNode(core.KindReturn)
	ret.AddInput(w)
	g.Block().Append(ret)
	m.Define("forward", g)
	return m
}

func TestCloneCopiesTree(t *testing.T) {
	m := newTree()
	c := m.Clone()

	assert.Equal(t, m.Type().QualifiedName(), c.Type().QualifiedName())
	assert.Equal(t, m.AttrNames(), c.AttrNames())

	sub, _ := c.Attr("sub")
	assert.True(t, sub.IsModule())
	v, _ := sub.Module().Attr("scale")
	assert.Equal(t, int64(3), v.Int())
}

func TestCloneIsDeep(t *testing.T) {
	m := newTree()
	c := m.Clone()

	// distinct class types, objects and tensors
	assert.NotSame(t, m.Type(), c.Type())
	mw, _ := m.Attr("weight")
	cw, _ := c.Attr("weight")
	assert.NotSame(t, mw.Tensor(), cw.Tensor())

	mw.Tensor().Data[0] = 99
	assert.Equal(t, float64(1), cw.Tensor().Data[0])

	c.UnsafeRemoveAttr("sub")
	c.Type().UnsafeRemoveAttribute("sub")
	assert.True(t, m.HasAttr("sub"))
	assert.True(t, m.Type().HasAttribute("sub"))
}

func TestCloneRetypesGraphs(t *testing.T) {
	m := newTree()
	c := m.Clone()

	cm, ok := c.Method("forward")
	assert.True(t, ok)
	mm, _ := m.Method("forward")
	assert.NotSame(t, mm.Graph(), cm.Graph())

	// the cloned self input carries the cloned class type
	assert.Equal(t, core.Type(c.Type()), cm.Graph().Input(0).Type())
	assert.Equal(t, mm.Graph().String(), cm.Graph().String())
}
