// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frost/core"
	"frost/ir"
)

func TestClassTypeNames(t *testing.T) {
	typ := NewClassType("frost.nested.M")
	assert.Equal(t, "frost.nested.M", typ.QualifiedName())
	assert.Equal(t, "M", typ.Name())
}

func TestClassTypeSchema(t *testing.T) {
	typ := NewClassType("frost.M")
	typ.AddAttribute("weight", core.TensorType)
	typ.AddAttribute("scale", core.IntType)

	assert.Equal(t, 2, typ.NumAttributes())
	assert.Equal(t, "weight", typ.AttributeName(0))
	assert.Equal(t, core.IntType, typ.AttributeType(1))
	assert.True(t, typ.HasAttribute("scale"))

	typ.UnsafeRemoveAttribute("weight")
	assert.Equal(t, 1, typ.NumAttributes())
	assert.False(t, typ.HasAttribute("weight"))
}

func TestObjectAttrs(t *testing.T) {
	o := NewObject(NewClassType("frost.M"))
	o.SetAttr("scale", IntValue(2))
	o.SetAttr("name", StringValue("m"))

	// SetAttr declares schema entries in insertion order
	assert.Equal(t, []string{"scale", "name"}, o.AttrNames())

	v, ok := o.Attr("scale")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.Int())

	o.UnsafeRemoveAttr("scale")
	assert.False(t, o.HasAttr("scale"))
	// the schema entry is removed separately
	assert.True(t, o.Type().HasAttribute("scale"))
}

func TestObjectMethods(t *testing.T) {
	o := NewObject(NewClassType("frost.M"))
	g := ir.NewGraph()
	g.AddInput("self", o.Type())
	g.Block().Append(g.NewNode(core.KindReturn))
	o.Define("forward", g)

	m, ok := o.Method("forward")
	assert.True(t, ok)
	assert.Equal(t, "forward", m.Name())
	assert.Equal(t, g, m.Graph())

	_, ok = o.Method("backward")
	assert.False(t, ok)
	assert.Equal(t, 1, len(o.Methods()))
}

func TestValueKinds(t *testing.T) {
	assert.Equal(t, int64(3), IntValue(3).Int())
	assert.Equal(t, 1.5, FloatValue(1.5).Float())
	assert.True(t, BoolValue(true).Bool())
	assert.Equal(t, "hi", StringValue("hi").Str())
	assert.Equal(t, NoneKind, NoneValue().Kind())

	w := &core.Tensor{Data: []float64{1}, Shape: []int{1}}
	assert.True(t, TensorValue(w).IsTensor())
	assert.Equal(t, w, TensorValue(w).Tensor())

	o := NewObject(NewClassType("frost.M"))
	assert.True(t, ModuleValue(o).IsModule())
	assert.Equal(t, o, ModuleValue(o).Module())
}

func TestValueTypes(t *testing.T) {
	assert.Equal(t, core.IntType, IntValue(1).Type())
	assert.Equal(t, core.NoneType, NoneValue().Type())

	o := NewObject(NewClassType("frost.M"))
	assert.Equal(t, core.Type(o.Type()), ModuleValue(o).Type())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, IntValue(3).Equal(IntValue(3)))
	assert.False(t, IntValue(3).Equal(IntValue(4)))
	assert.False(t, IntValue(3).Equal(FloatValue(3)))
	assert.True(t, NoneValue().Equal(NoneValue()))
}
