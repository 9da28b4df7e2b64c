// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"frost/core"
)

// Clone returns a deep copy of the object tree. Class types, attribute
// tables, tensors and method graphs are all copied, and graph values are
// retyped to the cloned class types, so the freezing passes can rewrite and
// prune the clone while the original stays untouched.
func (o *Object) Clone() *Object {
	c := &cloner{
		types: make(map[*ClassType]*ClassType),
		objs:  make(map[*Object]*Object),
	}
	// register every class type reachable from o before cloning any graph,
	// so type remapping is total
	c.registerTypes(o)
	for old, nt := range c.types {
		for _, a := range old.attrs {
			nt.attrs = append(nt.attrs, schemaAttr{name: a.name, typ: c.remapType(a.typ)})
		}
	}
	return c.object(o)
}

type cloner struct {
	types map[*ClassType]*ClassType
	objs  map[*Object]*Object
}

func (c *cloner) registerTypes(o *Object) {
	if _, ok := c.types[o.typ]; !ok {
		c.types[o.typ] = NewClassType(o.typ.name)
	}
	for _, v := range o.attrs {
		if v.IsModule() {
			c.registerTypes(v.Module())
		}
	}
}

func (c *cloner) remapType(t core.Type) core.Type {
	if ct, ok := t.(*ClassType); ok {
		if nt, ok := c.types[ct]; ok {
			return nt
		}
	}
	return t
}

func (c *cloner) object(o *Object) *Object {
	if done, ok := c.objs[o]; ok {
		return done
	}
	no := NewObject(c.types[o.typ])
	c.objs[o] = no
	for _, name := range o.AttrNames() {
		v, ok := o.attrs[name]
		if !ok {
			continue
		}
		no.attrs[name] = c.value(v)
	}
	for _, m := range o.Methods() {
		no.Define(m.name, m.graph.Clone(c.remapType))
	}
	return no
}

func (c *cloner) value(v Value) Value {
	switch v.kind {
	case TensorKind:
		return TensorValue(v.t.Clone())
	case ModuleKind:
		return ModuleValue(c.object(v.obj))
	default:
		return v
	}
}
