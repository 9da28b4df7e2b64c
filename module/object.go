// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"strings"

	"frost/core"
	"frost/ir"
	"frost/logger"
)

// ClassType describes a module class: a qualified name plus an ordered
// attribute schema of (name, type) pairs. It implements core.Type, so graph
// values can be typed "object of module type T"; types compare by identity.
type ClassType struct {
	name  string
	attrs []schemaAttr
}

type schemaAttr struct {
	name string
	typ  core.Type
}

// NewClassType returns a class type with the given qualified name and an
// empty schema.
func NewClassType(qualifiedName string) *ClassType {
	return &ClassType{name: qualifiedName}
}

// String returns the qualified name; it makes ClassType a core.Type.
func (t *ClassType) String() string { return t.name }

// QualifiedName returns the fully qualified class name.
func (t *ClassType) QualifiedName() string { return t.name }

// Name returns the last segment of the qualified class name.
func (t *ClassType) Name() string {
	if i := strings.LastIndex(t.name, "."); i >= 0 {
		return t.name[i+1:]
	}
	return t.name
}

// NumAttributes returns the number of schema attributes.
func (t *ClassType) NumAttributes() int { return len(t.attrs) }

// AttributeName returns the name of the i-th schema attribute.
func (t *ClassType) AttributeName(i int) string { return t.attrs[i].name }

// AttributeType returns the type of the i-th schema attribute.
func (t *ClassType) AttributeType(i int) core.Type { return t.attrs[i].typ }

// HasAttribute reports whether the schema declares the attribute.
func (t *ClassType) HasAttribute(name string) bool {
	for _, a := range t.attrs {
		if a.name == name {
			return true
		}
	}
	return false
}

// AddAttribute appends an attribute to the schema. Names are unique within
// a class.
func (t *ClassType) AddAttribute(name string, typ core.Type) {
	if t.HasAttribute(name) {
		logger.Fatalf("type %s already has attribute %q", t.name, name)
	}
	t.attrs = append(t.attrs, schemaAttr{name: name, typ: typ})
}

// UnsafeRemoveAttribute removes an attribute from the schema without
// checking for remaining users. Only the cleanup stage of freezing may call
// this, on a cloned type.
func (t *ClassType) UnsafeRemoveAttribute(name string) {
	for i, a := range t.attrs {
		if a.name == name {
			t.attrs = append(t.attrs[:i], t.attrs[i+1:]...)
			return
		}
	}
}

// Method is a named method of a module object with a graph body.
type Method struct {
	name  string
	graph *ir.Graph
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// Graph returns the method body.
func (m *Method) Graph() *ir.Graph { return m.graph }

// Object is a node in the module tree: an instance attribute table plus the
// methods defined on it. A child object is owned by exactly one parent in
// the canonical tree, though graphs may reach it through multiple read
// chains.
type Object struct {
	typ     *ClassType
	attrs   map[string]Value
	methods map[string]*Method
	mnames  []string
}

// NewObject returns an object of the given class with an empty attribute
// table.
func NewObject(typ *ClassType) *Object {
	return &Object{
		typ:     typ,
		attrs:   make(map[string]Value),
		methods: make(map[string]*Method),
	}
}

// Type returns the class type of the object.
func (o *Object) Type() *ClassType { return o.typ }

// SetAttr sets an instance attribute, declaring it in the class schema if
// it is not there yet.
func (o *Object) SetAttr(name string, v Value) {
	if !o.typ.HasAttribute(name) {
		o.typ.AddAttribute(name, v.Type())
	}
	o.attrs[name] = v
}

// Attr returns the instance attribute with the given name.
func (o *Object) Attr(name string) (Value, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// HasAttr reports whether the instance currently has the attribute.
func (o *Object) HasAttr(name string) bool {
	_, ok := o.attrs[name]
	return ok
}

// AttrNames returns the attribute names in schema order.
func (o *Object) AttrNames() []string {
	names := make([]string, 0, o.typ.NumAttributes())
	for i := 0; i < o.typ.NumAttributes(); i++ {
		names = append(names, o.typ.AttributeName(i))
	}
	return names
}

// UnsafeRemoveAttr removes an instance attribute without checking for
// remaining users. The schema entry is removed separately via
// ClassType.UnsafeRemoveAttribute.
func (o *Object) UnsafeRemoveAttr(name string) {
	delete(o.attrs, name)
}

// Define adds a method with the given graph body.
func (o *Object) Define(name string, g *ir.Graph) *Method {
	if _, ok := o.methods[name]; ok {
		logger.Fatalf("object of type %s already defines method %q", o.typ, name)
	}
	m := &Method{name: name, graph: g}
	o.methods[name] = m
	o.mnames = append(o.mnames, name)
	return m
}

// Method returns the method with the given name.
func (o *Object) Method(name string) (*Method, bool) {
	m, ok := o.methods[name]
	return m, ok
}

// Methods returns the methods in definition order.
func (o *Object) Methods() []*Method {
	ms := make([]*Method, 0, len(o.mnames))
	for _, name := range o.mnames {
		ms = append(ms, o.methods[name])
	}
	return ms
}
