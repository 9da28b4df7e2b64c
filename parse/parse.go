// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package parse reads and writes module descriptions in a YAML format:
//
//	type: frost.M
//	attributes:
//	  - {name: scale, int: 2}
//	  - name: sub
//	    module:
//	      type: frost.Sub
//	      attributes: [{name: weight, tensor: {data: [1, 2], shape: [2]}}]
//	methods:
//	  - name: forward
//	    inputs: [{name: x, type: Tensor}]
//	    nodes:
//	      - {kind: getattr, attr: scale, in: [self], out: [s]}
//	      - {kind: mul, in: [s, x], out: [y]}
//	    returns: [y]
//
// Value names are unique within a method; the receiver of a method body is
// always named "self". Call nodes must declare their output types
// explicitly, every other node kind infers them.
package parse

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"frost/core"
	"frost/ir"
	"frost/logger"
	"frost/module"
)

type moduleSpec struct {
	Type       string       `yaml:"type"`
	Attributes []attrSpec   `yaml:"attributes,omitempty"`
	Methods    []methodSpec `yaml:"methods,omitempty"`
}

type attrSpec struct {
	Name   string      `yaml:"name"`
	None   bool        `yaml:"none,omitempty"`
	Int    *int64      `yaml:"int,omitempty"`
	Float  *float64    `yaml:"float,omitempty"`
	Bool   *bool       `yaml:"bool,omitempty"`
	Str    *string     `yaml:"str,omitempty"`
	Tensor *tensorSpec `yaml:"tensor,omitempty"`
	Module *moduleSpec `yaml:"module,omitempty"`
}

type tensorSpec struct {
	Data         []float64 `yaml:"data,omitempty"`
	Shape        []int     `yaml:"shape,omitempty"`
	RequiresGrad bool      `yaml:"requires_grad,omitempty"`
}

type methodSpec struct {
	Name   string      `yaml:"name"`
	Inputs []inputSpec `yaml:"inputs,omitempty"`
	Nodes  []nodeSpec  `yaml:"nodes,omitempty"`
	Return []string    `yaml:"returns,omitempty"`
}

type inputSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type blockSpec struct {
	Nodes  []nodeSpec `yaml:"nodes,omitempty"`
	Return []string   `yaml:"returns,omitempty"`
}

type nodeSpec struct {
	Kind   string      `yaml:"kind"`
	Attr   string      `yaml:"attr,omitempty"`
	In     []string    `yaml:"in,omitempty"`
	Out    []string    `yaml:"out,omitempty"`
	Types  []string    `yaml:"types,omitempty"`
	Int    *int64      `yaml:"int,omitempty"`
	Float  *float64    `yaml:"float,omitempty"`
	Bool   *bool       `yaml:"bool,omitempty"`
	Str    *string     `yaml:"str,omitempty"`
	Tensor *tensorSpec `yaml:"tensor,omitempty"`
	Blocks []blockSpec `yaml:"blocks,omitempty"`
}

var kindByName = map[string]core.Kind{
	"getattr":  core.KindGetAttr,
	"setattr":  core.KindSetAttr,
	"constant": core.KindConstant,
	"call":     core.KindCallMethod,
	"if":       core.KindIf,
	"loop":     core.KindLoop,
	"return":   core.KindReturn,
	"add":      core.KindAdd,
	"sub":      core.KindSub,
	"mul":      core.KindMul,
	"div":      core.KindDiv,
}

var nameByKind = func() map[core.Kind]string {
	m := make(map[core.Kind]string, len(kindByName))
	for name, k := range kindByName {
		m[k] = name
	}
	return m
}()

// LoadFile reads a module description from a YAML file.
func LoadFile(fn string) (*module.Object, error) {
	logger.Infof("Parse '%s'", fn)
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Load builds a module object tree from a YAML module description.
func Load(data []byte) (*module.Object, error) {
	var spec moduleSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	b := &builder{types: make(map[string]*module.ClassType)}
	root, err := b.object(&spec)
	if err != nil {
		return nil, err
	}
	// two phases: methods may call into submodules defined anywhere in the
	// tree, so every object must exist before any graph is built
	for _, pm := range b.pending {
		if err := b.methods(pm.obj, pm.spec); err != nil {
			return nil, err
		}
	}
	return root, nil
}

type builder struct {
	types   map[string]*module.ClassType
	pending []pendingMethods
}

type pendingMethods struct {
	obj  *module.Object
	spec *moduleSpec
}

func (b *builder) classType(name string) *module.ClassType {
	if name == "" {
		name = "frost.Module"
	}
	t, ok := b.types[name]
	if !ok {
		t = module.NewClassType(name)
		b.types[name] = t
	}
	return t
}

func (b *builder) object(spec *moduleSpec) (*module.Object, error) {
	typ := b.classType(spec.Type)
	obj := module.NewObject(typ)
	for _, a := range spec.Attributes {
		if a.Name == "" {
			return nil, fmt.Errorf("type %s: attribute without a name", typ)
		}
		v, err := b.attrValue(&a)
		if err != nil {
			return nil, fmt.Errorf("attribute %s.%s: %v", typ.Name(), a.Name, err)
		}
		obj.SetAttr(a.Name, v)
	}
	b.pending = append(b.pending, pendingMethods{obj: obj, spec: spec})
	return obj, nil
}

func (b *builder) attrValue(a *attrSpec) (module.Value, error) {
	switch {
	case a.Int != nil:
		return module.IntValue(*a.Int), nil
	case a.Float != nil:
		return module.FloatValue(*a.Float), nil
	case a.Bool != nil:
		return module.BoolValue(*a.Bool), nil
	case a.Str != nil:
		return module.StringValue(*a.Str), nil
	case a.Tensor != nil:
		return module.TensorValue(tensorOf(a.Tensor)), nil
	case a.Module != nil:
		obj, err := b.object(a.Module)
		if err != nil {
			return module.Value{}, err
		}
		return module.ModuleValue(obj), nil
	case a.None:
		return module.NoneValue(), nil
	default:
		return module.Value{}, fmt.Errorf("no value given")
	}
}

func tensorOf(t *tensorSpec) *core.Tensor {
	return &core.Tensor{
		Data:         t.Data,
		Shape:        t.Shape,
		RequiresGrad: t.RequiresGrad,
	}
}

func (b *builder) methods(obj *module.Object, spec *moduleSpec) error {
	for _, m := range spec.Methods {
		if m.Name == "" {
			return fmt.Errorf("type %s: method without a name", obj.Type())
		}
		g, err := b.graph(obj, &m)
		if err != nil {
			return fmt.Errorf("method %s.%s: %v", obj.Type().Name(), m.Name, err)
		}
		obj.Define(m.Name, g)
	}
	return nil
}

func (b *builder) typeByName(name string) (core.Type, error) {
	if t, ok := core.SimpleTypeByName(name); ok {
		return t, nil
	}
	if t, ok := b.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

func (b *builder) graph(obj *module.Object, spec *methodSpec) (*ir.Graph, error) {
	g := ir.NewGraph()
	env := map[string]*ir.Value{}
	self := g.AddInput("self", obj.Type())
	env["self"] = self
	for _, in := range spec.Inputs {
		if _, ok := env[in.Name]; ok {
			return nil, fmt.Errorf("duplicate input %q", in.Name)
		}
		typ, err := b.typeByName(in.Type)
		if err != nil {
			return nil, fmt.Errorf("input %q: %v", in.Name, err)
		}
		env[in.Name] = g.AddInput(in.Name, typ)
	}
	body := blockSpec{Nodes: spec.Nodes, Return: spec.Return}
	return g, b.block(g, g.Block(), &body, env)
}

func (b *builder) block(g *ir.Graph, blk *ir.Block, spec *blockSpec, env map[string]*ir.Value) error {
	for i := range spec.Nodes {
		if err := b.node(g, blk, &spec.Nodes[i], env); err != nil {
			return err
		}
	}
	ret := g.NewNode(core.KindReturn)
	for _, name := range spec.Return {
		v, ok := env[name]
		if !ok {
			return fmt.Errorf("return of undefined value %q", name)
		}
		ret.AddInput(v)
	}
	blk.Append(ret)
	return nil
}

func (b *builder) node(g *ir.Graph, blk *ir.Block, spec *nodeSpec, env map[string]*ir.Value) error {
	kind, ok := kindByName[spec.Kind]
	if !ok {
		return fmt.Errorf("unknown node kind %q", spec.Kind)
	}
	n := g.NewNode(kind)
	if spec.Attr != "" {
		n.SetStr(ir.AttrName, spec.Attr)
	}
	for _, name := range spec.In {
		v, ok := env[name]
		if !ok {
			return fmt.Errorf("%s: use of undefined value %q", spec.Kind, name)
		}
		n.AddInput(v)
	}
	outTypes, err := b.outputTypes(n, spec, kind)
	if err != nil {
		return err
	}
	if len(outTypes) != len(spec.Out) {
		return fmt.Errorf("%s: %d outputs named, %d produced", spec.Kind, len(spec.Out), len(outTypes))
	}
	for i, typ := range outTypes {
		v := n.AddOutput(typ)
		name := spec.Out[i]
		if _, ok := env[name]; ok {
			return fmt.Errorf("%s: duplicate value name %q", spec.Kind, name)
		}
		v.SetName(name)
		env[name] = v
	}
	blk.Append(n)
	for i := range spec.Blocks {
		sb := n.NewBlock()
		if err := b.block(g, sb, &spec.Blocks[i], env); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) outputTypes(n *ir.Node, spec *nodeSpec, kind core.Kind) ([]core.Type, error) {
	// explicit declarations win; call nodes require them
	if len(spec.Types) > 0 {
		var types []core.Type
		for _, name := range spec.Types {
			t, err := b.typeByName(name)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", spec.Kind, err)
			}
			types = append(types, t)
		}
		return types, nil
	}
	switch kind {
	case core.KindGetAttr:
		if spec.Attr == "" {
			return nil, fmt.Errorf("getattr without attr name")
		}
		if n.NumInputs() != 1 {
			return nil, fmt.Errorf("getattr expects one input")
		}
		ct, ok := n.Input(0).Type().(*module.ClassType)
		if !ok {
			return nil, fmt.Errorf("getattr %q: input is not a module object", spec.Attr)
		}
		for i := 0; i < ct.NumAttributes(); i++ {
			if ct.AttributeName(i) == spec.Attr {
				return []core.Type{ct.AttributeType(i)}, nil
			}
		}
		return nil, fmt.Errorf("type %s has no attribute %q", ct, spec.Attr)
	case core.KindSetAttr:
		if spec.Attr == "" {
			return nil, fmt.Errorf("setattr without attr name")
		}
		if n.NumInputs() != 2 {
			return nil, fmt.Errorf("setattr expects an object and a value input")
		}
		return nil, nil
	case core.KindCallMethod:
		if spec.Attr == "" {
			return nil, fmt.Errorf("call without method name")
		}
		if len(spec.Out) > 0 {
			return nil, fmt.Errorf("call %q: output types must be declared", spec.Attr)
		}
		return nil, nil
	case core.KindConstant:
		payload, typ, err := constSpec(spec)
		if err != nil {
			return nil, err
		}
		n.SetPayload(payload)
		return []core.Type{typ}, nil
	case core.KindAdd, core.KindSub, core.KindMul, core.KindDiv:
		if n.NumInputs() != 2 {
			return nil, fmt.Errorf("%s expects two inputs", spec.Kind)
		}
		return []core.Type{n.Input(0).Type()}, nil
	case core.KindIf:
		if n.NumInputs() != 1 {
			return nil, fmt.Errorf("if expects a condition input")
		}
		return nil, nil
	case core.KindLoop:
		return nil, nil
	default:
		return nil, fmt.Errorf("node kind %q not allowed here", spec.Kind)
	}
}

func constSpec(spec *nodeSpec) (any, core.Type, error) {
	switch {
	case spec.Int != nil:
		return *spec.Int, core.IntType, nil
	case spec.Float != nil:
		return *spec.Float, core.FloatType, nil
	case spec.Bool != nil:
		return *spec.Bool, core.BoolType, nil
	case spec.Str != nil:
		return *spec.Str, core.StringType, nil
	case spec.Tensor != nil:
		return tensorOf(spec.Tensor), core.TensorType, nil
	default:
		return nil, core.NoneType, nil
	}
}
