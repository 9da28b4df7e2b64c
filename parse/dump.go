// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package parse

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"frost/core"
	"frost/ir"
	"frost/module"
)

// Marshal renders a module tree back into the YAML module format, so a
// frozen module can be stored and reloaded.
func Marshal(obj *module.Object) ([]byte, error) {
	spec, err := specOf(obj)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(spec)
}

func specOf(obj *module.Object) (*moduleSpec, error) {
	spec := &moduleSpec{Type: obj.Type().QualifiedName()}
	for _, name := range obj.AttrNames() {
		v, ok := obj.Attr(name)
		if !ok {
			continue
		}
		a, err := attrSpecOf(name, v)
		if err != nil {
			return nil, err
		}
		spec.Attributes = append(spec.Attributes, *a)
	}
	for _, m := range obj.Methods() {
		ms, err := methodSpecOf(m)
		if err != nil {
			return nil, fmt.Errorf("method %s.%s: %v", obj.Type().Name(), m.Name(), err)
		}
		spec.Methods = append(spec.Methods, *ms)
	}
	return spec, nil
}

func attrSpecOf(name string, v module.Value) (*attrSpec, error) {
	a := &attrSpec{Name: name}
	switch v.Kind() {
	case module.NoneKind:
		a.None = true
	case module.IntKind:
		i := v.Int()
		a.Int = &i
	case module.FloatKind:
		f := v.Float()
		a.Float = &f
	case module.BoolKind:
		b := v.Bool()
		a.Bool = &b
	case module.StringKind:
		s := v.Str()
		a.Str = &s
	case module.TensorKind:
		a.Tensor = tensorSpecOf(v.Tensor())
	case module.ModuleKind:
		sub, err := specOf(v.Module())
		if err != nil {
			return nil, err
		}
		a.Module = sub
	default:
		return nil, fmt.Errorf("attribute %q: unsupported value kind %v", name, v.Kind())
	}
	return a, nil
}

func tensorSpecOf(t *core.Tensor) *tensorSpec {
	return &tensorSpec{
		Data:         t.Data,
		Shape:        t.Shape,
		RequiresGrad: t.RequiresGrad,
	}
}

// namer hands out value names unique within one method body.
type namer struct {
	names map[*ir.Value]string
	used  map[string]bool
}

func newNamer() *namer {
	return &namer{
		names: make(map[*ir.Value]string),
		used:  make(map[string]bool),
	}
}

func (nm *namer) assign(v *ir.Value) string {
	base := v.Name()
	if base == "" {
		base = "v"
	}
	cand := base
	for i := 2; nm.used[cand]; i++ {
		cand = fmt.Sprintf("%s_%d", base, i)
	}
	nm.used[cand] = true
	nm.names[v] = cand
	return cand
}

func (nm *namer) of(v *ir.Value) (string, error) {
	name, ok := nm.names[v]
	if !ok {
		return "", fmt.Errorf("value %%%s used before definition", v.Name())
	}
	return name, nil
}

func methodSpecOf(m *module.Method) (*methodSpec, error) {
	g := m.Graph()
	spec := &methodSpec{Name: m.Name()}
	nm := newNamer()
	for i, in := range g.Inputs() {
		name := nm.assign(in)
		if i == 0 {
			continue
		}
		spec.Inputs = append(spec.Inputs, inputSpec{Name: name, Type: in.Type().String()})
	}
	body, err := blockSpecOf(g.Block(), nm)
	if err != nil {
		return nil, err
	}
	spec.Nodes = body.Nodes
	spec.Return = body.Return
	return spec, nil
}

func blockSpecOf(b *ir.Block, nm *namer) (*blockSpec, error) {
	spec := &blockSpec{}
	for _, n := range b.Nodes() {
		if n.Kind() == core.KindReturn {
			for _, in := range n.Inputs() {
				name, err := nm.of(in)
				if err != nil {
					return nil, err
				}
				spec.Return = append(spec.Return, name)
			}
			continue
		}
		ns, err := nodeSpecOf(n, nm)
		if err != nil {
			return nil, err
		}
		spec.Nodes = append(spec.Nodes, *ns)
	}
	return spec, nil
}

func nodeSpecOf(n *ir.Node, nm *namer) (*nodeSpec, error) {
	kind, ok := nameByKind[n.Kind()]
	if !ok {
		return nil, fmt.Errorf("node kind %v cannot be serialized", n.Kind())
	}
	spec := &nodeSpec{Kind: kind, Attr: n.Str(ir.AttrName)}
	for _, in := range n.Inputs() {
		name, err := nm.of(in)
		if err != nil {
			return nil, err
		}
		spec.In = append(spec.In, name)
	}
	for _, out := range n.Outputs() {
		spec.Out = append(spec.Out, nm.assign(out))
	}
	// constants and arithmetic re-infer their output types on load,
	// everything else declares them
	switch n.Kind() {
	case core.KindConstant:
		if err := payloadSpec(n.Payload(), spec); err != nil {
			return nil, err
		}
	case core.KindAdd, core.KindSub, core.KindMul, core.KindDiv:
	default:
		for _, out := range n.Outputs() {
			spec.Types = append(spec.Types, out.Type().String())
		}
	}
	for _, sb := range n.Blocks() {
		bs, err := blockSpecOf(sb, nm)
		if err != nil {
			return nil, err
		}
		spec.Blocks = append(spec.Blocks, *bs)
	}
	return spec, nil
}

func payloadSpec(p any, spec *nodeSpec) error {
	switch v := p.(type) {
	case nil:
	case int64:
		spec.Int = &v
	case float64:
		spec.Float = &v
	case bool:
		spec.Bool = &v
	case string:
		spec.Str = &v
	case *core.Tensor:
		spec.Tensor = tensorSpecOf(v)
	default:
		return fmt.Errorf("constant payload %T cannot be serialized", p)
	}
	return nil
}
