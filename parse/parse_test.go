// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"frost/core"
	"frost/ir"
)

const simpleYAML = `
type: frost.M
attributes:
  - {name: scale, int: 2}
  - {name: label, str: demo}
methods:
  - name: forward
    inputs: [{name: x, type: int}]
    nodes:
      - {kind: getattr, attr: scale, in: [self], out: [s]}
      - {kind: mul, in: [s, x], out: [y]}
    returns: [y]
`

func TestLoadSimple(t *testing.T) {
	m, err := Load([]byte(simpleYAML))
	assert.Nil(t, err)
	assert.Equal(t, "frost.M", m.Type().QualifiedName())

	v, ok := m.Attr("scale")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.Int())
	v, _ = m.Attr("label")
	assert.Equal(t, "demo", v.Str())

	meth, ok := m.Method("forward")
	assert.True(t, ok)
	g := meth.Graph()
	assert.Equal(t, 2, g.NumInputs())
	assert.Equal(t, core.Type(m.Type()), g.Input(0).Type())
	assert.Equal(t, core.IntType, g.Input(1).Type())

	ns := g.Block().Nodes()
	assert.Equal(t, 3, len(ns))
	assert.Equal(t, core.KindGetAttr, ns[0].Kind())
	assert.Equal(t, "scale", ns[0].Str(ir.AttrName))
	// getattr infers its output type from the class schema
	assert.Equal(t, core.IntType, ns[0].Output(0).Type())
	assert.Equal(t, core.KindReturn, ns[2].Kind())
	assert.Equal(t, "y", g.Outputs()[0].Name())
}

const nestedYAML = `
type: frost.M
attributes:
  - name: sub
    module:
      type: frost.S
      attributes: [{name: weight, tensor: {data: [1, 2], shape: [2], requires_grad: true}}]
      methods:
        - name: forward
          nodes:
            - {kind: getattr, attr: weight, in: [self], out: [w]}
          returns: [w]
methods:
  - name: forward
    nodes:
      - {kind: getattr, attr: sub, in: [self], out: [s]}
      - {kind: call, attr: forward, in: [s], out: [w], types: [Tensor]}
    returns: [w]
`

func TestLoadNested(t *testing.T) {
	m, err := Load([]byte(nestedYAML))
	assert.Nil(t, err)

	sub, ok := m.Attr("sub")
	assert.True(t, ok)
	assert.True(t, sub.IsModule())
	w, _ := sub.Module().Attr("weight")
	assert.True(t, w.IsTensor())
	assert.True(t, w.Tensor().RequiresGrad)

	meth, _ := m.Method("forward")
	ns := meth.Graph().Block().Nodes()
	// the getattr of a submodule is typed with its class type
	assert.Equal(t, core.Type(sub.Module().Type()), ns[0].Output(0).Type())
	assert.Equal(t, core.KindCallMethod, ns[1].Kind())
	assert.Equal(t, core.TensorType, ns[1].Output(0).Type())
}

const branchYAML = `
type: frost.M
attributes: [{name: count, int: 0}]
methods:
  - name: forward
    inputs: [{name: cond, type: bool}]
    nodes:
      - {kind: constant, int: 1, out: [one]}
      - kind: if
        in: [cond]
        blocks:
          - nodes:
              - {kind: setattr, attr: count, in: [self, one]}
    returns: []
`

func TestLoadNestedBlocks(t *testing.T) {
	m, err := Load([]byte(branchYAML))
	assert.Nil(t, err)

	meth, _ := m.Method("forward")
	ns := meth.Graph().Block().Nodes()
	assert.Equal(t, core.KindIf, ns[1].Kind())
	blocks := ns[1].Blocks()
	assert.Equal(t, 1, len(blocks))
	assert.Equal(t, core.KindSetAttr, blocks[0].Nodes()[0].Kind())
	// every block is terminated by a return
	assert.Equal(t, core.KindReturn, blocks[0].Nodes()[1].Kind())
}

func TestLoadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"bad kind", `{type: m, methods: [{name: f, nodes: [{kind: bogus}]}]}`},
		{"unknown attr", `{type: m, methods: [{name: f, nodes: [{kind: getattr, attr: x, in: [self], out: [v]}]}]}`},
		{"undefined value", `{type: m, methods: [{name: f, nodes: [{kind: add, in: [a, b], out: [v]}]}]}`},
		{"duplicate name", `{type: m, methods: [{name: f, inputs: [{name: x, type: int}], nodes: [{kind: constant, int: 1, out: [x]}]}]}`},
		{"call without types", `{type: m, methods: [{name: f, nodes: [{kind: call, attr: g, in: [self], out: [v]}]}]}`},
		{"attr without value", `{type: m, attributes: [{name: x}]}`},
		{"not yaml", `{`},
	} {
		_, err := Load([]byte(tc.in))
		assert.NotNil(t, err, tc.name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NotNil(t, err)
}

func TestRoundTrip(t *testing.T) {
	m, err := Load([]byte(nestedYAML))
	assert.Nil(t, err)

	data, err := Marshal(m)
	assert.Nil(t, err)

	again, err := Load(data)
	assert.Nil(t, err)
	assert.Equal(t, m.Type().QualifiedName(), again.Type().QualifiedName())
	assert.Equal(t, m.AttrNames(), again.AttrNames())

	mm, _ := m.Method("forward")
	am, _ := again.Method("forward")
	assert.Equal(t, mm.Graph().String(), am.Graph().String())
}

func TestRoundTripFile(t *testing.T) {
	m, err := Load([]byte(simpleYAML))
	assert.Nil(t, err)
	data, err := Marshal(m)
	assert.Nil(t, err)

	fn := filepath.Join(t.TempDir(), "m.yaml")
	assert.Nil(t, os.WriteFile(fn, data, 0644))

	again, err := LoadFile(fn)
	assert.Nil(t, err)
	v, _ := again.Attr("scale")
	assert.Equal(t, int64(2), v.Int())
}
