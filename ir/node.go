// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ir

import (
	"frost/core"
	"frost/logger"
)

// AttrName is the symbolic attribute holding the attribute name of
// GetAttr/SetAttr nodes and the method name of CallMethod nodes.
const AttrName = "name"

// Node is a single operation in a block. It has a kind tag, ordered input
// values, ordered output values, symbolic string attributes, an optional
// constant payload, and zero or more nested sub-blocks.
type Node struct {
	kind    core.Kind
	graph   *Graph
	block   *Block
	inputs  []*Value
	outputs []*Value
	blocks  []*Block
	strs    map[string]string
	payload any
}

// Kind returns the operation tag of the node.
func (n *Node) Kind() core.Kind { return n.kind }

// Graph returns the graph the node belongs to.
func (n *Node) Graph() *Graph { return n.graph }

// Block returns the block currently containing the node, or nil.
func (n *Node) Block() *Block { return n.block }

// AddInput appends v to the node's ordered inputs.
func (n *Node) AddInput(v *Value) {
	n.inputs = append(n.inputs, v)
	v.uses = append(v.uses, n)
}

// Input returns the i-th input value.
func (n *Node) Input(i int) *Value { return n.inputs[i] }

// Inputs returns the ordered input values.
func (n *Node) Inputs() []*Value {
	ins := make([]*Value, len(n.inputs))
	copy(ins, n.inputs)
	return ins
}

// NumInputs returns the number of inputs.
func (n *Node) NumInputs() int { return len(n.inputs) }

// AddOutput appends a new output value of the given type.
func (n *Node) AddOutput(typ core.Type) *Value {
	v := n.graph.newValue(n, typ)
	n.outputs = append(n.outputs, v)
	return v
}

// Output returns the i-th output value.
func (n *Node) Output(i int) *Value { return n.outputs[i] }

// Outputs returns the ordered output values.
func (n *Node) Outputs() []*Value {
	outs := make([]*Value, len(n.outputs))
	copy(outs, n.outputs)
	return outs
}

// NumOutputs returns the number of outputs.
func (n *Node) NumOutputs() int { return len(n.outputs) }

// SetStr sets a symbolic string attribute.
func (n *Node) SetStr(key, val string) {
	if n.strs == nil {
		n.strs = make(map[string]string)
	}
	n.strs[key] = val
}

// Str returns a symbolic string attribute, or "".
func (n *Node) Str(key string) string { return n.strs[key] }

// SetPayload attaches a constant payload to the node.
func (n *Node) SetPayload(v any) { n.payload = v }

// Payload returns the constant payload of the node, or nil.
func (n *Node) Payload() any { return n.payload }

// NewBlock appends a new nested sub-block to the node.
func (n *Node) NewBlock() *Block {
	b := &Block{graph: n.graph, owner: n}
	n.blocks = append(n.blocks, b)
	return b
}

// Blocks returns the nested sub-blocks of the node.
func (n *Node) Blocks() []*Block {
	bs := make([]*Block, len(n.blocks))
	copy(bs, n.blocks)
	return bs
}

// HasUses reports whether any output of the node is consumed.
func (n *Node) HasUses() bool {
	for _, out := range n.outputs {
		if out.HasUses() {
			return true
		}
	}
	return false
}

// RemoveAllInputs detaches the node from the values it consumes.
func (n *Node) RemoveAllInputs() {
	for _, in := range n.inputs {
		in.removeUse(n)
	}
	n.inputs = nil
}

// Destroy detaches the node from its inputs and unlinks it from its block.
// The node's outputs must no longer be used.
func (n *Node) Destroy() {
	if n.HasUses() {
		logger.Fatalf("cannot destroy node %v: outputs still in use", n.kind)
	}
	n.RemoveAllInputs()
	for _, b := range n.blocks {
		// in reverse so users die before their producers
		ns := b.Nodes()
		for i := len(ns) - 1; i >= 0; i-- {
			ns[i].Destroy()
		}
	}
	n.blocks = nil
	if n.block != nil {
		n.block.remove(n)
	}
}
