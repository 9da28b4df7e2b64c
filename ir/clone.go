// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"

	"frost/core"
	"frost/logger"
)

// TypeRemap rewrites value types while cloning a graph. It is used when a
// module tree is cloned and graph values must reference the cloned class
// types instead of the original ones.
type TypeRemap func(core.Type) core.Type

// Clone returns a deep copy of the graph. remap may be nil.
func (g *Graph) Clone(remap TypeRemap) *Graph {
	if remap == nil {
		remap = func(t core.Type) core.Type { return t }
	}
	ng := NewGraph()
	vmap := make(map[*Value]*Value)
	for _, in := range g.inputs {
		vmap[in] = ng.AddInput(in.name, remap(in.typ))
	}
	cloneBlockInto(g.block, ng.block, vmap, remap)
	return ng
}

func cloneBlockInto(src, dst *Block, vmap map[*Value]*Value, remap TypeRemap) {
	for _, n := range src.nodes {
		cloneNodeInto(n, dst, nil, vmap, remap)
	}
}

func cloneNodeInto(n *Node, dst *Block, before *Node, vmap map[*Value]*Value, remap TypeRemap) *Node {
	if remap == nil {
		remap = func(t core.Type) core.Type { return t }
	}
	nn := dst.graph.NewNode(n.kind)
	for k, v := range n.strs {
		nn.SetStr(k, v)
	}
	if t, ok := n.payload.(*core.Tensor); ok {
		nn.payload = t.Clone()
	} else {
		nn.payload = n.payload
	}
	for _, in := range n.inputs {
		m, ok := vmap[in]
		if !ok {
			logger.Fatalf("clone: input %%%s not mapped", in.name)
		}
		nn.AddInput(m)
	}
	for _, out := range n.outputs {
		no := nn.AddOutput(remap(out.typ))
		no.name = out.name
		vmap[out] = no
	}
	if before != nil {
		dst.InsertBefore(nn, before)
	} else {
		dst.Append(nn)
	}
	for _, b := range n.blocks {
		nb := nn.NewBlock()
		cloneBlockInto(b, nb, vmap, remap)
	}
	return nn
}

// InlineCallTo splices the body of callee in place of the call node: callee
// graph inputs are bound to the call's inputs, the body is copied right
// before the call, the callee's returned values replace the call's outputs,
// and the call node is destroyed.
func InlineCallTo(call *Node, callee *Graph) error {
	if callee.NumInputs() != call.NumInputs() {
		return fmt.Errorf("call has %d inputs, callee expects %d",
			call.NumInputs(), callee.NumInputs())
	}
	vmap := make(map[*Value]*Value)
	for i, in := range callee.inputs {
		vmap[in] = call.inputs[i]
	}

	// snapshot: when a method is spliced into its own body, inserting the
	// cloned nodes mutates the very list being walked
	var results []*Value
	for _, n := range callee.block.Nodes() {
		if n.kind == core.KindReturn {
			for _, in := range n.inputs {
				r, ok := vmap[in]
				if !ok {
					return fmt.Errorf("callee returns unmapped value %%%s", in.name)
				}
				results = append(results, r)
			}
			break
		}
		cloneNodeInto(n, call.block, call, vmap, nil)
	}
	if len(results) != call.NumOutputs() {
		return fmt.Errorf("callee returns %d values, call produces %d",
			len(results), call.NumOutputs())
	}
	for i, out := range call.outputs {
		out.ReplaceAllUsesWith(results[i])
	}
	call.Destroy()
	return nil
}
