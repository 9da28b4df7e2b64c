// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ir defines the graph intermediate representation the freezing
// passes operate on: graphs of kind-tagged nodes grouped into blocks, with
// nested sub-blocks for control flow and explicit use lists on values.
package ir

import (
	"fmt"

	"frost/core"
	"frost/logger"
)

// Graph is a directed structure of nodes grouped into blocks. It has ordered
// input values (the first one conventionally being the self object of the
// method it implements) and a single top-level block.
type Graph struct {
	inputs []*Value
	block  *Block
	nvals  int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	g := &Graph{}
	g.block = &Block{graph: g}
	return g
}

// Block returns the top-level block of the graph.
func (g *Graph) Block() *Block { return g.block }

// Inputs returns the ordered graph inputs.
func (g *Graph) Inputs() []*Value {
	ins := make([]*Value, len(g.inputs))
	copy(ins, g.inputs)
	return ins
}

// Input returns the i-th graph input.
func (g *Graph) Input(i int) *Value { return g.inputs[i] }

// NumInputs returns the number of graph inputs.
func (g *Graph) NumInputs() int { return len(g.inputs) }

// AddInput appends a graph input of the given type. If name is empty an
// automatic name is assigned.
func (g *Graph) AddInput(name string, typ core.Type) *Value {
	v := g.newValue(nil, typ)
	if name != "" {
		v.name = name
	}
	g.inputs = append(g.inputs, v)
	return v
}

// NewNode creates a detached node of the given kind. The node must be
// placed with Block.Append or Block.InsertBefore.
func (g *Graph) NewNode(k core.Kind) *Node {
	return &Node{kind: k, graph: g}
}

// ReturnNode returns the Return node terminating the top-level block, or nil.
func (g *Graph) ReturnNode() *Node {
	ns := g.block.nodes
	for i := len(ns) - 1; i >= 0; i-- {
		if ns[i].kind == core.KindReturn {
			return ns[i]
		}
	}
	return nil
}

// Outputs returns the values the graph returns, or nil if it has no Return.
func (g *Graph) Outputs() []*Value {
	if ret := g.ReturnNode(); ret != nil {
		return ret.Inputs()
	}
	return nil
}

func (g *Graph) newValue(n *Node, typ core.Type) *Value {
	v := &Value{node: n, typ: typ, name: fmt.Sprintf("%d", g.nvals)}
	g.nvals++
	return v
}

// Block is an ordered sequence of nodes forming one control-flow region.
type Block struct {
	graph *Graph
	owner *Node
	nodes []*Node
}

// Owner returns the node owning this sub-block, or nil for the graph's
// top-level block.
func (b *Block) Owner() *Node { return b.owner }

// Nodes returns a snapshot of the block's nodes. Mutating the block while
// iterating the snapshot is safe.
func (b *Block) Nodes() []*Node {
	ns := make([]*Node, len(b.nodes))
	copy(ns, b.nodes)
	return ns
}

// NumNodes returns the number of nodes in the block.
func (b *Block) NumNodes() int { return len(b.nodes) }

// Append places n at the end of the block.
func (b *Block) Append(n *Node) {
	if n.block != nil {
		logger.Fatalf("node %v already placed", n.kind)
	}
	n.block = b
	b.nodes = append(b.nodes, n)
}

// InsertBefore places n immediately before mark, which must be in b.
func (b *Block) InsertBefore(n, mark *Node) {
	if n.block != nil {
		logger.Fatalf("node %v already placed", n.kind)
	}
	for i, cur := range b.nodes {
		if cur == mark {
			n.block = b
			b.nodes = append(b.nodes[:i], append([]*Node{n}, b.nodes[i:]...)...)
			return
		}
	}
	logger.Fatalf("insertion mark %v not found in block", mark.kind)
}

func (b *Block) remove(n *Node) {
	for i, cur := range b.nodes {
		if cur == n {
			b.nodes = append(b.nodes[:i], b.nodes[i+1:]...)
			n.block = nil
			return
		}
	}
}
