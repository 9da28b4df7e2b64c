// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ir

import (
	"fmt"
	"sort"
	"strings"

	"frost/core"
)

// String renders the graph in a human-readable textual form, for example:
//
//	graph(%self : frost.M, %x : Tensor):
//	  %1 : Tensor = GetAttr[name="weight"](%self)
//	  %2 : Tensor = Mul(%1, %x)
//	  return (%2)
func (g *Graph) String() string {
	var sb strings.Builder
	var ins []string
	for _, in := range g.inputs {
		ins = append(ins, fmt.Sprintf("%%%s : %s", in.name, in.typ))
	}
	fmt.Fprintf(&sb, "graph(%s):\n", strings.Join(ins, ", "))
	printBlock(&sb, g.block, 1)
	return sb.String()
}

func printBlock(sb *strings.Builder, b *Block, depth int) {
	for _, n := range b.nodes {
		printNode(sb, n, depth)
	}
}

func printNode(sb *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.kind == core.KindReturn {
		fmt.Fprintf(sb, "%sreturn (%s)\n", indent, valueList(n.inputs))
		return
	}
	sb.WriteString(indent)
	if len(n.outputs) > 0 {
		var outs []string
		for _, out := range n.outputs {
			outs = append(outs, fmt.Sprintf("%%%s : %s", out.name, out.typ))
		}
		fmt.Fprintf(sb, "%s = ", strings.Join(outs, ", "))
	}
	sb.WriteString(opName(n.kind))
	if len(n.strs) > 0 || n.payload != nil {
		var attrs []string
		keys := make([]string, 0, len(n.strs))
		for k := range n.strs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			attrs = append(attrs, fmt.Sprintf("%s=%q", k, n.strs[k]))
		}
		if n.payload != nil {
			attrs = append(attrs, fmt.Sprintf("value=%v", n.payload))
		}
		fmt.Fprintf(sb, "[%s]", strings.Join(attrs, ", "))
	}
	fmt.Fprintf(sb, "(%s)\n", valueList(n.inputs))
	for i, b := range n.blocks {
		fmt.Fprintf(sb, "%s  block%d:\n", indent, i)
		printBlock(sb, b, depth+2)
	}
}

func valueList(vs []*Value) string {
	var names []string
	for _, v := range vs {
		names = append(names, "%"+v.name)
	}
	return strings.Join(names, ", ")
}

func opName(k core.Kind) string {
	return strings.TrimPrefix(k.String(), "Kind")
}
