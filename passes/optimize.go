// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package passes

import (
	"frost/core"
	"frost/ir"
	"frost/logger"
)

// Optimize runs semantics-preserving generic optimizations on the graph:
// constant folding of scalar arithmetic over embedded constants, then dead
// code elimination, repeated until a fixpoint. The freezing passes do not
// depend on which optimizations run here, only on semantics being
// preserved.
func Optimize(g *ir.Graph) error {
	for changed := true; changed; {
		changed = false
		if foldConstants(g) {
			changed = true
		}
		if eliminateDeadCode(g) {
			changed = true
		}
	}
	return nil
}

func foldConstants(g *ir.Graph) bool {
	changed := false
	blocks := []*ir.Block{g.Block()}
	for len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
		var pending []*ir.Node
		for _, n := range b.Nodes() {
			blocks = append(blocks, n.Blocks()...)
			if !n.Kind().Arithmetic() || n.NumInputs() != 2 || n.NumOutputs() != 1 {
				continue
			}
			a, aok := constPayload(n.Input(0))
			v, vok := constPayload(n.Input(1))
			if !aok || !vok {
				continue
			}
			folded, ok := foldScalar(n.Kind(), a, v)
			if !ok {
				continue
			}
			logger.Debugf("folding %v(%v, %v) = %v", n.Kind(), a, v, folded)
			c := g.NewNode(core.KindConstant)
			c.SetPayload(folded)
			c.AddOutput(n.Output(0).Type())
			b.InsertBefore(c, n)
			n.Output(0).ReplaceAllUsesWith(c.Output(0))
			pending = append(pending, n)
			changed = true
		}
		for _, n := range pending {
			n.Destroy()
		}
	}
	return changed
}

func constPayload(v *ir.Value) (any, bool) {
	n := v.Node()
	if n == nil || n.Kind() != core.KindConstant {
		return nil, false
	}
	return n.Payload(), true
}

func foldScalar(k core.Kind, a, b any) (any, bool) {
	switch x := a.(type) {
	case int64:
		y, ok := b.(int64)
		if !ok {
			return nil, false
		}
		switch k {
		case core.KindAdd:
			return x + y, true
		case core.KindSub:
			return x - y, true
		case core.KindMul:
			return x * y, true
		case core.KindDiv:
			if y == 0 {
				return nil, false
			}
			return x / y, true
		}
	case float64:
		y, ok := b.(float64)
		if !ok {
			return nil, false
		}
		switch k {
		case core.KindAdd:
			return x + y, true
		case core.KindSub:
			return x - y, true
		case core.KindMul:
			return x * y, true
		case core.KindDiv:
			if y == 0 {
				return nil, false
			}
			return x / y, true
		}
	}
	return nil, false
}

func eliminateDeadCode(g *ir.Graph) bool {
	return dceBlock(g.Block())
}

// dceBlock removes the nodes of b (and, recursively, of nested blocks)
// whose outputs are unused and whose execution has no observable effect.
// Nodes are visited in reverse so users die before their producers.
func dceBlock(b *ir.Block) bool {
	changed := false
	ns := b.Nodes()
	for i := len(ns) - 1; i >= 0; i-- {
		n := ns[i]
		for _, sb := range n.Blocks() {
			if dceBlock(sb) {
				changed = true
			}
		}
		if n.HasUses() || hasSideEffects(n) {
			continue
		}
		logger.Debugf("removing dead %v node", n.Kind())
		n.Destroy()
		changed = true
	}
	return changed
}

func hasSideEffects(n *ir.Node) bool {
	if n.Kind().HasSideEffects() {
		return true
	}
	for _, b := range n.Blocks() {
		for _, bn := range b.Nodes() {
			if bn.Kind() != core.KindReturn && hasSideEffects(bn) {
				return true
			}
		}
	}
	return false
}
