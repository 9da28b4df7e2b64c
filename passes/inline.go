// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package passes

import (
	"fmt"

	"frost/core"
	"frost/ir"
	"frost/logger"
	"frost/module"
)

// guards against mutually recursive methods, which cannot be flattened
const maxInlineRounds = 1000

// Inline replaces every method call reachable from g, nested blocks
// included, with the body of the called method. Afterwards the graph
// contains no CallMethod nodes. A call whose receiver or method cannot be
// resolved is an error: the freeze driver treats it as fatal.
func Inline(g *ir.Graph, root *module.Object) error {
	for round := 0; ; round++ {
		if round == maxInlineRounds {
			return fmt.Errorf("inlining did not converge after %d rounds (recursive method?)", maxInlineRounds)
		}
		calls := collectCalls(g)
		if len(calls) == 0 {
			return nil
		}
		for _, call := range calls {
			meth, err := resolveCallee(call, root)
			if err != nil {
				return err
			}
			logger.Debugf("inlining %s()", meth.Name())
			if err := ir.InlineCallTo(call, meth.Graph()); err != nil {
				return fmt.Errorf("cannot inline %s(): %v", meth.Name(), err)
			}
		}
	}
}

func collectCalls(g *ir.Graph) []*ir.Node {
	var calls []*ir.Node
	blocks := []*ir.Block{g.Block()}
	for len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
		for _, n := range b.Nodes() {
			blocks = append(blocks, n.Blocks()...)
			if n.Kind() == core.KindCallMethod {
				calls = append(calls, n)
			}
		}
	}
	return calls
}

func resolveCallee(call *ir.Node, root *module.Object) (*module.Method, error) {
	name := call.Str(ir.AttrName)
	obj, err := chaseObject(call.Input(0), root)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve receiver of %s(): %v", name, err)
	}
	m, ok := obj.Method(name)
	if !ok {
		return nil, fmt.Errorf("type %s has no method %q", obj.Type(), name)
	}
	return m, nil
}

// chaseObject resolves the module object produced by an attribute-read
// chain rooted at the graph's self object.
func chaseObject(v *ir.Value, root *module.Object) (*module.Object, error) {
	var names []string
	for v.Type() != root.Type() {
		n := v.Node()
		if n == nil || n.Kind() != core.KindGetAttr {
			return nil, fmt.Errorf("%%%s is not an attribute-read chain", v.Name())
		}
		names = append(names, n.Str(ir.AttrName))
		v = n.Input(0)
	}
	obj := root
	for i := len(names) - 1; i >= 0; i-- {
		a, ok := obj.Attr(names[i])
		if !ok || !a.IsModule() {
			return nil, fmt.Errorf("type %s has no submodule %q", obj.Type(), names[i])
		}
		obj = a.Module()
	}
	return obj, nil
}
