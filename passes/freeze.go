// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package passes implements the graph transformations of module freezing:
// method inlining, attribute propagation and generic optimization, plus the
// Freeze driver tying them together.
package passes

import (
	"fmt"

	"frost/core"
	"frost/ir"
	"frost/logger"
	"frost/module"
)

// chaseResult classifies why an attribute chain could or could not be
// resolved. Every skip path is a named outcome so tests can assert on why a
// substitution did not happen.
type chaseResult int

const (
	chaseOK chaseResult = iota
	// chaseUnsupportedKind: the chain passes through a node that is not an
	// attribute read (arithmetic, control flow, decomposed aggregates)
	chaseUnsupportedKind
	// chaseUnresolved: the chain does not bottom out at the root object, or
	// a dereference step does not name a nested module
	chaseUnresolved
	// chaseMutableLink: an intermediate link of the chain is recorded
	// mutable, so everything below it may have been rebound
	chaseMutableLink
)

func (r chaseResult) String() string {
	switch r {
	case chaseOK:
		return "ok"
	case chaseUnsupportedKind:
		return "unsupported node kind in chain"
	case chaseUnresolved:
		return "chain unresolved"
	case chaseMutableLink:
		return "mutable intermediate link"
	default:
		return fmt.Sprintf("chaseResult(%d)", int(r))
	}
}

// attributePropagator carries the per-freeze mutability facts. A fresh one
// is created for every Freeze call; it is never shared.
type attributePropagator struct {
	// attribute names proven possibly-mutated, keyed by object identity
	mutableAttrs map[*module.Object]map[string]bool
}

func newAttributePropagator() *attributePropagator {
	return &attributePropagator{
		mutableAttrs: make(map[*module.Object]map[string]bool),
	}
}

func (p *attributePropagator) isMutable(o *module.Object, name string) bool {
	return p.mutableAttrs[o][name]
}

func (p *attributePropagator) markMutable(o *module.Object, name string) {
	set, ok := p.mutableAttrs[o]
	if !ok {
		set = make(map[string]bool)
		p.mutableAttrs[o] = set
	}
	set[name] = true
}

// findOwner chases the attribute-read chain producing obj back to the root
// object, then dereferences the collected names from the root down and
// returns the object owning the terminal attribute. The chase fails closed
// on anything that is not a GetAttr, and on intermediate links already
// recorded mutable (the link itself could have been rebound). Terminal
// mutability is the caller's concern, not part of resolution.
func (p *attributePropagator) findOwner(obj *ir.Value, root *module.Object) (*module.Object, chaseResult) {
	var names []string
	for obj.Type() != root.Type() {
		n := obj.Node()
		if n == nil {
			return nil, chaseUnresolved
		}
		if n.Kind() != core.KindGetAttr {
			return nil, chaseUnsupportedKind
		}
		names = append(names, n.Str(ir.AttrName))
		obj = n.Input(0)
	}
	owner := root
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if p.isMutable(owner, name) {
			return nil, chaseMutableLink
		}
		v, ok := owner.Attr(name)
		if !ok || !v.IsModule() {
			return nil, chaseUnresolved
		}
		owner = v.Module()
	}
	return owner, chaseOK
}

// recordMutableAttrs scans every block of the graph for attribute writes
// and records the (object, name) pairs they target. A write whose target
// chain cannot be resolved is skipped: reads through the same chain fail
// closed as well, so nothing gets folded behind it. This pass never mutates
// the graph.
func (p *attributePropagator) recordMutableAttrs(g *ir.Graph, root *module.Object) {
	blocks := []*ir.Block{g.Block()}
	for len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
		for _, n := range b.Nodes() {
			blocks = append(blocks, n.Blocks()...)
			if n.Kind() != core.KindSetAttr {
				continue
			}
			name := n.Str(ir.AttrName)
			owner, res := p.findOwner(n.Input(0), root)
			if res != chaseOK {
				logger.Debugf("write to %q skipped: %v", name, res)
				continue
			}
			p.markMutable(owner, name)
		}
	}
}

// propagateAttributes replaces every attribute read whose resolved
// (object, name) pair is provably immutable with an embedded constant.
// recordMutableAttrs must have completed over the whole graph before this
// runs; partial analysis would be unsound. Per-node failures are local
// no-ops: the read is simply left in place.
func (p *attributePropagator) propagateAttributes(g *ir.Graph, root *module.Object) {
	blocks := []*ir.Block{g.Block()}
	for len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
		var pending []*ir.Node
		for _, n := range b.Nodes() {
			blocks = append(blocks, n.Blocks()...)
			if n.Kind() != core.KindGetAttr {
				continue
			}
			name := n.Str(ir.AttrName)
			owner, res := p.findOwner(n.Input(0), root)
			if res != chaseOK {
				logger.Debugf("read of %q not folded: %v", name, res)
				continue
			}
			if p.isMutable(owner, name) {
				logger.Debugf("read of %s.%s not folded: attribute is mutable", owner.Type().Name(), name)
				continue
			}
			attr, ok := owner.Attr(name)
			if !ok {
				logger.Debugf("read of %s.%s not folded: attribute missing", owner.Type().Name(), name)
				continue
			}
			if attr.IsTensor() {
				// frozen graphs must not track gradients through constants
				attr.Tensor().RequiresGrad = false
			}
			c, ok := tryInsertConstant(n, attr)
			if !ok {
				logger.Debugf("read of %s.%s not folded: value has no constant representation",
					owner.Type().Name(), name)
				continue
			}
			c.Output(0).SetName(owner.Type().QualifiedName() + "." + name)
			n.Output(0).ReplaceAllUsesWith(c.Output(0))
			pending = append(pending, n)
		}
		// apply removals only after the scan of this block
		for _, n := range pending {
			n.Destroy()
		}
	}
}

// tryInsertConstant materializes v as a Constant node placed right before
// n. Module objects have no constant representation.
func tryInsertConstant(n *ir.Node, v module.Value) (*ir.Node, bool) {
	var payload any
	switch v.Kind() {
	case module.NoneKind:
		payload = nil
	case module.IntKind:
		payload = v.Int()
	case module.FloatKind:
		payload = v.Float()
	case module.BoolKind:
		payload = v.Bool()
	case module.StringKind:
		payload = v.Str()
	case module.TensorKind:
		payload = v.Tensor()
	default:
		return nil, false
	}
	c := n.Graph().NewNode(core.KindConstant)
	c.SetPayload(payload)
	c.AddOutput(v.Type())
	n.Block().InsertBefore(c, n)
	return c, true
}

// referencedAttrs returns the attribute names of obj still read by some
// surviving attribute-read node anywhere in the graph. Names obj no longer
// has are ignored; reads left over from unresolvable chains may carry stale
// names.
func referencedAttrs(g *ir.Graph, obj *module.Object) map[string]bool {
	keep := make(map[string]bool)
	blocks := []*ir.Block{g.Block()}
	for len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
		for _, n := range b.Nodes() {
			blocks = append(blocks, n.Blocks()...)
			if n.Kind() != core.KindGetAttr {
				continue
			}
			if name := n.Str(ir.AttrName); obj.HasAttr(name) {
				keep[name] = true
			}
		}
	}
	return keep
}

// cleanup removes every attribute of the root object that no surviving read
// references, from both the instance table and the class schema. Only the
// root object is pruned; see the Freeze doc comment for the deferred parts.
func cleanup(g *ir.Graph, obj *module.Object) {
	keep := referencedAttrs(g, obj)
	typ := obj.Type()
	var remove []string
	for i := 0; i < typ.NumAttributes(); i++ {
		if name := typ.AttributeName(i); !keep[name] {
			remove = append(remove, name)
		}
	}
	for _, name := range remove {
		logger.Debugf("pruning attribute %s.%s", typ.Name(), name)
		obj.UnsafeRemoveAttr(name)
		typ.UnsafeRemoveAttribute(name)
	}
}

// Freeze returns a frozen deep copy of m: the entry method is inlined into
// one body, every attribute read that provably cannot observe a mutation is
// replaced by an embedded constant, the graph is optimized, and attributes
// of the root object that no surviving read references are removed from the
// clone's attribute table and class schema.
//
// The original module is never touched; on any error the clone is
// discarded. Pruning unreferenced attributes of submodules and removing
// non-public methods of the frozen clone are not implemented yet.
func Freeze(m *module.Object, method string) (*module.Object, error) {
	clone := m.Clone()
	meth, ok := clone.Method(method)
	if !ok {
		return nil, fmt.Errorf("module %s has no method %q", clone.Type(), method)
	}
	g := meth.Graph()
	if err := Inline(g, clone); err != nil {
		return nil, err
	}
	p := newAttributePropagator()
	// the analysis must complete over the entire graph before any rewrite
	p.recordMutableAttrs(g, clone)
	p.propagateAttributes(g, clone)
	if err := Optimize(g); err != nil {
		return nil, err
	}
	cleanup(g, clone)
	logger.Debugf("%s::%s() after freezing:\n%s", clone.Type().Name(), method, g)
	return clone, nil
}
