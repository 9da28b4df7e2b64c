// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package ir

import (
	"frost/core"
)

// Value is produced by exactly one node (or is a graph input) and consumed
// by zero or more nodes. Values carry a static type and a debug name.
type Value struct {
	node *Node
	typ  core.Type
	name string
	uses []*Node
}

// Node returns the producing node, or nil for graph inputs.
func (v *Value) Node() *Node { return v.node }

// Type returns the static type of the value.
func (v *Value) Type() core.Type { return v.typ }

// Name returns the debug name of the value.
func (v *Value) Name() string { return v.name }

// SetName overrides the debug name of the value.
func (v *Value) SetName(name string) { v.name = name }

// Uses returns the nodes consuming this value, once per consuming input slot.
func (v *Value) Uses() []*Node {
	uses := make([]*Node, len(v.uses))
	copy(uses, v.uses)
	return uses
}

// HasUses reports whether any node consumes this value.
func (v *Value) HasUses() bool { return len(v.uses) > 0 }

// ReplaceAllUsesWith redirects every consumer of v to nv.
func (v *Value) ReplaceAllUsesWith(nv *Value) {
	if v == nv {
		return
	}
	for _, user := range v.uses {
		for i, in := range user.inputs {
			if in == v {
				user.inputs[i] = nv
				nv.uses = append(nv.uses, user)
			}
		}
	}
	v.uses = nil
}

func (v *Value) removeUse(n *Node) {
	for i, u := range v.uses {
		if u == n {
			v.uses = append(v.uses[:i], v.uses[i+1:]...)
			return
		}
	}
}
