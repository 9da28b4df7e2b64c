// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind

// Kind represents the operation performed by a graph node.
type Kind int

const (
	// KindInvalid does not represent any operation
	KindInvalid Kind = iota
	// KindGetAttr reads a named attribute of a module object
	KindGetAttr
	// KindSetAttr writes a named attribute of a module object
	KindSetAttr
	// KindConstant produces an embedded constant value
	KindConstant
	// KindCallMethod calls a method of a module object
	KindCallMethod
	// KindIf selects between two sub-blocks on a condition
	KindIf
	// KindLoop repeats its sub-block
	KindLoop
	// KindReturn terminates a block and yields its results
	KindReturn
	// KindAdd adds two values
	KindAdd
	// KindSub subtracts two values
	KindSub
	// KindMul multiplies two values
	KindMul
	// KindDiv divides two values
	KindDiv
)

// HasSideEffects reports whether a node of this kind has an observable
// effect beyond its outputs and must not be removed even when unused.
// Control-flow kinds are handled separately since their effects live in
// sub-blocks.
func (k Kind) HasSideEffects() bool {
	switch k {
	case KindSetAttr, KindCallMethod, KindReturn:
		return true
	default:
		return false
	}
}

// Arithmetic reports whether the kind is a scalar arithmetic operation.
func (k Kind) Arithmetic() bool {
	switch k {
	case KindAdd, KindSub, KindMul, KindDiv:
		return true
	default:
		return false
	}
}
