// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"fmt"

	"frost/core"
	"frost/logger"
)

// ValueKind tags the payload held by a runtime attribute value.
type ValueKind int

const (
	// NoneKind holds nothing
	NoneKind ValueKind = iota
	// IntKind holds an integer scalar
	IntKind
	// FloatKind holds a floating point scalar
	FloatKind
	// BoolKind holds a boolean
	BoolKind
	// StringKind holds a string
	StringKind
	// TensorKind holds a tensor leaf
	TensorKind
	// ModuleKind holds a nested module object
	ModuleKind
)

// Value is a runtime attribute value: a scalar, a tensor leaf, or a nested
// module object.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
	t    *core.Tensor
	obj  *Object
}

// NoneValue returns the None value.
func NoneValue() Value { return Value{kind: NoneKind} }

// IntValue wraps an integer scalar.
func IntValue(v int64) Value { return Value{kind: IntKind, i: v} }

// FloatValue wraps a floating point scalar.
func FloatValue(v float64) Value { return Value{kind: FloatKind, f: v} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{kind: BoolKind, b: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: StringKind, s: v} }

// TensorValue wraps a tensor leaf.
func TensorValue(t *core.Tensor) Value { return Value{kind: TensorKind, t: t} }

// ModuleValue wraps a nested module object.
func ModuleValue(o *Object) Value { return Value{kind: ModuleKind, obj: o} }

// Kind returns the payload tag of the value.
func (v Value) Kind() ValueKind { return v.kind }

func (v Value) check(k ValueKind) {
	if v.kind != k {
		logger.Fatalf("value is %v, not %v", v.kind, k)
	}
}

// Int returns the integer payload.
func (v Value) Int() int64 { v.check(IntKind); return v.i }

// Float returns the floating point payload.
func (v Value) Float() float64 { v.check(FloatKind); return v.f }

// Bool returns the boolean payload.
func (v Value) Bool() bool { v.check(BoolKind); return v.b }

// Str returns the string payload.
func (v Value) Str() string { v.check(StringKind); return v.s }

// Tensor returns the tensor payload.
func (v Value) Tensor() *core.Tensor { v.check(TensorKind); return v.t }

// Module returns the nested module object payload.
func (v Value) Module() *Object { v.check(ModuleKind); return v.obj }

// IsTensor reports whether the value holds a tensor.
func (v Value) IsTensor() bool { return v.kind == TensorKind }

// IsModule reports whether the value holds a nested module object.
func (v Value) IsModule() bool { return v.kind == ModuleKind }

// Type returns the static type of the value.
func (v Value) Type() core.Type {
	switch v.kind {
	case IntKind:
		return core.IntType
	case FloatKind:
		return core.FloatType
	case BoolKind:
		return core.BoolType
	case StringKind:
		return core.StringType
	case TensorKind:
		return core.TensorType
	case ModuleKind:
		return v.obj.Type()
	default:
		return core.NoneType
	}
}

// Equal reports whether two values have the same kind and payload. Module
// payloads compare by identity, tensors by contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case IntKind:
		return v.i == o.i
	case FloatKind:
		return v.f == o.f
	case BoolKind:
		return v.b == o.b
	case StringKind:
		return v.s == o.s
	case TensorKind:
		return v.t.Equal(o.t)
	case ModuleKind:
		return v.obj == o.obj
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return fmt.Sprintf("%d", v.i)
	case FloatKind:
		return fmt.Sprintf("%g", v.f)
	case BoolKind:
		return fmt.Sprintf("%t", v.b)
	case StringKind:
		return fmt.Sprintf("%q", v.s)
	case TensorKind:
		return v.t.String()
	case ModuleKind:
		return fmt.Sprintf("<%s>", v.obj.Type())
	default:
		return "None"
	}
}

func (k ValueKind) String() string {
	switch k {
	case NoneKind:
		return "None"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case StringKind:
		return "str"
	case TensorKind:
		return "Tensor"
	case ModuleKind:
		return "Module"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}
