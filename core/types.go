// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

// Type is the static type of a graph value or module attribute.
// Module class types are defined in the module package; everything else is
// one of the simple types below. Types compare by identity: two values have
// the same type iff their Type values are equal.
type Type interface {
	String() string
}

type simpleType string

func (t simpleType) String() string { return string(t) }

var (
	// NoneType is the type of the None value
	NoneType Type = simpleType("None")
	// IntType is the type of integer scalars
	IntType Type = simpleType("int")
	// FloatType is the type of floating point scalars
	FloatType Type = simpleType("float")
	// BoolType is the type of booleans
	BoolType Type = simpleType("bool")
	// StringType is the type of strings
	StringType Type = simpleType("str")
	// TensorType is the type of tensor leaves
	TensorType Type = simpleType("Tensor")
)

// SimpleTypeByName maps a type name to the corresponding simple type.
func SimpleTypeByName(name string) (Type, bool) {
	switch name {
	case "None":
		return NoneType, true
	case "int":
		return IntType, true
	case "float":
		return FloatType, true
	case "bool":
		return BoolType, true
	case "str":
		return StringType, true
	case "Tensor":
		return TensorType, true
	default:
		return nil, false
	}
}
