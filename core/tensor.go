// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"fmt"

	"github.com/jinzhu/copier"

	"frost/logger"
)

// Tensor is an opaque leaf value. The freezing passes never inspect its
// elements; they only embed it as a constant and clear the gradient flag.
type Tensor struct {
	Data         []float64
	Shape        []int
	RequiresGrad bool
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	nt := new(Tensor)
	if err := copier.CopyWithOption(nt, t, copier.Option{DeepCopy: true}); err != nil {
		logger.Fatalf("cannot copy tensor: %v", err)
	}
	return nt
}

// Equal reports whether two tensors hold the same data, shape and flags.
func (t *Tensor) Equal(o *Tensor) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.RequiresGrad != o.RequiresGrad || len(t.Data) != len(o.Data) || len(t.Shape) != len(o.Shape) {
		return false
	}
	for i, d := range t.Data {
		if o.Data[i] != d {
			return false
		}
	}
	for i, s := range t.Shape {
		if o.Shape[i] != s {
			return false
		}
	}
	return true
}

func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v", t.Shape)
}
