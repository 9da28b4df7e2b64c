// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTensorClone(t *testing.T) {
	a := &Tensor{Data: []float64{1, 2, 3}, Shape: []int{3}, RequiresGrad: true}
	b := a.Clone()

	assert.True(t, a.Equal(b))
	b.Data[0] = 99
	assert.Equal(t, float64(1), a.Data[0])
	b.RequiresGrad = false
	assert.True(t, a.RequiresGrad)
}

func TestTensorEqual(t *testing.T) {
	a := &Tensor{Data: []float64{1, 2}, Shape: []int{2}}
	assert.True(t, a.Equal(&Tensor{Data: []float64{1, 2}, Shape: []int{2}}))
	assert.False(t, a.Equal(&Tensor{Data: []float64{1, 3}, Shape: []int{2}}))
	assert.False(t, a.Equal(&Tensor{Data: []float64{1, 2}, Shape: []int{1, 2}}))
	assert.False(t, a.Equal(&Tensor{Data: []float64{1, 2}, Shape: []int{2}, RequiresGrad: true}))
	assert.False(t, a.Equal(nil))

	var nilT *Tensor
	assert.True(t, nilT.Equal(nil))
}

func TestTensorString(t *testing.T) {
	a := &Tensor{Data: []float64{1, 2}, Shape: []int{1, 2}}
	assert.Equal(t, "Tensor[1 2]", a.String())
}
