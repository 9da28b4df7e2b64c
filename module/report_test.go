// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"frost/logger"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)

	newTree().PrintSummary()
	out := buf.String()
	assert.Contains(t, out, "frost.M")
	assert.Contains(t, out, "frost.S")
	assert.Contains(t, out, "weight")
	assert.Contains(t, out, "forward")
	assert.Contains(t, out, "1 GetAttr")
}
