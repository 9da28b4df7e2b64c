// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"fmt"
	"os"

	"frost/logger"
)

const fileMode = 0600

// FileExists returns nil if a file exists otherwise an error
func FileExists(fn string) error {
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fn)
	}
	return nil
}

// Remove deletes a file.
func Remove(fn string) error {
	logger.Debugf("Remove file '%s'", fn)
	return os.Remove(fn)
}

// Dump writes data to a file, replacing any previous content.
func Dump(data []byte, fn string) error {
	logger.Debugf("Dump file '%s'", fn)
	return os.WriteFile(fn, data, fileMode)
}
