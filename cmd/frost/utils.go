// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
)

// IsArgsn ensures there are 1 or more arguments
func IsArgsn(_ *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("no input file specified")
	}
	return nil
}

var reIsYAML = regexp.MustCompile(`(.*)\.(yaml|yml)$`)

func base(fn string) string {
	return reIsYAML.ReplaceAllString(fn, "${1}")
}

// outputName derives the default output filename for a frozen module.
func outputName(fn string) string {
	return fmt.Sprintf("%s.frozen.yaml", base(fn))
}
