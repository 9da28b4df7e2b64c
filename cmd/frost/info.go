// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"frost/parse"
)

func init() {
	var infoCmd = cobra.Command{
		Use:   "info <input.yaml...>",
		Short: "Prints information about the modules in the input file(s).",
		Args:  IsArgsn,

		DisableFlagsInUseLine: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			for _, fn := range args {
				if err := Info(fn); err != nil {
					return err
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(&infoCmd)
}

// Info loads a module file and prints its summary.
func Info(fn string) error {
	m, err := parse.LoadFile(fn)
	if err != nil {
		return ferror(parseError, err)
	}
	m.PrintSummary()
	return nil
}
