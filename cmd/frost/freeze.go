// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"frost/logger"
	"frost/parse"
	"frost/passes"
	"frost/tools"
)

var freezeCmd = cobra.Command{
	Use:   "freeze [flags] <input.yaml...>",
	Short: "Freezes the modules in the input file(s)",
	Args:  IsArgsn,
	RunE:  freezeRun,

	DisableFlagsInUseLine: true,
}

var freezeFlags = struct {
	outputFn string
	print    bool
}{}

func addFreezeFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&freezeFlags.outputFn, "output", "o", "", "output YAML file (single input only)")
	flags.BoolVar(&freezeFlags.print, "print", false, "print the frozen graph")
}

func initFreeze() {
	rootCmd.AddCommand(&freezeCmd)
	addFreezeFlags(freezeCmd.PersistentFlags())
}

func freezeRun(_ *cobra.Command, args []string) error {
	if freezeFlags.outputFn != "" && len(args) > 1 {
		return ferror(internalError, fmt.Errorf("--output cannot be combined with multiple inputs"))
	}
	g := new(errgroup.Group)
	for _, fn := range args {
		fn := fn
		g.Go(func() error {
			return freezeFile(fn)
		})
	}
	return g.Wait()
}

func freezeFile(fn string) error {
	if err := tools.FileExists(fn); err != nil {
		return ferror(parseError, err)
	}
	m, err := parse.LoadFile(fn)
	if err != nil {
		return ferror(parseError, err)
	}

	logger.Infof("Freeze '%s'", fn)
	frozen, err := passes.Freeze(m, rootFlags.method)
	if err != nil {
		return ferror(freezeError, err)
	}

	if freezeFlags.print {
		meth, _ := frozen.Method(rootFlags.method)
		logger.Printf("%s::%s() after freezing:\n%s",
			frozen.Type().Name(), rootFlags.method, meth.Graph())
	}

	data, err := parse.Marshal(frozen)
	if err != nil {
		return ferror(internalError, err)
	}
	out := freezeFlags.outputFn
	if out == "" {
		out = outputName(fn)
	}
	if err := tools.Dump(data, out); err != nil {
		return ferror(internalError, err)
	}
	logger.Infof("Wrote '%s'", out)
	return nil
}
