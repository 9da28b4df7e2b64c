// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the main frost program of this project.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"frost/logger"
	"frost/tools"
)

var rootCmd = cobra.Command{
	Use:           "frost",
	Short:         "",
	Long:          "",
	SilenceUsage:  true,
	SilenceErrors: true,

	TraverseChildren: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("run 'frost -h' for help")
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch rootFlags.log {
		case "INFO":
			logger.SetLevel(logger.INFO)
		case "WARN":
			logger.SetLevel(logger.WARN)
		default:
			logger.SetLevel(logger.ERROR)
		}
		if rootFlags.debug {
			logger.SetLevel(logger.DEBUG)
		}
		if rootFlags.quiet {
			logger.SetOutput(nil)
		}
	},
}

func init() {
	tools.RegEnv("FROST_DEFAULT_METHOD", "forward", "Default entry method for freezing")

	helpMessage :=
		`frost -- Freezing of module graphs: fold read-only attributes into constants`

	helpMessage += "\n\nEnvironment Variables:"
	for _, ev := range tools.GetEnvvars() {
		helpMessage += "\n  " + ev.Name + " " +
			"(default: \"" + ev.Defv + "\")\n\t" + ev.Desc
	}
	rootCmd.Long = helpMessage

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.log, "log", "ERROR", "log level (ERROR|INFO|WARN)")
	flags.StringVarP(&rootFlags.method, "method", "m", tools.GetEnv("FROST_DEFAULT_METHOD"), "entry method of the modules")
	flags.BoolVarP(&rootFlags.debug, "debug", "d", false, "set debug mode")
	flags.BoolVarP(&rootFlags.quiet, "quiet", "q", false, "do not produce output")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	initFreeze()
}

var rootFlags struct {
	log    string
	debug  bool
	quiet  bool
	method string
}

type errCode struct {
	err  error
	code int
}

func handlePanic() {
	e := recover()
	if e == nil {
		return
	}
	exit, ok := e.(errCode)
	if !ok {
		panic(e)
	}
	if exit.err != nil {
		logger.Printf("panic: %v\n", exit.err)
	}
}

func main() {
	if !rootFlags.debug {
		defer handlePanic()
	}
	if err := rootCmd.Execute(); err != nil {
		var (
			code = getErrorCode(err)
			msg  = getErrorMessage(err)
		)
		if msg != "" {
			logger.Println(msg)
		}
		os.Exit(code)
	}
}
