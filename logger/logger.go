// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package logger implements a simple logger with a few error levels.
package logger

import (
	"fmt"
	"io"
	"os"
)

// Level represents the amount of detail in which the log is output.
type Level int

const (
	// ERROR only log errors
	ERROR Level = iota
	// WARN only log warnings and errors
	WARN
	// INFO log information, warnings and errors
	INFO
	// DEBUG log as much as possible
	DEBUG
)

var (
	out   io.Writer = os.Stdout
	level Level
)

// SetOutput sets the writer to which the output is sent.
// If w is nil, no output is shown.
func SetOutput(w io.Writer) {
	out = w
}

// SetLevel reconfigures the error level of the logger.
func SetLevel(l Level) {
	level = l
}

// Fatal works as Error, but aborts the program.
func Fatal(args ...any) {
	Println(args...)
	os.Exit(1)
}

// Fatalf works as Errorf, but aborts the program.
func Fatalf(format string, args ...any) {
	Printf(format, args...)
	Println()
	os.Exit(1)
}

// Error works as fmt.Print, but it adds a newline at the end of the format string.
func Error(args ...any) {
	if out == nil {
		return
	}
	Println(args...)
}

// Errorf works as fmt.Printf, but it adds a newline at the end of the format string.
func Errorf(format string, args ...any) {
	if out == nil {
		return
	}
	Printf(format, args...)
	Println()
}

// Warn works as fmt.Print when error level is WARN. It adds a newline at the end of the format string.
func Warn(args ...any) {
	if out == nil || level < WARN {
		return
	}
	Println(args...)
}

// Warnf works as fmt.Printf when error level is WARN. It adds a newline at the end of the format string.
func Warnf(format string, args ...any) {
	if out == nil || level < WARN {
		return
	}
	Printf(format, args...)
	Println()
}

// Info works as fmt.Print when error level is INFO. It adds a newline at the end of the format string.
func Info(args ...any) {
	if out == nil || level < INFO {
		return
	}
	Println(args...)
}

// Infof works as fmt.Printf when error level is INFO. It adds a newline at the end of the format string.
func Infof(format string, args ...any) {
	if out == nil || level < INFO {
		return
	}
	Printf(format, args...)
	Println()
}

// Debug works as fmt.Print when error level is DEBUG. It adds a newline at the end of the format string.
func Debug(args ...any) {
	if out == nil || level < DEBUG {
		return
	}
	Println(args...)
}

// Debugf works as fmt.Printf when error level is DEBUG. It adds a newline at the end of the format string.
func Debugf(format string, args ...any) {
	if out == nil || level < DEBUG {
		return
	}
	Printf(format, args...)
	Println()
}

// Print works as fmt.Print on the configured writer.
func Print(args ...any) {
	if out == nil {
		return
	}
	fmt.Fprint(out, args...)
}

// Println works as fmt.Println on the configured writer.
func Println(args ...any) {
	if out == nil {
		return
	}
	fmt.Fprintln(out, args...)
}

// Printf works as fmt.Printf on the configured writer.
func Printf(format string, args ...any) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, format, args...)
}
