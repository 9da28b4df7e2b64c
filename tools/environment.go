// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools provides small helpers shared by the commands: an
// environment variable registry feeding the help text, and file utilities.
package tools

import (
	"os"
	"sort"
)

// Envvar is a registered environment variable with its default value and a
// short description.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var envvars = make(map[string]Envvar)

// RegEnv registers an environment variable with a default value. Registered
// variables appear in the command help text.
func RegEnv(name, defv, desc string) {
	envvars[name] = Envvar{Name: name, Defv: defv, Desc: desc}
}

// GetEnv returns the value of a registered environment variable, falling
// back to the registered default when unset.
func GetEnv(name string) string {
	if v, has := os.LookupEnv(name); has {
		return v
	}
	return envvars[name].Defv
}

// GetEnvvars returns the registered environment variables sorted by name.
func GetEnvvars() []Envvar {
	evs := make([]Envvar, 0, len(envvars))
	for _, ev := range envvars {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i].Name < evs[j].Name })
	return evs
}
