// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package module

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"frost/core"
	"frost/ir"
	"frost/logger"
)

var (
	typeColor   = color.New(color.FgCyan).SprintFunc()
	attrColor   = color.New(color.FgGreen).SprintFunc()
	methodColor = color.New(color.FgYellow).SprintFunc()
	kindColor   = color.New(color.FgBlue).SprintFunc()
)

// PrintSummary displays at standard output a summary of the module tree:
// every submodule with its attributes, values and methods.
func (o *Object) PrintSummary() {
	logger.Println("== SUMMARY ===================================")
	logger.Println()
	o.summarize(0)
	logger.Println()
}

func (o *Object) summarize(depth int) {
	pad := strings.Repeat("  ", depth)
	logger.Printf("%s%s\n", pad, typeColor(o.typ.QualifiedName()))

	var subs []struct {
		name string
		obj  *Object
	}
	for _, name := range o.AttrNames() {
		v, _ := o.Attr(name)
		if v.IsModule() {
			subs = append(subs, struct {
				name string
				obj  *Object
			}{name, v.Module()})
			continue
		}
		logger.Printf("%s  %s : %s = %s\n",
			pad, attrColor(name), kindColor(v.Kind()), v)
	}
	for _, m := range o.Methods() {
		logger.Printf("%s  %s%s : %s\n",
			pad, methodColor(m.Name()), signature(m), nodeCounts(m))
	}
	for _, s := range subs {
		logger.Printf("%s  %s:\n", pad, attrColor(s.name))
		s.obj.summarize(depth + 2)
	}
}

func signature(m *Method) string {
	var args []string
	for _, in := range m.Graph().Inputs() {
		args = append(args, fmt.Sprintf("%s : %s", in.Name(), in.Type()))
	}
	return "(" + strings.Join(args, ", ") + ")"
}

// nodeCounts renders the per-kind node counts of a method body, nested
// blocks included.
func nodeCounts(m *Method) string {
	counts := make(map[core.Kind]int)
	var kinds []core.Kind
	blocks := []*ir.Block{m.Graph().Block()}
	for len(blocks) > 0 {
		b := blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
		for _, n := range b.Nodes() {
			blocks = append(blocks, n.Blocks()...)
			if counts[n.Kind()] == 0 {
				kinds = append(kinds, n.Kind())
			}
			counts[n.Kind()]++
		}
	}
	var parts []string
	for _, k := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[k], strings.TrimPrefix(k.String(), "Kind")))
	}
	return strings.Join(parts, ", ")
}
