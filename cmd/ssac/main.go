// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"ssaform/internal/ir"
	"ssaform/internal/parser"
	"ssaform/internal/ssa"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ssac <file.ssa>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := os.Args[1]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	fn, err := parser.Parse(path, string(source))
	if err != nil {
		reportError(path, string(source), err)
		os.Exit(1)
	}

	out, err := ssa.Transform(fn)
	duration := time.Since(startTime)
	formattedDuration := formatDuration(duration)

	if err != nil {
		color.Red("SSA construction failed after %s: %v", formattedDuration, err)
		os.Exit(1)
	}

	fmt.Println(ir.Print(out))
	color.Green("Successfully processed %s in %s", path, formattedDuration)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// reportError prints a caret-style location for a syntax error, mirroring
// the teacher CLI's error formatting; any other error (SSA construction
// never reaches here, only parsing does) just prints as-is.
func reportError(path, source string, err error) {
	var pe participle.Error
	if wrapped, ok := err.(*parser.ParseError); ok {
		if asserted, ok2 := wrapped.Err.(participle.Error); ok2 {
			pe = asserted
		}
	}
	if pe == nil {
		color.Red("%v", err)
		return
	}

	lines := strings.Split(source, "\n")
	pos := pe.Position()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	if pos.Line >= 1 && pos.Line <= len(lines) {
		line := lines[pos.Line-1]
		marker := strings.Repeat(" ", max(0, pos.Column-1)) + "^"
		fmt.Printf("%s: %s\n%s:%d:%d\n%s\n%s\n\n",
			red("error"), pe.Message(), path, pos.Line, pos.Column, line, bold(marker))
		return
	}
	color.Red("%v", err)
}
