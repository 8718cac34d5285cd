package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pstuifzand/code-wave/internal/diff"
)

func main() {
	unified := flag.Bool("u", false, "Print a unified diff instead of the pairing table")
	context := flag.Int("U", 3, "Context lines for the unified diff")
	summary := flag.Bool("s", false, "Summary only (counts without line details)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: line-diff [options] <old.txt> <new.txt>

Aligns the lines of two files the way the player does between two steps and
shows how every line was paired.

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Pairing table markers:
  -   deleted line (old index)
  +   inserted line (new index)
  ~   moved line (old and new index)
      unchanged line

Examples:
  line-diff step1.go step2.go
  line-diff -u -U 1 step1.go step2.go
`)
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	if *context < 0 {
		fmt.Fprintln(os.Stderr, "Error: -U must not be negative")
		os.Exit(1)
	}

	oldLines, err := readLines(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading old file: %v\n", err)
		os.Exit(1)
	}
	newLines, err := readLines(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading new file: %v\n", err)
		os.Exit(1)
	}

	result := diff.Diff(oldLines, newLines)

	switch {
	case *summary:
		fmt.Println(diff.Summary(result))
	case *unified:
		out, err := diff.Unified(result, oldLines, newLines, args[0], args[1], *context)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting diff: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
	default:
		fmt.Print(diff.FormatLines(diff.BuildDiffLines(result, oldLines, newLines)))
	}
}

// readLines splits a file into lines. A final newline does not start an
// extra empty line.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
