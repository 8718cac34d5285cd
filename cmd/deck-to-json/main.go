package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pstuifzand/code-wave/internal/storage"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deck-to-json [-f] <deck.md> [output.json]

Converts a Markdown deck to the JSON deck format the player also reads.
Explicit highlights from fence ranges and <mark> lines are kept.

Options:
  -f            Overwrite an existing output file

Arguments:
  deck.md       Markdown deck to convert
  output.json   Path to write the JSON deck (optional)
                If not provided, writes to stdout

Examples:
  deck-to-json tour.md
  deck-to-json tour.md tour.json
`)
	}
	force := flag.Bool("f", false, "Overwrite an existing output file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	inputPath := args[0]
	deck, err := storage.Load(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading deck: %v\n", err)
		os.Exit(1)
	}

	if len(args) < 2 {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(deck); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding deck: %v\n", err)
			os.Exit(1)
		}
		return
	}

	outputPath := args[1]
	store := storage.NewJSONStore(outputPath)
	if store.FileExists() && !*force {
		fmt.Fprintf(os.Stderr, "Error: %s exists, use -f to overwrite\n", outputPath)
		os.Exit(1)
	}
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := store.Save(deck); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON deck: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Converted %s → %s (%d blocks)\n", inputPath, outputPath, deck.Len())
}
