package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/kiln/internal/domain/entities"
)

func runBoards(_ context.Context, args []string) {
	fs := flag.NewFlagSet("boards", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: kiln boards

List the board identifiers this orchestrator has been exercised against.
Other identifiers are passed through to the native build system unchanged.
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(exitFailure)
	}

	boards := entities.KnownBoards()
	fmt.Printf("Known boards (%d total):\n\n", len(boards))
	for _, board := range boards {
		if board == entities.DefaultBoard {
			fmt.Printf("  %-16s (default)\n", board)
			continue
		}
		fmt.Printf("  %s\n", board)
	}
}
