package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	adapters "github.com/ochairo/kiln/internal/domain-adapters/gateways"
	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
)

func runLocate(_ context.Context, args []string) {
	fs := flag.NewFlagSet("locate", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "Path to kiln.yml (default: ./kiln.yml when present)")
		sourceRoot = fs.String("source-root", "", "Firmware source tree root (default \".\")")
		board      = fs.String("board", "", "Board identifier (overrides KILN_BOARD; default RPI_PICO_W)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: kiln locate [options]

Search the fixed candidate paths for an already-built firmware image and
print the first match. Exits %d when none is found.

Options:
`, exitArtifactNotFound)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(exitFailure)
	}

	cfg, err := buildConfig(*configPath, os.Environ(), func(cfg *entities.BuildConfig) error {
		if *sourceRoot != "" {
			cfg.SourceRoot = *sourceRoot
		}
		if *board != "" {
			cfg.Board = entities.Board(*board)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}

	locator := adapters.NewArtifactLocator(cfg, &interfaces.StderrLogger{})
	artifact, err := locator.Locate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, adapters.ErrArtifactNotFound) {
			os.Exit(exitArtifactNotFound)
		}
		os.Exit(exitFailure)
	}

	fmt.Println(artifact.Path)
}
