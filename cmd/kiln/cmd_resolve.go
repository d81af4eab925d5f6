package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	adapters "github.com/ochairo/kiln/internal/domain-adapters/gateways"
	"github.com/ochairo/kiln/internal/domain/entities"
)

func runResolveVersion(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resolve-version", flag.ExitOnError)
	var (
		configPath  = fs.String("config", "", "Path to kiln.yml (default: ./kiln.yml when present)")
		sourceRoot  = fs.String("source-root", "", "Firmware source tree root (default \".\")")
		tag         = fs.String("tag", "", "Explicit version tag, used verbatim (overrides KILN_VERSION)")
		printSource = fs.Bool("print-source", false, "Also print which source supplied the tag")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: kiln resolve-version [options]

Print the version tag the pipeline would embed in the published filename,
without building anything. Useful for CI debugging.

Options:
`)
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
		if *tag != "" {
			cfg.VersionOverride = *tag
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}

	resolver := adapters.NewVersionResolver(cfg, adapters.NewCommandGitGateway())
	resolved, source := resolver.Resolve(ctx)

	if *printSource {
		fmt.Printf("%s (from %s)\n", resolved, source)
		return
	}
	fmt.Println(resolved)
}
