package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	adapters "github.com/ochairo/kiln/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/kiln/internal/domain-orchestrators"
	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
	"github.com/ochairo/kiln/internal/external-adapters/env"
	"github.com/ochairo/kiln/internal/external-adapters/gpg"
)

func runBuild(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	var (
		configPath   = fs.String("config", "", "Path to kiln.yml (default: ./kiln.yml when present)")
		sourceRoot   = fs.String("source-root", "", "Firmware source tree root (default \".\")")
		outputDir    = fs.String("output-dir", "", "Directory for the published image (default \"dist\")")
		board        = fs.String("board", "", "Board identifier (overrides KILN_BOARD; default RPI_PICO_W)")
		tag          = fs.String("tag", "", "Explicit version tag, used verbatim (overrides KILN_VERSION)")
		naming       = fs.String("naming", "", "Naming scheme: tag or board-date (default tag)")
		jobs         = fs.Int("jobs", 0, "Native build parallelism (default: CPU count)")
		skipChecksum = fs.Bool("skip-checksum", false, "Do not write the .sha256 sidecar")
		signingKey   = fs.String("signing-key", "", "Armored private key for signing the published image")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: kiln build [options]

Run the full firmware pipeline: resolve the version tag, initialize
submodules, build the cross-compiler and the board firmware, locate the
produced image, and publish it under its versioned name.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  kiln build
  kiln build --board RPI_PICO_W --tag v1.2.3
  kiln build --source-root ~/src/micropython --naming board-date
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(exitFailure)
	}

	cfg, err := buildConfig(*configPath, os.Environ(), func(cfg *entities.BuildConfig) error {
		if *sourceRoot != "" {
			cfg.SourceRoot = *sourceRoot
		}
		if *outputDir != "" {
			cfg.OutputDir = *outputDir
		}
		if *board != "" {
			cfg.Board = entities.Board(*board)
		}
		if *tag != "" {
			cfg.VersionOverride = *tag
		}
		if *naming != "" {
			scheme, err := entities.ParseNamingScheme(*naming)
			if err != nil {
				return err
			}
			cfg.Naming = scheme
		}
		if *jobs > 0 {
			cfg.Jobs = *jobs
		}
		if *skipChecksum {
			cfg.SkipChecksum = true
		}
		if *signingKey != "" {
			cfg.SigningKeyPath = *signingKey
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}

	var signer adapters.Signer
	if cfg.SigningKeyPath != "" {
		s, err := gpg.NewSignerFromFile(cfg.SigningKeyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
		signer = s
	}

	logger := &interfaces.StderrLogger{}
	git := adapters.NewCommandGitGateway()
	runner := adapters.NewExecRunner()

	orchestrator := orchestrators.NewBuildOrchestrator(
		adapters.NewVersionResolver(cfg, git),
		adapters.NewSubmoduleBootstrapper(cfg, git, runner, logger),
		adapters.NewMakeRunner(cfg, runner, logger),
		adapters.NewArtifactLocator(cfg, logger),
		adapters.NewPublisher(cfg, signer),
		logger,
		cfg.Board,
	)

	result, err := orchestrator.Build(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, adapters.ErrArtifactNotFound) {
			os.Exit(exitArtifactNotFound)
		}
		os.Exit(exitFailure)
	}

	fmt.Println(result.GetBuildSummary())
}

// buildConfig assembles the run configuration: kiln.yml first, then CLI
// flag overrides, then environment inputs for anything still unset, then
// the fixed defaults.
func buildConfig(configPath string, environ []string, applyFlags func(*entities.BuildConfig) error) (*entities.BuildConfig, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cfg); err != nil {
		return nil, err
	}

	inputs, err := env.Parse(environ)
	if err != nil {
		return nil, err
	}
	inputs.Apply(cfg)

	cfg.ApplyDefaults()
	return cfg, nil
}
