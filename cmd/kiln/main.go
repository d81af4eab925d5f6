// Package main provides the kiln CLI for building and publishing firmware images.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/external-adapters/yaml"
)

// Exit codes. Artifact-not-found is distinguishable from other failures so
// CI can tell a missing image apart from a failed compile.
const (
	exitFailure          = 1
	exitArtifactNotFound = 3
)

// defaultConfigPath is read when no --config flag is given and the file exists
const defaultConfigPath = "kiln.yml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitFailure)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "build":
		runBuild(ctx, os.Args[2:])
	case "resolve-version":
		runResolveVersion(ctx, os.Args[2:])
	case "locate":
		runLocate(ctx, os.Args[2:])
	case "boards":
		runBoards(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(exitFailure)
	}
}

func printUsage() {
	fmt.Println(`kiln - Firmware build orchestrator

Usage:
  kiln <command> [options]

Commands:
  build            Run the full pipeline: bootstrap, build, locate, publish
  resolve-version  Print the version tag the pipeline would embed
  locate           Search the candidate paths for a built firmware image
  boards           List known board identifiers

Use "kiln <command> --help" for more information about a command.`)
}

// loadConfig reads kiln.yml. An explicitly given path must exist; the
// default path is optional.
func loadConfig(path string) (*entities.BuildConfig, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return &entities.BuildConfig{}, nil
		}
		path = defaultConfigPath
	}
	return yaml.NewConfigParser().ParseFile(path)
}
