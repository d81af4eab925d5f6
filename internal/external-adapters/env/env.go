// Package env resolves the pipeline's environment-provided inputs.
package env

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/ochairo/kiln/internal/domain/entities"
)

// Inputs are the values the pipeline accepts from the environment: an
// explicit version override, the CI-provided reference name, and the
// target board.
type Inputs struct {
	VersionOverride string `env:"KILN_VERSION"`
	CIRefName       string `env:"GITHUB_REF_NAME"`
	Board           string `env:"KILN_BOARD"`
}

// Parse reads the inputs from environ ("KEY=VALUE" entries). Passing the
// slice in, rather than reading the process environment directly, keeps
// the resolution testable.
func Parse(environ []string) (*Inputs, error) {
	var in Inputs

	err := env.ParseWithOptions(&in, env.Options{
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &in, nil
}

// Apply merges the inputs into cfg without clobbering values already set
// by higher-priority sources (CLI flags)
func (in *Inputs) Apply(cfg *entities.BuildConfig) {
	if cfg.VersionOverride == "" {
		cfg.VersionOverride = in.VersionOverride
	}
	if cfg.CIRefName == "" {
		cfg.CIRefName = in.CIRefName
	}
	if cfg.Board == "" && in.Board != "" {
		cfg.Board = entities.Board(in.Board)
	}
}
