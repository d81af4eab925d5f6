// Package gateways defines interfaces for external tool adapters.
package gateways

import "context"

// GitGateway defines the source-control operations the pipeline needs:
// read-only tag queries plus submodule fetches. Nothing here mutates the
// main tree's history.
type GitGateway interface {
	// ExactTag returns the tag pointing exactly at the current commit.
	// Returns an error when the commit is untagged.
	ExactTag(ctx context.Context, dir string) (string, error)

	// Describe returns a best-effort descriptive identifier for the current
	// commit, possibly carrying a commit-distance suffix.
	Describe(ctx context.Context, dir string) (string, error)

	// CloneShallow clones url into dir with depth 1, without recursing
	// into submodules.
	CloneShallow(ctx context.Context, url, dir string) error

	// UpdateSubmodules runs a recursive submodule init/update inside dir.
	UpdateSubmodules(ctx context.Context, dir string) error
}

// Runner executes an external command in a working directory, blocking
// until it exits. Output streams to the pipeline's own stdout/stderr.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}
