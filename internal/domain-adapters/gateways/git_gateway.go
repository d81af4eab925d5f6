package gateways

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandGitGateway implements gateways.GitGateway by shelling out to the
// git binary. Tag queries are read-only; the only writes are submodule
// fetches into the source tree itself.
type CommandGitGateway struct {
	// run is swappable so unit tests can substitute canned output
	run func(ctx context.Context, dir string, args ...string) (string, error)
}

// NewCommandGitGateway creates a git gateway backed by the git binary
func NewCommandGitGateway() *CommandGitGateway {
	return &CommandGitGateway{run: runGit}
}

// runGit executes git with args in dir and returns trimmed stdout
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// ExactTag returns the tag pointing exactly at the current commit.
// Fails when the commit is untagged.
func (g *CommandGitGateway) ExactTag(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "describe", "--tags", "--exact-match")
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("no tag at current commit")
	}
	return out, nil
}

// Describe returns a best-effort descriptive identifier for the current
// commit. May carry a commit-distance suffix, or be a bare hash on
// untagged histories.
func (g *CommandGitGateway) Describe(ctx context.Context, dir string) (string, error) {
	out, err := g.run(ctx, dir, "describe", "--tags", "--always")
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("git describe produced no output")
	}
	return out, nil
}

// CloneShallow clones url into dir with depth 1, without recursing into
// submodules
func (g *CommandGitGateway) CloneShallow(ctx context.Context, url, dir string) error {
	_, err := g.run(ctx, "", "clone", "--depth", "1", url, dir)
	return err
}

// UpdateSubmodules runs a recursive submodule init/update inside dir
func (g *CommandGitGateway) UpdateSubmodules(ctx context.Context, dir string) error {
	_, err := g.run(ctx, dir, "submodule", "update", "--init", "--recursive")
	return err
}
