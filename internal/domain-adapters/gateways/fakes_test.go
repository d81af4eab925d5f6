package gateways

import (
	"context"
	"fmt"
)

// fakeGit is a scriptable GitGateway for tests
type fakeGit struct {
	exactTag    string
	exactErr    error
	describeTag string
	describeErr error
	cloneErr    error
	updateErr   error

	cloned  []string // urls passed to CloneShallow
	updated []string // dirs passed to UpdateSubmodules
}

func (g *fakeGit) ExactTag(_ context.Context, _ string) (string, error) {
	if g.exactErr != nil {
		return "", g.exactErr
	}
	if g.exactTag == "" {
		return "", fmt.Errorf("no tag at current commit")
	}
	return g.exactTag, nil
}

func (g *fakeGit) Describe(_ context.Context, _ string) (string, error) {
	if g.describeErr != nil {
		return "", g.describeErr
	}
	if g.describeTag == "" {
		return "", fmt.Errorf("git describe produced no output")
	}
	return g.describeTag, nil
}

func (g *fakeGit) CloneShallow(_ context.Context, url, _ string) error {
	g.cloned = append(g.cloned, url)
	return g.cloneErr
}

func (g *fakeGit) UpdateSubmodules(_ context.Context, dir string) error {
	g.updated = append(g.updated, dir)
	return g.updateErr
}

// runnerCall records a single Run invocation
type runnerCall struct {
	dir  string
	name string
	args []string
}

// fakeRunner records invocations and fails via the onRun hook
type fakeRunner struct {
	calls []runnerCall
	onRun func(dir, name string, args []string) error
}

func (r *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	r.calls = append(r.calls, runnerCall{dir: dir, name: name, args: args})
	if r.onRun != nil {
		return r.onRun(dir, name, args)
	}
	return nil
}
