package gateways

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecRunner executes external commands with the working directory scoped
// to the invocation. Setting the directory on the command itself, instead
// of chdir-ing the process, keeps the pipeline free of global state.
type ExecRunner struct{}

// NewExecRunner creates a new exec-backed runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir, forwarding output to the pipeline's
// own streams, and blocks until the command exits
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	//nolint:gosec // G204: command and arguments come from the fixed pipeline stages
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}
