package gateways

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
	"github.com/ochairo/kiln/internal/domain/interfaces/gateways"
)

// MakeRunner drives the two sequential native build stages through make:
// first the host-side cross-compiler, then the board firmware. Both stages
// are opaque blocking calls; parallelism lives inside make itself.
type MakeRunner struct {
	cfg    *entities.BuildConfig
	runner gateways.Runner
	logger interfaces.Logger
}

// NewMakeRunner creates a new staged builder
func NewMakeRunner(cfg *entities.BuildConfig, runner gateways.Runner, logger interfaces.Logger) *MakeRunner {
	return &MakeRunner{cfg: cfg, runner: runner, logger: logger}
}

// jobs returns the requested make parallelism, defaulting to the number of
// available CPUs
func (m *MakeRunner) jobs() int {
	if m.cfg.Jobs > 0 {
		return m.cfg.Jobs
	}
	return runtime.NumCPU()
}

// BuildStages runs the cross-compiler build followed by the firmware build
// for the configured board. Failure of either stage is fatal.
func (m *MakeRunner) BuildStages(ctx context.Context) error {
	jobs := strconv.Itoa(m.jobs())

	m.logger.Info("building cross-compiler",
		interfaces.F("dir", crossCompilerDir),
		interfaces.F("jobs", jobs))

	crossDir := filepath.Join(m.cfg.SourceRoot, filepath.FromSlash(crossCompilerDir))
	if err := m.runner.Run(ctx, crossDir, "make", "-j", jobs); err != nil {
		return fmt.Errorf("cross-compiler build: %w", err)
	}

	board := m.cfg.Board.String()
	cmake := filepath.Join(m.cfg.SourceRoot, filepath.FromSlash(ulabCMakeFile))

	m.logger.Info("building firmware",
		interfaces.F("board", board),
		interfaces.F("jobs", jobs))

	port := filepath.Join(m.cfg.SourceRoot, filepath.FromSlash(portDir))
	err := m.runner.Run(ctx, port, "make", "-j", jobs,
		"BOARD="+board,
		"USER_C_MODULES="+cmake)
	if err != nil {
		return fmt.Errorf("firmware build for %s: %w", board, err)
	}

	return nil
}
