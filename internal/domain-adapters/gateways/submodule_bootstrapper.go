package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
	"github.com/ochairo/kiln/internal/domain/interfaces/gateways"
)

// SubmoduleBootstrapper ensures the source tree's nested repositories are
// checked out before the native builds run.
//
// The port's own submodules are structurally required, so that step is
// fatal. The ulab extension may already be vendored or pre-seeded, so its
// fetch is best-effort: a failure is surfaced as a warning and the build
// proceeds, leaving the native build to fail loudly if the dependency is
// genuinely missing.
type SubmoduleBootstrapper struct {
	cfg    *entities.BuildConfig
	git    gateways.GitGateway
	runner gateways.Runner
	logger interfaces.Logger
}

// NewSubmoduleBootstrapper creates a new dependency bootstrapper
func NewSubmoduleBootstrapper(cfg *entities.BuildConfig, git gateways.GitGateway, runner gateways.Runner, logger interfaces.Logger) *SubmoduleBootstrapper {
	return &SubmoduleBootstrapper{cfg: cfg, git: git, runner: runner, logger: logger}
}

// Bootstrap initializes the port's submodules and fetches the ulab
// extension when absent
func (b *SubmoduleBootstrapper) Bootstrap(ctx context.Context) error {
	port := filepath.Join(b.cfg.SourceRoot, filepath.FromSlash(portDir))
	if err := b.runner.Run(ctx, port, "make", "submodules"); err != nil {
		return fmt.Errorf("submodule init for %s: %w", portDir, err)
	}

	b.fetchUlab(ctx)
	return nil
}

// fetchUlab brings the ulab extension up to date, best-effort. A missing
// directory triggers a shallow clone; an existing one a recursive submodule
// update.
func (b *SubmoduleBootstrapper) fetchUlab(ctx context.Context) {
	dir := filepath.Join(b.cfg.SourceRoot, filepath.FromSlash(ulabDir))

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := b.git.CloneShallow(ctx, ulabRepoURL, dir); err != nil {
			b.logger.Warn("ulab clone failed; assuming the dependency is already satisfied",
				interfaces.F("dir", dir),
				interfaces.F("error", err))
		}
		return
	}

	if err := b.git.UpdateSubmodules(ctx, dir); err != nil {
		b.logger.Warn("ulab submodule update failed; continuing with the existing checkout",
			interfaces.F("dir", dir),
			interfaces.F("error", err))
	}
}
