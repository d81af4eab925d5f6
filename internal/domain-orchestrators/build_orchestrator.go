// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
)

// VersionResolver produces the version tag embedded in the published name,
// together with the name of the source that supplied it. It never fails.
type VersionResolver interface {
	Resolve(ctx context.Context) (tag, source string)
}

// DependencyBootstrapper ensures required submodules are checked out
type DependencyBootstrapper interface {
	Bootstrap(ctx context.Context) error
}

// StagedBuilder runs the cross-compiler and firmware build stages
type StagedBuilder interface {
	BuildStages(ctx context.Context) error
}

// ArtifactLocator finds the image the native build produced
type ArtifactLocator interface {
	Locate() (*entities.Artifact, error)
}

// Publisher copies the located image into the output directory under its
// versioned name
type Publisher interface {
	Publish(artifact *entities.Artifact, tag string) (*entities.PublishedArtifact, error)
}

// Stage names used in diagnostics when a fatal failure aborts the run
const (
	stageBootstrap = "submodule bootstrap"
	stageBuild     = "native build"
	stageLocate    = "artifact search"
	stagePublish   = "publish"
)

// BuildOrchestrator coordinates the complete firmware build workflow:
// resolve version, bootstrap dependencies, run the staged builds, locate
// the image, publish it. Strictly sequential; the first fatal failure
// aborts the run and nothing is published.
type BuildOrchestrator struct {
	versions     VersionResolver
	bootstrapper DependencyBootstrapper
	builder      StagedBuilder
	locator      ArtifactLocator
	publisher    Publisher
	logger       interfaces.Logger
	board        entities.Board
}

// NewBuildOrchestrator creates a new build orchestrator
func NewBuildOrchestrator(
	versions VersionResolver,
	bootstrapper DependencyBootstrapper,
	builder StagedBuilder,
	locator ArtifactLocator,
	publisher Publisher,
	logger interfaces.Logger,
	board entities.Board,
) *BuildOrchestrator {
	return &BuildOrchestrator{
		versions:     versions,
		bootstrapper: bootstrapper,
		builder:      builder,
		locator:      locator,
		publisher:    publisher,
		logger:       logger,
		board:        board,
	}
}

// BuildResult contains the result of a pipeline run
type BuildResult struct {
	Board             entities.Board
	Tag               string
	TagSource         string
	Published         *entities.PublishedArtifact
	BootstrapDuration time.Duration
	BuildDuration     time.Duration
	TotalDuration     time.Duration
	Success           bool
	Error             error
}

// Build executes the complete firmware build workflow
func (o *BuildOrchestrator) Build(ctx context.Context) (*BuildResult, error) {
	startTime := time.Now()
	result := &BuildResult{Board: o.board}

	// Version resolution cannot fail; computed up front so the publish
	// stage never runs without a tag.
	tag, source := o.versions.Resolve(ctx)
	result.Tag = tag
	result.TagSource = source
	o.logger.Info("resolved version tag",
		interfaces.F("tag", tag),
		interfaces.F("source", source))

	if !o.board.Known() {
		o.logger.Warn("board identifier not in the known set; passing it through to the build system",
			interfaces.F("board", o.board))
	}

	bootstrapStart := time.Now()
	if err := o.bootstrapper.Bootstrap(ctx); err != nil {
		result.Error = fmt.Errorf("%s: %w", stageBootstrap, err)
		return result, result.Error
	}
	result.BootstrapDuration = time.Since(bootstrapStart)

	buildStart := time.Now()
	if err := o.builder.BuildStages(ctx); err != nil {
		result.Error = fmt.Errorf("%s: %w", stageBuild, err)
		return result, result.Error
	}
	result.BuildDuration = time.Since(buildStart)

	artifact, err := o.locator.Locate()
	if err != nil {
		result.Error = fmt.Errorf("%s: %w", stageLocate, err)
		return result, result.Error
	}

	published, err := o.publisher.Publish(artifact, tag)
	if err != nil {
		result.Error = fmt.Errorf("%s: %w", stagePublish, err)
		return result, result.Error
	}
	result.Published = published

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// GetBuildSummary returns a human-readable summary of the run
func (r *BuildResult) GetBuildSummary() string {
	if !r.Success {
		return fmt.Sprintf("Build failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`Build successful!
Board: %s
Tag: %s (from %s)
Published: %s
Bootstrap: %v
Build: %v
Total: %v`,
		r.Board,
		r.Tag,
		r.TagSource,
		r.Published.Path,
		r.BootstrapDuration,
		r.BuildDuration,
		r.TotalDuration,
	)

	if r.Published.ChecksumPath != "" {
		summary += fmt.Sprintf("\nChecksum: %s", r.Published.ChecksumPath)
	}
	if r.Published.SignaturePath != "" {
		summary += fmt.Sprintf("\nSignature: %s", r.Published.SignaturePath)
	}

	return summary
}
