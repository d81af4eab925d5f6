package gateways

import (
	"context"
	"time"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces/gateways"
)

// tagSource attempts to produce a version tag from a single provenance
// source. ok is false when the source has nothing to offer; individual
// source failures are never propagated.
type tagSource struct {
	name    string
	resolve func(ctx context.Context) (tag string, ok bool)
}

// VersionResolver determines the version tag embedded in the published
// firmware name. Sources are tried in strict priority order: explicit
// override, CI reference name, exact tag at the current commit, best-effort
// describe, and finally the current UTC date.
type VersionResolver struct {
	sources []tagSource
	now     func() time.Time
}

// NewVersionResolver creates a resolver for the given run configuration,
// using git for the source-control queries
func NewVersionResolver(cfg *entities.BuildConfig, git gateways.GitGateway) *VersionResolver {
	sources := []tagSource{
		{name: "override", resolve: staticSource(cfg.VersionOverride)},
		{name: "ci-ref", resolve: staticSource(cfg.CIRefName)},
		{name: "exact-tag", resolve: gitSource(git.ExactTag, cfg.SourceRoot)},
		{name: "describe", resolve: gitSource(git.Describe, cfg.SourceRoot)},
	}
	return &VersionResolver{sources: sources, now: time.Now}
}

// staticSource yields a pre-supplied value, absent when empty
func staticSource(value string) func(context.Context) (string, bool) {
	return func(context.Context) (string, bool) {
		if value == "" {
			return "", false
		}
		return value, true
	}
}

// gitSource adapts a git query into a tag source, swallowing its error
func gitSource(query func(ctx context.Context, dir string) (string, error), dir string) func(context.Context) (string, bool) {
	return func(ctx context.Context) (string, bool) {
		tag, err := query(ctx, dir)
		if err != nil || tag == "" {
			return "", false
		}
		return tag, true
	}
}

// Resolve returns the highest-priority available source's value and the
// name of the winning source. It cannot fail: when every source is absent
// the current UTC date in YYYYMMDD form is returned.
func (r *VersionResolver) Resolve(ctx context.Context) (tag, source string) {
	for _, src := range r.sources {
		if value, ok := src.resolve(ctx); ok {
			return value, src.name
		}
	}
	return r.now().UTC().Format("20060102"), "date"
}
