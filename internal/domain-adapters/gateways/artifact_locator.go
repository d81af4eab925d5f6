package gateways

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
)

// artifactCandidates lists the relative locations, most specific first,
// where the native build system may deposit the firmware image. %s is the
// board identifier. The list is fixed at compile time; a new board or
// toolchain output layout is an additional entry here, not a config knob.
var artifactCandidates = []string{
	"ports/rp2/build-%s/firmware" + artifactExt,
	"ports/rp2/build-%s/firmware/firmware" + artifactExt,
	"ports/rp2/build/firmware" + artifactExt,
}

// diagnosticScanDepth bounds the recursive scan performed when no
// candidate matches
const diagnosticScanDepth = 6

// ErrArtifactNotFound indicates the native build completed but left no
// image at any candidate path
var ErrArtifactNotFound = errors.New("firmware image not found")

// ArtifactLocator finds the firmware image the native build left behind
type ArtifactLocator struct {
	cfg    *entities.BuildConfig
	logger interfaces.Logger
}

// NewArtifactLocator creates a new artifact locator
func NewArtifactLocator(cfg *entities.BuildConfig, logger interfaces.Logger) *ArtifactLocator {
	return &ArtifactLocator{cfg: cfg, logger: logger}
}

// Locate returns the first candidate path that exists as a regular file,
// checked in declaration order. When none matches, the source tree is
// scanned for stray images to aid diagnosis and ErrArtifactNotFound is
// returned; the scan results are never selected as the artifact.
func (l *ArtifactLocator) Locate() (*entities.Artifact, error) {
	board := l.cfg.Board.String()

	for _, pattern := range artifactCandidates {
		rel := pattern
		if strings.Contains(pattern, "%s") {
			rel = fmt.Sprintf(pattern, board)
		}

		path := filepath.Join(l.cfg.SourceRoot, filepath.FromSlash(rel))
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			l.logger.Debug("artifact located", interfaces.F("path", path))
			return &entities.Artifact{Board: l.cfg.Board, Path: path}, nil
		}
	}

	if strays := l.scanForImages(); len(strays) > 0 {
		l.logger.Error("no candidate path matched, but firmware images exist elsewhere in the tree",
			interfaces.F("found", strings.Join(strays, ", ")))
	}

	return nil, fmt.Errorf("%w: no %s image at any of %d candidate paths under %s for board %s",
		ErrArtifactNotFound, artifactExt, len(artifactCandidates), l.cfg.SourceRoot, board)
}

// scanForImages walks the source tree to a bounded depth collecting every
// file with the artifact extension. Walk errors are swallowed: this is a
// diagnostic aid, not a fallback.
func (l *ArtifactLocator) scanForImages() []string {
	root := l.cfg.SourceRoot
	var found []string

	//nolint:errcheck // Best-effort diagnostic walk
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if strings.Count(rel, string(filepath.Separator)) >= diagnosticScanDepth {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), artifactExt) {
			found = append(found, path)
		}
		return nil
	})

	return found
}
