package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ochairo/kiln/internal/domain/entities"
)

// Signer produces a detached signature for a published file and returns
// the signature's path
type Signer interface {
	SignFile(path string) (string, error)
}

// Publisher copies the located firmware image into the output directory
// under its deterministic, versioned name. An existing file of the same
// name is overwritten without confirmation or backup.
type Publisher struct {
	cfg    *entities.BuildConfig
	signer Signer // nil disables signing
}

// NewPublisher creates a new publisher. signer may be nil.
func NewPublisher(cfg *entities.BuildConfig, signer Signer) *Publisher {
	return &Publisher{cfg: cfg, signer: signer}
}

// publishedName computes the output filename for tag under the active
// naming scheme
func (p *Publisher) publishedName(tag string) string {
	switch p.cfg.Naming {
	case entities.NamingBoardTag:
		return fmt.Sprintf("%s%s-%s%s", p.cfg.Prefix, p.cfg.Board, tag, artifactExt)
	default:
		return fmt.Sprintf("%s%s%s", p.cfg.Prefix, tag, artifactExt)
	}
}

// Publish copies artifact into the output directory, creating it if
// absent, and writes the checksum sidecar and signature where configured
func (p *Publisher) Publish(artifact *entities.Artifact, tag string) (*entities.PublishedArtifact, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	dest := filepath.Join(p.cfg.OutputDir, p.publishedName(tag))
	if err := copyFile(artifact.Path, dest); err != nil {
		return nil, fmt.Errorf("failed to publish %s: %w", artifact.Path, err)
	}

	published := &entities.PublishedArtifact{Path: dest}

	if !p.cfg.SkipChecksum {
		sum, err := fileChecksum(dest)
		if err != nil {
			return nil, fmt.Errorf("failed to checksum published file: %w", err)
		}
		sidecar := dest + ".sha256"
		line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(dest))
		if err := os.WriteFile(sidecar, []byte(line), 0644); err != nil {
			return nil, fmt.Errorf("failed to write checksum sidecar: %w", err)
		}
		published.Checksum = sum
		published.ChecksumPath = sidecar
	}

	if p.signer != nil {
		sigPath, err := p.signer.SignFile(dest)
		if err != nil {
			return nil, fmt.Errorf("failed to sign published file: %w", err)
		}
		published.SignaturePath = sigPath
	}

	return published, nil
}

// copyFile copies src to dst, replacing any existing dst. The copy goes
// through a temp file in the same directory and is renamed into place only
// once fully written, so a mid-copy failure never clobbers a previous good
// file with a truncated one.
func copyFile(src, dst string) error {
	//nolint:gosec // G304: src is the located build artifact
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := io.Copy(tmp, in); err != nil {
		//nolint:errcheck,gosec // Best effort cleanup on copy error
		tmp.Close()
		//nolint:errcheck,gosec // Best effort cleanup on copy error
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		//nolint:errcheck,gosec // Best effort cleanup on close error
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), dst)
}

// fileChecksum calculates the SHA256 checksum of a file
// Pure Go implementation - no external sha256sum binary needed
func fileChecksum(path string) (string, error) {
	//nolint:gosec // G304: path is the file just published
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
