package entities

import "fmt"

// NamingScheme selects how the published firmware file is named.
// Downstream consumers key off the naming convention, so the scheme is part
// of the run configuration rather than hardcoded.
type NamingScheme string

// Supported naming schemes
const (
	// NamingTag names the file <prefix><tag>.uf2
	NamingTag NamingScheme = "tag"
	// NamingBoardTag names the file <prefix><board>-<tag>.uf2; when no tag
	// source is available the resolved tag is the UTC build date, yielding
	// the board+date convention
	NamingBoardTag NamingScheme = "board-date"
)

// ParseNamingScheme validates a naming scheme identifier. The empty string
// is accepted and resolved to the default later.
func ParseNamingScheme(s string) (NamingScheme, error) {
	switch NamingScheme(s) {
	case "", NamingTag, NamingBoardTag:
		return NamingScheme(s), nil
	default:
		return "", fmt.Errorf("unknown naming scheme %q (want %q or %q)", s, NamingTag, NamingBoardTag)
	}
}

// BuildConfig holds the run configuration assembled from kiln.yml, the
// environment, and CLI flags. It is immutable for the run once the
// orchestrator starts.
type BuildConfig struct {
	SourceRoot      string       // checked-out firmware source tree
	OutputDir       string       // directory the published file is placed in
	Prefix          string       // published filename prefix
	Naming          NamingScheme // active naming scheme
	Board           Board        // target board variant
	VersionOverride string       // explicit tag, used verbatim when non-empty
	CIRefName       string       // CI-provided reference name
	Jobs            int          // native build parallelism, 0 = CPU count
	SkipChecksum    bool         // suppress the .sha256 sidecar
	SigningKeyPath  string       // armored private key; empty disables signing
}

// ApplyDefaults fills unset fields with the fixed defaults
func (c *BuildConfig) ApplyDefaults() {
	if c.SourceRoot == "" {
		c.SourceRoot = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Prefix == "" {
		c.Prefix = "firmware-"
	}
	if c.Naming == "" {
		c.Naming = NamingTag
	}
	if c.Board == "" {
		c.Board = DefaultBoard
	}
}
