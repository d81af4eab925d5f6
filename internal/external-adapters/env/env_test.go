package env

import (
	"testing"

	"github.com/ochairo/kiln/internal/domain/entities"
)

func TestParse(t *testing.T) {
	environ := []string{
		"KILN_VERSION=v3.1.4",
		"GITHUB_REF_NAME=v3.1.4-rc2",
		"KILN_BOARD=RPI_PICO2",
		"PATH=/usr/bin",
	}

	in, err := Parse(environ)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if in.VersionOverride != "v3.1.4" {
		t.Errorf("VersionOverride = %q", in.VersionOverride)
	}
	if in.CIRefName != "v3.1.4-rc2" {
		t.Errorf("CIRefName = %q", in.CIRefName)
	}
	if in.Board != "RPI_PICO2" {
		t.Errorf("Board = %q", in.Board)
	}
}

func TestParse_AbsentInputs(t *testing.T) {
	in, err := Parse([]string{"PATH=/usr/bin"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if in.VersionOverride != "" || in.CIRefName != "" || in.Board != "" {
		t.Errorf("Expected empty inputs, got %+v", in)
	}
}

func TestInputs_Apply(t *testing.T) {
	in := &Inputs{
		VersionOverride: "v2.0.0",
		CIRefName:       "release-branch",
		Board:           "RPI_PICO",
	}

	cfg := &entities.BuildConfig{}
	in.Apply(cfg)
	if cfg.VersionOverride != "v2.0.0" || cfg.CIRefName != "release-branch" || cfg.Board != entities.BoardPico {
		t.Errorf("Apply did not fill empty config: %+v", cfg)
	}
}

// CLI flags already present in the config must not be clobbered
func TestInputs_ApplyDoesNotOverrideFlags(t *testing.T) {
	in := &Inputs{
		VersionOverride: "from-env",
		Board:           "RPI_PICO",
	}

	cfg := &entities.BuildConfig{
		VersionOverride: "from-flag",
		Board:           entities.BoardPico2W,
	}
	in.Apply(cfg)

	if cfg.VersionOverride != "from-flag" {
		t.Errorf("VersionOverride = %q", cfg.VersionOverride)
	}
	if cfg.Board != entities.BoardPico2W {
		t.Errorf("Board = %q", cfg.Board)
	}
}
