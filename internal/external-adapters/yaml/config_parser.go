// Package yaml provides YAML-based build configuration parsing.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/kiln/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw kiln.yml structure
type yamlConfig struct {
	SourceRoot   string `yaml:"source_root"`
	OutputDir    string `yaml:"output_dir"`
	Prefix       string `yaml:"prefix"`
	Naming       string `yaml:"naming"`
	Board        string `yaml:"board"`
	Jobs         int    `yaml:"jobs"`
	SkipChecksum bool   `yaml:"skip_checksum"`
	SigningKey   string `yaml:"signing_key"`
}

// ConfigParser parses kiln.yml build configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// ParseFile parses a YAML configuration file into a BuildConfig entity
func (p *ConfigParser) ParseFile(filePath string) (*entities.BuildConfig, error) {
	//nolint:gosec // G304: filePath is the user-supplied config path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a BuildConfig entity
func (p *ConfigParser) Parse(data []byte) (*entities.BuildConfig, error) {
	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	naming, err := entities.ParseNamingScheme(yamlCfg.Naming)
	if err != nil {
		return nil, err
	}

	if yamlCfg.Jobs < 0 {
		return nil, fmt.Errorf("jobs must not be negative, got %d", yamlCfg.Jobs)
	}

	// Convert to domain entity
	cfg := &entities.BuildConfig{
		SourceRoot:     yamlCfg.SourceRoot,
		OutputDir:      yamlCfg.OutputDir,
		Prefix:         yamlCfg.Prefix,
		Naming:         naming,
		Board:          entities.Board(yamlCfg.Board),
		Jobs:           yamlCfg.Jobs,
		SkipChecksum:   yamlCfg.SkipChecksum,
		SigningKeyPath: yamlCfg.SigningKey,
	}

	return cfg, nil
}
