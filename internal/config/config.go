package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const FileName = ".authsurface.yaml"

// IgnoreRule suppresses output for a contract, a contract.function pair, or
// everything under a path prefix.
type IgnoreRule struct {
	Contract string `yaml:"contract,omitempty"`
	Function string `yaml:"function,omitempty"`
	Path     string `yaml:"path,omitempty"`
	Reason   string `yaml:"reason,omitempty"`
}

type Config struct {
	ExportDir    string       `yaml:"exportDir"`
	ExportPrefix string       `yaml:"exportPrefix"`
	TimeBudgetMs int          `yaml:"timeBudgetMs"`
	Ignore       []IgnoreRule `yaml:"ignore,omitempty"`
}

func Default() Config {
	return Config{
		ExportDir:    "authsurface_export",
		ExportPrefix: "vars_and_auth",
		TimeBudgetMs: 4500,
	}
}

// Load searches startDir and its parents for .authsurface.yaml. A missing
// file is not an error; the defaults apply.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, fmt.Errorf("read %s: %w", candidate, err)
			}
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, candidate, fmt.Errorf("unmarshal %s: %w", candidate, err)
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}

// Write serializes cfg to <dir>/.authsurface.yaml.
func Write(cfg Config, dir string) (string, error) {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
