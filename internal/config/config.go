package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/docvet/internal/domain"
)

// Config is the top-level configuration struct. The three mode booleans
// mirror the CLI flags; flags win when both are set.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Checks   ChecksConfig   `yaml:"checks"`
	Sandbox  SandboxConfig  `yaml:"sandbox"`
	External ExternalConfig `yaml:"external"`
	Logging  LoggingConfig  `yaml:"logging"`
	Workers  int            `yaml:"workers"` // 0 = number of CPUs

	ExecuteExamples bool `yaml:"execute_examples"`
	CheckLinks      bool `yaml:"check_links"`
	Fix             bool `yaml:"fix"`
}

type InputConfig struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type ChecksConfig struct {
	MaxLineLength  int      `yaml:"max_line_length"`
	DuplicateWords []string `yaml:"duplicate_words"`
}

type SandboxConfig struct {
	Timeout            string   `yaml:"timeout"` // duration string, e.g. "5s"
	PlaceholderMarkers []string `yaml:"placeholder_markers"`
	BlockedPatterns    []string `yaml:"blocked_patterns"`
}

type ExternalConfig struct {
	Timeout      string `yaml:"timeout"`
	Workers      int    `yaml:"workers"`
	MaxRedirects int    `yaml:"max_redirects"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and returns a Config.
// Missing fields keep their defaults; a missing file yields the full
// defaults, so the tool runs without any configuration at all.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}
