package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Scheduler SchedulerConfig `yaml:"scheduler"`
		Logging   LoggingConfig   `yaml:"logging"`
	}

	SchedulerConfig struct {
		// Bin is the task scheduler executable invoked for every operation.
		Bin string `yaml:"bin"`
		// Interpreter is an optional default script interpreter used when a
		// create operation does not name one explicitly.
		Interpreter string `yaml:"interpreter"`
		// ExecDir is the default execution directory embedded into stored
		// task commands. Empty means the current working directory.
		ExecDir string `yaml:"exec_dir"`
	}

	LoggingConfig struct {
		Level      string `yaml:"level"`  // debug, info, warn, error
		Format     string `yaml:"format"` // json, text
		Output     string `yaml:"output"` // stdout, stderr, file, both
		File       string `yaml:"file"`
		MaxSize    int    `yaml:"max_size"` // MB
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"` // days
	}
)

// Load reads and validates a config file. A missing file is not an error:
// the zero config validates to usable defaults.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	var cfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
