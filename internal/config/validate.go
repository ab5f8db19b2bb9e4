package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vorpalvorpal/schtask/internal/consts"
)

// Validate normalises the config in place and applies defaults.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	c.Scheduler.Bin = strings.TrimSpace(c.Scheduler.Bin)
	if c.Scheduler.Bin == "" {
		c.Scheduler.Bin = consts.DefaultSchedulerBin
	}
	c.Scheduler.Interpreter = strings.TrimSpace(c.Scheduler.Interpreter)
	c.Scheduler.ExecDir = strings.TrimSpace(c.Scheduler.ExecDir)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	switch c.Logging.Output {
	case "", "stdout", "stderr", "file", "both":
	default:
		return fmt.Errorf("invalid logging.output: %s", c.Logging.Output)
	}
	if c.Logging.Output == "file" || c.Logging.Output == "both" {
		if strings.TrimSpace(c.Logging.File) == "" {
			c.Logging.File = consts.DefaultLogPath()
		}
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}
