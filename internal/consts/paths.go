package consts

import (
	"os"
	"path/filepath"
)

const (
	SchtaskDirName = ".schtask"
	ConfigFileName = "config.yaml"

	// DefaultSchedulerBin is the task scheduler CLI shipped with Windows.
	DefaultSchedulerBin = "schtasks"
)

func SchtaskHomeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, SchtaskDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(SchtaskHomeDir(), ConfigFileName)
}

func DefaultLogPath() string {
	return filepath.Join(SchtaskHomeDir(), "logs", "schtask.log")
}
