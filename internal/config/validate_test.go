package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "schtasks", cfg.Scheduler.Bin)
	assert.Empty(t, cfg.Scheduler.Interpreter)
}

func TestValidateTrimsFields(t *testing.T) {
	cfg := &Config{}
	cfg.Scheduler.Bin = "  schtasks.exe  "
	cfg.Scheduler.Interpreter = " python "
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "schtasks.exe", cfg.Scheduler.Bin)
	assert.Equal(t, "python", cfg.Scheduler.Interpreter)
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = &Config{}
	cfg.Logging.Output = "syslog"
	assert.Error(t, cfg.Validate())

	cfg = &Config{}
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateFileOutputGetsDefaultPath(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Output = "file"
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Logging.File)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir() + "/does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, "schtasks", cfg.Scheduler.Bin)
}
