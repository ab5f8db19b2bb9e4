package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/vorpalvorpal/schtask/internal/config"
	"github.com/vorpalvorpal/schtask/internal/consts"
	"github.com/vorpalvorpal/schtask/internal/pkg/logs"
	"github.com/vorpalvorpal/schtask/internal/schtasks"
)

// setup loads the config, initialises logging and builds the scheduler
// client. Shared by every subcommand.
func setup(cmd *cli.Command) (*schtasks.Client, error) {
	path := strings.TrimSpace(cmd.String("config"))
	if path == "" {
		path = consts.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logOpts := logs.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}
	if cmd.Bool("debug") {
		logOpts.Level = "debug"
	}
	if err := logs.Init(logOpts); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	return schtasks.New(
		schtasks.WithBin(cfg.Scheduler.Bin),
		schtasks.WithInterpreter(cfg.Scheduler.Interpreter),
		schtasks.WithExecDir(cfg.Scheduler.ExecDir),
	), nil
}
