package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/vorpalvorpal/schtask/internal/pkg/logs"
)

func main() {
	cmd := &cli.Command{
		Name:  "schtask",
		Usage: "Create and manage Windows scheduled tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the config file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			createHwd.cmd(),
			changeHwd.cmd(),
			queryHwd.cmd(),
			runHwd.cmd(),
			stopHwd.cmd(),
			deleteHwd.cmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logs.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
