package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

var stopHwd = &StopRunner{}

type StopRunner struct{}

func (r *StopRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "stop",
		Usage: "Stop a running task instance",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Task name",
			},
		},
		Action: r.run,
	}
}

func (r *StopRunner) run(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.String("name"))
	if name == "" {
		return errors.New("--name is required")
	}

	client, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := client.Stop(ctx, name); err != nil {
		return err
	}

	fmt.Printf("Stopped task %q\n", name)
	return nil
}
