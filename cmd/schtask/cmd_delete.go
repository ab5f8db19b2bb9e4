package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/vorpalvorpal/schtask/internal/schtasks"
)

var deleteHwd = &DeleteRunner{}

type DeleteRunner struct{}

func (r *DeleteRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a scheduled task",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Task name",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Delete even if the task is currently running",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.run,
	}
}

func (r *DeleteRunner) run(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.String("name"))
	if name == "" {
		return errors.New("--name is required")
	}

	client, err := setup(cmd)
	if err != nil {
		return err
	}

	deleted, err := client.Delete(ctx, name, schtasks.DeleteOptions{
		Force:   cmd.Bool("force"),
		Confirm: !cmd.Bool("yes"),
	})
	if err != nil {
		return err
	}

	if deleted {
		fmt.Printf("Deleted task %q\n", name)
	} else {
		fmt.Println("Aborted")
	}
	return nil
}
