package main

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/vorpalvorpal/schtask/internal/schtasks"
)

var changeHwd = &ChangeRunner{}

type ChangeRunner struct{}

func (r *ChangeRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "change",
		Usage: "Change fields of an existing scheduled task",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Task name",
			},
			&cli.StringFlag{
				Name:    "run",
				Aliases: []string{"r"},
				Usage:   "New script or executable for the task",
			},
			&cli.StringFlag{
				Name:  "interpreter",
				Usage: "Script interpreter for --run (overrides the configured default)",
			},
			&cli.BoolFlag{
				Name:  "no-interpreter",
				Usage: "Run the target directly, without an interpreter",
			},
			&cli.StringFlag{
				Name:  "exec-dir",
				Usage: "Directory the task command changes to before running",
			},
			&cli.StringFlag{
				Name:  "start-time",
				Usage: "New start time, 24-hour HH:MM",
			},
			&cli.StringFlag{
				Name:  "end-time",
				Usage: "New end time, 24-hour HH:MM (mutually exclusive with --duration)",
			},
			&cli.StringFlag{
				Name:  "duration",
				Usage: "New run duration, HHHH:MM",
			},
			&cli.IntFlag{
				Name:  "interval",
				Usage: "New repetition interval in minutes (1-599940)",
			},
			&cli.StringFlag{
				Name:  "start-date",
				Usage: "New start date",
			},
			&cli.StringFlag{
				Name:  "end-date",
				Usage: "New end date",
			},
			&cli.StringFlag{
				Name:  "run-level",
				Usage: "Privilege level: LIMITED or HIGHEST",
			},
			&cli.StringFlag{
				Name:  "run-as",
				Usage: "Reassign the task to this user account (prompts for a password unless the account is SYSTEM)",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "Password for --run-as (skips the prompt)",
			},
			&cli.BoolFlag{
				Name:  "enable",
				Usage: "Enable the task",
			},
			&cli.BoolFlag{
				Name:  "disable",
				Usage: "Disable the task",
			},
			&cli.BoolFlag{
				Name:  "interactive-only",
				Usage: "Run only when the user is logged on",
			},
		},
		Action: r.run,
	}
}

func (r *ChangeRunner) run(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.String("name"))
	if name == "" {
		return errors.New("--name is required")
	}
	if cmd.Bool("enable") && cmd.Bool("disable") {
		return errors.New("--enable and --disable are mutually exclusive")
	}

	client, err := setup(cmd)
	if err != nil {
		return err
	}

	opts := schtasks.ChangeOptions{
		TaskRun:         cmd.String("run"),
		Interpreter:     cmd.String("interpreter"),
		NoInterpreter:   cmd.Bool("no-interpreter"),
		ExecDir:         cmd.String("exec-dir"),
		StartTime:       cmd.String("start-time"),
		EndTime:         cmd.String("end-time"),
		Duration:        cmd.String("duration"),
		Interval:        int(cmd.Int("interval")),
		StartDate:       cmd.String("start-date"),
		EndDate:         cmd.String("end-date"),
		RunLevel:        cmd.String("run-level"),
		RunAsUser:       cmd.String("run-as"),
		Password:        cmd.String("password"),
		InteractiveOnly: cmd.Bool("interactive-only"),
	}
	if cmd.Bool("enable") || cmd.Bool("disable") {
		enable := cmd.Bool("enable")
		opts.Enable = &enable
	}

	return client.Change(ctx, name, opts)
}
