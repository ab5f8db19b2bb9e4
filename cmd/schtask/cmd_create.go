package main

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/vorpalvorpal/schtask/internal/schtasks"
)

var createHwd = &CreateRunner{}

type CreateRunner struct{}

func (r *CreateRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a scheduled task",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Task name, optionally folder-prefixed (Folder\\Task)",
			},
			&cli.StringFlag{
				Name:    "run",
				Aliases: []string{"r"},
				Usage:   "Script or executable the task will run",
			},
			&cli.StringFlag{
				Name:    "schedule",
				Aliases: []string{"s"},
				Usage:   "Schedule family: minute, hourly, daily, weekly, monthly, once, onstart, onlogon, onidle",
			},
			&cli.StringFlag{
				Name:  "interpreter",
				Usage: "Script interpreter (overrides the configured default)",
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
				Name:  "modifier",
				Usage: "Schedule modifier: repeat count, or FIRST/SECOND/THIRD/FOURTH/LAST/LASTDAY for monthly",
			},
			&cli.StringSliceFlag{
				Name:  "day",
				Usage: "Day of week (weekly/monthly ordinal) or day of month (monthly); repeatable",
			},
			&cli.StringSliceFlag{
				Name:  "month",
				Usage: "Month name or * wildcard; repeatable",
			},
			&cli.IntFlag{
				Name:  "idle-time",
				Usage: "Idle minutes before an on-idle task runs (1-999)",
			},
			&cli.StringFlag{
				Name:  "start-time",
				Usage: "Start time, 24-hour HH:MM",
			},
			&cli.StringFlag{
				Name:  "end-time",
				Usage: "End time, 24-hour HH:MM (mutually exclusive with --duration)",
			},
			&cli.StringFlag{
				Name:  "duration",
				Usage: "Run duration, HHHH:MM",
			},
			&cli.IntFlag{
				Name:  "interval",
				Usage: "Repetition interval in minutes (1-599940)",
			},
			&cli.StringFlag{
				Name:  "start-date",
				Usage: "Start date: YYYY/MM/DD, DD/MM/YYYY or YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "end-date",
				Usage: "End date: YYYY/MM/DD, DD/MM/YYYY or YYYY-MM-DD",
			},
			&cli.StringFlag{
				Name:  "run-level",
				Usage: "Privilege level: LIMITED or HIGHEST",
			},
			&cli.StringFlag{
				Name:  "run-as",
				Usage: "User account the task runs under",
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "Password for --run-as",
			},
			&cli.BoolFlag{
				Name:  "kill-at-duration-end",
				Usage: "Stop the task when the duration elapses",
			},
			&cli.BoolFlag{
				Name:  "delete-when-done",
				Usage: "Delete the task after its final run",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing task of the same name",
			},
			&cli.BoolFlag{
				Name:  "interactive-only",
				Usage: "Run only when the user is logged on",
			},
		},
		Action: r.run,
	}
}

func (r *CreateRunner) run(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.String("name"))
	if name == "" {
		return errors.New("--name is required")
	}
	target := strings.TrimSpace(cmd.String("run"))
	if target == "" {
		return errors.New("--run is required")
	}

	st, err := schtasks.ParseScheduleType(cmd.String("schedule"))
	if err != nil {
		return err
	}

	client, err := setup(cmd)
	if err != nil {
		return err
	}

	req := schtasks.CreateRequest{
		TaskName:          name,
		TaskRun:           target,
		Interpreter:       cmd.String("interpreter"),
		NoInterpreter:     cmd.Bool("no-interpreter"),
		ExecDir:           cmd.String("exec-dir"),
		Modifier:          cmd.String("modifier"),
		Days:              cmd.StringSlice("day"),
		Months:            cmd.StringSlice("month"),
		IdleTime:          int(cmd.Int("idle-time")),
		StartTime:         cmd.String("start-time"),
		EndTime:           cmd.String("end-time"),
		Duration:          cmd.String("duration"),
		Interval:          int(cmd.Int("interval")),
		StartDate:         cmd.String("start-date"),
		EndDate:           cmd.String("end-date"),
		RunLevel:          cmd.String("run-level"),
		RunAsUser:         cmd.String("run-as"),
		Password:          cmd.String("password"),
		KillAtDurationEnd: cmd.Bool("kill-at-duration-end"),
		DeleteWhenDone:    cmd.Bool("delete-when-done"),
		Force:             cmd.Bool("force"),
		InteractiveOnly:   cmd.Bool("interactive-only"),
	}

	switch st {
	case schtasks.ScheduleMinute:
		return client.CreateMinute(ctx, req)
	case schtasks.ScheduleHourly:
		return client.CreateHourly(ctx, req)
	case schtasks.ScheduleDaily:
		return client.CreateDaily(ctx, req)
	case schtasks.ScheduleWeekly:
		return client.CreateWeekly(ctx, req)
	case schtasks.ScheduleMonthly:
		return client.CreateMonthly(ctx, req)
	case schtasks.ScheduleOnce:
		return client.CreateOnce(ctx, req)
	case schtasks.ScheduleOnStart:
		return client.CreateOnStart(ctx, req)
	case schtasks.ScheduleOnLogon:
		return client.CreateOnLogon(ctx, req)
	case schtasks.ScheduleOnIdle:
		return client.CreateOnIdle(ctx, req)
	default:
		return errors.New("unsupported schedule family")
	}
}
