package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/vorpalvorpal/schtask/internal/schtasks"
)

var queryHwd = &QueryRunner{}

type QueryRunner struct{}

func (r *QueryRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "List scheduled tasks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show the full field set instead of name/next run/status",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit records as JSON",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Only show tasks whose name starts with this prefix",
			},
		},
		Action: r.run,
	}
}

func (r *QueryRunner) run(ctx context.Context, cmd *cli.Command) error {
	client, err := setup(cmd)
	if err != nil {
		return err
	}

	records, err := client.Query(ctx, schtasks.QueryOptions{
		Verbose: cmd.Bool("verbose"),
		Prefix:  cmd.String("prefix"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		raw, err := sonic.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
		fmt.Println(string(raw))
		return nil
	}

	if cmd.Bool("verbose") {
		printVerbose(records)
		return nil
	}
	printCompact(records)
	return nil
}

var headerColor = color.New(color.Bold)

func printCompact(records []schtasks.TaskRecord) {
	headerColor.Printf("%-50s %-24s %s\n", "TASK", "NEXT RUN", "STATUS")
	for _, rec := range records {
		fmt.Printf("%-50s %-24s %s\n", rec["task_name"], rec["next_run_time"], rec["status"])
	}
}

func printVerbose(records []schtasks.TaskRecord) {
	for i, rec := range records {
		if i > 0 {
			fmt.Println()
		}
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, rec[k])
		}
	}
}
