package schtasks

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner invokes the external scheduler binary and returns its combined
// stdout/stderr as lines. Injectable so tests and headless environments can
// substitute a stub.
type Runner interface {
	Run(ctx context.Context, bin string, args []string) ([]string, error)
}

type execRunner struct{}

// NewExecRunner returns the default os/exec-backed Runner.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, bin string, args []string) ([]string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	lines := splitLines(buf.String())
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, &CommandError{ExitCode: exitErr.ExitCode(), Output: lines}
		}
		return nil, fmt.Errorf("run %s: %w", bin, err)
	}
	return lines, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
