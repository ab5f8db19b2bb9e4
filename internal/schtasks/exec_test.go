package schtasks

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestExecRunnerCapturesOutput(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skipf("echo not found in PATH: %v", err)
	}

	r := NewExecRunner()
	lines, err := r.Run(context.Background(), "echo", []string{"hello-from-runner"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "hello-from-runner") {
		t.Fatalf("unexpected output: %+v", lines)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell exit-code test is unix-focused")
	}

	r := NewExecRunner()
	_, err := r.Run(context.Background(), "sh", []string{"-c", "echo boom; exit 3"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T: %v", err, err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", cmdErr.ExitCode)
	}
	if len(cmdErr.Output) == 0 || !strings.Contains(cmdErr.Output[0], "boom") {
		t.Errorf("captured output missing diagnostics: %+v", cmdErr.Output)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := NewExecRunner()
	_, err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz", nil)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		t.Fatalf("start failure should not be a CommandError: %v", err)
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one\n", 1},
		{"one\r\ntwo\r\n", 2},
		{"one\ntwo\nthree", 3},
	}
	for _, c := range cases {
		got := splitLines(c.in)
		if len(got) != c.want {
			t.Errorf("splitLines(%q) = %d lines, want %d", c.in, len(got), c.want)
		}
	}
}
