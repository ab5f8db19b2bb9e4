package schtasks

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter is the interactive-terminal capability used for delete
// confirmation and hidden credential entry. Headless environments inject a
// stub; the default implementation fails fast when stdin is not a terminal.
type Prompter interface {
	Confirm(prompt string) (bool, error)
	Secret(prompt string) (string, error)
}

type terminalPrompter struct {
	in  *os.File
	out io.Writer
}

// NewTerminalPrompter returns a Prompter backed by the process terminal.
func NewTerminalPrompter() Prompter {
	return &terminalPrompter{in: os.Stdin, out: os.Stderr}
}

func (p *terminalPrompter) interactive() bool {
	return term.IsTerminal(int(p.in.Fd()))
}

func (p *terminalPrompter) Confirm(prompt string) (bool, error) {
	if !p.interactive() {
		return false, &InteractivityError{Op: "confirmation"}
	}

	fmt.Fprintf(p.out, "%s [y/n]: ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *terminalPrompter) Secret(prompt string) (string, error) {
	if !p.interactive() {
		return "", &InteractivityError{Op: "credential entry"}
	}

	fmt.Fprintf(p.out, "%s: ", prompt)
	secret, err := term.ReadPassword(int(p.in.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return string(secret), nil
}
