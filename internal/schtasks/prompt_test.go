package schtasks

import (
	"errors"
	"os"
	"testing"

	"golang.org/x/term"
)

func TestTerminalPrompterFailsFastWithoutTTY(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("test requires a non-interactive stdin")
	}

	p := NewTerminalPrompter()

	_, err := p.Confirm("Delete task?")
	var ierr *InteractivityError
	if !errors.As(err, &ierr) {
		t.Fatalf("Confirm: expected *InteractivityError, got %v", err)
	}

	_, err = p.Secret("Password")
	if !errors.As(err, &ierr) {
		t.Fatalf("Secret: expected *InteractivityError, got %v", err)
	}
}
