package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
)

func TestColorEnabledNeedsTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")

	if ColorEnabled(&bytes.Buffer{}) {
		t.Fatalf("expected no color for a buffer")
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	defer f.Close()
	if ColorEnabled(f) {
		t.Fatalf("expected no color for a regular file")
	}
	if IsInteractive(f) {
		t.Fatalf("expected a regular file not to be interactive")
	}
}

func TestColorEnabledRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if ColorEnabled(os.Stdout) {
		t.Fatalf("expected NO_COLOR to disable color")
	}
}

func TestColorEnabledForTerminal(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("open pty: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")
	if !ColorEnabled(tty) {
		t.Fatalf("expected color for a terminal")
	}
	if !IsInteractive(tty) {
		t.Fatalf("expected a terminal to be interactive")
	}

	t.Setenv("TERM", "dumb")
	if ColorEnabled(tty) {
		t.Fatalf("expected TERM=dumb to disable color")
	}
}
