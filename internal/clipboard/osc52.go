// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Mode selects how the OSC 52 sequence is framed for the terminal
// multiplexer in between.
type Mode int

const (
	// ModeDirect sends the bare sequence.
	ModeDirect Mode = iota
	// ModeTmux sends a tmux DCS passthrough copy followed by the bare
	// sequence, covering both allow-passthrough and set-clipboard
	// configurations. Duplicate sets are harmless.
	ModeTmux
	// ModeScreen sends a GNU screen DCS copy followed by the bare sequence.
	ModeScreen
)

// DetectMode picks a Mode from the environment. TMUX is set inside a
// local tmux; a tmux or screen TERM also shows up when the session is
// forwarded over SSH.
func DetectMode(getenv func(string) string) Mode {
	termName := getenv("TERM")
	switch {
	case getenv("TMUX") != "",
		strings.HasPrefix(termName, "tmux"):
		return ModeTmux
	case getenv("STY") != "":
		return ModeScreen
	case strings.HasPrefix(termName, "screen"):
		return ModeTmux
	}
	return ModeDirect
}

// OSC52 writes clipboard sequences to an output stream. The sequence is
// invisible so it is safe to interleave with a TUI renderer.
type OSC52 struct {
	mu   sync.Mutex
	out  io.Writer
	mode Mode
}

// NewOSC52 returns a clipboard writing to out.
func NewOSC52(out io.Writer, mode Mode) *OSC52 {
	return &OSC52{out: out, mode: mode}
}

// Write sends text verbatim, base64 encoded inside the sequence.
func (c *OSC52) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seq := osc52.New(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.mode {
	case ModeTmux:
		if _, err := seq.Tmux().WriteTo(c.out); err != nil {
			return fmt.Errorf("osc52 tmux passthrough: %w", err)
		}
	case ModeScreen:
		if _, err := seq.Screen().WriteTo(c.out); err != nil {
			return fmt.Errorf("osc52 screen passthrough: %w", err)
		}
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

// Terminal copies through the controlling terminal. The terminal is
// opened for each write, bypassing whatever owns stdout.
type Terminal struct {
	// Path is the terminal device, "/dev/tty" by default.
	Path string
	Mode Mode
}

// NewTerminal returns a Terminal for the controlling terminal with the
// mode detected from the process environment.
func NewTerminal() *Terminal {
	return &Terminal{Path: "/dev/tty", Mode: DetectMode(os.Getenv)}
}

// Write implements the clipboard contract. It fails with ErrUnavailable
// when there is no controlling terminal.
func (t *Terminal) Write(ctx context.Context, text string) error {
	path := t.Path
	if path == "" {
		path = "/dev/tty"
	}
	tty, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer tty.Close()

	if !term.IsTerminal(int(tty.Fd())) {
		return fmt.Errorf("%w: %s is not a terminal", ErrUnavailable, path)
	}
	return NewOSC52(tty, t.Mode).Write(ctx, text)
}
