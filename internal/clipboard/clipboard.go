// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package clipboard provides the backends a snippet viewer copies into:
// the system clipboard through the OSC 52 terminal escape sequence, an
// in-memory clipboard for tests and headless runs, and a backend that
// always refuses.
package clipboard

import (
	"context"
	"errors"
	"sync"
)

// ErrUnavailable is returned when no clipboard can be reached, for
// example when output is not attached to a terminal.
var ErrUnavailable = errors.New("clipboard: unavailable")

// Memory is an in-memory clipboard. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

// Write stores text, or returns the error set with SetErr.
func (m *Memory) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.text = text
	m.writes++
	return nil
}

// Text returns the last text written.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// SetErr makes subsequent writes fail with err. Pass nil to recover.
func (m *Memory) SetErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Unavailable is a clipboard that always fails with ErrUnavailable.
type Unavailable struct{}

// Write implements the clipboard contract.
func (Unavailable) Write(context.Context, string) error {
	return ErrUnavailable
}
