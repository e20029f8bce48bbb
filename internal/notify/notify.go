// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify delivers short user-facing notices such as the
// "Code copied" toast. Delivery is fire-and-forget: a notifier never
// reports failure back to the caller.
package notify

import (
	"log/slog"
	"sync"
)

// Notice is one delivered notification.
type Notice struct {
	Title       string
	Description string
}

// Log writes notices to a structured logger at info level. A nil
// logger means slog.Default().
type Log struct {
	Logger *slog.Logger
}

// Notify implements the notifier contract.
func (l Log) Notify(title, description string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("notice", "title", title, "description", description)
}

// Func adapts a function to the notifier contract.
type Func func(title, description string)

// Notify calls f.
func (f Func) Notify(title, description string) {
	f(title, description)
}

// Discard drops every notice.
type Discard struct{}

// Notify does nothing.
func (Discard) Notify(string, string) {}

// Recorder keeps every notice in memory. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify appends the notice.
func (r *Recorder) Notify(title, description string) {
	r.mu.Lock()
	r.notices = append(r.notices, Notice{Title: title, Description: description})
	r.mu.Unlock()
}

// Notices returns a copy of the recorded notices.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Len returns the number of recorded notices.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notices)
}
