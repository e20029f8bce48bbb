// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package snippet implements the copy behavior of a code snippet: write
// the literal code to a clipboard, show "copied" feedback for a fixed
// window, and notify the reader once per successful copy.
package snippet

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ormtutor/internal/clock"
	"ormtutor/internal/content"
	"ormtutor/internal/notify"
)

// FeedbackWindow is how long Copied stays true after a successful copy.
const FeedbackWindow = 2000 * time.Millisecond

// Notification sent after every successful copy.
const (
	NotifyTitle       = "Code copied"
	NotifyDescription = "The code has been copied to the clipboard"
)

// Clipboard receives copied text. Implementations live in the
// clipboard package.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// Notifier delivers a short notice. Delivery is fire-and-forget.
type Notifier interface {
	Notify(title, description string)
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithClock sets the clock that drives the feedback window.
func WithClock(c clock.Clock) Option {
	return func(v *Viewer) { v.clock = c }
}

// WithNotifier sets where copy notices go. The default logs them.
func WithNotifier(n Notifier) Option {
	return func(v *Viewer) { v.notifier = n }
}

// WithLogger sets the logger used for copy failures.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// OnChange registers fn to be called on every transition of Copied.
// It runs outside the viewer's lock, possibly on a timer goroutine.
func OnChange(fn func(copied bool)) Option {
	return func(v *Viewer) { v.onChange = fn }
}

// Viewer is one rendered snippet with its own copy state. Viewers do
// not share state; each owns at most one pending reset timer.
type Viewer struct {
	snippet   content.Snippet
	clipboard Clipboard
	notifier  Notifier
	clock     clock.Clock
	logger    *slog.Logger
	onChange  func(bool)

	mu     sync.Mutex
	copied bool
	gen    uint64 // bumped on every copy and on Close; stale timers compare against it
	timer  *clock.Timer
	closed bool
}

// New returns an idle viewer for s that copies into cb.
func New(s content.Snippet, cb Clipboard, opts ...Option) *Viewer {
	v := &Viewer{
		snippet:   s,
		clipboard: cb,
		clock:     clock.Real(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.notifier == nil {
		v.notifier = notify.Log{Logger: v.logger}
	}
	return v
}

// Snippet returns the snippet being shown.
func (v *Viewer) Snippet() content.Snippet {
	return v.snippet
}

// Copied reports whether a copy succeeded less than FeedbackWindow ago.
func (v *Viewer) Copied() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copied
}

// Copy writes the snippet code verbatim to the clipboard. On success it
// sets Copied, restarts the feedback window and sends one notice. On
// failure nothing changes and nothing is shown; the error is only
// logged at debug level. Copy after Close, or one whose write finishes
// after Close, reports false and sends no notice.
func (v *Viewer) Copy(ctx context.Context) bool {
	v.mu.Lock()
	closed := v.closed
	v.mu.Unlock()
	if closed {
		return false
	}

	if err := v.clipboard.Write(ctx, v.snippet.Code); err != nil {
		v.logger.Debug("copy to clipboard failed",
			"language", v.snippet.Lang(),
			"title", v.snippet.Title,
			"error", err,
		)
		return false
	}

	v.mu.Lock()
	if v.closed {
		// Closed while the write was in flight: the panel is gone.
		v.mu.Unlock()
		return false
	}
	v.timer.Stop()
	v.gen++
	gen := v.gen
	changed := !v.copied
	v.copied = true
	v.timer = v.clock.AfterFunc(FeedbackWindow, func() { v.expire(gen) })
	v.mu.Unlock()

	if changed && v.onChange != nil {
		v.onChange(true)
	}
	v.notifier.Notify(NotifyTitle, NotifyDescription)
	return true
}

// expire ends the feedback window started by copy number gen. A timer
// that lost a race with Stop finds a newer generation and does nothing.
func (v *Viewer) expire(gen uint64) {
	v.mu.Lock()
	if v.closed || gen != v.gen || !v.copied {
		v.mu.Unlock()
		return
	}
	v.copied = false
	v.timer = nil
	v.mu.Unlock()

	if v.onChange != nil {
		v.onChange(false)
	}
}

// Close cancels the pending reset, if any. It is safe to call more
// than once.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.gen++
	v.timer.Stop()
	v.timer = nil
}
