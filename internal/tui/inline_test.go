package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestRenderInline(t *testing.T) {
	s := newStyles(termenv.Ascii)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Plain words", "Plain words"},
		{"code span", "Call `session.commit()` last", "Call session.commit() last"},
		{"emphasis", "This is **important** and *subtle*", "This is important and subtle"},
		{"link", "See [the docs](https://docs.sqlalchemy.org)", "See the docs"},
		{"typographer", `A "quoted" word`, "A “quoted” word"},
		{"soft break", "first\nsecond", "first second"},
		{"strikethrough", "~~old~~ new", "old new"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(s.renderInline(tt.in, 0))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderInlineWraps(t *testing.T) {
	s := newStyles(termenv.Ascii)
	in := strings.Repeat("SQLAlchemy maps Python classes to tables. ", 6)

	out := s.renderInline(in, 30)
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", out)
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > 30 {
			t.Errorf("line %q is %d columns wide", line, w)
		}
	}
}
