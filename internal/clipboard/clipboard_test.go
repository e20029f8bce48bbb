package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSC52EncodesExactText(t *testing.T) {
	texts := []string{
		"",
		"print('hi')",
		"line one\nline two\n\n",
		"tabs\tand \"quotes\" <tags> & ümlauts 🚀",
	}
	for _, text := range texts {
		var buf bytes.Buffer
		if err := NewOSC52(&buf, ModeDirect).Write(context.Background(), text); err != nil {
			t.Fatalf("Write(%q): %v", text, err)
		}
		want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\x07"
		if buf.String() != want {
			t.Errorf("Write(%q) wrote %q, want %q", text, buf.String(), want)
		}
	}
}

func TestOSC52TmuxWritesPassthroughAndDirect(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOSC52(&buf, ModeTmux).Write(context.Background(), "x"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\x1bPtmux;") {
		t.Errorf("missing tmux passthrough prefix: %q", out)
	}
	direct := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("x")) + "\x07"
	if !strings.HasSuffix(out, direct) {
		t.Errorf("missing direct sequence: %q", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestOSC52PropagatesWriteError(t *testing.T) {
	if err := NewOSC52(failingWriter{}, ModeDirect).Write(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestOSC52CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := NewOSC52(&buf, ModeDirect).Write(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q after cancellation", buf.String())
	}
}

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Mode
	}{
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, ModeDirect},
		{"local tmux", map[string]string{"TMUX": "/tmp/tmux-0/default,1,0", "TERM": "xterm"}, ModeTmux},
		{"forwarded tmux", map[string]string{"TERM": "tmux-256color"}, ModeTmux},
		{"forwarded screen term", map[string]string{"TERM": "screen-256color"}, ModeTmux},
		{"gnu screen", map[string]string{"STY": "1234.pts-0", "TERM": "screen"}, ModeScreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectMode(func(k string) string { return tt.env[k] })
			if got != tt.want {
				t.Errorf("DetectMode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTerminalNotATerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-tty")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	err := (&Terminal{Path: path}).Write(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestTerminalMissingDevice(t *testing.T) {
	err := (&Terminal{Path: filepath.Join(t.TempDir(), "missing")}).Write(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestMemory(t *testing.T) {
	var m Memory
	if err := m.Write(context.Background(), "a\nb"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if m.Text() != "a\nb" || m.Writes() != 1 {
		t.Errorf("Text=%q Writes=%d", m.Text(), m.Writes())
	}

	denied := errors.New("denied")
	m.SetErr(denied)
	if err := m.Write(context.Background(), "c"); !errors.Is(err, denied) {
		t.Errorf("err = %v, want denied", err)
	}
	if m.Text() != "a\nb" || m.Writes() != 1 {
		t.Errorf("failed write changed state: Text=%q Writes=%d", m.Text(), m.Writes())
	}
}

func TestUnavailable(t *testing.T) {
	if err := (Unavailable{}).Write(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
