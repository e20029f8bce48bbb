package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

func TestHTMLEscapesCode(t *testing.T) {
	out, err := HTML(`print("<b>&</b>")`, "python")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	s := string(out)
	if strings.Contains(s, "<b>") {
		t.Errorf("raw markup leaked into output: %s", s)
	}
	if !strings.Contains(s, "&lt;b&gt;") {
		t.Errorf("expected escaped markup in %s", s)
	}
	if strings.Contains(s, "<pre") {
		t.Errorf("formatter should not wrap in <pre>: %s", s)
	}
	if !strings.Contains(s, "style=") {
		t.Errorf("expected inline styles: %s", s)
	}
}

func TestHTMLUnknownLanguage(t *testing.T) {
	out, err := HTML("whatever goes", "no-such-language")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(string(out), "whatever goes") {
		t.Errorf("code missing from %s", out)
	}
}

func TestANSILinesKeepText(t *testing.T) {
	code := "def get_db():\n    db = SessionLocal()\n\n    return db"
	want := strings.Split(code, "\n")

	for _, p := range []termenv.Profile{termenv.TrueColor, termenv.ANSI256, termenv.ANSI, termenv.Ascii} {
		lines := ANSILines(code, "python", p)
		if len(lines) != len(want) {
			t.Fatalf("profile %v: %d lines, want %d", p, len(lines), len(want))
		}
		for i := range want {
			if got := ansi.Strip(lines[i]); got != want[i] {
				t.Errorf("profile %v line %d = %q, want %q", p, i, got, want[i])
			}
		}
	}
}

func TestANSILinesColorsOnlyWhenSupported(t *testing.T) {
	if lines := ANSILines("x = 1", "python", termenv.Ascii); strings.Contains(lines[0], "\x1b[") {
		t.Errorf("ascii profile produced escapes: %q", lines[0])
	}
	if lines := ANSILines("x = 1", "python", termenv.TrueColor); !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("truecolor profile produced no escapes: %q", lines[0])
	}
}
