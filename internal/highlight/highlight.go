// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package highlight colors snippet code with Chroma, as inline-styled
// HTML for the site and as ANSI for the terminal browser. Highlighting
// is display only; copied text always comes from the raw snippet.
package highlight

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
)

// Style is the Chroma style used everywhere.
const Style = "monokai"

const reset = "\x1b[0m"

var htmlFormatter = chromahtml.New(
	chromahtml.WithClasses(false),
	chromahtml.PreventSurroundingPre(true),
)

func lexerFor(language string) chroma.Lexer {
	l := lexers.Get(language)
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

func style() *chroma.Style {
	s := styles.Get(Style)
	if s == nil {
		return styles.Fallback
	}
	return s
}

// HTML returns code as inline-styled spans, meant to be wrapped in
// <pre><code>. Unknown languages are emitted without coloring.
func HTML(code, language string) (template.HTML, error) {
	it, err := lexerFor(language).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", language, err)
	}
	var buf bytes.Buffer
	if err := htmlFormatter.Format(&buf, style(), it); err != nil {
		return "", fmt.Errorf("format %s: %w", language, err)
	}
	return template.HTML(buf.String()), nil
}

// formatterName maps a terminal color profile to a Chroma formatter.
// Ascii gets no formatter.
func formatterName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

// ANSILines returns code split into exactly as many lines as it has,
// each colored for profile and terminated with a reset so that styles
// never bleed across lines. On any error the plain lines are returned.
func ANSILines(code, language string, profile termenv.Profile) []string {
	plain := strings.Split(code, "\n")

	name := formatterName(profile)
	if name == "" {
		return plain
	}
	f := formatters.Get(name)
	if f == nil {
		return plain
	}
	it, err := lexerFor(language).Tokenise(nil, code)
	if err != nil {
		return plain
	}
	var buf strings.Builder
	if err := f.Format(&buf, style(), it); err != nil {
		return plain
	}

	colored := strings.Split(buf.String(), "\n")
	if len(colored) < len(plain) {
		return plain
	}
	// Lexers may append a newline; drop whatever follows the last real line.
	colored = colored[:len(plain)]
	for i, line := range colored {
		colored[i] = line + reset
	}
	return colored
}
