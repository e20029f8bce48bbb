// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the tutorial site.
// It supports full-page and HTMX partial rendering, detecting the
// request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"ormtutor/internal/content"
	"ormtutor/internal/highlight"
	"ormtutor/internal/markdown"
	"ormtutor/internal/section"
	"ormtutor/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds everything the site templates need for one section.
type PageData struct {
	Tabs    []content.Tab    // Navigation bar, in tab order
	Active  section.ID       // Selected tab
	Section *content.Section // Content of the selected tab
}

// CardView is a card with its fragment anchor.
type CardView struct {
	content.Card
	Anchor string
}

// Cards returns the cards of the selected section with anchors that
// are unique within the page.
func (p *PageData) Cards() []CardView {
	if p.Section == nil {
		return nil
	}
	var anchors slug.Set
	out := make([]CardView, len(p.Section.Cards))
	for i, c := range p.Section.Cards {
		out[i] = CardView{Card: c, Anchor: anchors.Unique(c.Title)}
	}
	return out
}

// Renderer executes the site templates.
type Renderer struct {
	tmpl *template.Template
}

// icons maps the curriculum icon names to glyphs. Unknown names render
// nothing.
var icons = map[string]string{
	"alert":    "⚠",
	"book":     "📖",
	"check":    "✔",
	"code":     "⌨",
	"database": "🗄",
	"file":     "📄",
	"link":     "🔗",
	"package":  "📦",
	"play":     "▶",
	"rotate":   "⟳",
	"settings": "⚙",
	"shield":   "🛡",
	"target":   "◎",
	"zap":      "⚡",
}

// Icon returns the glyph for a curriculum icon name.
func Icon(name string) string {
	return icons[name]
}

// New parses the embedded templates. When devMode is true, the base
// layout loads HTMX unminified.
func New(devMode bool) (*Renderer, error) {
	funcMap := template.FuncMap{
		"isDev":     func() bool { return devMode },
		"icon":      Icon,
		"upper":     strings.ToUpper,
		"inline":    markdown.Inline,
		"highlight": highlight.HTML,
		"b64":       func(code string) string { return base64.StdEncoding.EncodeToString([]byte(code)) },
		"kind":      func(b content.Block) string { return b.Kind().String() },
		"variant":   func(v content.Variant) string { return string(v.OrDefault()) },
		"sameTab":   func(a, b section.ID) bool { return a == b },
	}

	tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the full page, or only the "content" block when
// fragment is true.
func (rn *Renderer) Render(data *PageData, fragment bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.Write(&buf, data, fragment); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write is Render into w. Partial output may have been written when it
// fails.
func (rn *Renderer) Write(w io.Writer, data *PageData, fragment bool) error {
	name := "base.html"
	if fragment {
		name = "content"
	}
	if err := rn.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s for %s: %w", name, data.Active, err)
	}
	return nil
}

// IsHTMX reports whether r wants the content fragment: an HTMX request
// that is not a history restore. On a history-cache miss htmx swaps the
// response into <body>, so restores must get the full page.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" &&
		r.Header.Get("HX-History-Restore-Request") != "true"
}
