package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"ormtutor/internal/content"
	"ormtutor/internal/highlight"
	"ormtutor/internal/snippet"
)

// Labels shown on a snippet header.
const (
	copyHint    = "c copy"
	copiedLabel = "✓ Copied"
)

const (
	maxCardWidth = 100
	minCardWidth = 24
)

// page is a section laid out for the viewport.
type page struct {
	content string
	// snippetLines holds the line of each snippet header, in the order
	// of content.Section.Snippets.
	snippetLines []int
}

// layout renders sec at width. viewers must be in Snippets order; the
// one at focus is highlighted.
func (s *styles) layout(sec *content.Section, viewers []*snippet.Viewer, focus, width int, accent lipgloss.Color) page {
	var lines []string
	var p page

	width = max(width, minCardWidth)
	title := s.title.Foreground(accent).Render(sec.Title)
	if sec.Badge != "" {
		title += "  " + s.badge.Render(sec.Badge)
	}
	lines = append(lines, ansi.Truncate(title, width, "…"))
	if sec.Subtitle != "" {
		lines = append(lines, strings.Split(s.subtitle.Render(ansi.Wrap(sec.Subtitle, width, wrapBreakpoints)), "\n")...)
	}
	lines = append(lines, "")

	cardWidth := min(width, maxCardWidth)
	inner := cardWidth - 4 // border and padding

	next := 0
	for _, card := range sec.Cards {
		b := &cardBuilder{styles: s, width: inner, viewers: viewers, focus: focus, next: &next}
		b.header(card)
		b.blocks(card.Blocks)

		start := len(lines)
		rendered := s.card(card.Variant).Width(cardWidth - 2).Render(strings.Join(b.lines, "\n"))
		lines = append(lines, strings.Split(rendered, "\n")...)
		lines = append(lines, "")
		for _, at := range b.snippetAt {
			p.snippetLines = append(p.snippetLines, start+1+at)
		}
	}

	p.content = strings.Join(lines, "\n")
	return p
}

// cardBuilder accumulates the inner lines of one card. Every line it
// emits fits in width, so the card border never rewraps them and the
// recorded snippet positions stay exact.
type cardBuilder struct {
	styles  *styles
	width   int
	viewers []*snippet.Viewer
	focus   int
	next    *int // index of the next snippet in section order

	lines     []string
	snippetAt []int
}

func (b *cardBuilder) add(text string) {
	b.lines = append(b.lines, strings.Split(text, "\n")...)
}

func (b *cardBuilder) header(card content.Card) {
	title := b.styles.cardTitle.Render(card.Title)
	if card.Badge != "" {
		title += "  " + b.styles.badge.Render(card.Badge)
	}
	b.add(ansi.Truncate(title, b.width, "…"))
	if card.Description != "" {
		b.add(b.styles.faint.Render(b.styles.renderInline(card.Description, b.width)))
	}
}

func (b *cardBuilder) blocks(blocks []content.Block) {
	for _, block := range blocks {
		b.add("")
		switch block.Kind() {
		case content.KindHeading:
			b.add(b.styles.heading.Render(ansi.Wrap(block.Heading, b.width, wrapBreakpoints)))
		case content.KindParagraph:
			b.add(b.styles.renderInline(block.Paragraph, b.width))
		case content.KindList:
			for _, item := range block.List {
				b.listItem(item)
			}
		case content.KindSnippet:
			b.snippet(*block.Snippet)
		case content.KindColumns:
			// Columns stack vertically, left column first.
			for _, column := range block.Columns {
				b.blocks(column)
			}
		}
	}
}

func (b *cardBuilder) listItem(item string) {
	wrapped := strings.Split(b.styles.renderInline(item, b.width-2), "\n")
	for i, line := range wrapped {
		prefix := "  "
		if i == 0 {
			prefix = "• "
		}
		b.lines = append(b.lines, prefix+line)
	}
}

func (b *cardBuilder) snippet(sn content.Snippet) {
	index := *b.next
	*b.next++

	var viewer *snippet.Viewer
	if index < len(b.viewers) {
		viewer = b.viewers[index]
	}
	focused := index == b.focus

	var head []string
	if sn.Title != "" {
		head = append(head, b.styles.cardTitle.Render(sn.Title), b.styles.faint.Render(strings.ToUpper(sn.Lang())))
	}
	switch {
	case viewer != nil && viewer.Copied():
		head = append(head, b.styles.copied.Render(copiedLabel))
	case focused:
		head = append(head, b.styles.hint.Render(copyHint))
	}

	b.snippetAt = append(b.snippetAt, len(b.lines))
	b.lines = append(b.lines, ansi.Truncate(strings.Join(head, "  "), b.width, "…"))

	gutter := b.styles.gutter.Render("│ ")
	if focused {
		gutter = b.styles.focus.Render("┃ ")
	}
	for _, line := range highlight.ANSILines(sn.Code, sn.Lang(), b.styles.profile) {
		b.lines = append(b.lines, gutter+ansi.Truncate(line, b.width-2, "…"))
	}
}
