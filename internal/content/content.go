// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content holds the tutorial curriculum: the document model for
// a section (cards made of headings, prose, lists and code snippets) and
// the embedded YAML documents that fill it.
package content

import (
	"errors"

	"ormtutor/internal/section"
)

// ErrNotFound is returned when a source has no document for a section.
var ErrNotFound = errors.New("content: section not found")

// DefaultLanguage is the snippet language used when none is given.
const DefaultLanguage = "plain"

// Variant selects the visual emphasis of a card.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantPrimary Variant = "primary"
	VariantAccent  Variant = "accent"
)

// Valid reports whether v is a known variant. The empty string counts
// as the default.
func (v Variant) Valid() bool {
	switch v {
	case "", VariantDefault, VariantPrimary, VariantAccent:
		return true
	}
	return false
}

// OrDefault returns v, or VariantDefault when v is empty.
func (v Variant) OrDefault() Variant {
	if v == "" {
		return VariantDefault
	}
	return v
}

// Section is the complete content of one tab.
type Section struct {
	ID       section.ID `yaml:"id" json:"id"`
	Icon     string     `yaml:"icon,omitempty" json:"icon,omitempty"`
	Title    string     `yaml:"title" json:"title"`
	Subtitle string     `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Badge    string     `yaml:"badge,omitempty" json:"badge,omitempty"`
	Cards    []Card     `yaml:"cards" json:"cards"`
}

// Card is a titled panel inside a section.
type Card struct {
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Icon        string  `yaml:"icon,omitempty" json:"icon,omitempty"`
	Variant     Variant `yaml:"variant,omitempty" json:"variant,omitempty"`
	Badge       string  `yaml:"badge,omitempty" json:"badge,omitempty"`
	Blocks      []Block `yaml:"blocks" json:"blocks"`
}

// BlockKind tells which field of a Block is populated.
type BlockKind int

const (
	KindInvalid BlockKind = iota
	KindHeading
	KindParagraph
	KindList
	KindSnippet
	KindColumns
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindList:
		return "list"
	case KindSnippet:
		return "snippet"
	case KindColumns:
		return "columns"
	default:
		return "invalid"
	}
}

// Block is one element of a card body. Exactly one field is set.
// Paragraph and list items are inline markdown.
type Block struct {
	Heading   string    `yaml:"heading,omitempty" json:"heading,omitempty"`
	Paragraph string    `yaml:"paragraph,omitempty" json:"paragraph,omitempty"`
	List      []string  `yaml:"list,omitempty" json:"list,omitempty"`
	Snippet   *Snippet  `yaml:"snippet,omitempty" json:"snippet,omitempty"`
	Columns   [][]Block `yaml:"columns,omitempty" json:"columns,omitempty"`
}

// Kind returns the populated field, or KindInvalid when zero or more
// than one field is set.
func (b Block) Kind() BlockKind {
	kind, n := KindInvalid, 0
	if b.Heading != "" {
		kind, n = KindHeading, n+1
	}
	if b.Paragraph != "" {
		kind, n = KindParagraph, n+1
	}
	if len(b.List) > 0 {
		kind, n = KindList, n+1
	}
	if b.Snippet != nil {
		kind, n = KindSnippet, n+1
	}
	if len(b.Columns) > 0 {
		kind, n = KindColumns, n+1
	}
	if n != 1 {
		return KindInvalid
	}
	return kind
}

// Snippet is a read-only code sample. Code is copied verbatim; it is
// never trimmed or escaped.
type Snippet struct {
	Code     string `yaml:"code" json:"code"`
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Lang returns the snippet language, or DefaultLanguage when unset.
func (s Snippet) Lang() string {
	if s.Language == "" {
		return DefaultLanguage
	}
	return s.Language
}

// Snippets returns every snippet of the section in reading order,
// descending into columns left to right.
func (s *Section) Snippets() []Snippet {
	var out []Snippet
	for _, c := range s.Cards {
		out = appendSnippets(out, c.Blocks)
	}
	return out
}

func appendSnippets(out []Snippet, blocks []Block) []Snippet {
	for _, b := range blocks {
		switch b.Kind() {
		case KindSnippet:
			out = append(out, *b.Snippet)
		case KindColumns:
			for _, col := range b.Columns {
				out = appendSnippets(out, col)
			}
		}
	}
	return out
}

// Tab is the navigation entry for a section.
type Tab struct {
	ID    section.ID `json:"id"`
	Label string     `json:"label"`
	Icon  string     `json:"icon,omitempty"`
}

// Tab returns the navigation entry for s.
func (s *Section) Tab() Tab {
	return Tab{ID: s.ID, Label: s.ID.Label(), Icon: s.Icon}
}
