package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"ormtutor/internal/content"
	"ormtutor/internal/section"
)

// accents gives every tab its own color.
var accents = section.Views[lipgloss.Color]{
	Theory:   "39",
	Setup:    "42",
	CRUD:     "214",
	Advanced: "170",
}

// variantBorders colors card borders by variant.
var variantBorders = map[content.Variant]lipgloss.Color{
	content.VariantDefault: "240",
	content.VariantPrimary: "39",
	content.VariantAccent:  "170",
}

// styles is the palette bound to one color profile. Rendering through
// a dedicated renderer keeps output stable when stdout is not a TTY.
type styles struct {
	renderer *lipgloss.Renderer
	profile  termenv.Profile

	tab       lipgloss.Style
	activeTab lipgloss.Style
	title     lipgloss.Style
	subtitle  lipgloss.Style
	badge     lipgloss.Style
	cardTitle lipgloss.Style
	heading   lipgloss.Style
	faint     lipgloss.Style
	code      lipgloss.Style
	copied    lipgloss.Style
	hint      lipgloss.Style
	gutter    lipgloss.Style
	focus     lipgloss.Style
	toast     lipgloss.Style
	errorText lipgloss.Style
}

func newStyles(profile termenv.Profile) *styles {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	return &styles{
		renderer:  r,
		profile:   profile,
		tab:       r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		activeTab: r.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		title:     r.NewStyle().Bold(true),
		subtitle:  r.NewStyle().Foreground(lipgloss.Color("250")),
		badge:     r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
		cardTitle: r.NewStyle().Bold(true),
		heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		faint:     r.NewStyle().Faint(true),
		code:      r.NewStyle().Foreground(lipgloss.Color("215")),
		copied:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		hint:      r.NewStyle().Foreground(lipgloss.Color("245")),
		gutter:    r.NewStyle().Foreground(lipgloss.Color("238")),
		focus:     r.NewStyle().Foreground(lipgloss.Color("39")),
		toast:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		errorText: r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func (s *styles) card(v content.Variant) lipgloss.Style {
	return s.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(variantBorders[v.OrDefault()]).
		Padding(0, 1)
}
