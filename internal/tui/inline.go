package tui

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"ormtutor/internal/markdown"
)

// wrapBreakpoints are the extra characters ansi.Wrap may break after.
const wrapBreakpoints = " ,.;-+|"

// inlineRenderer turns the inline markdown used in paragraphs and list
// items into styled terminal text. It walks the same AST the HTML side
// renders, so emphasis and code spans agree between the two.
type inlineRenderer struct {
	styles *styles
	source []byte
	out    strings.Builder

	bold   int
	italic int
	strike int
	link   int
}

// renderInline renders src and wraps it to width columns.
func (s *styles) renderInline(src string, width int) string {
	r := &inlineRenderer{styles: s, source: []byte(src)}
	doc := markdown.Parser().Parse(text.NewReader(r.source))
	ast.Walk(doc, r.walk)

	out := strings.TrimRight(r.out.String(), "\n")
	if width > 0 {
		out = ansi.Wrap(out, width, wrapBreakpoints)
	}
	return out
}

func (r *inlineRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if !entering && n.NextSibling() != nil {
			r.out.WriteString("\n")
		}

	case *ast.Emphasis:
		delta := -1
		if entering {
			delta = 1
		}
		if n.Level >= 2 {
			r.bold += delta
		} else {
			r.italic += delta
		}

	case *ast.Link:
		if entering {
			r.link++
		} else {
			r.link--
		}

	case *ast.CodeSpan:
		if entering {
			var code strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					code.Write(t.Segment.Value(r.source))
				}
			}
			r.out.WriteString(r.styles.code.Render(code.String()))
		}
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			r.link++
			r.write(string(n.URL(r.source)))
			r.link--
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			r.write(string(n.Segment.Value(r.source)))
			switch {
			case n.HardLineBreak():
				r.out.WriteString("\n")
			case n.SoftLineBreak():
				r.out.WriteString(" ")
			}
		}

	case *ast.String:
		if entering {
			r.write(html.UnescapeString(string(n.Value)))
		}

	case *extast.Strikethrough:
		if entering {
			r.strike++
		} else {
			r.strike--
		}

	case *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (r *inlineRenderer) write(s string) {
	if s == "" {
		return
	}
	if r.bold == 0 && r.italic == 0 && r.strike == 0 && r.link == 0 {
		r.out.WriteString(s)
		return
	}
	style := r.styles.renderer.NewStyle().
		Bold(r.bold > 0).
		Italic(r.italic > 0).
		Strikethrough(r.strike > 0).
		Underline(r.link > 0)
	r.out.WriteString(style.Render(s))
}
