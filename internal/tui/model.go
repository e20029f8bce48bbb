// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tui is the terminal browser for the tutorial: a tab bar over
// the four sections, a scrolling viewport with the selected section,
// and per-snippet copy through the terminal clipboard.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"ormtutor/internal/clock"
	"ormtutor/internal/content"
	"ormtutor/internal/notify"
	"ormtutor/internal/section"
	"ormtutor/internal/snippet"
)

// toastDelay is how long the copy notice stays in the footer.
const toastDelay = snippet.FeedbackWindow

// headerHeight covers the tab bar and the rule below it.
const headerHeight = 2

// Options configures a Model.
type Options struct {
	Source    content.Source
	Clipboard snippet.Clipboard
	Initial   section.ID      // invalid values start on the default tab
	Clock     clock.Clock     // drives the copied window; real when nil
	Profile   termenv.Profile // color profile for all output
	Logger    *slog.Logger
}

// sectionLoadedMsg carries a section fetched by loadSection.
type sectionLoadedMsg struct {
	id      section.ID
	section *content.Section
	err     error
}

// copyStateMsg is sent when any viewer's copied flag flips.
type copyStateMsg struct{}

// toastMsg shows a notice in the footer.
type toastMsg struct {
	notice notify.Notice
}

// toastFadeMsg clears the notice shown by toast number gen.
type toastFadeMsg struct {
	gen int
}

// bus delivers events raised outside the Update loop (timer callbacks
// and notifier calls) back into it.
type bus struct {
	events chan tea.Msg
	done   chan struct{}
	once   sync.Once
}

func newBus() *bus {
	return &bus{events: make(chan tea.Msg, 16), done: make(chan struct{})}
}

func (b *bus) send(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.done:
	}
}

func (b *bus) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bus) close() {
	b.once.Do(func() { close(b.done) })
}

// Model is the bubbletea model of the terminal browser.
type Model struct {
	keys      KeyMap
	source    content.Source
	clipboard snippet.Clipboard
	clock     clock.Clock
	logger    *slog.Logger
	styles    *styles
	bus       *bus

	router  section.Router
	section *content.Section
	loadErr error
	viewers []*snippet.Viewer
	focus   int
	lines   []int

	viewport viewport.Model
	help     help.Model
	width    int
	height   int
	ready    bool

	toast    *notify.Notice
	toastGen int
}

// New creates a browser model positioned on opts.Initial.
func New(opts Options) Model {
	if !opts.Initial.Valid() {
		opts.Initial = section.Default
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return Model{
		keys:      DefaultKeyMap,
		source:    opts.Source,
		clipboard: opts.Clipboard,
		clock:     opts.Clock,
		logger:    opts.Logger,
		styles:    newStyles(opts.Profile),
		bus:       newBus(),
		router:    section.NewRouter(opts.Initial),
		viewport:  viewport.New(0, 0),
		help:      help.New(),
	}
}

// Current returns the selected section.
func (m Model) Current() section.ID {
	return m.router.Current()
}

// Close cancels all pending copy timers and stops event delivery.
func (m Model) Close() {
	m.closeViewers()
	m.bus.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSection(m.router.Current()), m.bus.wait())
}

func (m Model) loadSection(id section.ID) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		sec, err := src.Section(context.Background(), id)
		return sectionLoadedMsg{id: id, section: sec, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.resize()
		m.refresh()

	case sectionLoadedMsg:
		if msg.id != m.router.Current() {
			return m, nil
		}
		m.closeViewers()
		m.section, m.loadErr, m.viewers, m.focus = msg.section, msg.err, nil, 0
		if msg.err != nil {
			m.logger.Error("load section failed", "section", msg.id.String(), "error", msg.err)
		} else {
			m.viewers = m.newViewers(msg.section)
		}
		m.viewport.GotoTop()
		m.refresh()

	case copyStateMsg:
		m.refresh()
		return m, m.bus.wait()

	case toastMsg:
		m.toastGen++
		notice := msg.notice
		m.toast = &notice
		gen := m.toastGen
		return m, tea.Batch(m.bus.wait(), tea.Tick(toastDelay, func(time.Time) tea.Msg {
			return toastFadeMsg{gen: gen}
		}))

	case toastFadeMsg:
		if msg.gen == m.toastGen {
			m.toast = nil
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if changed, ok := m.selectSection(msg); ok {
		return m.switched(changed)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextSnippet):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.PrevSnippet):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyFocused()

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

// selectSection applies a tab key. ok is false when msg is not one.
func (m *Model) selectSection(msg tea.KeyMsg) (changed, ok bool) {
	switch {
	case key.Matches(msg, m.keys.NextSection):
		return m.router.Next(), true
	case key.Matches(msg, m.keys.PrevSection):
		return m.router.Prev(), true
	case key.Matches(msg, m.keys.Theory):
		return m.router.Select(section.Theory), true
	case key.Matches(msg, m.keys.Setup):
		return m.router.Select(section.Setup), true
	case key.Matches(msg, m.keys.CRUD):
		return m.router.Select(section.CRUD), true
	case key.Matches(msg, m.keys.Advanced):
		return m.router.Select(section.Advanced), true
	}
	return false, false
}

// switched starts loading the current section when the tab changed.
// The old viewers are closed at once so no stale feedback fires.
func (m Model) switched(changed bool) (tea.Model, tea.Cmd) {
	if !changed {
		return m, nil
	}
	m.closeViewers()
	m.section, m.loadErr, m.viewers, m.focus, m.lines = nil, nil, nil, 0, nil
	m.refresh()
	return m, m.loadSection(m.router.Current())
}

func (m Model) newViewers(sec *content.Section) []*snippet.Viewer {
	b := m.bus
	notifier := notify.Func(func(title, description string) {
		b.send(toastMsg{notice: notify.Notice{Title: title, Description: description}})
	})
	onChange := snippet.OnChange(func(bool) { b.send(copyStateMsg{}) })

	snippets := sec.Snippets()
	viewers := make([]*snippet.Viewer, len(snippets))
	for i, sn := range snippets {
		viewers[i] = snippet.New(sn, m.clipboard,
			snippet.WithClock(m.clock),
			snippet.WithNotifier(notifier),
			snippet.WithLogger(m.logger),
			onChange,
		)
	}
	return viewers
}

func (m Model) closeViewers() {
	for _, v := range m.viewers {
		v.Close()
	}
}

// copyFocused copies the focused snippet off the Update loop, since
// the clipboard write touches the terminal.
func (m Model) copyFocused() tea.Cmd {
	if m.focus < 0 || m.focus >= len(m.viewers) {
		return nil
	}
	v := m.viewers[m.focus]
	return func() tea.Msg {
		v.Copy(context.Background())
		return nil
	}
}

func (m *Model) moveFocus(delta int) {
	n := len(m.viewers)
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
	m.refresh()
	m.scrollToFocus()
}

// scrollToFocus brings the focused snippet header into view.
func (m *Model) scrollToFocus() {
	if m.focus >= len(m.lines) {
		return
	}
	line := m.lines[m.focus]
	top := m.viewport.YOffset
	if line < top || line >= top+m.viewport.Height-3 {
		m.viewport.SetYOffset(max(line-1, 0))
	}
}

func (m *Model) footer() string {
	var toast string
	if m.toast != nil {
		toast = m.styles.toast.Render(m.toast.Title) + "  " + m.toast.Description
	}
	return toast + "\n" + m.help.View(m.keys)
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-headerHeight-lipgloss.Height(m.footer()), 1)
}

// refresh re-renders the section into the viewport, keeping the scroll
// position.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	offset := m.viewport.YOffset
	switch {
	case m.loadErr != nil:
		m.viewport.SetContent(m.styles.errorText.Render("Could not load this section: " + m.loadErr.Error()))
		m.lines = nil
	case m.section == nil:
		m.viewport.SetContent(m.styles.faint.Render("Loading…"))
		m.lines = nil
	default:
		p := m.styles.layout(m.section, m.viewers, m.focus, m.width, accents.For(m.router.Current()))
		m.viewport.SetContent(p.content)
		m.lines = p.snippetLines
	}
	m.viewport.SetYOffset(offset)
}

func (m Model) tabs() string {
	var tabs []string
	current := m.router.Current()
	for _, id := range section.All() {
		if id == current {
			tabs = append(tabs, m.styles.activeTab.Foreground(accents.For(id)).Render(id.Label()))
		} else {
			tabs = append(tabs, m.styles.tab.Render(id.Label()))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return bar + "\n" + m.styles.gutter.Render(strings.Repeat("─", max(m.width, 1)))
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}
	return m.tabs() + "\n" + m.viewport.View() + "\n" + m.footer()
}
