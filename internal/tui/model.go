// Package tui is the launcher window: a query input, the result list, a
// markdown preview of the selected result and a status bar.
//
// The Model is also the deferred.UI sink. Other goroutines never call it
// directly; they post to the events.IdleQueue and the model runs those
// callbacks from Update.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/lumen/internal/async"
	"github.com/billie-coop/lumen/internal/deferred"
	"github.com/billie-coop/lumen/internal/logging"
	"github.com/billie-coop/lumen/internal/result"
	"github.com/billie-coop/lumen/internal/theme"
	"github.com/billie-coop/lumen/internal/tui/components/input"
	"github.com/billie-coop/lumen/internal/tui/components/preview"
	"github.com/billie-coop/lumen/internal/tui/components/results"
	"github.com/billie-coop/lumen/internal/tui/components/status"
	"github.com/billie-coop/lumen/internal/tui/events"
)

// QueryTracker is told whenever the query text changes.
type QueryTracker interface {
	OnQueryChanged()
}

// QueryRunner sends a query to the extensions. It reports false when no
// extension takes it.
type QueryRunner interface {
	Query(raw string) (*async.Handle, bool)
}

// SettingsWriter persists a setting.
type SettingsWriter interface {
	Set(key, value string) error
}

// Options configure the window.
type Options struct {
	Idle        *events.IdleQueue
	Broker      *events.Broker
	Themes      *theme.Registry
	ThemeName   string
	Settings    SettingsWriter
	ShowPreview bool
	StartHidden bool
	MaxResults  int
	Logger      logging.Logger
}

const (
	minPreviewWidth = 70
	titleHeight     = 1
	inputHeight     = 3
	statusHeight    = 1
)

// Model is the root bubbletea model.
type Model struct {
	ctx context.Context

	width  int
	height int

	// Components
	input     *input.Model
	results   *results.Model
	preview   *preview.Model
	statusBar *status.Component
	keys      KeyMap

	// Query plumbing, set by Connect
	tracker QueryTracker
	runner  QueryRunner

	// Event system
	idle     *events.IdleQueue
	broker   *events.Broker
	eventSub <-chan events.Event

	themes   *theme.Registry
	theme    *theme.Theme
	settings SettingsWriter
	logger   logging.Logger

	showPreview bool
	hidden      bool
}

var _ deferred.UI = (*Model)(nil)

// New creates the window. Callbacks posted to opts.Idle run until ctx is
// done.
func New(ctx context.Context, opts Options) *Model {
	if opts.Themes == nil {
		opts.Themes = theme.NewRegistry()
	}
	if opts.Broker == nil {
		opts.Broker = events.NewBroker()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOp()
	}

	t := opts.Themes.Current(opts.ThemeName)
	m := &Model{
		ctx:         ctx,
		input:       input.New(t.Styles()),
		results:     results.New(t.Styles(), opts.MaxResults),
		preview:     preview.New(t),
		statusBar:   status.New(t.Styles()),
		keys:        DefaultKeyMap(),
		idle:        opts.Idle,
		broker:      opts.Broker,
		themes:      opts.Themes,
		theme:       t,
		settings:    opts.Settings,
		logger:      opts.Logger,
		showPreview: opts.ShowPreview,
		hidden:      opts.StartHidden,
	}

	m.eventSub = m.broker.Subscribe(
		events.StatusMessageEvent,
		events.ErrorMessageEvent,
		events.ExtensionRespondedEvent,
		events.ThemeChangedEvent,
	)
	m.statusBar.SetLeftContent("esc hide · ctrl+t theme · ctrl+c quit")
	return m
}

// Connect wires the coordinator and the extension host. Both need the
// model to exist first.
func (m *Model) Connect(tracker QueryTracker, runner QueryRunner) {
	m.tracker = tracker
	m.runner = runner
}

// Render implements deferred.UI.
func (m *Model) Render(items []result.Item) {
	m.results.SetItems(items)
	m.syncPreview()
}

// HideAndClearInput implements deferred.UI.
func (m *Model) HideAndClearInput() {
	m.input.Reset()
	m.results.SetQuery("")
	m.results.Clear()
	m.preview.SetContent("")
	m.hidden = true
	m.broker.Publish(events.Event{Type: events.WindowHiddenEvent})
}

// Hidden reports whether the window is hidden.
func (m *Model) Hidden() bool {
	return m.hidden
}

// Init starts the spinner, the idle queue and the event listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.results.Init(),
		m.waitIdle(),
		m.listenForEvents(),
	)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case idleMsg:
		return m, m.runIdle(msg)

	case events.Event:
		return m, tea.Batch(m.handleEvent(msg), m.listenForEvents())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case results.ActivateMsg:
		return m, m.activate(msg.Item)

	case activatedMsg:
		if msg.err != nil {
			m.logger.Error("Failed to open result", "result", msg.name, "error", msg.err)
			return m, m.statusBar.SetMessage(msg.err.Error(), events.StatusError)
		}
		if m.tracker != nil {
			m.tracker.OnQueryChanged()
		}
		m.HideAndClearInput()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	cmds = append(cmds, cmd)
	m.statusBar, cmd = m.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.hidden {
		// Any key brings the window back
		m.hidden = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Hide):
		if m.tracker != nil {
			m.tracker.OnQueryChanged()
		}
		m.HideAndClearInput()
		return nil
	case key.Matches(msg, m.keys.NextTheme):
		m.broker.Publish(events.Event{
			Type:    events.ThemeChangedEvent,
			Payload: events.ThemePayload{Name: m.nextTheme()},
		})
		return nil
	}

	before := m.results.SelectedIndex()
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	if cmd != nil || m.results.SelectedIndex() != before {
		m.syncPreview()
		return cmd
	}

	query := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != query {
		m.onQueryChanged(m.input.Value())
	}
	return cmd
}

// onQueryChanged forgets the request in flight and starts a new one.
// Results stay on screen until the new answer or its placeholder arrives.
func (m *Model) onQueryChanged(query string) {
	m.results.SetQuery(query)
	if m.tracker != nil {
		m.tracker.OnQueryChanged()
	}
	m.broker.Publish(events.Event{
		Type:    events.QueryChangedEvent,
		Payload: events.QueryPayload{Query: query},
	})

	if m.runner != nil {
		if _, ok := m.runner.Query(query); ok {
			return
		}
	}
	m.results.Clear()
	m.syncPreview()
}

func (m *Model) activate(item result.Item) tea.Cmd {
	if item.OnEnter == nil {
		return nil
	}
	fn, name := item.OnEnter, item.Name
	return func() tea.Msg {
		return activatedMsg{name: name, err: fn()}
	}
}

func (m *Model) nextTheme() string {
	names := m.themes.Names()
	if len(names) == 0 {
		return m.theme.Name()
	}
	for i, name := range names {
		if name == m.theme.Name() {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

func (m *Model) applyTheme(t *theme.Theme) {
	m.theme = t
	styles := t.Styles()
	m.input.SetStyles(styles)
	m.results.SetStyles(styles)
	m.statusBar.SetStyles(styles)
	m.preview.SetTheme(t)
}

func (m *Model) syncPreview() {
	item, ok := m.results.Selected()
	if !ok {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(item.Description)
}

func (m *Model) previewVisible() bool {
	return m.showPreview && m.width >= minPreviewWidth
}

func (m *Model) resize() {
	listWidth := m.width
	if m.previewVisible() {
		listWidth = m.width * 3 / 5
	}
	bodyHeight := max(m.height-titleHeight-inputHeight-statusHeight, 1)

	m.input.SetSize(m.width)
	m.results.SetSize(listWidth, bodyHeight)
	m.preview.SetSize(m.width-listWidth-1, bodyHeight)
	m.statusBar.SetSize(m.width)
}

// View renders the window
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.hidden {
		return m.theme.Styles().Subtle.Render("lumen is hidden, press any key to show it")
	}

	body := m.results.View()
	if m.previewVisible() {
		if pv := m.preview.View(); pv != "" {
			list := lipgloss.NewStyle().Width(m.width * 3 / 5).Render(body)
			body = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", pv)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title("lumen"),
		m.input.View(),
		body,
		m.statusBar.View(),
	)
}
