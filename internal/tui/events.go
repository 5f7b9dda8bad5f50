package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/lumen/internal/tui/events"
)

// waitIdle delivers the next batch of idle callbacks as an idleMsg.
func (m *Model) waitIdle() tea.Cmd {
	if m.idle == nil {
		return nil
	}
	return func() tea.Msg {
		return idleMsg{fns: m.idle.Wait(m.ctx)}
	}
}

// runIdle runs callbacks posted from other goroutines. This is the only
// place the coordinator's renders reach the model.
func (m *Model) runIdle(msg idleMsg) tea.Cmd {
	for _, fn := range msg.fns {
		fn()
	}
	if m.ctx.Err() != nil {
		return nil
	}
	return m.waitIdle()
}

// listenForEvents listens for events from the event broker
func (m *Model) listenForEvents() tea.Cmd {
	if m.eventSub == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-m.eventSub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.StatusMessageEvent, events.ErrorMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			return m.statusBar.SetMessage(payload.Message, payload.Type)
		}

	case events.ExtensionRespondedEvent:
		if payload, ok := event.Payload.(events.ExtensionPayload); ok {
			m.statusBar.SetLeftContent(payload.Extension)
		}

	case events.ThemeChangedEvent:
		if payload, ok := event.Payload.(events.ThemePayload); ok {
			return m.switchTheme(payload.Name)
		}
	}
	return nil
}

func (m *Model) switchTheme(name string) tea.Cmd {
	m.applyTheme(m.themes.Current(name))
	if m.settings != nil {
		if err := m.settings.Set("theme-name", m.theme.Name()); err != nil {
			m.logger.Error("Failed to save theme", "error", err)
			return m.statusBar.SetMessage(fmt.Sprintf("Failed to save theme: %v", err), events.StatusError)
		}
	}
	return m.statusBar.SetMessage("Theme: "+m.theme.DisplayName(), events.StatusInfo)
}
