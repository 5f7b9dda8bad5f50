package events

// EventType identifies the type of event
type EventType string

const wildcard EventType = "*"

const (
	// Query events
	QueryChangedEvent   EventType = "query.changed"
	QuerySubmittedEvent EventType = "query.submitted"

	// Extension events
	ExtensionRespondedEvent EventType = "extension.responded"
	ExtensionFailedEvent    EventType = "extension.failed"

	// UI events
	StatusMessageEvent EventType = "ui.status"
	ErrorMessageEvent  EventType = "ui.error"
	WindowHiddenEvent  EventType = "ui.window.hidden"
	ThemeChangedEvent  EventType = "ui.theme.changed"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// StatusKind classifies a status line message.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
	StatusSuccess StatusKind = "success"
)

// Event payload types

type QueryPayload struct {
	Query string
}

type ExtensionPayload struct {
	Extension string
	Query     string
	Err       error
}

type StatusMessagePayload struct {
	Message string
	Type    StatusKind
}

type ThemePayload struct {
	Name string
}
