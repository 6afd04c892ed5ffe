package offload

import "github.com/rs/zerolog"

// Event represents a scheduler lifecycle event.
// Minimal and stable: name + component and optional fields via key/values.
type Event struct {
	Name      string
	Component string
	Fields    map[string]any
}

// Publisher receives events from the scheduler. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type Publisher interface {
	Publish(Event)
}

// NopPublisher drops events. It is the default when no publisher is
// configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// LogPublisher forwards scheduler events to a structured logger at debug
// level.
type LogPublisher struct {
	Log zerolog.Logger
}

func (p LogPublisher) Publish(e Event) {
	ev := p.Log.Debug().Str("event", e.Name)
	if e.Component != "" {
		ev = ev.Str("component", e.Component)
	}
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Msg("scheduler event")
}
