package chat

import (
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventMessage    EventKind = "message"
	EventTyping     EventKind = "typing"
	EventTypingDone EventKind = "typing-done"
)

type Event struct {
	Kind    EventKind
	Message models.ChatMessage
	At      time.Time
}

// NewLocalMessage builds a message that exists only on this page, such as the
// echo of what the user typed or an autoresponder line.
func NewLocalMessage(sender models.Sender, text string, at time.Time) models.ChatMessage {
	return models.ChatMessage{
		ID:        models.ID(uuid.NewString()),
		Message:   text,
		Sender:    sender,
		Timestamp: at,
	}
}

// Schedule lays out an autoresponse: a typing indicator at start, the
// indicator cleared after typing, then one admin message every gap.
func Schedule(replies []string, start time.Time, typing, gap time.Duration) []Event {
	events := make([]Event, 0, len(replies)+2)
	events = append(events, Event{Kind: EventTyping, At: start})
	first := start.Add(typing)
	events = append(events, Event{Kind: EventTypingDone, At: first})
	for i, line := range replies {
		at := first.Add(time.Duration(i) * gap)
		events = append(events, Event{
			Kind:    EventMessage,
			Message: NewLocalMessage(models.SenderAdmin, line, at),
			At:      at,
		})
	}
	return events
}
