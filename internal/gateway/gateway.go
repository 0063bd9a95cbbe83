// Package gateway defines the messaging-platform contract the rest of the bot
// is written against. The engine never sees Telegram types; it consumes Events
// and emits plain-text replies, so delivery can be long-poll or webhook.
package gateway

import (
	"context"
	"io"
)

// Kind classifies an inbound event.
type Kind int

const (
	KindText Kind = iota
	KindCommand
	KindDocument
)

// Event is one inbound user message, normalized across delivery modes.
type Event struct {
	UserID int64
	Kind   Kind

	// Text carries the message body for KindText, or the caption for
	// KindDocument.
	Text string

	// Command is the bare command name ("register", not "/register") for
	// KindCommand events.
	Command string

	// FileRef is the platform file handle for KindDocument events.
	FileRef string

	// FileName is the original filename if the platform supplied one.
	FileName string
}

// Gateway delivers inbound events and accepts outbound replies.
type Gateway interface {
	// Events returns the inbound stream. The channel closes when ctx is
	// cancelled or the underlying transport shuts down.
	Events(ctx context.Context) <-chan Event

	// Send delivers a plain-text reply to the user.
	Send(ctx context.Context, userID int64, text string) error
}

// FileSource resolves a platform file reference into a byte stream. The
// caller owns closing the stream.
type FileSource interface {
	Open(ctx context.Context, fileRef string) (io.ReadCloser, error)
}
