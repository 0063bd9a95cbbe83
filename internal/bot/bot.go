// Package bot runs the inbound event loop: the registration engine gets
// first claim on every event, and whatever it declines falls through to the
// stateless greeter.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"gatepass/internal/gateway"
	"gatepass/internal/registration/engine"
)

// Responder is the greeter's contract: a canned reply for events outside any
// dialog.
type Responder interface {
	Reply(ev gateway.Event) string
}

type Bot struct {
	gw     gateway.Gateway
	engine *engine.Engine
	greet  Responder
	log    *slog.Logger
	queues *userQueues
}

func New(gw gateway.Gateway, eng *engine.Engine, greet Responder, log *slog.Logger) *Bot {
	return &Bot{
		gw:     gw,
		engine: eng,
		greet:  greet,
		log:    log,
		queues: newUserQueues(),
	}
}

// Run consumes the gateway's event stream until ctx is cancelled. Events for
// different users are handled in parallel; events for the same user go
// through a single-threaded per-user queue, so they apply in arrival order
// and a draft is never read-modify-written by two overlapping events.
func (b *Bot) Run(ctx context.Context) error {
	events := b.gw.Events(ctx)

	for ev := range events {
		b.queues.Enqueue(ctx, ev, b.dispatch)
	}
	b.queues.Close()
	return ctx.Err()
}

func (b *Bot) dispatch(ctx context.Context, ev gateway.Event) {
	reply, err := b.engine.Handle(ctx, ev)
	if errors.Is(err, engine.ErrNoDialog) {
		reply = b.greet.Reply(ev)
	} else if err != nil {
		b.log.Error("handle event failed", "user_id", ev.UserID, "err", err)
		return
	}
	if reply == "" {
		return
	}
	if err := b.gw.Send(ctx, ev.UserID, reply); err != nil {
		b.log.Error("send reply failed", "user_id", ev.UserID, "err", err)
	}
}
