// Package telegram implements the gateway contract over the Telegram Bot API.
// Inbound delivery is long-polling by default; setting a webhook URL switches
// to push delivery through WebhookHandler. The event contract is identical in
// both modes.
package telegram

import (
	"context"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gatepass/internal/gateway"
)

type Gateway struct {
	bot        *tgbotapi.BotAPI
	webhookURL string
	log        *slog.Logger

	// pushed carries updates received over the webhook.
	pushed chan tgbotapi.Update
}

// New authenticates against the Bot API. A non-empty webhookURL registers a
// webhook with Telegram and disables long-polling.
func New(token, webhookURL string, log *slog.Logger) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		bot:        bot,
		webhookURL: webhookURL,
		log:        log,
		pushed:     make(chan tgbotapi.Update, 64),
	}

	if webhookURL != "" {
		wh, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			return nil, err
		}
		if _, err := bot.Request(wh); err != nil {
			return nil, err
		}
	} else {
		// Drop any stale webhook so long-polling receives updates.
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			return nil, err
		}
	}

	log.Info("telegram gateway ready",
		"bot", bot.Self.UserName,
		"webhook", webhookURL != "")
	return g, nil
}

// Events returns the inbound event stream for the configured delivery mode.
func (g *Gateway) Events(ctx context.Context) <-chan gateway.Event {
	var updates <-chan tgbotapi.Update
	if g.webhookURL != "" {
		updates = g.pushed
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updates = g.bot.GetUpdatesChan(u)
	}

	out := make(chan gateway.Event, 16)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				g.bot.StopReceivingUpdates()
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				if ev, ok := fromUpdate(upd); ok {
					out <- ev
				}
			}
		}
	}()
	return out
}

// WebhookHandler decodes updates Telegram posts to the webhook URL and feeds
// them into the event stream. Mount it only in webhook mode.
func (g *Gateway) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upd, err := g.bot.HandleUpdate(r)
		if err != nil {
			g.log.Warn("bad webhook update", "err", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		select {
		case g.pushed <- *upd:
		default:
			// Telegram retries on non-2xx, so shed load instead of blocking
			// the webhook worker.
			g.log.Warn("webhook queue full, dropping update", "update_id", upd.UpdateID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

// Send delivers a plain-text reply.
func (g *Gateway) Send(_ context.Context, userID int64, text string) error {
	_, err := g.bot.Send(tgbotapi.NewMessage(userID, text))
	return err
}

// fromUpdate normalizes a Telegram update into a gateway event. Non-message
// updates (edits, inline queries) are ignored.
func fromUpdate(upd tgbotapi.Update) (gateway.Event, bool) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return gateway.Event{}, false
	}

	ev := gateway.Event{UserID: msg.Chat.ID}
	switch {
	case msg.IsCommand():
		ev.Kind = gateway.KindCommand
		ev.Command = msg.Command()
		ev.Text = msg.CommandArguments()
	case msg.Document != nil:
		ev.Kind = gateway.KindDocument
		ev.FileRef = msg.Document.FileID
		ev.FileName = msg.Document.FileName
		ev.Text = msg.Caption
	default:
		ev.Kind = gateway.KindText
		ev.Text = msg.Text
	}
	return ev, true
}
