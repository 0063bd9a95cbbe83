// Package greeter answers everything outside an active registration dialog:
// the greeting commands and the unknown-input fallback. Stateless by design.
package greeter

import "gatepass/internal/gateway"

const (
	startText = "Hello! I can register your vehicle for a campus gate pass. " +
		"Send /register to begin."
	helpText = `Available commands:
/register - Register a vehicle for a gate pass
/cancel - Abort an in-progress registration
/help - Show this help menu
/about - Learn more about this bot`
	aboutText = "I collect vehicle gate pass registrations and file them with " +
		"the campus security office."
	fallbackText = "I don't understand that. Type /help for options."
)

type Greeter struct{}

func New() *Greeter {
	return &Greeter{}
}

// Reply picks the canned response for an event that no dialog claimed.
func (g *Greeter) Reply(ev gateway.Event) string {
	if ev.Kind != gateway.KindCommand {
		return fallbackText
	}
	switch ev.Command {
	case "start":
		return startText
	case "help":
		return helpText
	case "about":
		return aboutText
	default:
		return fallbackText
	}
}
