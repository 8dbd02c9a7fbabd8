package notify

import "context"

// Notifier represents a messaging sink that delivers plain-text alerts to a
// single fixed recipient.
type Notifier interface {
	// Send delivers one text message
	Send(ctx context.Context, text string) error
}
