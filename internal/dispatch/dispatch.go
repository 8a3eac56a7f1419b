// Package dispatch hands composed order payloads to external messaging
// collaborators. The primary pathway is a device mail intent; a secondary
// SMS-style summary may go out through a separate notifier.
package dispatch

import "context"

// Message is a composed outbound order notification.
type Message struct {
	Subject string
	Body    string
	// Summary is a short SMS-style digest of the order.
	Summary string
}

// Dispatcher hands a message to an external messaging mechanism.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// Notifier sends a short secondary notification. Failures of the secondary
// channel never fail a submission.
type Notifier interface {
	Notify(ctx context.Context, summary string) error
}

// URLOpener is the device collaborator that opens intent URLs such as
// mailto: and sms:.
type URLOpener interface {
	// CanOpen reports whether a handler exists for the given URL.
	CanOpen(ctx context.Context, rawURL string) bool

	// Open hands the URL to its handler.
	Open(ctx context.Context, rawURL string) error
}

// FallbackInstructions is the alternate contact path presented when no
// messaging handler is available. Submission still completes; the user is
// asked to place the order directly.
func FallbackInstructions(merchantEmail, merchantPhone string) string {
	return "We're having trouble opening your email client. Please contact us directly to place your order:\n\n" +
		"Email: " + merchantEmail + "\n" +
		"Phone: " + merchantPhone + "\n\n" +
		"Or try again if you have an email app installed."
}
