// Package notify delivers application status notifications from the
// persisted outbox.
package notify

import "context"

type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
	HTML    string
}

// EmailSender is any service that can deliver a rendered message.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}
