package models

import "context"

// Notifier sends the emails that follow a successful subscription.
// Each method reports success and never returns an error: failures are logged
// by the implementation and turned into false.
type Notifier interface {
	NotifyOperator(ctx context.Context, subscriberEmail string) bool
	SendWelcome(ctx context.Context, subscriberEmail string) bool
}

// DigestNotifier sends the periodic operator summary of new subscribers.
type DigestNotifier interface {
	SendDigest(ctx context.Context, subscribers []Subscriber) bool
}
