package models

import "context"

// Sink delivers one notification to a batch of channel tokens. A sink is
// invoked at most once per poll cycle per platform group; delivery is best
// effort and failures are not retried.
type Sink interface {
	Send(ctx context.Context, tokens []string, title, body string) error
}

// APIServer is the administration HTTP surface in front of the watcher.
type APIServer interface {
	Start()
	Shutdown() error
}
