package events

import "context"

// NoopPublisher discards all events. The server uses it when no NATS URL
// is configured, so callers never need a nil check.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, _ string, _ any) error { return nil }

func (NoopPublisher) Close() error { return nil }
