package ui

import "context"

// Gateway is the message channel between views and the host
type Gateway interface {
	Send(channel string, payload any)
	Invoke(ctx context.Context, channel string, payload any) (any, error)
}
