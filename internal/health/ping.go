package health

import "context"

// Pinger is implemented by memory store drivers that can check their
// connection without reading any memories. Ping returns nil when reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
