// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a servable transport (HTTP server, worker, ...). Serve blocks
// until the delivery stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
