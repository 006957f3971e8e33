// Package delivery holds the entry points that drive the usecases.
package delivery

import "context"

// Delivery is a long-running entry point started by the process and stopped through its lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
