// Package workers provides background workers of the microblog server
// and a Workers aggregate that starts them in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations spawn their own goroutines and stop
// once ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
