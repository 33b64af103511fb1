// Package workers runs the client's background jobs.
//
// A [Worker] blocks in Run until its context is cancelled. [Workers] runs a
// set of them side by side. The only job today is [SyncJob], the periodic
// begin-sync caller.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
