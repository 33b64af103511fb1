package server

import "context"

// Server defines the lifecycle contract of the hosts managed by this
// package.
type Server interface {
	// RunServer listens on every configured address and blocks until ctx is
	// cancelled, a stop signal arrives or a server fails. Servers are shut
	// down before it returns.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops all servers.
	Shutdown()
}
