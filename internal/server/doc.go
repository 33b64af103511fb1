// Package server runs the dispatch hosts.
//
// It starts the HTTP and gRPC servers that are configured, waits for a stop
// signal or context cancellation, and shuts every started server down
// gracefully.
package server
