package server

import "context"

// Server is the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// RunServer serves until ctx is cancelled or a transport fails, then
	// shuts every transport down.
	RunServer(ctx context.Context) error

	// Shutdown drains in-flight requests until ctx expires.
	Shutdown(ctx context.Context) error
}
