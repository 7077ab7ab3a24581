// Package server owns the listeners of the REST API process.
//
// NewServer binds the HTTP listener serving the chi router and the gRPC
// listener serving grpc.health.v1. RunServer blocks until its context is
// cancelled or a transport fails, then drains both within shutdownTimeout.
package server
