package server

import "errors"

var (
	// errNoListeners means neither SERVER_ADDRESS nor SERVER_GRPC_ADDRESS is set.
	errNoListeners = errors.New("no listen address configured")
	// errMissingHandler means an address is set but its transport handler is nil.
	errMissingHandler = errors.New("address configured without a handler")
)
