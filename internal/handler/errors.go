package handler

import "errors"

var errNoTransports = errors.New("neither an HTTP nor a gRPC address is configured")
