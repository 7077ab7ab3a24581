// Package http implements the HTTP transport layer of the application.
//
// It maps method and path to resource and auth service calls, enforces the
// bearer token verdict before mutations and renders every result as JSON.
// Tracing, access logging, metrics, CORS, compression and language
// negotiation are handled by middleware before requests reach a handler.
package http
