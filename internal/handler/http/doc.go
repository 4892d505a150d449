// Package http implements the JSON transport layer of the microblog server.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Request tracing, access logging, panic recovery, response
// compression, and bearer authentication are handled in this package before
// requests are delegated to the service layer.
package http
