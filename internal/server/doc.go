// Package server wires and runs the HTTP transport of the microblog server,
// including startup and graceful shutdown.
package server
