// Package server wires the HTTP surface of the curation service: the
// gorilla/mux router, request logging, and the stores the endpoint
// handlers depend on.
package server
