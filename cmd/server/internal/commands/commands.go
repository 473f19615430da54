package commands

import (
	"net/http"
	"time"
)

type Globals struct {
	Debug   bool
	Version string
}

// configureHTTPServer builds the http.Server; the bound address comes from
// the listener handed to Serve, never from the server itself.
func configureHTTPServer(handler http.Handler) *http.Server {
	// Conversions are CPU-only and fast, so the timeouts are tight.
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
