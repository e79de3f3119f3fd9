package server

// Server defines the lifecycle contract of the API server.
//
// RunServer blocks until a stop signal arrives or the listener fails.
// Shutdown may be called from another goroutine to stop serving early.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
