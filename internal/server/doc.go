// Package server runs the library API over HTTP or HTTPS.
//
// It owns the listener lifecycle: TLS setup when HTTPS mode is enabled,
// the start-up log lines, signal handling and graceful shutdown.
package server
