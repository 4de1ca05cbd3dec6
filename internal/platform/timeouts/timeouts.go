// Package timeouts defines shared timeout constants used by the site service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 10 * time.Second

// TelemetryShutdown caps the flush of pending spans on exit.
const TelemetryShutdown = 5 * time.Second

// SessionSweep is the interval between idle wizard session purges.
const SessionSweep = 10 * time.Minute
