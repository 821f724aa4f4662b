// Package timeouts defines shared timeout constants used across binaries.
package timeouts

import "time"

// Shutdown limits how long a binary waits for telemetry to flush on exit.
const Shutdown = 5 * time.Second

// SQLiteBusy is how long a SQLite connection waits on a locked database.
const SQLiteBusy = 5 * time.Second
