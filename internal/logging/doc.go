// Package logging provides structured diagnostic logging for calperm.
//
// This package wraps a zap logger with convenience functions. Diagnostics are
// silent unless a level is configured, so the interactive screens stay clean.
//
// # Log Levels
//
//   - Debug: remote call timings, workflow step transitions, log-file retries
//   - Info: session connect/disconnect, permission changes
//   - Warn: render warnings, failed remote calls
//   - Error: failures that end the session
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize(logging.Options{Level: "debug"}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// An empty level falls back to the CALPERM_LOG_LEVEL environment variable.
// Entries go to stderr unless OutputPath names a file.
//
// # Audit Log
//
// The permission audit trail is not written through this package: it is a
// plain-text file appended by the style renderer's log sink.
package logging
