// Package logger provides a structured logging interface for pexelsdl.
//
// It wraps zerolog behind a small Logger interface supporting leveled
// messages and structured fields. Console output is written to stderr so that
// user-facing status lines on stdout are not interleaved with log records.
//
//	logger.Initialize(&cfg.Logging)
//	logger.WithField("query", "cats").Info("search started")
//
// TestLogger records every message in memory for assertions in tests.
package logger
