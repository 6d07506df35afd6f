// Package log provides the structured logging facade used across the
// Lulu client.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Output is produced by a
// Formatter (text or JSON) and written to one or more Outputs.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("feed"), log.Str("feed", "sales"))
//	l.Info("subscription open", log.Str("url", url))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, supporting
// JSON or text formatting. To capture standard library logs emitted by
// third-party code (e.g. Pebble), use RedirectStdLog.
package log
