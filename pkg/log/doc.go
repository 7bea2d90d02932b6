// Package log provides the structured logging facade used across the
// events-platform codebase.
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Construct loggers explicitly and
// pass them via dependency injection; there is no package-level default.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("server"))
//	l.Info("server started", log.Str("http", ":8080"))
//
// Use ApplyConfig to build a logger from a declarative Config (text or JSON
// formatting). RedirectStdLog routes standard library log output, such as
// Pebble's, through a Logger.
package log
