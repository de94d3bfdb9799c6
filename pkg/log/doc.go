/*
Package log provides structured logging for RunClawd using zerolog.

The log package wraps the zerolog library with a global logger, console or
JSON output, and component-scoped child loggers. All status logging goes to
stderr so that stdout stays reserved for the result banner, which operators
may want to capture or pipe.

# Usage

	log.Init(log.Config{Level: log.InfoLevel})

	logger := log.WithComponent("stack")
	logger.Info().Str("service", "gateway").Msg("bringing up stack")
*/
package log
