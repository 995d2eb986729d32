// Package logging builds the zap loggers used by the commands.
package logging

import "go.uber.org/zap"

// NewLogger returns a development logger (console, debug level) when debug
// is set, and a production logger (JSON, info level) otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
