// Package log wraps tacusci/logging behind replaceable function variables
package log

import "github.com/tacusci/logging/v2"

// Debug logs a formatted message at debug level
var Debug = func(format string, a ...interface{}) {
	logging.Debug(format, a...) //nolint
}

// Info logs a formatted message at info level
var Info = func(format string, a ...interface{}) {
	logging.Info(format, a...) //nolint
}

// Warn logs a formatted message at warning level
var Warn = func(format string, a ...interface{}) {
	logging.Warn(format, a...) //nolint
}

// Error logs a formatted message at error level
var Error = func(format string, a ...interface{}) {
	logging.Error(format, a...) //nolint
}

// Fatal logs a formatted message and exits the program
var Fatal = func(format string, a ...interface{}) {
	logging.Fatal(format, a...) //nolint
}

// SetDebug switches between debug and info level output
func SetDebug(debug bool) {
	if debug {
		logging.SetLevel(logging.DebugLevel)
		return
	}
	logging.SetLevel(logging.InfoLevel)
}
