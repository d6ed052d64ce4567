// Package logging builds the application's slog loggers. The console format
// prints one line per record with key=value attributes; the json format uses
// the standard JSON handler with lowered level names and UTC timestamps.
// File outputs append, so one log per catalog accumulates across runs.
package logging
