// Package logging builds the slog loggers used by lexikort. Diagnostic
// output goes to stderr so stdout stays free for progress lines and the
// JSON printed by the lookup command.
package logging
