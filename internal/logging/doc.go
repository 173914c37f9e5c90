// Package logging wires log/slog for the greenlight CLI.
//
// Two handler formats are supported: "console" renders single-line
// human-readable records (timestamp, level, component, message, key=value
// pairs) for interactive use, and "json" emits machine-parsable records for
// batch runs whose output is collected. Component loggers attach a
// standardized "component" attribute so records from the cache, the TMDB
// client, and the decision engine can be told apart.
package logging
