// Package services defines shared utilities consumed by the lookup client,
// the decision engine, and the command layer.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent (transient vs configuration vs validation).
//   - Context helpers that stamp run identifiers and titles for logging.
//
// Use these helpers when wiring new operations so error handling and
// observability stay uniform across the tool.
package services
