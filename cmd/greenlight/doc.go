// Package main hosts the greenlight CLI entrypoint and command graph.
//
// The Cobra-based command tree covers single-title checks, batch
// validation of dashboard analysis files, cleanup of produced entries,
// and maintenance of the verdict cache and override lists. It
// centralizes configuration resolution and logger setup so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
