// Package dashboard reads and mutates the analysis JSON artifacts the
// screenplay pipeline publishes for its dashboard.
//
// The analysis content itself is opaque here; this package only extracts
// screenplay titles from the files, writes produced-film verdicts back into
// them under the tmdb_status key, and handles backup-then-delete cleanup of
// files whose screenplay turned out to be produced.
package dashboard
