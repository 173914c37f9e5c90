// Package produced decides whether a film by a given title has already been
// produced.
//
// The checker composes the override registry, the verdict cache, and the
// TMDB lookup client into one decision: overrides short-circuit everything,
// fresh cache entries short-circuit the network, and only then does the
// checker search, filter candidates by year context, and classify the first
// qualifying candidate's production status. Lookup failures yield an
// indeterminate outcome that is never cached.
package produced
