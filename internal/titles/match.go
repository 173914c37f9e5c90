package titles

import (
	"fmt"
	"strings"
)

// DefaultThreshold is the minimum fuzzy similarity ratio accepted as a match.
const DefaultThreshold = 0.85

// Strictness selects how the containment rule ("Juno" matching
// "Juno: A Film") is applied. Containment buys recall on partial titles at a
// known false-positive cost for short, generic ones, so it is a tunable
// policy rather than a fixed behavior.
type Strictness int

const (
	// StrictnessLenient accepts any substring containment between the
	// normalized titles. Matches the historical behavior.
	StrictnessLenient Strictness = iota
	// StrictnessGuarded accepts containment only when the shorter title
	// carries enough signal: at least two words or eight runes.
	StrictnessGuarded
	// StrictnessExact disables containment; only equality and the fuzzy
	// ratio can match.
	StrictnessExact
)

const (
	guardedMinRunes = 8
	guardedMinWords = 2
)

// ParseStrictness maps a configuration value onto a Strictness level.
// The empty string selects the lenient default.
func ParseStrictness(value string) (Strictness, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "lenient":
		return StrictnessLenient, nil
	case "guarded":
		return StrictnessGuarded, nil
	case "exact":
		return StrictnessExact, nil
	default:
		return StrictnessLenient, fmt.Errorf("unknown matching strictness %q (expected lenient, guarded, or exact)", value)
	}
}

func (s Strictness) String() string {
	switch s {
	case StrictnessGuarded:
		return "guarded"
	case StrictnessExact:
		return "exact"
	default:
		return "lenient"
	}
}

// Matcher decides whether two free-text titles refer to the same work.
type Matcher struct {
	Threshold  float64
	Strictness Strictness
}

// NewMatcher returns a matcher with the default threshold and lenient
// containment.
func NewMatcher() Matcher {
	return Matcher{Threshold: DefaultThreshold}
}

// Match reports whether candidate and reference identify the same film.
// Checks run cheapest first and short-circuit: exact equality of the
// normalized forms, then containment per the configured strictness, then the
// edit-distance ratio against the threshold. Empty normalized input never
// matches; absence of a title is not evidence of anything.
func (m Matcher) Match(candidate, reference string) bool {
	a := Normalize(candidate)
	b := Normalize(reference)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if m.containmentMatch(a, b) {
		return true
	}
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Similarity(a, b) >= threshold
}

func (m Matcher) containmentMatch(a, b string) bool {
	if m.Strictness == StrictnessExact {
		return false
	}
	if m.Strictness == StrictnessGuarded {
		shorter := a
		if len(b) < len(a) {
			shorter = b
		}
		if len(strings.Fields(shorter)) < guardedMinWords && len([]rune(shorter)) < guardedMinRunes {
			return false
		}
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
