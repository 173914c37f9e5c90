package produced

import "greenlight/internal/filmcache"

// Outcome is the three-way verdict of a check.
type Outcome int

const (
	// OutcomeNotProduced means no produced film with this title was found;
	// it is safe to treat the screenplay as unproduced.
	OutcomeNotProduced Outcome = iota
	// OutcomeProduced means a produced film with this title exists.
	OutcomeProduced
	// OutcomeIndeterminate means the external lookup failed and no verdict
	// could be reached. Indeterminate results are never cached.
	OutcomeIndeterminate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProduced:
		return "produced"
	case OutcomeIndeterminate:
		return "indeterminate"
	default:
		return "not produced"
	}
}

// ExitCode maps the outcome to the CLI exit code contract: 0 means not
// produced (safe to proceed), 1 means produced (skip), 2 means
// indeterminate (caller's choice, non-fatal).
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeProduced:
		return 1
	case OutcomeIndeterminate:
		return 2
	default:
		return 0
	}
}

// Decision is the result of one produced-film check.
type Decision struct {
	Outcome Outcome
	Reason  string
	Details filmcache.Entry
	// Cached reports whether the verdict came from the cache rather than a
	// fresh lookup.
	Cached bool
}

// IsProduced is a convenience accessor for the binary verdict.
func (d Decision) IsProduced() bool {
	return d.Outcome == OutcomeProduced
}
