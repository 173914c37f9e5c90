package produced

import "strings"

// producedStatuses are the TMDB lifecycle labels that count as produced.
// Anything else (Planned, Rumored, Canceled, unknown) does not.
var producedStatuses = map[string]struct{}{
	"released":        {},
	"post production": {},
	"in production":   {},
}

// IsProducedStatus reports whether a TMDB status string counts as produced.
func IsProducedStatus(status string) bool {
	_, ok := producedStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}
