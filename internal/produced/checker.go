package produced

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"greenlight/internal/filmcache"
	"greenlight/internal/logging"
	"greenlight/internal/overrides"
	"greenlight/internal/services"
	"greenlight/internal/titles"
	"greenlight/internal/tmdb"
)

// Checker runs produced-film decisions.
type Checker struct {
	matcher   titles.Matcher
	cache     *filmcache.Cache
	overrides *overrides.Registry
	lookup    tmdb.Lookup
	logger    *slog.Logger
	now       func() time.Time
}

// NewChecker wires a checker from its collaborators. cache and registry may
// be nil-path instances; lookup is required.
func NewChecker(matcher titles.Matcher, cache *filmcache.Cache, registry *overrides.Registry, lookup tmdb.Lookup, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Checker{
		matcher:   matcher,
		cache:     cache,
		overrides: registry,
		lookup:    lookup,
		logger:    logging.NewComponentLogger(logger, "produced"),
		now:       time.Now,
	}
}

// Check decides whether a film titled title has been produced. yearContext,
// when positive, excludes candidates released strictly before that year.
//
// The returned error is non-nil only for caller mistakes (empty title) and
// permanent lookup failures such as rejected credentials; transient lookup
// failures are reported as an indeterminate decision instead.
func (c *Checker) Check(ctx context.Context, title string, yearContext int) (Decision, error) {
	if titles.Normalize(title) == "" {
		return Decision{}, services.Wrap(services.ErrValidation, "produced", "check", "title is empty after normalization", nil)
	}

	// Overrides are operator intent: they bypass the cache entirely and are
	// never written back to it.
	if decision, ok := c.checkOverride(title); ok {
		return decision, nil
	}

	if c.cache != nil {
		if entry, found := c.cache.Get(title); found {
			reason := entry.Note
			if reason == "" {
				reason = fmt.Sprintf("verdict from %s", entry.CheckedAt.Format("2006-01-02"))
			}
			outcome := OutcomeNotProduced
			if entry.IsProduced {
				outcome = OutcomeProduced
			}
			c.logger.Debug("cache hit",
				logging.String("title", title),
				logging.Bool("is_produced", entry.IsProduced))
			return Decision{
				Outcome: outcome,
				Reason:  "CACHED: " + reason,
				Details: entry,
				Cached:  true,
			}, nil
		}
	}

	resp, err := c.lookup.SearchMovie(ctx, title, 0)
	if err != nil {
		return c.lookupFailure(title, "search", err)
	}

	if len(resp.Results) == 0 {
		reason := fmt.Sprintf("NOT PRODUCED: no search results for %q", title)
		entry := filmcache.Entry{
			Title:      title,
			IsProduced: false,
			Confidence: filmcache.ConfidenceHigh,
			Note:       reason,
			CheckedAt:  c.now().UTC(),
		}
		c.store(entry)
		return Decision{Outcome: OutcomeNotProduced, Reason: reason, Details: entry}, nil
	}

	matched := 0
	for _, candidate := range resp.Results {
		if !c.matcher.Match(title, candidate.Title) {
			continue
		}
		matched++

		if yearContext > 0 {
			if year := releaseYear(candidate.ReleaseDate); year > 0 && year < yearContext {
				c.logger.Debug("candidate predates year context",
					logging.String("title", title),
					logging.String("candidate", candidate.Title),
					logging.Int("release_year", year),
					logging.Int("year_context", yearContext))
				continue
			}
		}

		details, err := c.lookup.MovieDetails(ctx, candidate.ID)
		if err != nil {
			// One candidate's detail fetch failing should not abort the
			// whole search.
			c.logger.Warn("details fetch failed, trying next candidate",
				logging.String("title", title),
				logging.Int64("tmdb_id", candidate.ID),
				logging.Error(err))
			continue
		}

		if !IsProducedStatus(details.Status) {
			c.logger.Debug("candidate not produced",
				logging.String("candidate", candidate.Title),
				logging.String("status", details.Status))
			continue
		}

		reason := fmt.Sprintf("PRODUCED: matched %q (%s, status %s)",
			details.Title, displayDate(details.ReleaseDate), details.Status)
		entry := filmcache.Entry{
			Title:        title,
			IsProduced:   true,
			TMDBID:       details.ID,
			MatchedTitle: details.Title,
			ReleaseDate:  details.ReleaseDate,
			Status:       details.Status,
			Confidence:   filmcache.ConfidenceHigh,
			Note:         reason,
			CheckedAt:    c.now().UTC(),
		}
		c.store(entry)
		return Decision{Outcome: OutcomeProduced, Reason: reason, Details: entry}, nil
	}

	reason := fmt.Sprintf("NOT PRODUCED: %d of %d candidates matched, none produced", matched, len(resp.Results))
	entry := filmcache.Entry{
		Title:      title,
		IsProduced: false,
		Confidence: filmcache.ConfidenceMedium,
		Note:       reason,
		CheckedAt:  c.now().UTC(),
	}
	c.store(entry)
	return Decision{Outcome: OutcomeNotProduced, Reason: reason, Details: entry}, nil
}

func (c *Checker) checkOverride(title string) (Decision, bool) {
	if c.overrides == nil {
		return Decision{}, false
	}
	action, err := c.overrides.Lookup(title)
	if err != nil {
		c.logger.Warn("override lookup failed, ignoring overrides",
			logging.String("title", title),
			logging.Error(err))
		return Decision{}, false
	}
	switch action {
	case overrides.ActionForceSkip:
		return Decision{
			Outcome: OutcomeProduced,
			Reason:  "override: force skip",
			Details: filmcache.Entry{Title: title, IsProduced: true},
		}, true
	case overrides.ActionForceAnalyze:
		return Decision{
			Outcome: OutcomeNotProduced,
			Reason:  "override: force analyze",
			Details: filmcache.Entry{Title: title, IsProduced: false},
		}, true
	default:
		return Decision{}, false
	}
}

// lookupFailure decides whether an external failure is indeterminate
// (transient, retries exhausted) or a permanent error worth surfacing.
func (c *Checker) lookupFailure(title, operation string, err error) (Decision, error) {
	if services.Indeterminate(err) {
		c.logger.Warn("lookup failed, verdict indeterminate",
			logging.String("title", title),
			logging.String("operation", operation),
			logging.Error(err),
			logging.String(logging.FieldImpact, "verdict not cached, title will be re-checked next run"))
		return Decision{
			Outcome: OutcomeIndeterminate,
			Reason:  fmt.Sprintf("INDETERMINATE: %s failed: %v", operation, err),
			Details: filmcache.Entry{Title: title},
		}, nil
	}
	return Decision{}, err
}

func (c *Checker) store(entry filmcache.Entry) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(entry); err != nil {
		c.logger.Warn("failed to persist verdict",
			logging.String("title", entry.Title),
			logging.Error(err),
			logging.String(logging.FieldImpact, "verdict will be recomputed next run"))
	}
}

// releaseYear extracts the year from an ISO date ("2011-04-01") or a bare
// year string. Returns 0 when the date is empty or unparsable.
func releaseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

func displayDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return "unknown date"
	}
	return date
}
