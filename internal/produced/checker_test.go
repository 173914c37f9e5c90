package produced_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"greenlight/internal/filmcache"
	"greenlight/internal/overrides"
	"greenlight/internal/produced"
	"greenlight/internal/services"
	"greenlight/internal/titles"
	"greenlight/internal/tmdb"
)

type fakeLookup struct {
	results     []tmdb.Movie
	searchErr   error
	details     map[int64]tmdb.Movie
	detailsErr  map[int64]error
	searchCalls int
	detailCalls int
}

func (f *fakeLookup) SearchMovie(ctx context.Context, query string, year int) (*tmdb.SearchResponse, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &tmdb.SearchResponse{Results: f.results, TotalResults: len(f.results)}, nil
}

func (f *fakeLookup) MovieDetails(ctx context.Context, movieID int64) (*tmdb.Movie, error) {
	f.detailCalls++
	if err, ok := f.detailsErr[movieID]; ok {
		return nil, err
	}
	movie, ok := f.details[movieID]
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "tmdb", "details", "no such movie", nil)
	}
	return &movie, nil
}

func newChecker(t *testing.T, lookup tmdb.Lookup, overridesJSON string) (*produced.Checker, *filmcache.Cache) {
	t.Helper()
	dir := t.TempDir()

	cache := filmcache.NewCache(filepath.Join(dir, "cache.json"), 30, nil)

	overridesPath := ""
	if overridesJSON != "" {
		overridesPath = filepath.Join(dir, "overrides.json")
		if err := os.WriteFile(overridesPath, []byte(overridesJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	registry := overrides.NewRegistry(overridesPath, nil)

	return produced.NewChecker(titles.NewMatcher(), cache, registry, lookup, nil), cache
}

func TestCheckHannaEndToEnd(t *testing.T) {
	lookup := &fakeLookup{
		results: []tmdb.Movie{
			{ID: 1, Title: "Hanna", ReleaseDate: "2011-04-01"},
			{ID: 2, Title: "Hannah and Her Sisters", ReleaseDate: "1986-02-01"},
		},
		details: map[int64]tmdb.Movie{
			1: {ID: 1, Title: "Hanna", ReleaseDate: "2011-04-01", Status: "Released"},
			2: {ID: 2, Title: "Hannah and Her Sisters", ReleaseDate: "1986-02-01", Status: "Released"},
		},
	}
	checker, _ := newChecker(t, lookup, "")

	decision, err := checker.Check(context.Background(), "Hanna", 2006)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if decision.Outcome != produced.OutcomeProduced {
		t.Fatalf("outcome = %v, want produced (reason %q)", decision.Outcome, decision.Reason)
	}
	if decision.Details.MatchedTitle != "Hanna" {
		t.Errorf("matched title = %q", decision.Details.MatchedTitle)
	}
	if decision.Details.ReleaseDate != "2011-04-01" {
		t.Errorf("release date = %q", decision.Details.ReleaseDate)
	}
	if decision.Details.Confidence != filmcache.ConfidenceHigh {
		t.Errorf("confidence = %q", decision.Details.Confidence)
	}
}

func TestCheckYearContextExcludesOnlyCandidate(t *testing.T) {
	lookup := &fakeLookup{
		results: []tmdb.Movie{
			{ID: 3, Title: "Juno", ReleaseDate: "2003-05-01"},
		},
		details: map[int64]tmdb.Movie{
			3: {ID: 3, Title: "Juno", ReleaseDate: "2003-05-01", Status: "Released"},
		},
	}
	checker, _ := newChecker(t, lookup, "")

	decision, err := checker.Check(context.Background(), "Juno", 2006)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if decision.Outcome != produced.OutcomeNotProduced {
		t.Fatalf("outcome = %v, want not produced", decision.Outcome)
	}
	if decision.Details.Confidence != filmcache.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", decision.Details.Confidence)
	}
	if lookup.detailCalls != 0 {
		t.Errorf("detail calls = %d, excluded candidate should not be fetched", lookup.detailCalls)
	}
}

func TestCheckZeroResultsCachedNegativeHigh(t *testing.T) {
	lookup := &fakeLookup{}
	checker, cache := newChecker(t, lookup, "")

	decision, err := checker.Check(context.Background(), "Obscure Screenplay", 0)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if decision.Outcome != produced.OutcomeNotProduced {
		t.Fatalf("outcome = %v", decision.Outcome)
	}
	if decision.Details.Confidence != filmcache.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", decision.Details.Confidence)
	}
	if cache.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", cache.Len())
	}

	// Second call is served from cache with no extra network traffic.
	decision, err = checker.Check(context.Background(), "obscure screenplay", 0)
	if err != nil {
		t.Fatalf("second Check returned error: %v", err)
	}
	if !decision.Cached {
		t.Error("second decision should come from cache")
	}
	if !strings.HasPrefix(decision.Reason, "CACHED: ") {
		t.Errorf("reason = %q, want CACHED prefix", decision.Reason)
	}
	if lookup.searchCalls != 1 {
		t.Errorf("search calls = %d, want 1", lookup.searchCalls)
	}
}

func TestCheckCacheFreshness(t *testing.T) {
	lookup := &fakeLookup{
		results: []tmdb.Movie{{ID: 9, Title: "Juno", ReleaseDate: "2007-12-05"}},
		details: map[int64]tmdb.Movie{
			9: {ID: 9, Title: "Juno", ReleaseDate: "2007-12-05", Status: "Released"},
		},
	}
	checker, cache := newChecker(t, lookup, "")

	// 29 days old: fresh, short-circuits the lookup.
	if err := cache.Put(filmcache.Entry{
		Title:      "Juno",
		IsProduced: true,
		Note:       "PRODUCED: matched \"Juno\"",
		CheckedAt:  time.Now().Add(-29 * 24 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	decision, err := checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !decision.Cached || decision.Outcome != produced.OutcomeProduced {
		t.Errorf("decision = %+v, want cached produced", decision)
	}
	if lookup.searchCalls != 0 {
		t.Errorf("search calls = %d, want 0 for fresh entry", lookup.searchCalls)
	}

	// 31 days old: expired, triggers a fresh lookup.
	if err := cache.Put(filmcache.Entry{
		Title:      "Juno",
		IsProduced: false,
		CheckedAt:  time.Now().Add(-31 * 24 * time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	decision, err = checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatal(err)
	}
	if decision.Cached {
		t.Error("expired entry should not serve the verdict")
	}
	if decision.Outcome != produced.OutcomeProduced {
		t.Errorf("outcome = %v, want produced from fresh lookup", decision.Outcome)
	}
	if lookup.searchCalls != 1 {
		t.Errorf("search calls = %d, want 1 after expiry", lookup.searchCalls)
	}
}

func TestCheckOverridePrecedence(t *testing.T) {
	lookup := &fakeLookup{}
	checker, cache := newChecker(t, lookup, `{
  "force_analyze": ["Juno"],
  "force_skip": ["Juno"]
}`)

	decision, err := checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if decision.Outcome != produced.OutcomeProduced {
		t.Errorf("outcome = %v, skip should win over analyze", decision.Outcome)
	}
	if decision.Reason != "override: force skip" {
		t.Errorf("reason = %q", decision.Reason)
	}
	if lookup.searchCalls != 0 {
		t.Errorf("search calls = %d, overrides bypass lookup", lookup.searchCalls)
	}
	if cache.Len() != 0 {
		t.Errorf("cache entries = %d, overrides are never cached", cache.Len())
	}
}

func TestCheckForceAnalyzeBypassesCache(t *testing.T) {
	lookup := &fakeLookup{}
	checker, cache := newChecker(t, lookup, `{"force_analyze": ["Hanna"]}`)

	// Even a fresh positive cache entry is ignored for an overridden title.
	if err := cache.Put(filmcache.Entry{Title: "Hanna", IsProduced: true, CheckedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	decision, err := checker.Check(context.Background(), "Hanna", 0)
	if err != nil {
		t.Fatal(err)
	}
	if decision.Outcome != produced.OutcomeNotProduced {
		t.Errorf("outcome = %v, want not produced", decision.Outcome)
	}
	if decision.Reason != "override: force analyze" {
		t.Errorf("reason = %q", decision.Reason)
	}
}

func TestCheckTransientFailureIsIndeterminate(t *testing.T) {
	lookup := &fakeLookup{
		searchErr: services.Wrap(services.ErrTransient, "tmdb", "request", "failed after 3 attempts", nil),
	}
	checker, cache := newChecker(t, lookup, "")

	decision, err := checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatalf("transient failure should not surface as error: %v", err)
	}
	if decision.Outcome != produced.OutcomeIndeterminate {
		t.Errorf("outcome = %v, want indeterminate", decision.Outcome)
	}
	if decision.Outcome.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", decision.Outcome.ExitCode())
	}
	if cache.Len() != 0 {
		t.Errorf("cache entries = %d, indeterminate must not be cached", cache.Len())
	}
}

func TestCheckPermanentFailurePropagates(t *testing.T) {
	lookup := &fakeLookup{
		searchErr: services.Wrap(services.ErrConfiguration, "tmdb", "request", "authentication rejected", nil),
	}
	checker, _ := newChecker(t, lookup, "")

	_, err := checker.Check(context.Background(), "Juno", 0)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("err = %v, want configuration error", err)
	}
}

func TestCheckDetailsFailureTriesNextCandidate(t *testing.T) {
	lookup := &fakeLookup{
		results: []tmdb.Movie{
			{ID: 1, Title: "Juno", ReleaseDate: "2007-12-05"},
			{ID: 2, Title: "Juno: A Film", ReleaseDate: "2008-01-01"},
		},
		details: map[int64]tmdb.Movie{
			2: {ID: 2, Title: "Juno: A Film", ReleaseDate: "2008-01-01", Status: "Released"},
		},
		detailsErr: map[int64]error{
			1: services.Wrap(services.ErrTransient, "tmdb", "request", "failed after 3 attempts", nil),
		},
	}
	checker, _ := newChecker(t, lookup, "")

	decision, err := checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if decision.Outcome != produced.OutcomeProduced {
		t.Fatalf("outcome = %v, want produced via second candidate", decision.Outcome)
	}
	if decision.Details.TMDBID != 2 {
		t.Errorf("tmdb id = %d, want 2", decision.Details.TMDBID)
	}
}

func TestCheckUnproducedStatusesYieldNegative(t *testing.T) {
	lookup := &fakeLookup{
		results: []tmdb.Movie{{ID: 4, Title: "Juno", ReleaseDate: "2030-01-01"}},
		details: map[int64]tmdb.Movie{
			4: {ID: 4, Title: "Juno", Status: "Planned"},
		},
	}
	checker, _ := newChecker(t, lookup, "")

	decision, err := checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatal(err)
	}
	if decision.Outcome != produced.OutcomeNotProduced {
		t.Errorf("outcome = %v, want not produced for Planned status", decision.Outcome)
	}
	if decision.Details.Confidence != filmcache.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", decision.Details.Confidence)
	}
}

func TestCheckEmptyTitleIsValidationError(t *testing.T) {
	checker, _ := newChecker(t, &fakeLookup{}, "")
	_, err := checker.Check(context.Background(), "  () ", 0)
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestIsProducedStatus(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"Released", true},
		{"Post Production", true},
		{"In Production", true},
		{"released", true},
		{"Planned", false},
		{"Rumored", false},
		{"Canceled", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := produced.IsProducedStatus(tc.status); got != tc.want {
			t.Errorf("IsProducedStatus(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestCheckIndeterminateWithRealClientOnPersistentServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := tmdb.New("test-key", server.URL, "en-US",
		tmdb.WithSleeper(func(time.Duration) {}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	checker, cache := newChecker(t, client, "")

	decision, err := checker.Check(context.Background(), "Juno", 0)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if decision.Outcome != produced.OutcomeIndeterminate {
		t.Fatalf("outcome = %v, want indeterminate (reason %q)", decision.Outcome, decision.Reason)
	}
	if decision.Outcome.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", decision.Outcome.ExitCode())
	}
	if cache.Len() != 0 {
		t.Errorf("cache entries = %d, indeterminate results must not be cached", cache.Len())
	}
}
