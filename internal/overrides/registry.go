// Package overrides loads user-authored verdict overrides that bypass both
// the cache and the external lookup.
package overrides

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"greenlight/internal/fileutil"
	"greenlight/internal/logging"
	"greenlight/internal/titles"
)

// Action is the override verdict for a title.
type Action int

const (
	// ActionNone means no override applies.
	ActionNone Action = iota
	// ActionForceAnalyze treats the title as not produced regardless of
	// cache or lookup results.
	ActionForceAnalyze
	// ActionForceSkip treats the title as produced. When a title appears in
	// both lists, skip wins.
	ActionForceSkip
)

func (a Action) String() string {
	switch a {
	case ActionForceAnalyze:
		return "force_analyze"
	case ActionForceSkip:
		return "force_skip"
	default:
		return "none"
	}
}

// document is the on-disk override file shape.
type document struct {
	ForceAnalyze []string `json:"force_analyze"`
	ForceSkip    []string `json:"force_skip"`
}

// Registry loads and answers override lookups. The backing file is re-read
// when its modification time changes, so edits take effect without
// restarting a batch run.
type Registry struct {
	path   string
	logger *slog.Logger

	mu           sync.RWMutex
	loaded       time.Time
	forceAnalyze map[string]string
	forceSkip    map[string]string
}

// NewRegistry constructs a registry backed by the provided JSON file. An
// empty path yields a registry that never matches.
func NewRegistry(path string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		path:   strings.TrimSpace(path),
		logger: logging.NewComponentLogger(logger, "overrides"),
	}
}

// Lookup returns the override action for a title. Titles are compared in
// normalized form, so "THE BUCKET LIST" matches an override for
// "bucket list".
func (r *Registry) Lookup(title string) (Action, error) {
	if r == nil || r.path == "" {
		return ActionNone, nil
	}
	if err := r.ensureLoaded(); err != nil {
		return ActionNone, err
	}
	key := titles.Normalize(title)
	if key == "" {
		return ActionNone, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.forceSkip[key]; ok {
		return ActionForceSkip, nil
	}
	if _, ok := r.forceAnalyze[key]; ok {
		return ActionForceAnalyze, nil
	}
	return ActionNone, nil
}

// List returns the raw override titles for display, analyze first. Both
// slices are sorted so repeated listings render identically.
func (r *Registry) List() (analyze, skip []string, err error) {
	if r == nil || r.path == "" {
		return nil, nil, nil
	}
	if err := r.ensureLoaded(); err != nil {
		return nil, nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, raw := range r.forceAnalyze {
		analyze = append(analyze, raw)
	}
	for _, raw := range r.forceSkip {
		skip = append(skip, raw)
	}
	sort.Strings(analyze)
	sort.Strings(skip)
	return analyze, skip, nil
}

// Add records an override for title under the given action and persists the
// file. Adding a title removes it from the opposite list.
func (r *Registry) Add(action Action, title string) error {
	if r == nil || r.path == "" {
		return errors.New("overrides file path not configured")
	}
	title = strings.TrimSpace(title)
	if titles.Normalize(title) == "" {
		return fmt.Errorf("override title %q is empty after normalization", title)
	}
	if action != ActionForceAnalyze && action != ActionForceSkip {
		return fmt.Errorf("unsupported override action %q", action)
	}

	return r.rewrite(func(doc *document) {
		doc.ForceAnalyze = removeTitle(doc.ForceAnalyze, title)
		doc.ForceSkip = removeTitle(doc.ForceSkip, title)
		if action == ActionForceAnalyze {
			doc.ForceAnalyze = append(doc.ForceAnalyze, title)
		} else {
			doc.ForceSkip = append(doc.ForceSkip, title)
		}
	})
}

// Remove drops title from both lists and persists the file.
func (r *Registry) Remove(title string) error {
	if r == nil || r.path == "" {
		return errors.New("overrides file path not configured")
	}
	return r.rewrite(func(doc *document) {
		doc.ForceAnalyze = removeTitle(doc.ForceAnalyze, title)
		doc.ForceSkip = removeTitle(doc.ForceSkip, title)
	})
}

func (r *Registry) rewrite(mutate func(*document)) error {
	var doc document
	data, err := os.ReadFile(r.path)
	switch {
	case err == nil:
		if len(strings.TrimSpace(string(data))) > 0 {
			if err := json.Unmarshal(data, &doc); err != nil {
				r.logger.Warn("overrides file is not valid JSON, rewriting",
					logging.String("path", r.path),
					logging.Error(err))
				doc = document{}
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read overrides file: %w", err)
	}

	mutate(&doc)
	if doc.ForceAnalyze == nil {
		doc.ForceAnalyze = []string{}
	}
	if doc.ForceSkip == nil {
		doc.ForceSkip = []string{}
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode overrides file: %w", err)
	}
	if err := fileutil.WriteFileAtomic(r.path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write overrides file: %w", err)
	}

	r.mu.Lock()
	r.loaded = time.Time{}
	r.mu.Unlock()
	return nil
}

func removeTitle(list []string, title string) []string {
	key := titles.Normalize(title)
	kept := list[:0]
	for _, entry := range list {
		if titles.Normalize(entry) == key {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func (r *Registry) ensureLoaded() error {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.mu.Lock()
			r.forceAnalyze = nil
			r.forceSkip = nil
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("stat overrides file: %w", err)
	}

	r.mu.RLock()
	current := !r.loaded.IsZero() && r.loaded.Equal(info.ModTime())
	r.mu.RUnlock()
	if current {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read overrides file: %w", err)
	}

	var doc document
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			r.logger.Warn("overrides file is not valid JSON, ignoring",
				logging.String("path", r.path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix or delete the file to silence this warning"))
			doc = document{}
		}
	}

	analyze := make(map[string]string, len(doc.ForceAnalyze))
	for _, raw := range doc.ForceAnalyze {
		if key := titles.Normalize(raw); key != "" {
			analyze[key] = strings.TrimSpace(raw)
		}
	}
	skip := make(map[string]string, len(doc.ForceSkip))
	for _, raw := range doc.ForceSkip {
		if key := titles.Normalize(raw); key != "" {
			skip[key] = strings.TrimSpace(raw)
		}
	}

	r.mu.Lock()
	r.forceAnalyze = analyze
	r.forceSkip = skip
	r.loaded = info.ModTime()
	r.mu.Unlock()

	r.logger.Debug("loaded overrides",
		logging.String("path", r.path),
		logging.Int("force_analyze", len(analyze)),
		logging.Int("force_skip", len(skip)))
	return nil
}
