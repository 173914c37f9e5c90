package dashboard

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"greenlight/internal/fileutil"
)

// Verdict is the tmdb_status object embedded in an analysis file.
type Verdict struct {
	IsProduced  bool   `json:"is_produced"`
	TMDBID      int64  `json:"tmdb_id,omitempty"`
	TMDBTitle   string `json:"tmdb_title,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	Status      string `json:"status,omitempty"`
	CheckedAt   string `json:"checked_at"`
	Confidence  string `json:"confidence,omitempty"`
}

// File is one analysis artifact found by Scan.
type File struct {
	Path        string
	Collection  string
	Name        string
	Title       string
	YearContext int
	// Existing is the verdict already embedded in the file, if any.
	Existing *Verdict
}

// ApplyVerdict injects or overwrites the tmdb_status field in the analysis
// file at path, preserving every other field, and writes the file
// atomically.
func ApplyVerdict(path string, verdict Verdict) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read analysis file: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse analysis file %s: %w", path, err)
	}

	if verdict.CheckedAt == "" {
		verdict.CheckedAt = time.Now().UTC().Format(time.RFC3339)
	}
	encoded, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("encode verdict: %w", err)
	}
	doc["tmdb_status"] = encoded

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode analysis file: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write analysis file: %w", err)
	}
	return nil
}
