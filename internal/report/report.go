// Package report writes CSV summaries of produced-film validation runs.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"greenlight/internal/fileutil"
)

// Row is one validated screenplay in a run report.
type Row struct {
	Collection  string
	Title       string
	Filename    string
	IsProduced  bool
	TMDBTitle   string
	TMDBID      int64
	ReleaseDate string
	Status      string
	Confidence  string
	Reason      string
}

var header = []string{
	"collection", "title", "filename", "is_produced",
	"tmdb_title", "tmdb_id", "release_date", "status",
	"confidence", "reason",
}

// Writer accumulates rows for a single validation run.
type Writer struct {
	runID string
	rows  []Row
}

// NewWriter creates a report writer with a fresh run identifier.
func NewWriter() *Writer {
	return &Writer{runID: uuid.NewString()}
}

// RunID identifies this run in file names and logs.
func (w *Writer) RunID() string { return w.runID }

// Add appends a row to the report.
func (w *Writer) Add(row Row) { w.rows = append(w.rows, row) }

// Len reports the number of accumulated rows.
func (w *Writer) Len() int { return len(w.rows) }

// Flush writes the report into dir and returns the file path. The file
// name embeds the date and run id so successive runs never collide.
func (w *Writer) Flush(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	name := fmt.Sprintf("produced_films_%s_%s.csv",
		time.Now().UTC().Format("2006-01-02"), w.runID)
	path := filepath.Join(dir, name)

	data, err := w.encode()
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func (w *Writer) encode() ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("encode report header: %w", err)
	}
	for _, row := range w.rows {
		record := []string{
			row.Collection,
			row.Title,
			row.Filename,
			strconv.FormatBool(row.IsProduced),
			row.TMDBTitle,
			formatID(row.TMDBID),
			row.ReleaseDate,
			row.Status,
			row.Confidence,
			row.Reason,
		}
		if err := cw.Write(record); err != nil {
			return nil, fmt.Errorf("encode report row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
