package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterFlush(t *testing.T) {
	w := NewWriter()
	if w.RunID() == "" {
		t.Fatal("run id empty")
	}

	w.Add(Row{
		Collection:  "nicholl",
		Title:       "Juno",
		Filename:    "juno_analysis.json",
		IsProduced:  true,
		TMDBTitle:   "Juno",
		TMDBID:      7326,
		ReleaseDate: "2007-12-05",
		Status:      "Released",
		Confidence:  "high",
		Reason:      `PRODUCED: matched "Juno" (2007-12-05, status Released)`,
	})
	w.Add(Row{
		Collection: "blacklist",
		Title:      "Unmade Thing",
		Filename:   "unmade_thing_analysis.json",
		Confidence: "medium",
		Reason:     "NOT PRODUCED: 0 of 3 candidates matched, none produced",
	})
	if w.Len() != 2 {
		t.Fatalf("Len = %d, want 2", w.Len())
	}

	dir := t.TempDir()
	path, err := w.Flush(dir)
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written outside dir: %s", path)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "produced_films_") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("unexpected report name %q", name)
	}
	if !strings.Contains(name, w.RunID()) {
		t.Fatalf("report name %q missing run id", name)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("report not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	wantHeader := "collection,title,filename,is_produced,tmdb_title,tmdb_id,release_date,status,confidence,reason"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Fatalf("header = %q, want %q", got, wantHeader)
	}
	if records[1][3] != "true" || records[1][5] != "7326" {
		t.Fatalf("produced row wrong: %v", records[1])
	}
	if records[2][3] != "false" || records[2][5] != "" {
		t.Fatalf("negative row wrong: %v", records[2])
	}
}

func TestRunIDsDiffer(t *testing.T) {
	if NewWriter().RunID() == NewWriter().RunID() {
		t.Fatal("run ids collide")
	}
}
