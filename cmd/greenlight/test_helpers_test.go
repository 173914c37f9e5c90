package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dataDir    string
	cacheFile  string
	backupDir  string
}

// fakeTMDB serves the two endpoints the checker uses. Titles listed in
// movies are produced films; everything else yields zero search results.
type fakeTMDB struct {
	movies []fakeMovie
}

type fakeMovie struct {
	ID          int64
	Title       string
	ReleaseDate string
	Status      string
}

func (f *fakeTMDB) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		query := strings.ToLower(r.URL.Query().Get("query"))
		var results []map[string]any
		for _, m := range f.movies {
			if strings.Contains(strings.ToLower(m.Title), query) {
				results = append(results, map[string]any{
					"id":           m.ID,
					"title":        m.Title,
					"release_date": m.ReleaseDate,
				})
			}
		}
		writeFakeJSON(w, map[string]any{
			"page":          1,
			"results":       results,
			"total_results": len(results),
		})
	})
	mux.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		idText := strings.TrimPrefix(r.URL.Path, "/movie/")
		for _, m := range f.movies {
			if fmt.Sprintf("%d", m.ID) == idText {
				writeFakeJSON(w, map[string]any{
					"id":           m.ID,
					"title":        m.Title,
					"release_date": m.ReleaseDate,
					"status":       m.Status,
				})
				return
			}
		}
		http.NotFound(w, r)
	})
	return mux
}

func writeFakeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func setupCLITestEnv(t *testing.T, tmdb *fakeTMDB, collections map[string]int) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("TMDB_API_KEY", "")

	server := httptest.NewServer(tmdb.handler())
	t.Cleanup(server.Close)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(home, ".config", "greenlight", "config.toml"),
		dataDir:    filepath.Join(base, "dashboard"),
		cacheFile:  filepath.Join(base, "cache", "produced_films.json"),
		backupDir:  filepath.Join(base, "backups"),
	}
	if err := os.MkdirAll(env.dataDir, 0o755); err != nil {
		t.Fatalf("mkdir data dir: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(env.configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[paths]\ncache_file = %q\noverrides_file = %q\nlog_dir = %q\nbackup_dir = %q\n\n",
		env.cacheFile,
		filepath.Join(base, "overrides.json"),
		filepath.Join(base, "logs"),
		env.backupDir,
	)
	fmt.Fprintf(&sb, "[tmdb]\napi_key = \"test-key\"\nbase_url = %q\n\n", server.URL)
	fmt.Fprintf(&sb, "[dashboard]\ndata_dir = %q\napi_delay_seconds = 1\n\n", env.dataDir)
	if len(collections) > 0 {
		fmt.Fprintln(&sb, "[dashboard.collections]")
		names := make([]string, 0, len(collections))
		for name := range collections {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "%q = %d\n", name, collections[name])
		}
		fmt.Fprintln(&sb)
	}
	fmt.Fprintf(&sb, "[logging]\nlevel = \"error\"\n")

	if err := os.WriteFile(env.configPath, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", env.configPath}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeAnalysisFile(t *testing.T, dir, name string, doc map[string]any) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir collection: %v", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("marshal analysis: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write analysis: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
