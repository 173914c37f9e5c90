package dashboard

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"greenlight/internal/logging"
)

// Scanner locates analysis files across the configured collections.
type Scanner struct {
	dataDir     string
	suffix      string
	collections map[string]int
	logger      *slog.Logger
}

// NewScanner builds a scanner over dataDir. collections maps collection
// directory names to their year context; a zero year means no context.
func NewScanner(dataDir, suffix string, collections map[string]int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{
		dataDir:     dataDir,
		suffix:      suffix,
		collections: collections,
		logger:      logging.NewComponentLogger(logger, "dashboard"),
	}
}

// Scan returns all analysis files, sorted by collection then file name.
// collectionFilter, when non-empty, keeps only collections whose name
// contains it. Missing collection directories are logged and skipped.
func (s *Scanner) Scan(collectionFilter string) ([]File, error) {
	if strings.TrimSpace(s.dataDir) == "" {
		return nil, fmt.Errorf("dashboard data directory not configured")
	}

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	var files []File
	for _, name := range names {
		if collectionFilter != "" && !strings.Contains(name, collectionFilter) {
			continue
		}
		dir := filepath.Join(s.dataDir, name)
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.logger.Warn("collection directory unreadable, skipping",
				logging.String("collection", name),
				logging.Error(err))
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.suffix) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			file := File{
				Path:        path,
				Collection:  name,
				Name:        entry.Name(),
				YearContext: s.collections[name],
			}
			s.readMetadata(&file)
			files = append(files, file)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Collection != files[j].Collection {
			return files[i].Collection < files[j].Collection
		}
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// readMetadata fills Title and Existing from the file contents, falling
// back to a prettified file name when the analysis carries no title.
func (s *Scanner) readMetadata(file *File) {
	file.Title = TitleFromFilename(file.Name, s.suffix)

	data, err := os.ReadFile(file.Path)
	if err != nil {
		s.logger.Warn("analysis file unreadable",
			logging.String("file", file.Name),
			logging.Error(err))
		return
	}

	var doc struct {
		Analysis struct {
			Title string `json:"title"`
		} `json:"analysis"`
		TMDBStatus *Verdict `json:"tmdb_status"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("analysis file is not valid JSON",
			logging.String("file", file.Name),
			logging.Error(err))
		return
	}
	if title := strings.TrimSpace(doc.Analysis.Title); title != "" {
		file.Title = title
	}
	file.Existing = doc.TMDBStatus
}

var titleCaser = cases.Title(language.AmericanEnglish)

// TitleFromFilename derives a display title from an analysis file name:
// the suffix is dropped, separators become spaces, and words are
// title-cased. "the_bucket_list_analysis.json" becomes "The Bucket List".
func TitleFromFilename(name, suffix string) string {
	base := strings.TrimSuffix(name, suffix)
	// Some artifacts carry " - <author>" style decorations after the title.
	if idx := strings.Index(base, " - "); idx > 0 {
		base = base[:idx]
	}
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	return titleCaser.String(base)
}
