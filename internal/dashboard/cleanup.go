package dashboard

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"greenlight/internal/fileutil"
	"greenlight/internal/logging"
)

// Cleaner backs up and removes analysis files for produced screenplays.
type Cleaner struct {
	backupDir string
	suffix    string
	logger    *slog.Logger
}

// NewCleaner creates a cleaner that copies files into backupDir before
// deleting them.
func NewCleaner(backupDir, suffix string, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Cleaner{
		backupDir: backupDir,
		suffix:    suffix,
		logger:    logging.NewComponentLogger(logger, "cleanup"),
	}
}

// Remove backs up file and deletes the original. The backup keeps the
// original file name inside the collection's backup subdirectory.
func (c *Cleaner) Remove(file File) error {
	if strings.TrimSpace(c.backupDir) == "" {
		return fmt.Errorf("backup directory not configured")
	}
	dest := filepath.Join(c.backupDir, file.Collection)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}
	backupPath := filepath.Join(dest, file.Name)
	if err := fileutil.CopyFile(file.Path, backupPath); err != nil {
		return fmt.Errorf("back up %s: %w", file.Name, err)
	}
	if err := os.Remove(file.Path); err != nil {
		return fmt.Errorf("delete %s: %w", file.Name, err)
	}
	c.logger.Info("removed produced analysis file",
		logging.String("file", file.Name),
		logging.String("backup", backupPath))
	return nil
}

// RewriteIndex regenerates dir's index.json with the sorted names of the
// analysis files that survive cleanup. It returns the remaining count.
func (c *Cleaner) RewriteIndex(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read collection directory: %w", err)
	}

	remaining := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), c.suffix) {
			continue
		}
		remaining = append(remaining, entry.Name())
	}
	sort.Strings(remaining)

	data, err := json.MarshalIndent(remaining, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode index: %w", err)
	}
	indexPath := filepath.Join(dir, "index.json")
	if err := fileutil.WriteFileAtomic(indexPath, append(data, '\n'), 0o644); err != nil {
		return 0, fmt.Errorf("write index: %w", err)
	}

	c.logger.Info("rewrote collection index",
		logging.String("index", indexPath),
		logging.Int("remaining", len(remaining)))
	return len(remaining), nil
}
