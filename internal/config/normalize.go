package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeCache()
	if err := c.normalizeDashboard(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheFile) == "" {
		c.Paths.CacheFile = defaultCacheFile
	}
	if c.Paths.CacheFile, err = expandPath(c.Paths.CacheFile); err != nil {
		return fmt.Errorf("paths.cache_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OverridesFile) == "" {
		c.Paths.OverridesFile = defaultOverridesFile
	}
	if c.Paths.OverridesFile, err = expandPath(c.Paths.OverridesFile); err != nil {
		return fmt.Errorf("paths.overrides_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.BackupDir) == "" {
		c.Paths.BackupDir = defaultBackupDir
	}
	if c.Paths.BackupDir, err = expandPath(c.Paths.BackupDir); err != nil {
		return fmt.Errorf("paths.backup_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTMDB() error {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	if c.TMDB.RequestTimeoutSeconds <= 0 {
		c.TMDB.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}
	if c.TMDB.ConnectTimeoutSeconds <= 0 {
		c.TMDB.ConnectTimeoutSeconds = defaultConnectTimeoutSeconds
	}
	if c.TMDB.RetryMaxAttempts <= 0 {
		c.TMDB.RetryMaxAttempts = defaultRetryMaxAttempts
	}
	if c.TMDB.RetryBaseSeconds <= 0 {
		c.TMDB.RetryBaseSeconds = defaultRetryBaseSeconds
	}
	if c.TMDB.RetryCapSeconds <= 0 {
		c.TMDB.RetryCapSeconds = defaultRetryCapSeconds
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.Threshold <= 0 {
		c.Matching.Threshold = defaultMatchThreshold
	}
	c.Matching.Strictness = strings.ToLower(strings.TrimSpace(c.Matching.Strictness))
	if c.Matching.Strictness == "" {
		c.Matching.Strictness = defaultMatchStrictness
	}
}

func (c *Config) normalizeCache() {
	if c.Cache.TTLDays <= 0 {
		c.Cache.TTLDays = defaultCacheTTLDays
	}
}

func (c *Config) normalizeDashboard() error {
	var err error
	if strings.TrimSpace(c.Dashboard.DataDir) != "" {
		if c.Dashboard.DataDir, err = expandPath(c.Dashboard.DataDir); err != nil {
			return fmt.Errorf("dashboard.data_dir: %w", err)
		}
	}
	c.Dashboard.AnalysisSuffix = strings.TrimSpace(c.Dashboard.AnalysisSuffix)
	if c.Dashboard.AnalysisSuffix == "" {
		c.Dashboard.AnalysisSuffix = defaultAnalysisSuffix
	}
	if c.Dashboard.APIDelaySeconds < 0 {
		c.Dashboard.APIDelaySeconds = defaultAPIDelaySeconds
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
