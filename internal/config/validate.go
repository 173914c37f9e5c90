package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateDashboard(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/greenlight/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'greenlight config init')", defaultPath)
	}
	if err := ensurePositiveMap(map[string]int{
		"tmdb.request_timeout_seconds": c.TMDB.RequestTimeoutSeconds,
		"tmdb.connect_timeout_seconds": c.TMDB.ConnectTimeoutSeconds,
		"tmdb.retry_max_attempts":      c.TMDB.RetryMaxAttempts,
		"tmdb.retry_base_seconds":      c.TMDB.RetryBaseSeconds,
		"tmdb.retry_cap_seconds":       c.TMDB.RetryCapSeconds,
	}); err != nil {
		return err
	}
	if c.TMDB.RetryCapSeconds < c.TMDB.RetryBaseSeconds {
		return errors.New("tmdb.retry_cap_seconds must be >= tmdb.retry_base_seconds")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return errors.New("matching.threshold must be between 0 and 1")
	}
	switch c.Matching.Strictness {
	case "lenient", "guarded", "exact":
	default:
		return fmt.Errorf("matching.strictness must be lenient, guarded, or exact (got %q)", c.Matching.Strictness)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTLDays <= 0 {
		return errors.New("cache.ttl_days must be positive")
	}
	return nil
}

func (c *Config) validateDashboard() error {
	for name, year := range c.Dashboard.Collections {
		// Zero means the collection has no year context.
		if year == 0 {
			continue
		}
		if year < 1888 || year > 2100 {
			return fmt.Errorf("dashboard.collections[%q]: year %d out of range", name, year)
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
