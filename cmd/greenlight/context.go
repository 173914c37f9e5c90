package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"greenlight/internal/config"
	"greenlight/internal/filmcache"
	"greenlight/internal/logging"
	"greenlight/internal/overrides"
	"greenlight/internal/produced"
	"greenlight/internal/titles"
	"greenlight/internal/tmdb"
)

// commandContext lazily builds the shared pieces commands need: the
// loaded configuration, the logger, and the produced-film checker with
// its cache and override registry.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger
	logErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		c.log, c.logErr = logging.NewFromConfig(cfg)
	})
	return c.log, c.logErr
}

func (c *commandContext) cache() (*filmcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	return filmcache.NewCache(cfg.Paths.CacheFile, cfg.Cache.TTLDays, logger), nil
}

func (c *commandContext) registry() (*overrides.Registry, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	return overrides.NewRegistry(cfg.Paths.OverridesFile, logger), nil
}

func (c *commandContext) checker() (*produced.Checker, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	cache, err := c.cache()
	if err != nil {
		return nil, err
	}
	registry, err := c.registry()
	if err != nil {
		return nil, err
	}

	strictness, err := titles.ParseStrictness(cfg.Matching.Strictness)
	if err != nil {
		return nil, fmt.Errorf("matching configuration: %w", err)
	}
	matcher := titles.Matcher{
		Threshold:  cfg.Matching.Threshold,
		Strictness: strictness,
	}

	client, err := tmdb.New(
		cfg.TMDB.APIKey,
		cfg.TMDB.BaseURL,
		cfg.TMDB.Language,
		tmdb.WithHTTPClient(httpClientFromConfig(cfg)),
		tmdb.WithRetryMaxAttempts(cfg.TMDB.RetryMaxAttempts),
		tmdb.WithRetryBackoff(
			time.Duration(cfg.TMDB.RetryBaseSeconds)*time.Second,
			time.Duration(cfg.TMDB.RetryCapSeconds)*time.Second,
		),
	)
	if err != nil {
		return nil, err
	}

	return produced.NewChecker(matcher, cache, registry, client, logger), nil
}

func httpClientFromConfig(cfg *config.Config) *http.Client {
	dialer := &net.Dialer{
		Timeout: time.Duration(cfg.TMDB.ConnectTimeoutSeconds) * time.Second,
	}
	return &http.Client{
		Timeout: time.Duration(cfg.TMDB.RequestTimeoutSeconds) * time.Second,
		Transport: &http.Transport{
			DialContext:       dialer.DialContext,
			ForceAttemptHTTP2: true,
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
