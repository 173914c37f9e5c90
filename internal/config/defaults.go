package config

const (
	defaultCacheFile             = "~/.cache/greenlight/produced_films.json"
	defaultOverridesFile         = "~/.config/greenlight/overrides.json"
	defaultLogDir                = "~/.local/share/greenlight/logs"
	defaultBackupDir             = "~/.local/share/greenlight/backups"
	defaultTMDBBaseURL           = "https://api.themoviedb.org/3"
	defaultTMDBLanguage          = "en-US"
	defaultRequestTimeoutSeconds = 30
	defaultConnectTimeoutSeconds = 5
	defaultRetryMaxAttempts      = 3
	defaultRetryBaseSeconds      = 2
	defaultRetryCapSeconds       = 10
	defaultMatchThreshold        = 0.85
	defaultMatchStrictness       = "lenient"
	defaultCacheTTLDays          = 30
	defaultAnalysisSuffix        = "_analysis.json"
	defaultAPIDelaySeconds       = 2
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheFile:     defaultCacheFile,
			OverridesFile: defaultOverridesFile,
			LogDir:        defaultLogDir,
			BackupDir:     defaultBackupDir,
		},
		TMDB: TMDB{
			BaseURL:               defaultTMDBBaseURL,
			Language:              defaultTMDBLanguage,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			ConnectTimeoutSeconds: defaultConnectTimeoutSeconds,
			RetryMaxAttempts:      defaultRetryMaxAttempts,
			RetryBaseSeconds:      defaultRetryBaseSeconds,
			RetryCapSeconds:       defaultRetryCapSeconds,
		},
		Matching: Matching{
			Threshold:  defaultMatchThreshold,
			Strictness: defaultMatchStrictness,
		},
		Cache: Cache{
			TTLDays: defaultCacheTTLDays,
		},
		Dashboard: Dashboard{
			AnalysisSuffix:  defaultAnalysisSuffix,
			APIDelaySeconds: defaultAPIDelaySeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
