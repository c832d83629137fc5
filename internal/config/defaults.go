package config

const (
	defaultLogDir            = "~/.local/share/reelmatch/logs"
	defaultResolverCachePath = "~/.cache/reelmatch/resolver_cache.json"
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBLanguage      = "en-US"
	defaultLogLevel          = "info"
	defaultTargetCount       = 20
	defaultDirectorCap       = 2
	defaultGenreCap          = 3
	defaultWorkers           = 8
	defaultRequestTimeout    = 8
	defaultStrategy          = "bulk"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:        defaultLogDir,
			ResolverCache: defaultResolverCachePath,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Recommendations: Recommendations{
			TargetCount:    defaultTargetCount,
			DirectorCap:    defaultDirectorCap,
			GenreCap:       defaultGenreCap,
			Workers:        defaultWorkers,
			RequestTimeout: defaultRequestTimeout,
			Strategy:       defaultStrategy,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
