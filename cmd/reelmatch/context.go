package main

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"reelmatch/internal/availability"
	"reelmatch/internal/config"
	"reelmatch/internal/logging"
	"reelmatch/internal/recommend"
	"reelmatch/internal/resolver"
	"reelmatch/internal/services"
	"reelmatch/internal/services/overseerr"
	"reelmatch/internal/services/plex"
	"reelmatch/internal/services/tmdb"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
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

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// pipeline bundles the wired reconciliation stack for one invocation.
type pipeline struct {
	orchestrator *recommend.Orchestrator
	cache        *resolver.Cache
	trail        *resolver.Trail
}

// buildPipeline wires the TMDB, Overseerr, and Plex clients into a resolver,
// matcher, and orchestrator. A missing TMDB key degrades to unresolved
// canonical IDs, and a missing Plex configuration to an all-unavailable
// matcher, instead of failing, per the pipeline's nothing-is-fatal policy.
func (c *commandContext) buildPipeline(cfg *config.Config, logger *slog.Logger, strategy string) (*pipeline, error) {
	var (
		catalog tmdb.Searcher
		details recommend.DetailsFetcher
	)
	if cfg.TMDB.APIKey == "" {
		logger.Warn("canonical id resolution disabled",
			logging.String(logging.FieldEventType, "tmdb_config_missing"),
			logging.String(logging.FieldImpact, "availability falls back to title matching"))
	} else {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "cli", "build_pipeline", "tmdb client", err)
		}
		catalog = client
		details = client
	}

	cache := resolver.NewCache(cfg.Paths.ResolverCache, logger)
	trail := resolver.NewTrail()
	timeout := time.Duration(cfg.Recommendations.RequestTimeout) * time.Second
	resolverOpts := []resolver.Option{
		resolver.WithTrail(trail),
		resolver.WithTimeout(timeout),
	}
	var requestCatalog *overseerr.Client
	if cfg.Overseerr.Enabled {
		fallback, err := overseerr.New(cfg.Overseerr.URL, cfg.Overseerr.APIKey, nil)
		if err != nil {
			logger.Warn("overseerr fallback disabled",
				logging.String(logging.FieldEventType, "overseerr_config_invalid"),
				logging.Error(err))
		} else {
			requestCatalog = fallback
			resolverOpts = append(resolverOpts, resolver.WithFallback(fallback))
		}
	}
	idResolver := resolver.New(catalog, cache, logger, resolverOpts...)

	var library availability.Library
	if plexClient, err := plex.New(cfg.Plex.URL, cfg.Plex.Token, nil); err != nil {
		logger.Warn("plex availability checks disabled",
			logging.String(logging.FieldEventType, "plex_config_missing"),
			logging.Error(err),
			logging.String(logging.FieldImpact, "all items will report unavailable"))
	} else {
		library = plexClient
	}
	var checker recommend.AvailabilityChecker = availability.NewMatcher(library, strategy, logger)
	if requestCatalog != nil {
		checker = availability.NewCatalogChecker(checker, requestCatalog, logger)
	}

	orchestratorOpts := []recommend.Option{
		recommend.WithTrail(trail),
		recommend.WithWorkers(cfg.Recommendations.Workers),
	}
	if details != nil {
		orchestratorOpts = append(orchestratorOpts, recommend.WithDetails(details))
	}
	orchestrator := recommend.New(idResolver, checker, logger, orchestratorOpts...)

	return &pipeline{orchestrator: orchestrator, cache: cache, trail: trail}, nil
}

// historySections converts the configured section ID strings to integers,
// skipping anything unparseable.
func historySections(cfg *config.Config) []int64 {
	var sections []int64
	for _, raw := range cfg.History.LibrarySections {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			continue
		}
		sections = append(sections, id)
	}
	return sections
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
