package app

import (
	"fmt"

	"github.com/p0wz/goalsniperai-sub000/external/flashscore"
	"github.com/p0wz/goalsniperai-sub000/internal/config"
	idgen "github.com/p0wz/goalsniperai-sub000/internal/platform/id"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/metrics"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/resilience"
	"github.com/p0wz/goalsniperai-sub000/internal/usecase"
)

const metricsNamespace = "goalsniper"

// Analyst is the wired pre-match pipeline.
type Analyst struct {
	Service *usecase.AnalysisService
	Metrics *metrics.Pipeline
}

func NewAnalyst(cfg config.Config, logger *logging.Logger) (*Analyst, error) {
	if logger == nil {
		logger = logging.Default()
	}

	allowList, err := config.LoadAllowList(cfg.AllowedLeaguesFile)
	if err != nil {
		return nil, fmt.Errorf("load allowed leagues: %w", err)
	}
	if cfg.FlashscoreAPIKey == "" {
		logger.Warn("flashscore api key is empty", "env", "FLASHSCORE_API_KEY")
	}

	pipelineMetrics := metrics.NewPipeline(metricsNamespace)

	client := flashscore.NewClient(flashscore.ClientConfig{
		BaseURL:           cfg.FlashscoreBaseURL,
		APIKey:            cfg.FlashscoreAPIKey,
		APIHost:           cfg.FlashscoreAPIHost,
		Timeout:           cfg.FlashscoreTimeout,
		MaxRetries:        cfg.FlashscoreMaxRetries,
		RetryInitialDelay: cfg.FlashscoreRetryInitialDelay,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FlashscoreCircuitEnabled,
			FailureThreshold: cfg.FlashscoreCircuitFailureCount,
			OpenTimeout:      cfg.FlashscoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FlashscoreCircuitHalfOpenMaxReq,
		},
		CacheTTL: cfg.FlashscoreCacheTTL,
		Metrics:  pipelineMetrics,
	})

	svc := usecase.NewAnalysisService(
		usecase.NewFixtureLoader(client, allowList, logger, pipelineMetrics),
		usecase.NewHistoryLoader(client, logger),
		usecase.NewOddsLoader(client, logger),
		idgen.NewUUIDGenerator(),
		logger,
		pipelineMetrics,
		usecase.AnalysisConfig{
			InterCallDelay:         cfg.AnalystInterCallDelay,
			MaxConsecutiveFailures: cfg.AnalystMaxConsecutiveFailures,
		},
	)

	logger.Info("analyst wired",
		"allowed_leagues", allowList.Len(),
		"circuit_enabled", cfg.FlashscoreCircuitEnabled,
	)

	return &Analyst{Service: svc, Metrics: pipelineMetrics}, nil
}

// RunRequest builds the request described by the ANALYST_* settings.
func RunRequest(cfg config.Config) usecase.RunRequest {
	return usecase.RunRequest{
		DayOffset:    cfg.AnalystDayOffset,
		Limit:        cfg.AnalystMatchLimit,
		Markets:      cfg.AnalystMarkets,
		LeagueFilter: cfg.AnalystLeagueFilter,
		FetchOdds:    cfg.AnalystFetchOdds,
	}
}
