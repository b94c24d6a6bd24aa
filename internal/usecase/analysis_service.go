package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/candidate"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/id"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/metrics"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/resilience"
)

const (
	DefaultInterCallDelay         = 800 * time.Millisecond
	DefaultMaxConsecutiveFailures = 3
)

type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusAborted   RunStatus = "aborted"
	RunStatusCancelled RunStatus = "cancelled"
)

const (
	skipReasonNoHistory = "no_history"
	skipReasonNoStats   = "no_stats"
)

// RunRequest describes one analysis run. Markets restricts classification
// to the given keys; empty evaluates every market.
type RunRequest struct {
	DayOffset    int          `json:"dayOffset" validate:"gte=0,lte=7"`
	Limit        int          `json:"limit" validate:"gte=1"`
	Markets      []market.Key `json:"markets" validate:"omitempty,dive,market_key"`
	LeagueFilter bool         `json:"leagueFilter"`
	FetchOdds    bool         `json:"fetchOdds"`
}

// Counters tell a clean finish apart from a partial one.
type Counters struct {
	FixturesFound    int `json:"fixturesFound"`
	Processed        int `json:"processed"`
	SkippedNoHistory int `json:"skippedNoHistory"`
	SkippedNoStats   int `json:"skippedNoStats"`
	Limit            int `json:"limit"`
}

// PipelineResult groups candidates by market key, in fixture order.
type PipelineResult struct {
	RunID      string                        `json:"runId"`
	Status     RunStatus                     `json:"status"`
	StartedAt  time.Time                     `json:"startedAt"`
	FinishedAt time.Time                     `json:"finishedAt"`
	Candidates map[string][]candidate.Record `json:"candidates"`
	Counters   Counters                      `json:"counters"`
}

// CandidateCount is the number of records across all markets.
func (r PipelineResult) CandidateCount() int {
	total := 0
	for _, records := range r.Candidates {
		total += len(records)
	}
	return total
}

type AnalysisConfig struct {
	InterCallDelay         time.Duration
	MaxConsecutiveFailures int
}

type AnalysisService struct {
	fixtures               *FixtureLoader
	history                *HistoryLoader
	odds                   *OddsLoader
	ids                    id.Generator
	logger                 logging.Sink
	metrics                *metrics.Pipeline
	validate               *validator.Validate
	interCallDelay         time.Duration
	maxConsecutiveFailures int
	sleep                  func(ctx context.Context, d time.Duration) error
	now                    func() time.Time
}

func NewAnalysisService(
	fixtures *FixtureLoader,
	historyLoader *HistoryLoader,
	odds *OddsLoader,
	ids id.Generator,
	logger logging.Sink,
	m *metrics.Pipeline,
	cfg AnalysisConfig,
) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.InterCallDelay < 0 {
		cfg.InterCallDelay = DefaultInterCallDelay
	}
	if cfg.MaxConsecutiveFailures < 1 {
		cfg.MaxConsecutiveFailures = DefaultMaxConsecutiveFailures
	}

	return &AnalysisService{
		fixtures:               fixtures,
		history:                historyLoader,
		odds:                   odds,
		ids:                    ids,
		logger:                 logger,
		metrics:                m,
		validate:               newRunValidator(),
		interCallDelay:         cfg.InterCallDelay,
		maxConsecutiveFailures: cfg.MaxConsecutiveFailures,
		sleep:                  sleepContext,
		now:                    time.Now,
	}
}

func newRunValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("market_key", func(fl validator.FieldLevel) bool {
		return market.Key(fl.Field().String()).Valid()
	})
	return v
}

// Run fetches the day's fixtures and classifies them one at a time. It
// stops early when MaxConsecutiveFailures head-to-head fetches fail in a
// row or ctx is done; the partial result is returned either way and only
// an invalid request yields an error.
//
// A fixture skipped for insufficient stats resets the failure streak, the
// same as a fully processed one.
func (s *AnalysisService) Run(ctx context.Context, req RunRequest) (PipelineResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Run")
	defer span.End()

	if err := s.validate.StructCtx(ctx, req); err != nil {
		return PipelineResult{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	runID, err := s.ids.NewID()
	if err != nil {
		return PipelineResult{}, fmt.Errorf("generate run id: %w", err)
	}

	result := PipelineResult{
		RunID:      runID,
		Status:     RunStatusCompleted,
		StartedAt:  s.now(),
		Candidates: emptyCandidates(req.Markets),
		Counters:   Counters{Limit: req.Limit},
	}
	s.logger.Info("analysis run started", "run_id", runID, "day", req.DayOffset, "limit", req.Limit, "league_filter", req.LeagueFilter)

	fixtures := s.fixtures.Load(ctx, req.DayOffset, req.LeagueFilter)
	result.Counters.FixturesFound = len(fixtures)

	breaker := resilience.NewLatchingBreaker(s.maxConsecutiveFailures)
	seen := make(map[string]struct{}, len(fixtures))

	for _, f := range fixtures {
		if result.Counters.Processed >= req.Limit {
			s.logger.Info("match limit reached", "run_id", runID, "limit", req.Limit)
			break
		}
		if err := breaker.Allow(); err != nil {
			s.logger.Error("circuit breaker open, aborting run",
				"run_id", runID,
				"consecutive_failures", breaker.ConsecutiveFailures(),
				"processed", result.Counters.Processed,
			)
			result.Status = RunStatusAborted
			break
		}
		if err := s.sleep(ctx, s.interCallDelay); err != nil {
			result.Status = RunStatusCancelled
			break
		}

		s.logger.Info("analyzing fixture", "run_id", runID, "match_id", f.ID, "match", f.Label(), "league", f.League)
		matches := s.history.Load(ctx, f.ID)
		if matches == nil {
			if ctx.Err() != nil {
				result.Status = RunStatusCancelled
				break
			}
			breaker.RecordFailure()
			result.Counters.SkippedNoHistory++
			s.metrics.RecordSkipped(skipReasonNoHistory)
			continue
		}

		fs := market.BuildFeatureSet(f.HomeTeam, f.AwayTeam, matches)
		breaker.RecordSuccess()
		if !fs.Complete() {
			s.logger.Info("insufficient stats, skipping fixture", "run_id", runID, "match_id", f.ID)
			result.Counters.SkippedNoStats++
			s.metrics.RecordSkipped(skipReasonNoStats)
			continue
		}

		result.Counters.Processed++
		s.metrics.RecordProcessed()

		tags := market.ClassifyOnly(fs, req.Markets)
		if len(tags) == 0 {
			continue
		}

		var opts []candidate.Option
		if req.FetchOdds && s.odds != nil {
			if odds := s.odds.Load(ctx, f.ID); odds != nil {
				opts = append(opts, candidate.WithOdds(odds))
			}
		}

		for _, tag := range tags {
			record := candidate.Assemble(f, tag, fs, opts...)
			if _, dup := seen[record.ID]; dup {
				continue
			}
			seen[record.ID] = struct{}{}

			key := string(tag.Key)
			result.Candidates[key] = append(result.Candidates[key], record)
			s.metrics.RecordCandidate(key)
			s.logger.Info("candidate found", "run_id", runID, "match_id", f.ID, "market", tag.Name)
		}
	}

	result.FinishedAt = s.now()
	s.metrics.RecordRun(string(result.Status), result.FinishedAt.Sub(result.StartedAt))
	s.logger.Info("analysis run finished",
		"run_id", runID,
		"status", string(result.Status),
		"fixtures", result.Counters.FixturesFound,
		"processed", result.Counters.Processed,
		"skipped_no_history", result.Counters.SkippedNoHistory,
		"skipped_no_stats", result.Counters.SkippedNoStats,
		"candidates", result.CandidateCount(),
	)

	return result, nil
}

func emptyCandidates(keys []market.Key) map[string][]candidate.Record {
	if len(keys) == 0 {
		keys = market.Keys
	}
	out := make(map[string][]candidate.Record, len(keys))
	for _, key := range keys {
		out[string(key)] = []candidate.Record{}
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
