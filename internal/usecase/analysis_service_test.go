package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/candidate"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/league"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/metrics"
)

type fixedIDs struct{}

func (fixedIDs) NewID() (string, error) {
	return "run-1", nil
}

type recordedSleeps struct {
	waits []time.Duration
}

func (r *recordedSleeps) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func newTestAnalysisService(t *testing.T, provider FootballDataProvider) (*AnalysisService, *recordedSleeps) {
	t.Helper()

	logger := logging.NewNop()
	fixtures := NewFixtureLoader(provider, league.NewAllowList([]string{"ENGLAND: Premier League"}), logger, nil)
	fixtures.now = func() time.Time { return loaderNow }

	svc := NewAnalysisService(
		fixtures,
		NewHistoryLoader(provider, logger),
		NewOddsLoader(provider, logger),
		fixedIDs{},
		logger,
		metrics.NewPipeline("test"),
		AnalysisConfig{InterCallDelay: DefaultInterCallDelay, MaxConsecutiveFailures: DefaultMaxConsecutiveFailures},
	)
	sleeps := &recordedSleeps{}
	svc.sleep = sleeps.sleep
	svc.now = func() time.Time { return loaderNow }
	return svc, sleeps
}

func upcoming(ids ...string) []ExternalTournament {
	kickoff := loaderNow.Add(3 * time.Hour).Unix()
	matches := make([]ExternalFixture, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, ExternalFixture{ID: id, KickoffUnix: kickoff, HasKickoff: true, HomeTeam: "Home " + id, AwayTeam: "Away " + id})
	}
	return []ExternalTournament{{Name: "ENGLAND: Premier League", Matches: matches}}
}

// highScoringHistory gives five 3-1 home wins between the fixture teams.
func highScoringHistory(id string) []history.Match {
	out := make([]history.Match, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, history.Match{
			HomeTeam:  "Home " + id,
			AwayTeam:  "Away " + id,
			HomeScore: history.IntScore(3),
			AwayScore: history.IntScore(1),
			KickoffAt: loaderNow.AddDate(0, -i-1, 0),
		})
	}
	return out
}

func defaultRequest() RunRequest {
	return RunRequest{DayOffset: 1, Limit: 500, LeagueFilter: true}
}

func TestAnalysisService_Run_ClassifiesFixtures(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1"), nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f1").Return(highScoringHistory("f1"), nil).Once()

	svc, sleeps := newTestAnalysisService(t, provider)
	result, err := svc.Run(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, RunStatusCompleted, result.Status)
	assert.Equal(t, Counters{FixturesFound: 1, Processed: 1, Limit: 500}, result.Counters)
	assert.Equal(t, []time.Duration{800 * time.Millisecond}, sleeps.waits)

	over25 := result.Candidates[string(market.KeyOver25)]
	require.Len(t, over25, 1)
	assert.Equal(t, "f1_over25", over25[0].ID)
	assert.Equal(t, candidate.StatusPendingApproval, over25[0].Status)
	assert.Nil(t, over25[0].Odds)

	for _, key := range market.Keys {
		_, ok := result.Candidates[string(key)]
		assert.True(t, ok, "expected result bucket for %s", key)
	}
}

func TestAnalysisService_Run_CircuitBreakerAbortsBeforeFourthFixture(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1", "f2", "f3", "f4"), nil).Once()
	for _, id := range []string{"f1", "f2", "f3"} {
		provider.On("FetchHeadToHead", mock.Anything, id).Return(nil, errors.New("status=500")).Once()
	}

	svc, sleeps := newTestAnalysisService(t, provider)
	result, err := svc.Run(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, RunStatusAborted, result.Status)
	assert.Equal(t, 3, result.Counters.SkippedNoHistory)
	assert.Equal(t, 0, result.Counters.Processed)
	assert.Len(t, sleeps.waits, 3)
	provider.AssertNotCalled(t, "FetchHeadToHead", mock.Anything, "f4")
}

func TestAnalysisService_Run_InsufficientStatsResetsFailureStreak(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1", "f2", "f3", "f4", "f5", "f6"), nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f1").Return(nil, errors.New("down")).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f2").Return(nil, errors.New("down")).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f3").Return([]history.Match{}, nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f4").Return(nil, errors.New("down")).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f5").Return(nil, errors.New("down")).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f6").Return(highScoringHistory("f6"), nil).Once()

	svc, _ := newTestAnalysisService(t, provider)
	result, err := svc.Run(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, RunStatusCompleted, result.Status)
	assert.Equal(t, Counters{FixturesFound: 6, Processed: 1, SkippedNoHistory: 4, SkippedNoStats: 1, Limit: 500}, result.Counters)
}

func TestAnalysisService_Run_LimitBoundsProcessedFixtures(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1", "f2", "f3"), nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f1").Return([]history.Match{}, nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f2").Return(highScoringHistory("f2"), nil).Once()

	req := defaultRequest()
	req.Limit = 1

	svc, _ := newTestAnalysisService(t, provider)
	result, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, RunStatusCompleted, result.Status)
	assert.Equal(t, 1, result.Counters.Processed)
	assert.Equal(t, 1, result.Counters.SkippedNoStats)
	provider.AssertNotCalled(t, "FetchHeadToHead", mock.Anything, "f3")
}

func TestAnalysisService_Run_MarketSubsetAndOdds(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1"), nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f1").Return(highScoringHistory("f1"), nil).Once()
	provider.On("FetchOdds", mock.Anything, "f1").Return([]ExternalBookmakerOdds{{
		Name: "bet365",
		Markets: []ExternalOddsMarket{{
			BettingType:  "OVER_UNDER",
			BettingScope: "FULL_TIME",
			Quotes:       []ExternalOddsQuote{{Value: "1.60", Selection: "OVER", Handicap: "2.5"}},
		}},
	}}, nil).Once()

	req := defaultRequest()
	req.Markets = []market.Key{market.KeyOver25}
	req.FetchOdds = true

	svc, _ := newTestAnalysisService(t, provider)
	result, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	records := result.Candidates[string(market.KeyOver25)]
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Odds)
	assert.Contains(t, records[0].Prompts[0], "   - O/U 2.5: Over 1.6 | Under N/A\n")
}

func TestAnalysisService_Run_RejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	svc, _ := newTestAnalysisService(t, provider)

	for name, req := range map[string]RunRequest{
		"zero limit":     {DayOffset: 1, Limit: 0},
		"unknown market": {DayOffset: 1, Limit: 10, Markets: []market.Key{"corners"}},
		"negative day":   {DayOffset: -1, Limit: 10},
	} {
		_, err := svc.Run(context.Background(), req)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestAnalysisService_Run_CancelledContext(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1", "f2"), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, _ := newTestAnalysisService(t, provider)
	result, err := svc.Run(ctx, defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, RunStatusCancelled, result.Status)
	assert.Equal(t, 0, result.Counters.Processed)
	provider.AssertNotCalled(t, "FetchHeadToHead", mock.Anything, mock.Anything)
}

func TestAnalysisService_Run_DuplicateFixturesYieldOneCandidate(t *testing.T) {
	t.Parallel()

	provider := NewMockFootballDataProvider(t)
	provider.On("FetchFixtures", mock.Anything, 1).Return(upcoming("f1", "f1"), nil).Once()
	provider.On("FetchHeadToHead", mock.Anything, "f1").Return(highScoringHistory("f1"), nil).Twice()

	svc, _ := newTestAnalysisService(t, provider)
	result, err := svc.Run(context.Background(), defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Counters.Processed)
	assert.Len(t, result.Candidates[string(market.KeyOver25)], 1)
}
