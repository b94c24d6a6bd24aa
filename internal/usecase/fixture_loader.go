package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/fixture"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/league"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/metrics"
)

const maxReportedSkippedLeagues = 10

type FixtureLoader struct {
	provider  FootballDataProvider
	allowList league.AllowList
	logger    logging.Sink
	metrics   *metrics.Pipeline
	now       func() time.Time
}

func NewFixtureLoader(provider FootballDataProvider, allowList league.AllowList, logger logging.Sink, m *metrics.Pipeline) *FixtureLoader {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureLoader{
		provider:  provider,
		allowList: allowList,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// Load returns the upcoming fixtures of the given day. A provider failure
// is logged and yields no fixtures; it is never returned to the caller.
// With leagueFilter set, tournaments outside the allow-list are dropped.
func (l *FixtureLoader) Load(ctx context.Context, dayOffset int, leagueFilter bool) []fixture.Fixture {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureLoader.Load")
	defer span.End()

	l.logger.Info("fetching fixture list", "day", dayOffset)
	tournaments, err := l.provider.FetchFixtures(ctx, dayOffset)
	if err != nil {
		l.logger.Error("fetch fixture list failed", "day", dayOffset, "error", err)
		return nil
	}

	now := l.now()
	out := make([]fixture.Fixture, 0, 64)
	skippedLeagues := make([]string, 0, maxReportedSkippedLeagues)
	for _, tournament := range tournaments {
		leagueName := tournament.Name
		if leagueName == "" {
			leagueName = fixture.UnknownLeague
		}
		if leagueFilter && !l.allowList.IsAllowed(leagueName) {
			if len(skippedLeagues) < maxReportedSkippedLeagues {
				skippedLeagues = append(skippedLeagues, leagueName)
			}
			continue
		}

		for _, item := range tournament.Matches {
			if !item.HasKickoff {
				continue
			}
			kickoff := time.Unix(item.KickoffUnix, 0).UTC()
			if !kickoff.After(now) {
				continue
			}

			id := item.ID
			if id == "" {
				id = fixture.FallbackID(item.KickoffUnix, item.HomeTeam, item.AwayTeam)
			}
			out = append(out, fixture.Fixture{
				ID:        id,
				HomeTeam:  firstNonEmpty(item.HomeTeam, fixture.UnknownHomeTeam),
				AwayTeam:  firstNonEmpty(item.AwayTeam, fixture.UnknownAwayTeam),
				KickoffAt: kickoff,
				League:    leagueName,
			})
		}
	}

	if len(skippedLeagues) > 0 {
		l.logger.Info("skipped leagues outside the allow-list", "leagues", strings.Join(skippedLeagues, ", "))
	}
	l.logger.Info("parsed upcoming fixtures", "day", dayOffset, "count", len(out))
	l.metrics.RecordFixturesLoaded(len(out))

	return out
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if item != "" {
			return item
		}
	}
	return ""
}
