package usecase

import (
	"context"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
)

type HistoryLoader struct {
	provider FootballDataProvider
	logger   logging.Sink
}

func NewHistoryLoader(provider FootballDataProvider, logger logging.Sink) *HistoryLoader {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryLoader{provider: provider, logger: logger}
}

// Load returns the head-to-head history of a fixture. It returns nil only
// when the fetch failed; a successful fetch without history is an empty,
// non-nil slice.
func (l *HistoryLoader) Load(ctx context.Context, matchID string) []history.Match {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryLoader.Load")
	defer span.End()

	matches, err := l.provider.FetchHeadToHead(ctx, matchID)
	if err != nil {
		l.logger.Warn("fetch head-to-head failed", "match_id", matchID, "error", err)
		return nil
	}
	if matches == nil {
		matches = []history.Match{}
	}
	l.logger.Info("head-to-head fetched", "match_id", matchID, "matches", len(matches))
	return matches
}
