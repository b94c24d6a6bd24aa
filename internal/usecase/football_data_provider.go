package usecase

import (
	"context"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
)

// FootballDataProvider is the upstream statistics API used by an analysis run.
type FootballDataProvider interface {
	FetchFixtures(ctx context.Context, dayOffset int) ([]ExternalTournament, error)
	FetchHeadToHead(ctx context.Context, matchID string) ([]history.Match, error)
	FetchOdds(ctx context.Context, matchID string) ([]ExternalBookmakerOdds, error)
}

// ExternalTournament is one league group of the fixture list. Name is empty
// when the provider omitted it.
type ExternalTournament struct {
	Name    string
	Matches []ExternalFixture
}

// ExternalFixture is a raw fixture row. ID is empty when no usable
// identifier was sent; HasKickoff is false for a missing or non-numeric
// timestamp.
type ExternalFixture struct {
	ID          string
	KickoffUnix int64
	HasKickoff  bool
	HomeTeam    string
	AwayTeam    string
}

type ExternalBookmakerOdds struct {
	Name    string
	Markets []ExternalOddsMarket
}

type ExternalOddsMarket struct {
	BettingType  string
	BettingScope string
	Quotes       []ExternalOddsQuote
}

// ExternalOddsQuote is one price. ParticipantNull is set only when the
// provider sent an explicit null participant, which marks the draw.
type ExternalOddsQuote struct {
	Value            string
	ParticipantID    string
	ParticipantNull  bool
	Selection        string
	Handicap         string
	BothTeamsToScore *bool
}
