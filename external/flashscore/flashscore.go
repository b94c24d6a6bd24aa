package flashscore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
	"github.com/p0wz/goalsniperai-sub000/internal/usecase"
)

const (
	endpointFixtures = "fixtures"
	endpointH2H      = "h2h"
	endpointOdds     = "odds"
)

var _ usecase.FootballDataProvider = (*Client)(nil)

// FetchFixtures loads the fixture list for dayOffset days from today.
// Tournaments that cannot be decoded are dropped.
func (c *Client) FetchFixtures(ctx context.Context, dayOffset int) ([]usecase.ExternalTournament, error) {
	path := fmt.Sprintf("/api/flashscore/v1/match/list/%d/0", dayOffset)
	raw, err := c.Fetch(ctx, endpointFixtures, path)
	if err != nil {
		return nil, err
	}
	if isNullPayload(raw) {
		return nil, crerr.Wrapf(ErrEmptyResponse, "fixture list day=%d", dayOffset)
	}

	values, err := collectionValues(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode fixture list day=%d", dayOffset)
	}

	out := make([]usecase.ExternalTournament, 0, len(values))
	for _, value := range values {
		var item rawTournament
		if err := sonic.UnmarshalString(value, &item); err != nil {
			c.logger.WarnContext(ctx, "skip undecodable tournament", "day", dayOffset, "error", err)
			continue
		}
		if item.Matches == nil {
			continue
		}

		tournament := usecase.ExternalTournament{
			Name:    firstTruthy(item.Name),
			Matches: make([]usecase.ExternalFixture, 0, len(item.Matches)),
		}
		for _, m := range item.Matches {
			fixture := usecase.ExternalFixture{
				ID:       firstTruthy(m.MatchID, m.ID, m.EventID),
				HomeTeam: m.HomeTeam.name(),
				AwayTeam: m.AwayTeam.name(),
			}
			if ts, ok := m.Timestamp.int64(); ok && m.Timestamp.truthy() {
				fixture.KickoffUnix = ts
				fixture.HasKickoff = true
			}
			tournament.Matches = append(tournament.Matches, fixture)
		}
		out = append(out, tournament)
	}

	return out, nil
}

// FetchHeadToHead loads prior matches for matchID. An object without DATA
// means no history. Rows that cannot be decoded are dropped.
func (c *Client) FetchHeadToHead(ctx context.Context, matchID string) ([]history.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.Fetch(ctx, endpointH2H, "/api/flashscore/v1/match/h2h/"+url.PathEscape(matchID))
	if err != nil {
		return nil, err
	}
	if isNullPayload(raw) {
		return nil, crerr.Wrapf(ErrEmptyResponse, "head-to-head match_id=%s", matchID)
	}

	rows, err := headToHeadRows(raw)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode head-to-head match_id=%s", matchID)
	}

	out := make([]history.Match, 0, len(rows))
	for _, row := range rows {
		var item rawMatch
		if err := sonic.UnmarshalString(row, &item); err != nil {
			c.logger.WarnContext(ctx, "skip undecodable head-to-head match", "match_id", matchID, "error", err)
			continue
		}
		out = append(out, decodeHistoryMatch(item))
	}
	return out, nil
}

// FetchOdds loads bookmaker prices for matchID. Anything other than an
// array means odds are not offered and yields no bookmakers.
func (c *Client) FetchOdds(ctx context.Context, matchID string) ([]usecase.ExternalBookmakerOdds, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.Fetch(ctx, endpointOdds, "/api/flashscore/v1/match/odds/"+url.PathEscape(matchID))
	if err != nil {
		return nil, err
	}
	if leadingByte(raw) != '[' {
		return nil, nil
	}

	var items []rawBookmaker
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, crerr.Wrapf(err, "decode odds match_id=%s", matchID)
	}

	out := make([]usecase.ExternalBookmakerOdds, 0, len(items))
	for _, item := range items {
		bookmaker := usecase.ExternalBookmakerOdds{
			Name:    item.Name.String(),
			Markets: make([]usecase.ExternalOddsMarket, 0, len(item.Odds)),
		}
		for _, market := range item.Odds {
			mapped := usecase.ExternalOddsMarket{
				BettingType:  market.BettingType,
				BettingScope: market.BettingScope,
				Quotes:       make([]usecase.ExternalOddsQuote, 0, len(market.Odds)),
			}
			for _, quote := range market.Odds {
				mapped.Quotes = append(mapped.Quotes, mapOddsQuote(quote))
			}
			bookmaker.Markets = append(bookmaker.Markets, mapped)
		}
		out = append(out, bookmaker)
	}
	return out, nil
}

func mapOddsQuote(quote rawOddsQuote) usecase.ExternalOddsQuote {
	out := usecase.ExternalOddsQuote{
		Value:            firstTruthy(quote.Value),
		ParticipantNull:  quote.EventParticipantID.kind == flexNull,
		Selection:        firstTruthy(quote.Selection),
		BothTeamsToScore: quote.BothTeamsToScore.bool(),
	}
	if quote.EventParticipantID.truthy() {
		out.ParticipantID = quote.EventParticipantID.String()
		if out.ParticipantID == "" {
			out.ParticipantID = quote.EventParticipantID.text
		}
	}
	if quote.Handicap != nil {
		out.Handicap = firstTruthy(quote.Handicap.Value)
	}
	return out
}
