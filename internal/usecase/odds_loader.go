package usecase

import (
	"context"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/candidate"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
)

const (
	bettingScopeFullTime = "FULL_TIME"

	bettingTypeHomeDrawAway = "HOME_DRAW_AWAY"
	bettingTypeOverUnder    = "OVER_UNDER"
	bettingTypeBTTS         = "BOTH_TEAMS_TO_SCORE"
	bettingTypeDoubleChance = "DOUBLE_CHANCE"
)

var overUnderLines = []string{"1.5", "2.5", "3.5"}

type OddsLoader struct {
	provider FootballDataProvider
	logger   logging.Sink
}

func NewOddsLoader(provider FootballDataProvider, logger logging.Sink) *OddsLoader {
	if logger == nil {
		logger = logging.Default()
	}
	return &OddsLoader{provider: provider, logger: logger}
}

// Load returns the first bookmaker's prices for the lines shown to
// reviewers. Odds are optional: failures and empty payloads return nil.
func (l *OddsLoader) Load(ctx context.Context, matchID string) *candidate.Odds {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsLoader.Load")
	defer span.End()

	bookmakers, err := l.provider.FetchOdds(ctx, matchID)
	if err != nil {
		l.logger.Warn("fetch odds failed", "match_id", matchID, "error", err)
		return nil
	}
	return selectOdds(bookmakers)
}

func selectOdds(bookmakers []ExternalBookmakerOdds) *candidate.Odds {
	if len(bookmakers) == 0 || len(bookmakers[0].Markets) == 0 {
		return nil
	}
	bookmaker := bookmakers[0]
	out := &candidate.Odds{Bookmaker: bookmaker.Name}

	if m, ok := findMarket(bookmaker.Markets, bettingTypeHomeDrawAway); ok && len(m.Quotes) >= 3 {
		home := firstQuoteValue(m.Quotes, func(q ExternalOddsQuote) bool { return q.ParticipantID != "" })
		if home == "" {
			home = m.Quotes[0].Value
		}
		draw := firstQuoteValue(m.Quotes, func(q ExternalOddsQuote) bool { return q.ParticipantNull })
		if draw == "" {
			draw = m.Quotes[2].Value
		}
		out.Lines = append(out.Lines, line("1X2",
			quote("Home", home),
			quote("Draw", draw),
			quote("Away", m.Quotes[1].Value),
		))
	}

	if m, ok := findMarket(bookmaker.Markets, bettingTypeOverUnder); ok {
		byLine := make(map[string]map[string]string, 4)
		for _, q := range m.Quotes {
			if q.Handicap == "" || q.Selection == "" {
				continue
			}
			if byLine[q.Handicap] == nil {
				byLine[q.Handicap] = make(map[string]string, 2)
			}
			byLine[q.Handicap][q.Selection] = q.Value
		}
		for _, value := range overUnderLines {
			sides := byLine[value]
			if sides["OVER"] == "" && sides["UNDER"] == "" {
				continue
			}
			out.Lines = append(out.Lines, line("O/U "+value,
				quote("Over", sides["OVER"]),
				quote("Under", sides["UNDER"]),
			))
		}
	}

	if m, ok := findMarket(bookmaker.Markets, bettingTypeBTTS); ok && len(m.Quotes) >= 2 {
		yes := firstQuoteValue(m.Quotes, func(q ExternalOddsQuote) bool { return q.BothTeamsToScore != nil && *q.BothTeamsToScore })
		no := firstQuoteValue(m.Quotes, func(q ExternalOddsQuote) bool { return q.BothTeamsToScore != nil && !*q.BothTeamsToScore })
		if yes != "" || no != "" {
			out.Lines = append(out.Lines, line("BTTS", quote("Yes", yes), quote("No", no)))
		}
	}

	// Providers list double chance as 12, 1X, X2.
	if m, ok := findMarket(bookmaker.Markets, bettingTypeDoubleChance); ok && len(m.Quotes) >= 3 {
		out.Lines = append(out.Lines, line("DC",
			quote("1X", m.Quotes[1].Value),
			quote("12", m.Quotes[0].Value),
			quote("X2", m.Quotes[2].Value),
		))
	}

	if len(out.Lines) == 0 {
		return nil
	}
	return out
}

func findMarket(markets []ExternalOddsMarket, bettingType string) (ExternalOddsMarket, bool) {
	for _, m := range markets {
		if m.BettingType == bettingType && m.BettingScope == bettingScopeFullTime {
			return m, true
		}
	}
	return ExternalOddsMarket{}, false
}

// firstQuoteValue returns the value of the first quote matching pred, or ""
// when none matches.
func firstQuoteValue(quotes []ExternalOddsQuote, pred func(ExternalOddsQuote) bool) string {
	for _, q := range quotes {
		if pred(q) {
			return q.Value
		}
	}
	return ""
}

func line(name string, quotes ...candidate.Quote) candidate.OddsLine {
	return candidate.OddsLine{Name: name, Quotes: quotes}
}

func quote(label, value string) candidate.Quote {
	return candidate.Quote{Label: label, Price: candidate.ParsePrice(value)}
}
