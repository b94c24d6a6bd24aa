package candidate

import (
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/fixture"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/form"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/numfmt"
)

const digestDateLayout = "2006-01-02"

type Option func(*assembleOptions)

type assembleOptions struct {
	odds *Odds
}

// WithOdds attaches bookmaker prices; they are appended to every prompt.
func WithOdds(odds *Odds) Option {
	return func(o *assembleOptions) {
		o.odds = odds
	}
}

// Assemble builds the review record for a fixture that qualified for tag.
// It is pure: identical inputs give byte-identical output. fs must be
// complete.
func Assemble(f fixture.Fixture, tag market.Tag, fs market.FeatureSet, opts ...Option) Record {
	var o assembleOptions
	for _, opt := range opts {
		opt(&o)
	}
	oddsText := FormatOdds(o.odds)

	return Record{
		ID:        f.ID + "_" + string(tag.Key),
		MatchID:   f.ID,
		Match:     f.Label(),
		HomeTeam:  f.HomeTeam,
		AwayTeam:  f.AwayTeam,
		StartTime: f.KickoffUnix(),
		League:    f.League,
		Category:  tag.Key,
		Market:    tag.Name,
		Stats:     fs,
		FirstHalf: tag.FirstHalf,
		Details:   details(fs),
		Prompts:   prompts(f, tag, fs, oddsText),
		Odds:      o.odds,
		OddsText:  oddsText,
		Status:    StatusPendingApproval,
	}
}

func details(fs market.FeatureSet) Details {
	games := make([]string, 0, len(fs.Mutual))
	for _, m := range fs.Mutual {
		games = append(games, digestLine(m))
	}

	return Details{
		Form: FormSummary{
			Home: formSentence("Home", fs.HomeForm),
			Away: formSentence("Away", fs.AwayForm),
		},
		H2H: H2HSummary{
			Summary: "Mutual Games: " + strconv.Itoa(len(fs.Mutual)) + " played.",
			Games:   games,
		},
		Stats: StatsSummary{
			LeagueAvg:  numfmt.Fixed(fs.LeagueAverage(), 2),
			HomeAtHome: "Scoring Rate: " + pct(fs.HomeAtHome.ScoringRate) + ", Win Rate: " + pct(fs.HomeAtHome.WinRate),
			AwayAtAway: "Conceding Rate: " + pct(fs.AwayAtAway.ConcedingRate()) + ", Loss Rate: " + pct(fs.AwayAtAway.LossRate()),
		},
	}
}

func formSentence(side string, s *form.Stats) string {
	return side + " Form (Last 5): scored " + numfmt.Fixed(s.AvgScored, 1) +
		" avg, conceded " + numfmt.Fixed(s.AvgConceded, 1) +
		" avg. Over 2.5 in " + pct(s.Over25Rate) + " of games."
}

// digestLine renders "Home h-a Away (date)".
func digestLine(m history.Match) string {
	return m.HomeTeam + " " + m.HomeScore.String() + "-" + m.AwayScore.String() + " " + m.AwayTeam + " (" + digestDate(m.KickoffAt) + ")"
}

func digestDate(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.UTC().Format(digestDateLayout)
}

func pct(v float64) string {
	return numfmt.Plain(v) + "%"
}

func prompts(f fixture.Fixture, tag market.Tag, fs market.FeatureSet, oddsText string) []string {
	base := basePrompt(f, tag.Name, fs, oddsText)
	counter := base + "\n\nTASK: Ignore the '" + tag.Name + "' suggestion for a moment. Based purely on the data, what is the single BEST value bet for this match (e.g. Winner, Goals, BTTS) and why?"

	if tag.FirstHalf != nil {
		return []string{
			firstHalfPrompt(f, tag.FirstHalf),
			firstHalfRiskPrompt(f, tag.FirstHalf),
			counter,
		}
	}

	return []string{
		base + "\n\nTASK: Based on these detailed statistics, provide a comprehensive analysis for the '" + tag.Name + "' bet. Is it a solid value? Give a probability percentage.",
		base + "\n\nTASK: Identify the biggest RISK factors for this specific '" + tag.Name + "' bet given the H2H and recent form. What could go wrong?",
		counter,
	}
}

func basePrompt(f fixture.Fixture, marketName string, fs market.FeatureSet, oddsText string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := func(parts ...string) {
		for _, p := range parts {
			_, _ = buf.WriteString(p)
		}
	}

	home, away := fs.HomeForm, fs.AwayForm
	w("Act as a professional football betting analyst (English/Turkish). Analyze this match:\n")
	w("Match: ", f.Label(), "\n")
	w("League: ", f.League, "\n")
	w("Market Candidate: ", marketName, "\n\n")

	w("DETAILED STATISTICS:\n")
	w("1. LEAGUE CONTEXT\n")
	w("   - League Average Goals: ", numfmt.Fixed(fs.LeagueAverage(), 2), "\n\n")

	w("2. HOME TEAM (", f.HomeTeam, ")\n")
	w("   - General Form (Last 5): Scored ", numfmt.Fixed(home.AvgScored, 2), "/game, Conceded ", numfmt.Fixed(home.AvgConceded, 2), "/game.\n")
	w("   - Over 2.5 Rate: ", pct(home.Over25Rate), "\n")
	w("   - Under 2.5 Rate: ", pct(home.Under25Rate), "\n")
	w("   - BTTS Rate: ", pct(home.BTTSRate), "\n")
	w("   - AT HOME (Last 8): Scored in ", pct(fs.HomeAtHome.ScoringRate), " of games, Win Rate ", pct(fs.HomeAtHome.WinRate),
		". Avg Scored ", numfmt.Fixed(fs.HomeAtHome.AvgScored, 2), ".\n\n")

	w("3. AWAY TEAM (", f.AwayTeam, ")\n")
	w("   - General Form (Last 5): Scored ", numfmt.Fixed(away.AvgScored, 2), "/game, Conceded ", numfmt.Fixed(away.AvgConceded, 2), "/game.\n")
	w("   - Over 2.5 Rate: ", pct(away.Over25Rate), "\n")
	w("   - Under 2.5 Rate: ", pct(away.Under25Rate), "\n")
	w("   - BTTS Rate: ", pct(away.BTTSRate), "\n")
	w("   - AWAY FROM HOME (Last 8): Conceded in ", pct(fs.AwayAtAway.ConcedingRate()), " of games. Avg Conceded ",
		numfmt.Fixed(fs.AwayAtAway.AvgConceded, 2), ".\n\n")

	w("4. HEAD-TO-HEAD (Last ", strconv.Itoa(len(fs.Mutual)), ")\n   ")
	for i, m := range fs.Mutual {
		if i > 0 {
			w("\n   ")
		}
		w("- ", digestLine(m))
	}
	w("\n", oddsText)

	return buf.String()
}

func firstHalfPrompt(f fixture.Fixture, fh *market.FirstHalfReport) string {
	return "Act as a professional football betting analyst.\n" +
		"Match: " + f.Label() + "\n" +
		"Market: First Half Over 0.5 Goals\n\n" +
		"PURE FORM SCORE: " + strconv.Itoa(fh.Score) + "/100\n" +
		" Confidence: " + fh.Confidence + "\n" +
		" Reason: " + fh.Reason + "\n\n" +
		"KEY METRICS:\n" +
		"- Home Team 1H Potential (Home Games): " + pct(fh.HomePotential) + "\n" +
		"- Away Team 1H Potential (Away Games): " + pct(fh.AwayPotential) + "\n" +
		"- H2H 1H Potential: " + pct(fh.H2HPotential) + "\n\n" +
		"TASK:\n" +
		"Based on these specific First Half statistics, write a short, punchy analysis for a bettor. Confirm if the statistics make this a \"Solid Pick\". Mention any risks if standard form (not just 1H) suggests a slow start."
}

func firstHalfRiskPrompt(f fixture.Fixture, fh *market.FirstHalfReport) string {
	return "Match: " + f.Label() + "\n" +
		"Market: First Half Over 0.5 Goals\n" +
		"Score: " + strconv.Itoa(fh.Score) + "/100\n\n" +
		"TASK:\n" +
		"What is the \"Ice Cold\" risk here? Even with high percentage rates, could a recent defensive trend (last 2 games) spoil this? Analyze the \"Momentum\" based on the provided reason: \"" + fh.Reason + "\"."
}
