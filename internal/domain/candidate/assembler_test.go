package candidate

import (
	"strings"
	"testing"
	"time"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/fixture"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/form"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
)

func sampleFixture() fixture.Fixture {
	return fixture.Fixture{
		ID:        "Ab12Cd34",
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		KickoffAt: time.Unix(1760000000, 0).UTC(),
		League:    "ENGLAND: Premier League",
	}
}

func sampleFeatures() market.FeatureSet {
	homeForm := form.Stats{Matches: 5, AvgTotalGoals: 3.2, AvgScored: 2.2, AvgConceded: 1.0, Over25Rate: 80, Under25Rate: 20, BTTSRate: 60}
	awayForm := form.Stats{Matches: 5, AvgTotalGoals: 2.9, AvgScored: 1.4, AvgConceded: 1.5, Over25Rate: 100.0 / 3, Under25Rate: 40, BTTSRate: 40}
	homeAtHome := form.Stats{Matches: 8, AvgScored: 2.125, ScoringRate: 87.5, WinRate: 62.5, LossCount: 1}
	awayAtAway := form.Stats{Matches: 8, AvgConceded: 1.625, CleanSheetRate: 12.5, LossCount: 3}

	return market.FeatureSet{
		HomeTeam:   "Arsenal",
		AwayTeam:   "Chelsea",
		HomeForm:   &homeForm,
		AwayForm:   &awayForm,
		HomeAtHome: &homeAtHome,
		AwayAtAway: &awayAtAway,
		Mutual: []history.Match{
			{
				HomeTeam:  "Chelsea",
				AwayTeam:  "Arsenal",
				HomeScore: history.IntScore(1),
				AwayScore: history.IntScore(2),
				KickoffAt: time.Date(2025, 3, 16, 13, 30, 0, 0, time.UTC),
			},
			{HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeScore: history.IntScore(0), AwayScore: history.MissingScore()},
		},
	}
}

func TestAssemble_RecordFields(t *testing.T) {
	tag := market.Tag{Key: market.KeyOver25, Name: market.NameOver25}
	rec := Assemble(sampleFixture(), tag, sampleFeatures())

	if rec.ID != "Ab12Cd34_over25" {
		t.Fatalf("unexpected id %q", rec.ID)
	}
	if rec.Status != StatusPendingApproval {
		t.Fatalf("unexpected status %q", rec.Status)
	}
	if rec.Match != "Arsenal vs Chelsea" || rec.StartTime != 1760000000 {
		t.Fatalf("unexpected match fields %q %d", rec.Match, rec.StartTime)
	}
	if len(rec.Prompts) != 3 {
		t.Fatalf("expected three prompts, got=%d", len(rec.Prompts))
	}
	if !strings.HasPrefix(rec.Prompts[0], "Act as a professional football betting analyst") {
		t.Fatalf("first prompt must be the base analysis prompt, got=%q", rec.Prompts[0])
	}
}

func TestAssemble_Details(t *testing.T) {
	tag := market.Tag{Key: market.KeyOver25, Name: market.NameOver25}
	d := Assemble(sampleFixture(), tag, sampleFeatures()).Details

	if want := "Home Form (Last 5): scored 2.2 avg, conceded 1.0 avg. Over 2.5 in 80% of games."; d.Form.Home != want {
		t.Fatalf("home form=%q want=%q", d.Form.Home, want)
	}
	if want := "Away Form (Last 5): scored 1.4 avg, conceded 1.5 avg. Over 2.5 in 33.333333333333336% of games."; d.Form.Away != want {
		t.Fatalf("away form=%q want=%q", d.Form.Away, want)
	}
	if d.H2H.Summary != "Mutual Games: 2 played." {
		t.Fatalf("unexpected h2h summary %q", d.H2H.Summary)
	}
	if len(d.H2H.Games) != 2 || d.H2H.Games[0] != "Chelsea 1-2 Arsenal (2025-03-16)" || d.H2H.Games[1] != "Arsenal 0-? Chelsea (n/a)" {
		t.Fatalf("unexpected h2h games %q", d.H2H.Games)
	}
	if d.Stats.LeagueAvg != "3.05" {
		t.Fatalf("unexpected league avg %q", d.Stats.LeagueAvg)
	}
	if d.Stats.HomeAtHome != "Scoring Rate: 87.5%, Win Rate: 62.5%" {
		t.Fatalf("unexpected home-at-home text %q", d.Stats.HomeAtHome)
	}
	if d.Stats.AwayAtAway != "Conceding Rate: 87.5%, Loss Rate: 37.5%" {
		t.Fatalf("unexpected away-at-away text %q", d.Stats.AwayAtAway)
	}
}

func TestAssemble_IsPure(t *testing.T) {
	tag := market.Tag{Key: market.KeyDoubleChance, Name: market.NameDoubleChance}
	first := Assemble(sampleFixture(), tag, sampleFeatures())
	second := Assemble(sampleFixture(), tag, sampleFeatures())

	for i := range first.Prompts {
		if first.Prompts[i] != second.Prompts[i] {
			t.Fatalf("prompt %d differs between identical calls", i)
		}
	}
}

func TestAssemble_PromptContent(t *testing.T) {
	tag := market.Tag{Key: market.KeyDoubleChance, Name: market.NameDoubleChance}
	rec := Assemble(sampleFixture(), tag, sampleFeatures())

	base := rec.Prompts[0]
	for _, want := range []string{
		"Match: Arsenal vs Chelsea\nLeague: ENGLAND: Premier League\nMarket Candidate: 1X Double Chance\n",
		"   - League Average Goals: 3.05\n",
		"   - General Form (Last 5): Scored 2.20/game, Conceded 1.00/game.\n",
		"   - AT HOME (Last 8): Scored in 87.5% of games, Win Rate 62.5%. Avg Scored 2.13.\n",
		"   - AWAY FROM HOME (Last 8): Conceded in 87.5% of games. Avg Conceded 1.63.\n",
		"4. HEAD-TO-HEAD (Last 2)\n   - Chelsea 1-2 Arsenal (2025-03-16)\n   - Arsenal 0-? Chelsea (n/a)\n",
		"TASK: Based on these detailed statistics, provide a comprehensive analysis for the '1X Double Chance' bet.",
	} {
		if !strings.Contains(base, want) {
			t.Fatalf("prompt missing %q\n---\n%s", want, base)
		}
	}
	if !strings.Contains(rec.Prompts[1], "biggest RISK factors for this specific '1X Double Chance' bet") {
		t.Fatalf("risk prompt missing task")
	}
	if !strings.Contains(rec.Prompts[2], "Ignore the '1X Double Chance' suggestion") {
		t.Fatalf("counter prompt missing task")
	}
}

func TestAssemble_FirstHalfPrompts(t *testing.T) {
	report := &market.FirstHalfReport{Signal: true, Score: 85, Confidence: market.ConfidenceHigh, HomePotential: 90, AwayPotential: 82.5, Reason: "Home Pot: 90%, Away Pot: 83%."}
	tag := market.Tag{Key: market.KeyFirstHalfOver05, Name: market.NameFirstHalfOver05, FirstHalf: report}

	rec := Assemble(sampleFixture(), tag, sampleFeatures())
	if rec.FirstHalf != report {
		t.Fatalf("expected first-half report on record")
	}
	if !strings.Contains(rec.Prompts[0], "PURE FORM SCORE: 85/100\n Confidence: HIGH\n") {
		t.Fatalf("unexpected first-half prompt:\n%s", rec.Prompts[0])
	}
	if !strings.Contains(rec.Prompts[1], "Score: 85/100") {
		t.Fatalf("unexpected first-half risk prompt:\n%s", rec.Prompts[1])
	}
}

func TestAssemble_WithOdds(t *testing.T) {
	odds := &Odds{
		Bookmaker: "bet365",
		Lines: []OddsLine{
			{Name: "1X2", Quotes: []Quote{{Label: "Home", Price: ParsePrice("1.85")}, {Label: "Draw", Price: ParsePrice("3.60")}, {Label: "Away", Price: ParsePrice("")}}},
			{Name: "BTTS", Quotes: []Quote{{Label: "Yes", Price: ParsePrice("-")}, {Label: "No", Price: ParsePrice("")}}},
		},
	}
	tag := market.Tag{Key: market.KeyOver25, Name: market.NameOver25}
	rec := Assemble(sampleFixture(), tag, sampleFeatures(), WithOdds(odds))

	want := "\n5. BETTING ODDS (bet365):\n   - 1X2: Home 1.85 | Draw 3.6 | Away N/A\n"
	if rec.OddsText != want {
		t.Fatalf("odds text=%q want=%q", rec.OddsText, want)
	}
	if !strings.Contains(rec.Prompts[0], want+"\n\nTASK:") {
		t.Fatalf("odds block must close the prompt base")
	}
}

func TestFormatOdds_EmptyWhenNothingPriced(t *testing.T) {
	if got := FormatOdds(&Odds{Bookmaker: "x", Lines: []OddsLine{{Name: "DC"}}}); got != "" {
		t.Fatalf("expected empty odds text, got=%q", got)
	}
	if got := FormatOdds(nil); got != "" {
		t.Fatalf("expected empty odds text for nil, got=%q", got)
	}
}
