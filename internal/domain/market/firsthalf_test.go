package market

import (
	"testing"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
)

func played(home string, homeGoals int, away string, awayGoals int) history.Match {
	return history.Match{
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: history.IntScore(homeGoals),
		AwayScore: history.IntScore(awayGoals),
	}
}

func TestAnalyzeFirstHalf_StrongSignal(t *testing.T) {
	homeHistory := []history.Match{
		played("Home", 2, "A", 1),
		played("Home", 3, "B", 0),
		played("Home", 1, "C", 2),
	}
	awayHistory := []history.Match{
		played("D", 2, "Away", 2),
		played("E", 1, "Away", 2),
	}
	mutual := []history.Match{played("Home", 2, "Away", 1)}

	report := AnalyzeFirstHalf("Home", "Away", homeHistory, awayHistory, mutual)
	if report.Score != 100 {
		t.Fatalf("expected score=100, got=%d", report.Score)
	}
	if !report.Signal || report.Confidence != ConfidenceHigh {
		t.Fatalf("expected HIGH signal, got signal=%v confidence=%s", report.Signal, report.Confidence)
	}
	if report.Reason != "Home Pot: 100%, Away Pot: 100%." {
		t.Fatalf("unexpected reason %q", report.Reason)
	}
}

func TestAnalyzeFirstHalf_WeightedPotential(t *testing.T) {
	homeHistory := []history.Match{
		played("Home", 1, "A", 1),
		played("Home", 1, "B", 0),
	}
	report := AnalyzeFirstHalf("Home", "Away", homeHistory, nil, nil)

	if report.HomePotential != 47.5 {
		t.Fatalf("expected home potential 47.5, got=%v", report.HomePotential)
	}
	if report.Score != 20 {
		t.Fatalf("expected side score 20 only, got=%d", report.Score)
	}
	if report.Signal {
		t.Fatalf("expected no signal")
	}
	if report.Confidence != ConfidenceMedium {
		t.Fatalf("expected MEDIUM confidence, got=%s", report.Confidence)
	}
}

func TestAnalyzeFirstHalf_ScorelessPenalty(t *testing.T) {
	homeHistory := []history.Match{
		played("Home", 0, "A", 0),
		played("B", 0, "Home", 0),
		played("Home", 4, "C", 1),
	}
	awayHistory := []history.Match{
		played("D", 2, "Away", 2),
	}
	mutual := []history.Match{played("Away", 3, "Home", 1)}

	report := AnalyzeFirstHalf("Home", "Away", homeHistory, awayHistory, mutual)
	// home venue: 0-0 and 4-1 -> 50% -> 20; away 100% -> 40; h2h 100% -> 20; minus 30.
	if report.Score != 50 {
		t.Fatalf("expected score=50, got=%d", report.Score)
	}
	if report.Reason != "Home Pot: 50%, Away Pot: 100%. Penalty: Recent 0-0 FT results detected." {
		t.Fatalf("unexpected reason %q", report.Reason)
	}
}

func TestAnalyzeFirstHalf_ClampsAtZero(t *testing.T) {
	homeHistory := []history.Match{
		played("Home", 0, "A", 0),
		played("Home", 0, "B", 0),
	}
	report := AnalyzeFirstHalf("Home", "Away", homeHistory, nil, nil)
	if report.Score != 0 {
		t.Fatalf("expected clamped score 0, got=%d", report.Score)
	}
}
