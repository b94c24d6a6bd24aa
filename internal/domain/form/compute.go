package form

import "github.com/p0wz/goalsniperai-sub000/internal/domain/history"

type tally struct {
	matches       int
	goals         int
	scored        int
	conceded      int
	over15        int
	over25        int
	under25       int
	under35       int
	btts          int
	cleanSheets   int
	failedToScore int
	wins          int
	draws         int
	losses        int
	htGoal        int
}

// Compute derives Stats for team from matches. Matches whose full-time
// score does not parse are skipped and never counted; the team is taken as
// the away side whenever it is not the home side. Every rate divides by
// the counted total, not len(matches).
func Compute(matches []history.Match, team string) *Stats {
	var t tally
	for _, m := range matches {
		home, away, ok := m.FullTime()
		if !ok {
			continue
		}

		t.matches++
		total := home + away
		t.goals += total

		mine, theirs := away, home
		if m.HomeTeam == team {
			mine, theirs = home, away
		}
		t.scored += mine
		t.conceded += theirs

		if total >= 2 {
			t.over15++
		}
		if total >= 3 {
			t.over25++
		} else {
			t.under25++
		}
		if total <= 3 {
			t.under35++
		}
		if home > 0 && away > 0 {
			t.btts++
		}
		if theirs == 0 {
			t.cleanSheets++
		}
		if mine == 0 {
			t.failedToScore++
		}

		switch {
		case mine > theirs:
			t.wins++
		case mine == theirs:
			t.draws++
		default:
			t.losses++
		}

		if m.FirstHalfGoals() >= 1 {
			t.htGoal++
		}
	}

	if t.matches == 0 {
		return nil
	}

	n := float64(t.matches)
	rate := func(count int) float64 { return float64(count) / n * 100 }

	return &Stats{
		Matches:        t.matches,
		AvgTotalGoals:  float64(t.goals) / n,
		AvgScored:      float64(t.scored) / n,
		AvgConceded:    float64(t.conceded) / n,
		Over15Rate:     rate(t.over15),
		Over25Rate:     rate(t.over25),
		Under25Rate:    rate(t.under25),
		Under35Rate:    rate(t.under35),
		BTTSRate:       rate(t.btts),
		ScoringRate:    float64(t.matches-t.failedToScore) / n * 100,
		WinRate:        rate(t.wins),
		CleanSheetRate: rate(t.cleanSheets),
		HTGoalRate:     rate(t.htGoal),
		WinCount:       t.wins,
		DrawCount:      t.draws,
		LossCount:      t.losses,
	}
}
