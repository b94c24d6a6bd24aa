package market

import (
	"strings"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/numfmt"
)

const (
	firstHalfSignalScore = 75
	firstHalfHighScore   = 80
	firstHalfSlumpCost   = 30
	firstHalfH2HWindow   = 5
	firstHalfSlumpWindow = 5

	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"

	slumpNote = "Penalty: Recent 0-0 FT results detected."
)

// FirstHalfReport estimates first-half goal potential from full-time
// scores, because head-to-head payloads rarely carry half-time data.
type FirstHalfReport struct {
	Signal        bool    `json:"signal"`
	Score         int     `json:"score"`
	Confidence    string  `json:"confidence"`
	HomePotential float64 `json:"homePotential"`
	AwayPotential float64 `json:"awayPotential"`
	H2HPotential  float64 `json:"h2hPotential"`
	Reason        string  `json:"reason"`
}

// AnalyzeFirstHalf scores a fixture out of 100: up to 40 points per side
// from its venue form (last 8), up to 20 from the last direct meetings, and
// a 30 point penalty when either team's two latest matches both ended 0-0.
func AnalyzeFirstHalf(homeTeam, awayTeam string, homeHistory, awayHistory, mutual []history.Match) FirstHalfReport {
	homeVenue := history.AtHome(homeHistory, homeTeam, history.VenueWindow)
	awayVenue := history.AtAway(awayHistory, awayTeam, history.VenueWindow)
	recentMutual := history.Head(mutual, firstHalfH2HWindow)

	homePot := potential(homeVenue)
	awayPot := potential(awayVenue)
	h2hPot := potential(recentMutual)

	score := sideScore(len(homeVenue), homePot) + sideScore(len(awayVenue), awayPot) + h2hScore(len(recentMutual), h2hPot)

	penalty := ""
	if scorelessStreak(history.Head(homeHistory, firstHalfSlumpWindow)) ||
		scorelessStreak(history.Head(awayHistory, firstHalfSlumpWindow)) {
		score -= firstHalfSlumpCost
		penalty = slumpNote
	}
	score = min(max(score, 0), 100)

	confidence := ConfidenceMedium
	if score >= firstHalfHighScore {
		confidence = ConfidenceHigh
	}

	reason := "Home Pot: " + numfmt.Fixed(homePot, 0) + "%, Away Pot: " + numfmt.Fixed(awayPot, 0) + "%. " + penalty

	return FirstHalfReport{
		Signal:        score >= firstHalfSignalScore,
		Score:         score,
		Confidence:    confidence,
		HomePotential: numfmt.Round(homePot, 1),
		AwayPotential: numfmt.Round(awayPot, 1),
		H2HPotential:  numfmt.Round(h2hPot, 1),
		Reason:        strings.TrimSpace(reason),
	}
}

// potential weights each match by its full-time total (3+ goals 1.0, 2
// goals 0.65, 1 goal 0.30) and returns the mean as a percentage.
func potential(matches []history.Match) float64 {
	if len(matches) == 0 {
		return 0
	}
	var weight float64
	for _, m := range matches {
		switch total := m.HomeScore.OrZero() + m.AwayScore.OrZero(); {
		case total >= 3:
			weight += 1.0
		case total == 2:
			weight += 0.65
		case total == 1:
			weight += 0.30
		}
	}
	return weight / float64(len(matches)) * 100
}

func sideScore(matches int, pot float64) int {
	switch {
	case matches == 0:
		return 0
	case pot >= 80:
		return 40
	case pot >= 60:
		return 30
	case pot >= 40:
		return 20
	default:
		return 10
	}
}

func h2hScore(matches int, pot float64) int {
	switch {
	case matches == 0:
		return 0
	case pot >= 80:
		return 20
	case pot >= 60:
		return 15
	case pot >= 40:
		return 10
	default:
		return 0
	}
}

func scorelessStreak(recent []history.Match) bool {
	if len(recent) < 2 {
		return false
	}
	for _, m := range recent[:2] {
		if m.HomeScore.OrZero()+m.AwayScore.OrZero() != 0 {
			return false
		}
	}
	return true
}
