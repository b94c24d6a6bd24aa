package candidate

import (
	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
)

// StatusPendingApproval marks a record awaiting human review. Records are
// never created approved.
const StatusPendingApproval = "PENDING_APPROVAL"

// Record is the reviewable output for one (fixture, market) pair.
type Record struct {
	ID        string                  `json:"id"`
	MatchID   string                  `json:"matchId"`
	Match     string                  `json:"match"`
	HomeTeam  string                  `json:"homeTeam"`
	AwayTeam  string                  `json:"awayTeam"`
	StartTime int64                   `json:"startTime"`
	League    string                  `json:"league"`
	Category  market.Key              `json:"category"`
	Market    string                  `json:"market"`
	Stats     market.FeatureSet       `json:"stats"`
	FirstHalf *market.FirstHalfReport `json:"firstHalf,omitempty"`
	Details   Details                 `json:"detailedAnalysis"`
	Prompts   []string                `json:"aiPrompts"`
	Odds      *Odds                   `json:"odds,omitempty"`
	OddsText  string                  `json:"oddsText,omitempty"`
	Status    string                  `json:"status"`
}

type Details struct {
	Form  FormSummary  `json:"form"`
	H2H   H2HSummary   `json:"h2h"`
	Stats StatsSummary `json:"stats"`
}

type FormSummary struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

type H2HSummary struct {
	Summary string   `json:"summary"`
	Games   []string `json:"games"`
}

type StatsSummary struct {
	LeagueAvg  string `json:"leagueAvg"`
	HomeAtHome string `json:"homeAtHome"`
	AwayAtAway string `json:"awayAtAway"`
}
