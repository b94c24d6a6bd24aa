package history

import "time"

// Match is one finished match from a head-to-head payload. KickoffAt is
// zero when the provider omitted the timestamp.
type Match struct {
	HomeTeam      string    `json:"homeTeam"`
	AwayTeam      string    `json:"awayTeam"`
	HomeScore     Score     `json:"homeScore"`
	AwayScore     Score     `json:"awayScore"`
	HomeFirstHalf Score     `json:"homeFirstHalf"`
	AwayFirstHalf Score     `json:"awayFirstHalf"`
	KickoffAt     time.Time `json:"kickoffAt"`
}

// FullTime returns both scores when each parses.
func (m Match) FullTime() (home, away int, ok bool) {
	home, homeOK := m.HomeScore.Int()
	away, awayOK := m.AwayScore.Int()
	if !homeOK || !awayOK {
		return 0, 0, false
	}
	return home, away, true
}

// FirstHalfGoals sums both first-half scores, counting unparseable values
// as zero.
func (m Match) FirstHalfGoals() int {
	return m.HomeFirstHalf.OrZero() + m.AwayFirstHalf.OrZero()
}

// LenientGoals sums full-time goals treating missing values as zero. It
// reports false when a present value does not parse.
func (m Match) LenientGoals() (int, bool) {
	home, homeOK := m.HomeScore.OrZeroInt()
	away, awayOK := m.AwayScore.OrZeroInt()
	if !homeOK || !awayOK {
		return 0, false
	}
	return home + away, true
}

func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// IsBetween reports a meeting of the two teams in either orientation.
func (m Match) IsBetween(teamA, teamB string) bool {
	return (m.HomeTeam == teamA && m.AwayTeam == teamB) ||
		(m.HomeTeam == teamB && m.AwayTeam == teamA)
}
