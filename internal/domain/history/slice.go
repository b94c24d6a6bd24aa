package history

// Slice sizes applied before form calculation. Provider history is most
// recent first, so taking a prefix keeps the latest matches.
const (
	FormWindow   = 5
	VenueWindow  = 8
	MutualWindow = 3
)

// Involving keeps matches the team played on either side.
func Involving(matches []Match, team string, limit int) []Match {
	return filter(matches, limit, func(m Match) bool { return m.Involves(team) })
}

// AtHome keeps matches the team hosted.
func AtHome(matches []Match, team string, limit int) []Match {
	return filter(matches, limit, func(m Match) bool { return m.HomeTeam == team })
}

// AtAway keeps matches the team played away.
func AtAway(matches []Match, team string, limit int) []Match {
	return filter(matches, limit, func(m Match) bool { return m.AwayTeam == team })
}

// Mutual keeps direct meetings of home and away in either orientation.
func Mutual(matches []Match, home, away string, limit int) []Match {
	return filter(matches, limit, func(m Match) bool { return m.IsBetween(home, away) })
}

// Head returns at most limit leading matches; limit <= 0 keeps all.
func Head(matches []Match, limit int) []Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

func filter(matches []Match, limit int, keep func(Match) bool) []Match {
	out := make([]Match, 0, min(len(matches), max(limit, 0)))
	for _, m := range matches {
		if limit > 0 && len(out) >= limit {
			break
		}
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
