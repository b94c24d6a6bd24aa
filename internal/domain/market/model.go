package market

import (
	"fmt"
	"strings"

	"github.com/p0wz/goalsniperai-sub000/internal/domain/form"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/history"
)

// Key identifies a market category in a pipeline result.
type Key string

const (
	KeyOver25          Key = "over25"
	KeyDoubleChance    Key = "doubleChance"
	KeyHomeOver15      Key = "homeOver15"
	KeyUnder35         Key = "under35"
	KeyUnder25         Key = "under25"
	KeyBTTS            Key = "btts"
	KeyFirstHalfOver05 Key = "firstHalfOver05"
	KeyMS1AndOver15    Key = "ms1AndOver15"
	KeyAwayOver05      Key = "awayOver05"
	KeyHandicap        Key = "handicap"
)

// Keys lists every category in result order.
var Keys = []Key{
	KeyOver25,
	KeyDoubleChance,
	KeyHomeOver15,
	KeyUnder35,
	KeyUnder25,
	KeyBTTS,
	KeyFirstHalfOver05,
	KeyMS1AndOver15,
	KeyAwayOver05,
	KeyHandicap,
}

const (
	NameOver25          = "Over 2.5 Goals"
	NameDoubleChance    = "1X Double Chance"
	NameHomeOver15      = "Home Team Over 1.5"
	NameUnder35         = "Under 3.5 Goals"
	NameUnder25         = "Under 2.5 Goals"
	NameBTTS            = "BTTS (Both Teams To Score)"
	NameFirstHalfOver05 = "First Half Over 0.5"
	NameMS1AndOver15    = "MS1 & 1.5 Üst"
	NameAwayOver05      = "Dep 0.5 Üst"
	NameHandicapHome    = "Hnd. MS1 (-1.5)"
	NameHandicapAway    = "Hnd. MS2 (-1.5)"
)

func (k Key) Valid() bool {
	for _, item := range Keys {
		if item == k {
			return true
		}
	}
	return false
}

// ParseKeys parses a comma separated list of market keys. Matching is case
// insensitive; an empty input yields nil, meaning every market.
func ParseKeys(raw string) ([]Key, error) {
	parts := strings.Split(raw, ",")
	out := make([]Key, 0, len(parts))
	seen := make(map[Key]struct{}, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		key, ok := lookupKey(item)
		if !ok {
			return nil, fmt.Errorf("unknown market %q", item)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func lookupKey(v string) (Key, bool) {
	for _, item := range Keys {
		if strings.EqualFold(string(item), v) {
			return item, true
		}
	}
	return "", false
}

// FeatureSet holds everything the rules read for one fixture. The four form
// groupings are computed once and shared by every rule.
type FeatureSet struct {
	HomeTeam    string          `json:"-"`
	AwayTeam    string          `json:"-"`
	HomeForm    *form.Stats     `json:"homeForm"`
	AwayForm    *form.Stats     `json:"awayForm"`
	HomeAtHome  *form.Stats     `json:"homeHomeStats"`
	AwayAtAway  *form.Stats     `json:"awayAwayStats"`
	Mutual      []history.Match `json:"mutual"`
	HomeHistory []history.Match `json:"-"`
	AwayHistory []history.Match `json:"-"`
}

// BuildFeatureSet slices raw head-to-head history for a fixture and
// computes its form groupings: last 5 involving each team, last 8 at the
// team's venue side and last 3 direct meetings.
func BuildFeatureSet(homeTeam, awayTeam string, matches []history.Match) FeatureSet {
	homeHistory := history.Involving(matches, homeTeam, 0)
	awayHistory := history.Involving(matches, awayTeam, 0)

	return FeatureSet{
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		HomeForm:    form.Compute(history.Head(homeHistory, history.FormWindow), homeTeam),
		AwayForm:    form.Compute(history.Head(awayHistory, history.FormWindow), awayTeam),
		HomeAtHome:  form.Compute(history.AtHome(matches, homeTeam, history.VenueWindow), homeTeam),
		AwayAtAway:  form.Compute(history.AtAway(matches, awayTeam, history.VenueWindow), awayTeam),
		Mutual:      history.Mutual(matches, homeTeam, awayTeam, history.MutualWindow),
		HomeHistory: homeHistory,
		AwayHistory: awayHistory,
	}
}

// Complete reports whether all four form groupings are present.
func (fs FeatureSet) Complete() bool {
	return fs.HomeForm != nil && fs.AwayForm != nil && fs.HomeAtHome != nil && fs.AwayAtAway != nil
}

// LeagueAverage is the proxy league scoring level: the mean of both teams'
// average total goals. Zero for an incomplete set.
func (fs FeatureSet) LeagueAverage() float64 {
	if fs.HomeForm == nil || fs.AwayForm == nil {
		return 0
	}
	return (fs.HomeForm.AvgTotalGoals + fs.AwayForm.AvgTotalGoals) / 2
}
