package fixture

import (
	"strconv"
	"strings"
	"time"
)

const (
	UnknownLeague   = "Unknown League"
	UnknownHomeTeam = "Unknown Home"
	UnknownAwayTeam = "Unknown Away"
)

// Fixture represents one scheduled, not-yet-started match.
type Fixture struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	KickoffAt time.Time `json:"kickoffAt"`
	League    string    `json:"league"`
}

func (f Fixture) KickoffUnix() int64 {
	return f.KickoffAt.Unix()
}

// Label renders "Home vs Away".
func (f Fixture) Label() string {
	return f.HomeTeam + " vs " + f.AwayTeam
}

// FallbackID builds "<unix>_<HOM>_<AWA>" for fixtures the provider did not
// give an id. Missing names contribute "UNK".
func FallbackID(kickoffUnix int64, homeTeam, awayTeam string) string {
	return strconv.FormatInt(kickoffUnix, 10) + "_" + idPart(homeTeam) + "_" + idPart(awayTeam)
}

func idPart(name string) string {
	if name == "" {
		return "UNK"
	}
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
