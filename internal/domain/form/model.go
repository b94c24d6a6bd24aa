package form

// Stats aggregates one team's results over a slice of history. A nil
// *Stats means no match in the slice had parseable scores; a non-nil value
// is always fully populated.
type Stats struct {
	Matches        int     `json:"matches"`
	AvgTotalGoals  float64 `json:"avgTotalGoals"`
	AvgScored      float64 `json:"avgScored"`
	AvgConceded    float64 `json:"avgConceded"`
	Over15Rate     float64 `json:"over15Rate"`
	Over25Rate     float64 `json:"over25Rate"`
	Under25Rate    float64 `json:"under25Rate"`
	Under35Rate    float64 `json:"under35Rate"`
	BTTSRate       float64 `json:"bttsRate"`
	ScoringRate    float64 `json:"scoringRate"`
	WinRate        float64 `json:"winRate"`
	CleanSheetRate float64 `json:"cleanSheetRate"`
	HTGoalRate     float64 `json:"htGoalRate"`
	WinCount       int     `json:"winCount"`
	DrawCount      int     `json:"drawCount"`
	LossCount      int     `json:"lossCount"`
}

// ConcedingRate is the share of matches in which the team conceded.
func (s Stats) ConcedingRate() float64 {
	return max(0, 100-s.CleanSheetRate)
}

// LossRate is LossCount over Matches as a percentage.
func (s Stats) LossRate() float64 {
	if s.Matches == 0 {
		return 0
	}
	return float64(s.LossCount) / float64(s.Matches) * 100
}

// GoalDifference is the average margin per match.
func (s Stats) GoalDifference() float64 {
	return s.AvgScored - s.AvgConceded
}
