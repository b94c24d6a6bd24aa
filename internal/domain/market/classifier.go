package market

// Tag is one market a fixture qualified for.
type Tag struct {
	Key       Key
	Name      string
	FirstHalf *FirstHalfReport
}

type rule struct {
	key  Key
	eval func(fs FeatureSet, leagueAvg float64) (Tag, bool)
}

// rules are evaluated independently, in this order.
var rules = []rule{
	{key: KeyOver25, eval: over25},
	{key: KeyBTTS, eval: btts},
	{key: KeyDoubleChance, eval: doubleChance},
	{key: KeyHomeOver15, eval: homeOver15},
	{key: KeyUnder35, eval: under35},
	{key: KeyUnder25, eval: under25},
	{key: KeyFirstHalfOver05, eval: firstHalfOver05},
	{key: KeyMS1AndOver15, eval: ms1AndOver15},
	{key: KeyAwayOver05, eval: awayOver05},
	{key: KeyHandicap, eval: handicap},
}

// Classify evaluates every market rule against fs. It returns nil for an
// incomplete feature set.
func Classify(fs FeatureSet) []Tag {
	return ClassifyOnly(fs, nil)
}

// ClassifyOnly evaluates only the given markets; nil or empty means all.
func ClassifyOnly(fs FeatureSet, keys []Key) []Tag {
	if !fs.Complete() {
		return nil
	}

	enabled := make(map[Key]bool, len(keys))
	for _, key := range keys {
		enabled[key] = true
	}

	leagueAvg := fs.LeagueAverage()
	var out []Tag
	for _, r := range rules {
		if len(enabled) > 0 && !enabled[r.key] {
			continue
		}
		if tag, ok := r.eval(fs, leagueAvg); ok {
			out = append(out, tag)
		}
	}
	return out
}

func tagOf(key Key, name string) Tag {
	return Tag{Key: key, Name: name}
}

func over25(fs FeatureSet, leagueAvg float64) (Tag, bool) {
	ok := leagueAvg >= 3.0 &&
		fs.HomeForm.Over25Rate >= 70 &&
		fs.AwayForm.Over25Rate >= 70 &&
		fs.HomeAtHome.AvgScored >= 1.5
	return tagOf(KeyOver25, NameOver25), ok
}

func doubleChance(fs FeatureSet, _ float64) (Tag, bool) {
	ok := fs.HomeAtHome.LossCount <= 1 &&
		fs.AwayAtAway.WinRate < 30 &&
		fs.HomeAtHome.WinRate >= 50 &&
		fs.HomeAtHome.ScoringRate >= 75
	return tagOf(KeyDoubleChance, NameDoubleChance), ok
}

func homeOver15(fs FeatureSet, _ float64) (Tag, bool) {
	ok := fs.HomeAtHome.AvgScored >= 1.6 &&
		fs.AwayAtAway.AvgConceded >= 1.4 &&
		fs.HomeAtHome.ScoringRate >= 80 &&
		fs.HomeForm.Over15Rate >= 60
	return tagOf(KeyHomeOver15, NameHomeOver15), ok
}

// under35 requires every mutual meeting to total at most 4. A meeting with
// an unparseable score fails the check.
func under35(fs FeatureSet, leagueAvg float64) (Tag, bool) {
	if !(leagueAvg < 2.4 && fs.HomeForm.Under35Rate >= 80 && fs.AwayForm.Under35Rate >= 80) {
		return Tag{}, false
	}
	for _, m := range fs.Mutual {
		total, parsed := m.LenientGoals()
		if !parsed || total > 4 {
			return Tag{}, false
		}
	}
	return tagOf(KeyUnder35, NameUnder35), true
}

// under25 rejects any mutual meeting totalling more than 3. A meeting with
// an unparseable score is not a violation.
func under25(fs FeatureSet, leagueAvg float64) (Tag, bool) {
	if !(leagueAvg < 2.5 && fs.HomeForm.Under25Rate >= 75 && fs.AwayForm.Under25Rate >= 75) {
		return Tag{}, false
	}
	for _, m := range fs.Mutual {
		if total, parsed := m.LenientGoals(); parsed && total > 3 {
			return Tag{}, false
		}
	}
	return tagOf(KeyUnder25, NameUnder25), true
}

func btts(fs FeatureSet, _ float64) (Tag, bool) {
	ok := fs.HomeAtHome.ScoringRate >= 75 &&
		fs.AwayAtAway.ScoringRate >= 70 &&
		fs.HomeForm.BTTSRate >= 60 &&
		fs.AwayForm.BTTSRate >= 60
	return tagOf(KeyBTTS, NameBTTS), ok
}

func firstHalfOver05(fs FeatureSet, _ float64) (Tag, bool) {
	report := AnalyzeFirstHalf(fs.HomeTeam, fs.AwayTeam, fs.HomeHistory, fs.AwayHistory, fs.Mutual)
	if !report.Signal {
		return Tag{}, false
	}
	tag := tagOf(KeyFirstHalfOver05, NameFirstHalfOver05)
	tag.FirstHalf = &report
	return tag, true
}

func ms1AndOver15(fs FeatureSet, _ float64) (Tag, bool) {
	ok := fs.HomeAtHome.WinRate >= 60 &&
		fs.HomeAtHome.AvgScored >= 1.9 &&
		fs.AwayAtAway.AvgConceded >= 1.2 &&
		fs.HomeForm.Over15Rate >= 75
	return tagOf(KeyMS1AndOver15, NameMS1AndOver15), ok
}

func awayOver05(fs FeatureSet, _ float64) (Tag, bool) {
	ok := fs.AwayAtAway.ScoringRate >= 80 &&
		fs.AwayAtAway.AvgScored >= 1.2 &&
		100-fs.HomeAtHome.CleanSheetRate >= 80
	return tagOf(KeyAwayOver05, NameAwayOver05), ok
}

// handicap backs the home side first and only considers the away side when
// the home side does not qualify.
func handicap(fs FeatureSet, _ float64) (Tag, bool) {
	if fs.HomeAtHome.WinRate >= 70 && fs.HomeAtHome.GoalDifference() >= 1.8 {
		return tagOf(KeyHandicap, NameHandicapHome), true
	}
	if fs.AwayAtAway.WinRate >= 70 && fs.AwayAtAway.GoalDifference() >= 1.8 {
		return tagOf(KeyHandicap, NameHandicapAway), true
	}
	return Tag{}, false
}
