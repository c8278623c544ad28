package model

// TeamFeatures bundles every per-side extractor output
type TeamFeatures struct {
	AvgScored             float64         `json:"avgScored"`
	AvgConceded           float64         `json:"avgConceded"`
	AttackStrength        float64         `json:"attackStrength"`
	DefenseStrength       float64         `json:"defenseStrength"`
	RecentForm            float64         `json:"recentForm"`
	Consistency           float64         `json:"consistency"`
	Momentum              float64         `json:"momentum"`
	HomeAdvantage         float64         `json:"homeAdvantage"`
	ImportancePerformance float64         `json:"importancePerformance"`
	CleanSheets           CleanSheetStats `json:"cleanSheets"`
}

// DataQuality reports how much data backed an analysis run. Sufficient is
// false when the total match count is below the good-analysis threshold, in
// which case the model blends its outputs toward neutral priors.
type DataQuality struct {
	H2HCount     int  `json:"h2hCount"`
	Team1Count   int  `json:"team1Count"`
	Team2Count   int  `json:"team2Count"`
	TotalMatches int  `json:"totalMatches"`
	Threshold    int  `json:"threshold"`
	Sufficient   bool `json:"sufficient"`
}

// H2HStats carries the head-to-head aggregates the projections blend against
type H2HStats struct {
	Count         int     `json:"count"`
	AverageTotal  float64 `json:"averageTotal"`
	AverageMargin float64 `json:"averageMargin"`
	Advantage     float64 `json:"advantage"`
}

// FeatureSnapshot is the immutable aggregate of every extractor output plus
// the configuration that produced it. It is built fresh on each analysis run
// and never mutated afterwards.
type FeatureSnapshot struct {
	Team1   TeamFeatures       `json:"team1"`
	Team2   TeamFeatures       `json:"team2"`
	H2H     H2HStats           `json:"h2h"`
	Trends  TrendSet           `json:"trends"`
	Quality DataQuality        `json:"quality"`
	Config  MatchConfiguration `json:"config"`
}

// BuildFeatureSnapshot runs every extractor against the store snapshot and
// bundles the results
func BuildFeatureSnapshot(sn *Snapshot) *FeatureSnapshot {
	features := &FeatureSnapshot{
		Team1:  teamFeatures(sn, true),
		Team2:  teamFeatures(sn, false),
		Trends: sn.ScoringTrends(),
		Config: sn.Config,
	}

	features.H2H = h2hStats(sn)

	total := sn.TotalMatches()
	features.Quality = DataQuality{
		H2HCount:     len(sn.H2H),
		Team1Count:   len(sn.Team1),
		Team2Count:   len(sn.Team2),
		TotalMatches: total,
		Threshold:    GetGoodAnalysisThreshold(),
		Sufficient:   total >= GetGoodAnalysisThreshold(),
	}

	return features
}

func teamFeatures(sn *Snapshot, isTeam1 bool) TeamFeatures {
	return TeamFeatures{
		AvgScored:             sn.AverageScored(isTeam1),
		AvgConceded:           sn.AverageConceded(isTeam1),
		AttackStrength:        sn.AttackStrength(isTeam1),
		DefenseStrength:       sn.DefenseStrength(isTeam1),
		RecentForm:            sn.RecentForm(isTeam1),
		Consistency:           sn.Consistency(isTeam1),
		Momentum:              sn.Momentum(isTeam1),
		HomeAdvantage:         sn.HomeAdvantage(isTeam1),
		ImportancePerformance: sn.ImportancePerformance(isTeam1),
		CleanSheets:           sn.CleanSheets(isTeam1),
	}
}

func h2hStats(sn *Snapshot) H2HStats {
	stats := H2HStats{
		Count:     len(sn.H2H),
		Advantage: sn.H2HAdvantage(),
	}
	if len(sn.H2H) == 0 {
		return stats
	}

	var totalSum, marginSum float64
	for _, m := range sn.H2H {
		totalSum += float64(m.TotalScore)
		marginSum += float64(m.Team1Score - m.Team2Score)
	}
	stats.AverageTotal = totalSum / float64(len(sn.H2H))
	stats.AverageMargin = marginSum / float64(len(sn.H2H))
	return stats
}

// locationFactor is the home-side advantage excess, signed from team1's point
// of view: positive when team1 hosts and has a real home edge, negative when
// team2 hosts with one. Zero at a neutral venue.
func (f *FeatureSnapshot) locationFactor() float64 {
	switch f.Config.MatchLocation {
	case LocationHome:
		return f.Team1.HomeAdvantage - 1.0
	case LocationAway:
		return -(f.Team2.HomeAdvantage - 1.0)
	default:
		return 0
	}
}

// rankingFactor normalizes the ranking difference to [-1, 1] in team1's
// favor; lower ranking numbers are better. Zero unless both teams are ranked.
func (f *FeatureSnapshot) rankingFactor() float64 {
	if f.Config.Team1Ranking <= 0 || f.Config.Team2Ranking <= 0 {
		return 0
	}
	return clamp(float64(f.Config.Team2Ranking-f.Config.Team1Ranking)/20, -1, 1)
}
