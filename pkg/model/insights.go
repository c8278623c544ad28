package model

import "math"

// InsightKind names a notable pattern the presentation layer can phrase
type InsightKind string

const (
	InsightFormDominance    InsightKind = "form-dominance"
	InsightH2HEdge          InsightKind = "h2h-edge"
	InsightHighScoring      InsightKind = "high-scoring"
	InsightLowScoring       InsightKind = "low-scoring"
	InsightMomentumSwing    InsightKind = "momentum-swing"
	InsightCleanSheetThreat InsightKind = "clean-sheet-threat"
	InsightTightContest     InsightKind = "tight-contest"
	InsightThinData         InsightKind = "thin-data"
)

// Insight is the data behind one human-facing observation. Team is 1 or 2
// when the observation singles out a side, 0 when it concerns the match.
type Insight struct {
	Kind  InsightKind `json:"kind"`
	Team  int         `json:"team,omitempty"`
	Value float64     `json:"value"`
}

// deriveInsights extracts the notable patterns from a finished analysis.
// Thresholds are deliberately coarse; these feed display copy, not the model.
func deriveInsights(f *FeatureSnapshot, probs Probabilities, projectedTotal, projectedMargin float64) []Insight {
	var insights []Insight

	formDiff := f.Team1.RecentForm - f.Team2.RecentForm
	if math.Abs(formDiff) > 0.25 {
		insights = append(insights, Insight{Kind: InsightFormDominance, Team: favoredTeam(formDiff), Value: math.Abs(formDiff)})
	}

	if math.Abs(f.H2H.Advantage) > 0.3 {
		insights = append(insights, Insight{Kind: InsightH2HEdge, Team: favoredTeam(f.H2H.Advantage), Value: math.Abs(f.H2H.Advantage)})
	}

	if projectedTotal > 3.2 {
		insights = append(insights, Insight{Kind: InsightHighScoring, Value: projectedTotal})
	} else if projectedTotal < 2.0 {
		insights = append(insights, Insight{Kind: InsightLowScoring, Value: projectedTotal})
	}

	momentumDiff := f.Team1.Momentum - f.Team2.Momentum
	if math.Abs(momentumDiff) > 0.5 {
		insights = append(insights, Insight{Kind: InsightMomentumSwing, Team: favoredTeam(momentumDiff), Value: math.Abs(momentumDiff)})
	}

	if f.Team1.CleanSheets.Percentage > 50 {
		insights = append(insights, Insight{Kind: InsightCleanSheetThreat, Team: 1, Value: f.Team1.CleanSheets.Percentage})
	}
	if f.Team2.CleanSheets.Percentage > 50 {
		insights = append(insights, Insight{Kind: InsightCleanSheetThreat, Team: 2, Value: f.Team2.CleanSheets.Percentage})
	}

	if math.Abs(projectedMargin) < 0.3 && probs.Draw > 30 {
		insights = append(insights, Insight{Kind: InsightTightContest, Value: probs.Draw})
	}

	if !f.Quality.Sufficient {
		insights = append(insights, Insight{Kind: InsightThinData, Value: float64(f.Quality.TotalMatches)})
	}

	return insights
}

func favoredTeam(diff float64) int {
	if diff > 0 {
		return 1
	}
	return 2
}
