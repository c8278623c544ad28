package model

import "math"

// Probabilities holds the three outcome probabilities as percentages summing
// to 100
type Probabilities struct {
	Team1 float64 `json:"team1"`
	Draw  float64 `json:"draw"`
	Team2 float64 `json:"team2"`
}

// Sum returns the total probability mass, which should always be 100
func (p Probabilities) Sum() float64 {
	return p.Team1 + p.Draw + p.Team2
}

// ImpliedWinner returns the outcome with the highest probability. The draw is
// only selected when it is strictly the maximum.
func (p Probabilities) ImpliedWinner() Outcome {
	if p.Draw > p.Team1 && p.Draw > p.Team2 {
		return OutcomeDraw
	}
	if p.Team1 >= p.Team2 {
		return OutcomeTeam1Wins
	}
	return OutcomeTeam2Wins
}

// ComputeWinProbabilities combines the feature snapshot into win/draw/loss
// percentages. The draw probability is sized independently first; the
// remaining mass is split by a logistic function of the advantage
// coefficient. Sparse data blends the result toward neutral priors, and every
// outcome is floored at the configured minimum before renormalizing to 100.
func ComputeWinProbabilities(f *FeatureSnapshot) Probabilities {
	advantage := advantageCoefficient(f)
	draw := drawProbability(f)

	remaining := 100 - draw
	team1 := remaining / (1 + math.Exp(-advantage))
	team2 := remaining - team1

	probs := normalizeProbabilities(Probabilities{Team1: team1, Draw: draw, Team2: team2})

	if !f.Quality.Sufficient {
		blend := Config.NeutralBlendFactor
		probs.Team1 = (1-blend)*probs.Team1 + blend*40
		probs.Team2 = (1-blend)*probs.Team2 + blend*40
		probs.Draw = (1-blend)*probs.Draw + blend*20
	}

	return floorAndRenormalize(probs)
}

// advantageCoefficient is the weighted sum of every differential factor,
// clamped to the configured range. Positive values favor team1.
func advantageCoefficient(f *FeatureSnapshot) float64 {
	attackDiff := f.Team1.AttackStrength - f.Team2.AttackStrength
	formDiff := f.Team1.RecentForm - f.Team2.RecentForm
	momentumDiff := f.Team1.Momentum - f.Team2.Momentum

	advantage := Config.OverallPerformanceWeight*attackDiff +
		Config.RecentFormWeight*formDiff +
		Config.H2HWeight*f.H2H.Advantage +
		Config.MomentumWeight*momentumDiff

	// Only the hosting side's own home-advantage factor applies
	switch f.Config.MatchLocation {
	case LocationHome:
		advantage += Config.HomeAdvantageWeight * (f.Team1.HomeAdvantage - 1.0)
	case LocationAway:
		advantage -= Config.HomeAdvantageWeight * (f.Team2.HomeAdvantage - 1.0)
	}

	importance := f.Config.MatchImportance
	advantage += Config.MatchImportanceWeight * (importance - 1.0) *
		(f.Team1.ImportancePerformance - f.Team2.ImportancePerformance)

	advantage += Config.RankingWeight * f.rankingFactor()

	return clamp(advantage, -Config.MaxAdvantage, Config.MaxAdvantage)
}

// drawProbability sizes the draw before the win split: high combined scoring
// and lopsided attacks suppress it, two tight defenses or a high-stakes match
// raise it
func drawProbability(f *FeatureSnapshot) float64 {
	combinedScoring := f.Team1.AvgScored + f.Team2.AvgScored
	attackMismatch := math.Abs(f.Team1.AttackStrength - f.Team2.AttackStrength)

	draw := Config.DrawBase -
		Config.DrawScoringPenalty*combinedScoring -
		Config.DrawMismatchPenalty*attackMismatch

	if f.Team1.DefenseStrength < 0.8 && f.Team2.DefenseStrength < 0.8 {
		draw += Config.DrawDefensiveBonus
	}

	importance := f.Config.MatchImportance
	if importance > 1.3 {
		draw += Config.DrawImportanceBonus * (importance - 1.3)
	}

	return clamp(draw, Config.DrawFloor, Config.DrawCeiling)
}

// normalizeProbabilities rescales the three outcomes to sum to exactly 100
func normalizeProbabilities(p Probabilities) Probabilities {
	sum := p.Sum()
	if sum <= 0 {
		return Probabilities{Team1: 100.0 / 3, Draw: 100.0 / 3, Team2: 100.0 / 3}
	}
	scale := 100 / sum
	return Probabilities{Team1: p.Team1 * scale, Draw: p.Draw * scale, Team2: p.Team2 * scale}
}

// floorAndRenormalize lifts every outcome to the configured floor and rescales
// the mass above the floors so the total stays exactly 100
func floorAndRenormalize(p Probabilities) Probabilities {
	floor := Config.ProbabilityFloor
	p = normalizeProbabilities(p)

	e1 := math.Max(0, p.Team1-floor)
	ed := math.Max(0, p.Draw-floor)
	e2 := math.Max(0, p.Team2-floor)
	excess := e1 + ed + e2

	available := 100 - 3*floor
	if excess <= 0 {
		return Probabilities{Team1: 100.0 / 3, Draw: 100.0 / 3, Team2: 100.0 / 3}
	}

	scale := available / excess
	return Probabilities{
		Team1: floor + e1*scale,
		Draw:  floor + ed*scale,
		Team2: floor + e2*scale,
	}
}

// ProjectTotal estimates the combined score of the upcoming match. The
// strength-based base is blended with the head-to-head scoring history when
// enough of it exists, nudged by form, strength, stakes, venue, consistency
// and trend, and blended toward the league-average total when data is sparse.
func ProjectTotal(f *FeatureSnapshot) float64 {
	s1, c1 := f.Team1.AvgScored, f.Team1.AvgConceded
	s2, c2 := f.Team2.AvgScored, f.Team2.AvgConceded

	// Expected goals per side from each attack against the opposing defense
	total := (s1+c2)/2 + (s2+c1)/2

	if f.H2H.Count >= 2 {
		weight := math.Min(0.5, float64(f.H2H.Count)*0.08)
		total = (1-weight)*total + weight*f.H2H.AverageTotal
	}

	total += (f.Team1.RecentForm + f.Team2.RecentForm - 1.0) * 0.3

	total += ((f.Team1.AttackStrength+f.Team2.AttackStrength)/2 - 1.0) * 0.4
	total += ((f.Team1.DefenseStrength+f.Team2.DefenseStrength)/2 - 1.0) * 0.3

	importance := f.Config.MatchImportance
	if importance < 1.0 {
		// Friendlies tend to be open games
		total += (1.0 - importance) * 0.2
	} else if importance > 1.3 {
		// High stakes tighten play
		total -= (importance - 1.3) * 0.3
	}

	total += 0.15 * math.Abs(f.locationFactor())

	total -= (f.Team1.Consistency + f.Team2.Consistency - 1.0) * 0.15

	total += f.Trends.Overall.Delta * 0.3

	if !f.Quality.Sufficient {
		blend := Config.TotalBlendFactor
		total = (1-blend)*total + blend*GetLeagueAverageTotal()
	}

	return math.Max(0.5, total)
}

// ProjectMargin estimates the signed goal difference (team1 minus team2). The
// attack-versus-defense base is blended with head-to-head margins when
// available, adjusted by form, net strength, momentum, venue and ranking, and
// pushed away from zero in proportion to the stakes.
func ProjectMargin(f *FeatureSnapshot) float64 {
	margin := (f.Team1.AvgScored - f.Team2.AvgConceded) -
		(f.Team2.AvgScored - f.Team1.AvgConceded)

	if f.H2H.Count >= 2 {
		weight := math.Min(0.5, float64(f.H2H.Count)*0.08)
		margin = (1-weight)*margin + weight*f.H2H.AverageMargin
	} else {
		margin += f.H2H.Advantage * 0.5
	}

	margin += (f.Team1.RecentForm - f.Team2.RecentForm) * 0.8

	netStrength := (f.Team1.AttackStrength - f.Team1.DefenseStrength) -
		(f.Team2.AttackStrength - f.Team2.DefenseStrength)
	margin += netStrength * 0.5

	margin += (f.Team1.Momentum - f.Team2.Momentum) * 0.5
	margin += f.locationFactor() * 0.4
	margin += f.rankingFactor() * 0.3

	// Stakes amplify whichever direction is already favored
	if margin != 0 {
		margin += sign(margin) * (f.Config.MatchImportance - 1.0) * 0.3
	}

	if !f.Quality.Sufficient {
		margin *= Config.MarginShrinkFactor
	}

	return margin
}

// marginImpliedWinner classifies a projected margin into an outcome, treating
// anything inside a quarter goal as a draw
func marginImpliedWinner(margin float64) Outcome {
	if margin > 0.25 {
		return OutcomeTeam1Wins
	}
	if margin < -0.25 {
		return OutcomeTeam2Wins
	}
	return OutcomeDraw
}

// ReconcileProjection makes the projected margin agree with the
// probability-implied winner. A predicted draw shrinks the margin to 20% of
// its value; a disagreement forces the margin's sign toward the probability
// winner at no less than a quarter goal.
func ReconcileProjection(probs Probabilities, margin float64) float64 {
	winner := probs.ImpliedWinner()
	if winner == OutcomeDraw {
		return margin * 0.2
	}

	if marginImpliedWinner(margin) == winner {
		return margin
	}

	magnitude := math.Max(0.25, 0.8*math.Abs(margin))
	if winner == OutcomeTeam1Wins {
		return magnitude
	}
	return -magnitude
}
