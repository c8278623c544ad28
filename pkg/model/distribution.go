package model

import (
	"math"
	"sort"
)

// ScorelineProbability is one row of the joint score distribution. The Other
// row aggregates every scoreline beyond the enumerated grid.
type ScorelineProbability struct {
	Team1Goals  int     `json:"team1Goals"`
	Team2Goals  int     `json:"team2Goals"`
	Probability float64 `json:"probability"`
	Other       bool    `json:"other,omitempty"`
}

// commonScorelines are the most frequent real-world soccer results; the
// independent Poisson model systematically underrates them
var commonScorelines = map[[2]int]bool{
	{1, 0}: true,
	{0, 1}: true,
	{1, 1}: true,
	{2, 1}: true,
	{1, 2}: true,
}

// GenerateScoreDistribution enumerates the joint scoreline grid using
// independent Poisson masses derived from the projected total and margin,
// then applies empirical correlation corrections before normalizing. The
// corrected grid keeps the raw grid's share of total probability; the tail
// beyond the grid becomes the Other bucket when it is worth listing.
func GenerateScoreDistribution(projectedTotal, projectedMargin float64) []ScorelineProbability {
	team1Mean := math.Max(0.1, projectedTotal/2+projectedMargin/2)
	team2Mean := math.Max(0.1, projectedTotal/2-projectedMargin/2)

	limit := Config.DistributionRange
	cells := make([]ScorelineProbability, 0, limit*limit)

	coverage := 0.0
	correctedSum := 0.0
	for t1 := 0; t1 < limit; t1++ {
		for t2 := 0; t2 < limit; t2++ {
			raw := poissonPMF(t1, team1Mean) * poissonPMF(t2, team2Mean)
			coverage += raw

			p := raw
			if t1 == t2 {
				p *= Config.DrawLineBoost
			}
			if t1 == 0 && t2 == 0 && projectedTotal < 2.0 {
				p *= Config.GoallessBoost
			}
			if (t1 >= 3 && t2 >= 2) || (t1 >= 2 && t2 >= 3) {
				p *= Config.HighScoringBoost
			}
			if t1+t2 > 6 {
				p *= Config.BlowoutPenalty
			}
			if commonScorelines[[2]int{t1, t2}] {
				p *= Config.CommonScorelineBoost
			}

			correctedSum += p
			cells = append(cells, ScorelineProbability{Team1Goals: t1, Team2Goals: t2, Probability: p})
		}
	}

	if correctedSum <= 0 {
		return nil
	}

	// Scale the corrected cells back onto the raw grid's probability mass
	gridMass := coverage * 100
	for i := range cells {
		cells[i].Probability = cells[i].Probability / correctedSum * gridMass
	}

	other := 100 - gridMass
	if other > Config.OtherBucketCutoff {
		cells = append(cells, ScorelineProbability{Team1Goals: -1, Team2Goals: -1, Probability: other, Other: true})
	} else {
		// Negligible tail: fold it back so the listed rows sum to 100
		scale := 100 / gridMass
		for i := range cells {
			cells[i].Probability *= scale
		}
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Probability > cells[j].Probability
	})

	return cells
}

// poissonPMF calculates P(X = k) for a Poisson distribution with mean lambda.
// Computed in log space to avoid overflow for larger k.
func poissonPMF(k int, lambda float64) float64 {
	if k < 0 || lambda <= 0 {
		return 0
	}
	logProb := -lambda + float64(k)*math.Log(lambda) - logFactorial(k)
	return math.Exp(logProb)
}

func logFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}
	result := 0.0
	for i := 2; i <= n; i++ {
		result += math.Log(float64(i))
	}
	return result
}
