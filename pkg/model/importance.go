package model

import (
	"math"
	"sort"
)

// FactorImportance scores how much one named factor drove the prediction
type FactorImportance struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
}

// Factor names, ordered by convention
const (
	FactorRecentForm      = "Recent Form"
	FactorHeadToHead      = "Head-to-Head Record"
	FactorAttackStrength  = "Attack Strength"
	FactorDefenseStrength = "Defense Strength"
	FactorMomentum        = "Momentum"
	FactorHomeAdvantage   = "Home Advantage"
	FactorMatchImportance = "Match Importance"
	FactorRanking         = "Team Ranking"
	FactorConsistency     = "Consistency"
)

// ComputeFactorImportance derives a relative weight for each of the nine
// prediction factors: the factor's differential times a multiplier plus a
// base offset, clamped per factor, then rescaled so the nine values share the
// configured budget and clamped again.
func ComputeFactorImportance(f *FeatureSnapshot) []FactorImportance {
	formDiff := math.Abs(f.Team1.RecentForm - f.Team2.RecentForm)
	attackDiff := math.Abs(f.Team1.AttackStrength - f.Team2.AttackStrength)
	defenseDiff := math.Abs(f.Team1.DefenseStrength - f.Team2.DefenseStrength)
	momentumDiff := math.Abs(f.Team1.Momentum - f.Team2.Momentum)
	consistencyDiff := math.Abs(f.Team1.Consistency - f.Team2.Consistency)

	venueBase := 15.0
	if f.Config.MatchLocation != LocationNeutral {
		venueBase = 35.0
	}

	factors := []FactorImportance{
		{FactorRecentForm, formDiff*120 + 45},
		{FactorHeadToHead, math.Abs(f.H2H.Advantage)*100 + 40},
		{FactorAttackStrength, attackDiff*80 + 35},
		{FactorDefenseStrength, defenseDiff*80 + 30},
		{FactorMomentum, momentumDiff*70 + 30},
		{FactorHomeAdvantage, math.Abs(f.locationFactor())*90 + venueBase},
		{FactorMatchImportance, math.Abs(f.Config.MatchImportance-1.0)*60 + 25},
		{FactorRanking, math.Abs(f.rankingFactor())*70 + 20},
		{FactorConsistency, consistencyDiff*60 + 25},
	}

	lo, hi := Config.ImportanceFloor, Config.ImportanceCeiling

	sum := 0.0
	for i := range factors {
		factors[i].Score = clamp(factors[i].Score, lo, hi)
		sum += factors[i].Score
	}

	if sum > 0 {
		scale := Config.ImportanceBudget / sum
		for i := range factors {
			factors[i].Score = clamp(factors[i].Score*scale, lo, hi)
		}
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Score > factors[j].Score
	})

	return factors
}
