package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importanceSum(factors []FactorImportance) float64 {
	sum := 0.0
	for _, f := range factors {
		sum += f.Score
	}
	return sum
}

func TestFactorImportanceNeutralSnapshot(t *testing.T) {
	// With no data every differential is zero, so only the base offsets remain
	// and the rescale hits the budget exactly
	f := BuildFeatureSnapshot(NewMatchStore().snapshot())
	factors := ComputeFactorImportance(f)

	require.Len(t, factors, 9)
	assert.InDelta(t, Config.ImportanceBudget, importanceSum(factors), 1e-9)

	for _, factor := range factors {
		assert.GreaterOrEqual(t, factor.Score, Config.ImportanceFloor)
		assert.LessOrEqual(t, factor.Score, Config.ImportanceCeiling)
	}
}

func TestFactorImportanceSortedAndBounded(t *testing.T) {
	f := featuresFor(t,
		[][2]int{{4, 0}, {3, 0}, {4, 1}},
		[][2]int{{3, 0}, {2, 0}},
		[][2]int{{0, 3}, {1, 4}})

	factors := ComputeFactorImportance(f)
	require.Len(t, factors, 9)

	for i, factor := range factors {
		assert.GreaterOrEqual(t, factor.Score, Config.ImportanceFloor)
		assert.LessOrEqual(t, factor.Score, Config.ImportanceCeiling)
		if i > 0 {
			assert.GreaterOrEqual(t, factors[i-1].Score, factor.Score)
		}
	}

	names := make(map[string]bool)
	for _, factor := range factors {
		names[factor.Factor] = true
	}
	for _, expected := range []string{
		FactorRecentForm, FactorHeadToHead, FactorAttackStrength,
		FactorDefenseStrength, FactorMomentum, FactorHomeAdvantage,
		FactorMatchImportance, FactorRanking, FactorConsistency,
	} {
		assert.True(t, names[expected], "missing factor %q", expected)
	}
}

func TestFactorImportanceRanksDominantDriver(t *testing.T) {
	// A total head-to-head sweep with evenly matched everything else should put
	// the head-to-head record at or near the top
	f := featuresFor(t,
		[][2]int{{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0}},
		nil, nil)

	factors := ComputeFactorImportance(f)
	position := -1
	for i, factor := range factors {
		if factor.Factor == FactorHeadToHead {
			position = i
		}
	}
	require.NotEqual(t, -1, position)
	assert.LessOrEqual(t, position, 2, "head-to-head should rank among the top drivers")
}
