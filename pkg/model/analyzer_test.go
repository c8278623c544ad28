package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRejectsUnconfiguredSession(t *testing.T) {
	store := NewMatchStore()
	analyzer := NewAnalyzer(store)

	_, err := analyzer.Analyze()
	assert.ErrorIs(t, err, ErrValidation, "team names are required")
	assert.Nil(t, analyzer.LastResult())
}

func TestAnalyzeRejectsEmptyData(t *testing.T) {
	store := NewMatchStore()
	config := store.Configuration()
	config.Team1Name = "Arsenal"
	config.Team2Name = "Spurs"
	require.NoError(t, store.Configure(config))

	_, err := NewAnalyzer(store).Analyze()
	assert.ErrorIs(t, err, ErrValidation, "at least one match is required")
}

func TestAnalyzeProducesCompleteResult(t *testing.T) {
	store := storeWith(t,
		[][2]int{{2, 1}, {1, 1}, {3, 0}},
		[][2]int{{2, 0}, {1, 2}},
		[][2]int{{1, 1}, {0, 2}})

	analyzer := NewAnalyzer(store)
	result, err := analyzer.Analyze()
	require.NoError(t, err)
	require.NotNil(t, result)

	assertValidProbabilities(t, result.Probabilities)
	assert.GreaterOrEqual(t, result.ProjectedTotal, 0.5)
	assert.NotNil(t, result.Features)
	assert.Equal(t, 7, result.Features.Quality.TotalMatches)
	assert.True(t, result.Features.Quality.Sufficient)
	assert.NotEmpty(t, result.Distribution)
	assert.Len(t, result.Importance, 9)
	assert.Equal(t, RecommendationNoLine, result.Betting.TotalRecommendation)
	assert.Same(t, result, analyzer.LastResult())
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	store := storeWith(t,
		[][2]int{{2, 1}, {0, 0}, {1, 3}},
		[][2]int{{2, 2}, {4, 0}},
		[][2]int{{1, 0}, {0, 1}})

	analyzer := NewAnalyzer(store)
	first, err := analyzer.Analyze()
	require.NoError(t, err)
	second, err := analyzer.Analyze()
	require.NoError(t, err)

	assert.Equal(t, first.Probabilities, second.Probabilities)
	assert.Equal(t, first.ProjectedTotal, second.ProjectedTotal)
	assert.Equal(t, first.ProjectedMargin, second.ProjectedMargin)
	assert.Equal(t, first.Distribution, second.Distribution)
	assert.Equal(t, first.Importance, second.Importance)
}

func TestAnalyzeReconcilesMarginWithWinner(t *testing.T) {
	store := storeWith(t,
		[][2]int{{3, 0}, {2, 0}, {3, 1}, {2, 0}, {4, 0}, {2, 1}},
		nil, nil)

	result, err := NewAnalyzer(store).Analyze()
	require.NoError(t, err)

	winner := result.Probabilities.ImpliedWinner()
	require.Equal(t, OutcomeTeam1Wins, winner)
	assert.Greater(t, result.ProjectedMargin, 0.0, "margin sign must agree with the implied winner")
}

func TestAnalyzeFailureKeepsLastResult(t *testing.T) {
	store := storeWith(t, [][2]int{{2, 1}}, nil, nil)
	analyzer := NewAnalyzer(store)

	good, err := analyzer.Analyze()
	require.NoError(t, err)

	// Break the configuration; the next run must fail without clobbering
	config := store.Configuration()
	config.Team2Name = ""
	require.NoError(t, store.Configure(config))

	_, err = analyzer.Analyze()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Same(t, good, analyzer.LastResult())
}

func TestDeriveInsights(t *testing.T) {
	// Dominant, high-scoring team1 over a thin sample
	f := featuresFor(t, [][2]int{{4, 0}, {3, 0}}, nil, nil)
	probs := ComputeWinProbabilities(f)
	total := ProjectTotal(f)
	margin := ReconcileProjection(probs, ProjectMargin(f))

	insights := deriveInsights(f, probs, total, margin)
	require.NotEmpty(t, insights)

	kinds := make(map[InsightKind]Insight)
	for _, insight := range insights {
		kinds[insight.Kind] = insight
	}

	edge, ok := kinds[InsightH2HEdge]
	require.True(t, ok, "a two-match sweep is a head-to-head edge")
	assert.Equal(t, 1, edge.Team)

	sheets, ok := kinds[InsightCleanSheetThreat]
	require.True(t, ok)
	assert.Equal(t, 1, sheets.Team)

	_, ok = kinds[InsightThinData]
	assert.True(t, ok, "two matches is below the good-analysis threshold")
}

func TestEvaluateProjection(t *testing.T) {
	store := storeWith(t,
		[][2]int{{3, 0}, {2, 0}, {3, 1}, {2, 0}, {4, 0}, {2, 1}},
		nil, nil)
	result, err := NewAnalyzer(store).Analyze()
	require.NoError(t, err)

	acc, err := EvaluateProjection(result, 2, 1)
	require.NoError(t, err)
	assert.True(t, acc.ResultCorrect)
	assert.InDelta(t, absFloat(result.ProjectedTotal-3), acc.TotalError, 1e-9)
	assert.InDelta(t, absFloat(result.ProjectedMargin-1), acc.MarginError, 1e-9)

	acc, err = EvaluateProjection(result, 0, 2)
	require.NoError(t, err)
	assert.False(t, acc.ResultCorrect)

	_, err = EvaluateProjection(nil, 1, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = EvaluateProjection(result, -1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}
