package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// featuresFor builds a full feature snapshot for the given score pairs under a
// valid default configuration
func featuresFor(t *testing.T, h2h, team1, team2 [][2]int) *FeatureSnapshot {
	t.Helper()
	store := storeWith(t, h2h, team1, team2)
	return BuildFeatureSnapshot(store.snapshot())
}

func storeWith(t *testing.T, h2h, team1, team2 [][2]int) *MatchStore {
	t.Helper()
	store := NewMatchStore()

	config := store.Configuration()
	config.Team1Name = "Arsenal"
	config.Team2Name = "Spurs"
	require.NoError(t, store.Configure(config))

	ingest := func(category Category, pairs [][2]int) {
		if len(pairs) == 0 {
			return
		}
		self := make([]int, len(pairs))
		opponent := make([]int, len(pairs))
		for i, p := range pairs {
			self[i] = p[0]
			opponent[i] = p[1]
		}
		_, _, err := store.Ingest(category, self, opponent)
		require.NoError(t, err)
	}

	ingest(CategoryH2H, h2h)
	ingest(CategoryTeam1Series, team1)
	ingest(CategoryTeam2Series, team2)
	return store
}

func assertValidProbabilities(t *testing.T, probs Probabilities) {
	t.Helper()
	assert.InDelta(t, 100.0, probs.Sum(), 1e-9, "probabilities must sum to 100")
	assert.GreaterOrEqual(t, probs.Team1, Config.ProbabilityFloor)
	assert.GreaterOrEqual(t, probs.Draw, Config.ProbabilityFloor)
	assert.GreaterOrEqual(t, probs.Team2, Config.ProbabilityFloor)
}

func TestWinProbabilitiesFavorDominantSide(t *testing.T) {
	f := featuresFor(t,
		[][2]int{{3, 0}, {2, 0}, {4, 1}},
		[][2]int{{3, 1}, {2, 0}},
		[][2]int{{0, 2}, {1, 3}})

	probs := ComputeWinProbabilities(f)
	assertValidProbabilities(t, probs)
	assert.Greater(t, probs.Team1, probs.Team2)
	assert.Equal(t, OutcomeTeam1Wins, probs.ImpliedWinner())
}

func TestWinProbabilitiesSymmetricData(t *testing.T) {
	f := featuresFor(t,
		[][2]int{{1, 1}, {2, 2}, {0, 0}, {1, 1}, {2, 2}, {1, 1}},
		nil, nil)

	probs := ComputeWinProbabilities(f)
	assertValidProbabilities(t, probs)
	assert.InDelta(t, probs.Team1, probs.Team2, 1e-9, "identical sides split the win mass evenly")
}

func TestWinProbabilitiesThinDataBlending(t *testing.T) {
	// One lopsided match: the neutral-prior blend keeps the call moderate
	thin := featuresFor(t, [][2]int{{5, 0}}, nil, nil)
	require.False(t, thin.Quality.Sufficient)

	probs := ComputeWinProbabilities(thin)
	assertValidProbabilities(t, probs)
	assert.Greater(t, probs.Team1, probs.Team2)
	assert.Less(t, probs.Team1, 90.0, "a single match cannot produce near certainty")
}

func TestFloorAndRenormalize(t *testing.T) {
	probs := floorAndRenormalize(Probabilities{Team1: 98, Draw: 1, Team2: 1})
	assert.InDelta(t, 100.0, probs.Sum(), 1e-9)
	assert.InDelta(t, Config.ProbabilityFloor, probs.Draw, 1e-9)
	assert.InDelta(t, Config.ProbabilityFloor, probs.Team2, 1e-9)
	assert.Greater(t, probs.Team1, 85.0)
}

func TestImpliedWinnerTieBreaking(t *testing.T) {
	assert.Equal(t, OutcomeTeam1Wins, Probabilities{Team1: 40, Draw: 20, Team2: 40}.ImpliedWinner())
	assert.Equal(t, OutcomeTeam1Wins, Probabilities{Team1: 30, Draw: 30, Team2: 30}.ImpliedWinner(),
		"the draw needs a strict maximum")
	assert.Equal(t, OutcomeDraw, Probabilities{Team1: 30, Draw: 40, Team2: 30}.ImpliedWinner())
	assert.Equal(t, OutcomeTeam2Wins, Probabilities{Team1: 25, Draw: 30, Team2: 45}.ImpliedWinner())
}

func TestProjectTotalFloor(t *testing.T) {
	// Two defensive sides that never score still project at least half a goal
	f := featuresFor(t,
		[][2]int{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		nil, nil)

	total := ProjectTotal(f)
	assert.GreaterOrEqual(t, total, 0.5)
}

func TestProjectTotalTracksScoringLevel(t *testing.T) {
	low := featuresFor(t,
		[][2]int{{0, 0}, {1, 0}, {0, 1}, {0, 0}, {1, 1}, {0, 0}},
		nil, nil)
	high := featuresFor(t,
		[][2]int{{3, 2}, {2, 3}, {4, 1}, {2, 2}, {3, 3}, {4, 2}},
		nil, nil)

	assert.Greater(t, ProjectTotal(high), ProjectTotal(low))
}

func TestProjectMarginDirection(t *testing.T) {
	team1Dominant := featuresFor(t,
		[][2]int{{3, 0}, {2, 0}, {3, 1}, {2, 0}, {4, 0}, {2, 1}},
		nil, nil)
	team2Dominant := featuresFor(t,
		[][2]int{{0, 3}, {0, 2}, {1, 3}, {0, 2}, {0, 4}, {1, 2}},
		nil, nil)

	assert.Greater(t, ProjectMargin(team1Dominant), 0.0)
	assert.Less(t, ProjectMargin(team2Dominant), 0.0)
}

func TestProjectMarginShrinksOnThinData(t *testing.T) {
	thin := featuresFor(t, [][2]int{{4, 0}}, nil, nil)
	require.False(t, thin.Quality.Sufficient)

	full := featuresFor(t,
		[][2]int{{4, 0}, {4, 0}, {4, 0}, {4, 0}, {4, 0}, {4, 0}},
		nil, nil)
	require.True(t, full.Quality.Sufficient)

	assert.Less(t, ProjectMargin(thin), ProjectMargin(full))
}

func TestReconcileProjection(t *testing.T) {
	team1Favored := Probabilities{Team1: 60, Draw: 20, Team2: 20}
	team2Favored := Probabilities{Team1: 20, Draw: 20, Team2: 60}
	drawFavored := Probabilities{Team1: 25, Draw: 50, Team2: 25}

	// Agreement passes the margin through untouched
	assert.InDelta(t, 1.4, ReconcileProjection(team1Favored, 1.4), 1e-9)
	assert.InDelta(t, -0.8, ReconcileProjection(team2Favored, -0.8), 1e-9)

	// A predicted draw collapses the margin
	assert.InDelta(t, 0.3, ReconcileProjection(drawFavored, 1.5), 1e-9)

	// Disagreement flips the sign toward the winner, at least a quarter goal
	reconciled := ReconcileProjection(team1Favored, -0.1)
	assert.InDelta(t, 0.25, reconciled, 1e-9)

	reconciled = ReconcileProjection(team2Favored, 1.0)
	assert.InDelta(t, -0.8, reconciled, 1e-9, "80% of the magnitude, sign forced to team2")
}

func TestLocationShiftsAdvantage(t *testing.T) {
	build := func(location MatchLocation) Probabilities {
		store := storeWith(t,
			[][2]int{{1, 1}, {2, 2}},
			[][2]int{{3, 0}, {0, 2}, {3, 0}, {0, 2}},
			[][2]int{{1, 1}, {1, 1}, {1, 1}, {1, 1}})
		config := store.Configuration()
		config.MatchLocation = location
		require.NoError(t, store.Configure(config))
		return ComputeWinProbabilities(BuildFeatureSnapshot(store.snapshot()))
	}

	home := build(LocationHome)
	neutral := build(LocationNeutral)

	// Team1's series shows a real home edge; hosting should raise its chances
	assert.Greater(t, home.Team1, neutral.Team1)
}
