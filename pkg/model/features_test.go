package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotWith builds a snapshot directly from raw score pairs per category
func snapshotWith(t *testing.T, h2h, team1, team2 [][2]int) *Snapshot {
	t.Helper()
	store := NewMatchStore()

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
	return store.snapshot()
}

func TestExtractorDefaultsOnEmptyData(t *testing.T) {
	sn := NewMatchStore().snapshot()

	assert.InDelta(t, 1.5, sn.AverageScored(true), 1e-9)
	assert.InDelta(t, 1.5, sn.AverageConceded(false), 1e-9)
	assert.InDelta(t, 0.5, sn.RecentForm(true), 1e-9)
	assert.InDelta(t, 0.5, sn.Consistency(true), 1e-9)
	assert.InDelta(t, 0.0, sn.Momentum(true), 1e-9)
	assert.InDelta(t, 1.0, sn.HomeAdvantage(true), 1e-9)
	assert.InDelta(t, 1.0, sn.ImportancePerformance(true), 1e-9)
	assert.InDelta(t, 0.0, sn.H2HAdvantage(), 1e-9)
	assert.Equal(t, CleanSheetStats{}, sn.CleanSheets(true))
	assert.Equal(t, TrendSet{}, sn.ScoringTrends())
}

func TestAverageScoredAndConceded(t *testing.T) {
	sn := snapshotWith(t,
		[][2]int{{2, 1}, {0, 3}},
		[][2]int{{4, 0}},
		nil)

	// Team1 sees the two H2H matches plus its own series
	assert.InDelta(t, 2.0, sn.AverageScored(true), 1e-9)
	assert.InDelta(t, 4.0/3.0, sn.AverageConceded(true), 1e-9)

	// Team2 sees only the H2H matches, from the other side
	assert.InDelta(t, 2.0, sn.AverageScored(false), 1e-9)
	assert.InDelta(t, 1.0, sn.AverageConceded(false), 1e-9)
}

func TestRecentFormSingleShutoutWin(t *testing.T) {
	sn := snapshotWith(t, [][2]int{{2, 0}}, nil, nil)

	// 3 base + 0.3 margin bonus + 0.4 clean sheet bonus over a 4.0 scale
	assert.InDelta(t, 0.925, sn.RecentForm(true), 1e-9)
}

func TestRecentFormBounds(t *testing.T) {
	wins := snapshotWith(t, [][2]int{{5, 0}, {5, 0}, {5, 0}, {5, 0}, {5, 0}}, nil, nil)
	losses := snapshotWith(t, [][2]int{{0, 5}, {0, 5}, {0, 5}, {0, 5}, {0, 5}}, nil, nil)

	winForm := wins.RecentForm(true)
	lossForm := losses.RecentForm(true)

	assert.Greater(t, winForm, lossForm)
	assert.LessOrEqual(t, winForm, 1.025, "form tops out at the capped win score over the 4.0 scale")
	assert.GreaterOrEqual(t, lossForm, 0.0)
}

func TestConsistencyStableSide(t *testing.T) {
	sn := snapshotWith(t, [][2]int{{2, 0}, {2, 0}, {2, 0}}, nil, nil)

	// Identical scores and identical results: perfectly consistent
	assert.InDelta(t, 1.0, sn.Consistency(true), 1e-9)
}

func TestConsistencyErraticSide(t *testing.T) {
	stable := snapshotWith(t, [][2]int{{2, 0}, {2, 0}, {2, 0}, {2, 0}}, nil, nil)
	erratic := snapshotWith(t, [][2]int{{5, 0}, {0, 3}, {4, 0}, {0, 1}}, nil, nil)

	assert.Less(t, erratic.Consistency(true), stable.Consistency(true))
	assert.GreaterOrEqual(t, erratic.Consistency(true), 0.0)
	assert.LessOrEqual(t, erratic.Consistency(true), 1.0)
}

func TestMomentumFlatSeriesIsZero(t *testing.T) {
	sn := snapshotWith(t, [][2]int{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, nil, nil)
	assert.InDelta(t, 0.0, sn.Momentum(true), 1e-9)
}

func TestMomentumDirection(t *testing.T) {
	// Losing early, winning late: momentum favors the recent window
	improving := snapshotWith(t, [][2]int{{0, 2}, {0, 2}, {0, 2}, {3, 0}, {3, 0}, {3, 0}}, nil, nil)
	declining := snapshotWith(t, [][2]int{{3, 0}, {3, 0}, {3, 0}, {0, 2}, {0, 2}, {0, 2}}, nil, nil)

	assert.Greater(t, improving.Momentum(true), 0.0)
	assert.Less(t, declining.Momentum(true), 0.0)
	assert.LessOrEqual(t, improving.Momentum(true), 1.0)
	assert.GreaterOrEqual(t, declining.Momentum(true), -1.0)
}

func TestHomeAdvantageAlternatingVenues(t *testing.T) {
	// Odd sequence numbers are home games: dominant at home, beaten away
	sn := snapshotWith(t, nil, [][2]int{{3, 0}, {0, 3}, {3, 0}, {0, 3}}, nil)

	advantage := sn.HomeAdvantage(true)
	assert.InDelta(t, 1.3, advantage, 1e-9)

	// An empty series gives the neutral value
	assert.InDelta(t, 1.0, sn.HomeAdvantage(false), 1e-9)
}

func TestHomeAdvantageClamped(t *testing.T) {
	sn := snapshotWith(t, nil, [][2]int{{0, 5}, {5, 0}, {0, 5}, {5, 0}}, nil)

	advantage := sn.HomeAdvantage(true)
	assert.GreaterOrEqual(t, advantage, 0.2)
	assert.LessOrEqual(t, advantage, 2.0)
}

func TestImportancePerformanceBounds(t *testing.T) {
	winners := snapshotWith(t, [][2]int{{2, 0}, {3, 1}, {2, 1}}, nil, nil)
	losers := snapshotWith(t, [][2]int{{0, 2}, {1, 3}, {1, 2}}, nil, nil)

	assert.Greater(t, winners.ImportancePerformance(true), losers.ImportancePerformance(true))
	assert.GreaterOrEqual(t, losers.ImportancePerformance(true), 0.5)
	assert.LessOrEqual(t, winners.ImportancePerformance(true), 1.5)
}

func TestCleanSheetsForTeam1(t *testing.T) {
	sn := snapshotWith(t, [][2]int{{1, 0}, {2, 0}, {0, 1}}, nil, nil)

	stats := sn.CleanSheets(true)
	assert.Equal(t, 2, stats.Count)
	assert.Greater(t, stats.Percentage, 0.0)
	assert.Less(t, stats.Percentage, 100.0)

	allHeld := snapshotWith(t, [][2]int{{1, 0}, {3, 0}}, nil, nil)
	assert.InDelta(t, 100.0, allHeld.CleanSheets(true).Percentage, 1e-9)
}

func TestH2HAdvantageSweep(t *testing.T) {
	team1Sweep := snapshotWith(t, [][2]int{{2, 0}, {1, 0}, {3, 1}}, nil, nil)
	assert.InDelta(t, 1.0, team1Sweep.H2HAdvantage(), 1e-9)

	team2Sweep := snapshotWith(t, [][2]int{{0, 2}, {0, 1}, {1, 3}}, nil, nil)
	assert.InDelta(t, -1.0, team2Sweep.H2HAdvantage(), 1e-9)

	split := snapshotWith(t, [][2]int{{1, 1}, {1, 1}}, nil, nil)
	assert.InDelta(t, 0.0, split.H2HAdvantage(), 1e-9)
}

func TestH2HAdvantageRecencyWeighting(t *testing.T) {
	// Same win counts, different order: recent wins weigh more
	recentWinner := snapshotWith(t, [][2]int{{0, 1}, {0, 1}, {1, 0}, {1, 0}}, nil, nil)
	earlyWinner := snapshotWith(t, [][2]int{{1, 0}, {1, 0}, {0, 1}, {0, 1}}, nil, nil)

	assert.Greater(t, recentWinner.H2HAdvantage(), 0.0)
	assert.Less(t, earlyWinner.H2HAdvantage(), 0.0)
}

func TestScoringTrends(t *testing.T) {
	// Early matches low scoring, recent window much higher
	sn := snapshotWith(t,
		[][2]int{{0, 0}, {1, 0}, {0, 1}, {0, 0}, {1, 1}, {2, 3}, {3, 2}, {4, 2}},
		nil, nil)

	trends := sn.ScoringTrends()
	assert.Greater(t, trends.Overall.Delta, 0.0)
	assert.Greater(t, trends.Overall.Recent, trends.Overall.Baseline)
}

func TestAttackAndDefenseStrength(t *testing.T) {
	// Team1 scores well above the league baseline; team2 concedes almost nothing
	sn := snapshotWith(t,
		nil,
		[][2]int{{3, 0}, {2, 1}, {3, 1}},
		[][2]int{{1, 0}, {2, 1}, {1, 0}})

	assert.Greater(t, sn.AttackStrength(true), 1.0)
	assert.Less(t, sn.DefenseStrength(false), 1.0, "a tight defense rates below 1")
}
