package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurtipurnama/modelv2/pkg/model"
)

func TestParseScoreList(t *testing.T) {
	scores, err := ParseScoreList("1, 2,0 ,3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, scores)

	scores, err = ParseScoreList("  ")
	require.NoError(t, err)
	assert.Nil(t, scores)

	_, err = ParseScoreList("1,,2")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = ParseScoreList("1,two,3")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = ParseScoreList("1,-2")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = ParseScoreList("1.5")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestApplySessionJSON(t *testing.T) {
	payload := []byte(`{
		"team1Name": "Arsenal",
		"team2Name": "Spurs",
		"team1Ranking": 4,
		"team2Ranking": 7,
		"matchImportance": 1.5,
		"matchLocation": "home",
		"totalLine": 2.5,
		"pointSpread": 1.0,
		"spreadDirection": "team1",
		"h2h":   {"self": "2,1,0", "opponent": "0,1,2"},
		"team1": {"self": "3,2", "opponent": "1,0"},
		"team2": {"self": "0,1", "opponent": "2,1"}
	}`)

	store := model.NewMatchStore()
	require.NoError(t, ApplySessionJSON(payload, store))

	config := store.Configuration()
	assert.Equal(t, "Arsenal", config.Team1Name)
	assert.Equal(t, "Spurs", config.Team2Name)
	assert.Equal(t, 4, config.Team1Ranking)
	assert.InDelta(t, 1.5, config.MatchImportance, 1e-9)
	assert.Equal(t, model.LocationHome, config.MatchLocation)
	assert.InDelta(t, 2.5, config.TotalLine, 1e-9)
	assert.Equal(t, model.SpreadTeam1, config.SpreadDirection)

	assert.Len(t, store.Records(model.CategoryH2H), 3)
	assert.Len(t, store.Records(model.CategoryTeam1Series), 2)
	assert.Len(t, store.Records(model.CategoryTeam2Series), 2)

	// Slot normalization: the team2 series carries team2's goals in slot 2
	team2 := store.Records(model.CategoryTeam2Series)
	assert.Equal(t, 2, team2[0].Team1Score)
	assert.Equal(t, 0, team2[0].Team2Score)

	// The posted lines were applied to the ingested records
	h2h := store.Records(model.CategoryH2H)
	require.NotNil(t, h2h[0].TotalOverLine)
	assert.False(t, *h2h[0].TotalOverLine, "2-0 stays under a 2.5 line")
}

func TestApplySessionJSONDefaults(t *testing.T) {
	payload := []byte(`{
		"team1Name": "Arsenal",
		"team2Name": "Spurs",
		"h2h": {"self": "1", "opponent": "0"}
	}`)

	store := model.NewMatchStore()
	require.NoError(t, ApplySessionJSON(payload, store))

	config := store.Configuration()
	assert.InDelta(t, 1.0, config.MatchImportance, 1e-9)
	assert.Equal(t, model.LocationNeutral, config.MatchLocation)
	assert.Zero(t, config.TotalLine)
	assert.Empty(t, store.Records(model.CategoryTeam1Series))
}

func TestApplySessionJSONRejectsBadInput(t *testing.T) {
	store := model.NewMatchStore()

	assert.ErrorIs(t, ApplySessionJSON([]byte(`{not json`), store), model.ErrValidation)

	missingNames := []byte(`{"team1Name": "Arsenal", "h2h": {"self": "1", "opponent": "0"}}`)
	assert.ErrorIs(t, ApplySessionJSON(missingNames, store), model.ErrValidation)

	badScores := []byte(`{
		"team1Name": "Arsenal",
		"team2Name": "Spurs",
		"h2h": {"self": "1,x", "opponent": "0,0"}
	}`)
	assert.ErrorIs(t, ApplySessionJSON(badScores, store), model.ErrValidation)
}
