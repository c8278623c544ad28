package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nurtipurnama/modelv2/internal/logger"
	"github.com/nurtipurnama/modelv2/pkg/model"
)

// ParseScoreList parses a comma-separated list of non-negative integers, the
// form scores arrive in from the command line and session files. Whitespace
// around entries is tolerated, empty entries are not.
func ParseScoreList(input string) ([]int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, ",")
	scores := make([]int, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty score at position %d", model.ErrValidation, i+1)
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a whole number", model.ErrValidation, part)
		}
		if value < 0 {
			return nil, fmt.Errorf("%w: score at position %d is negative", model.ErrValidation, i+1)
		}
		scores = append(scores, value)
	}
	return scores, nil
}

// ScorePair holds the two comma-separated score lists for one category
type ScorePair struct {
	Self     string `json:"self"`
	Opponent string `json:"opponent"`
}

// SessionFile is the on-disk JSON shape of a full session: the match setup
// plus the three score-pair blocks
type SessionFile struct {
	Team1Name string `json:"team1Name"`
	Team2Name string `json:"team2Name"`

	Team1Ranking int `json:"team1Ranking,omitempty"`
	Team2Ranking int `json:"team2Ranking,omitempty"`

	MatchImportance float64 `json:"matchImportance,omitempty"`
	MatchLocation   string  `json:"matchLocation,omitempty"`

	TotalLine       float64 `json:"totalLine,omitempty"`
	PointSpread     float64 `json:"pointSpread,omitempty"`
	SpreadDirection string  `json:"spreadDirection,omitempty"`

	H2H   *ScorePair `json:"h2h,omitempty"`
	Team1 *ScorePair `json:"team1,omitempty"`
	Team2 *ScorePair `json:"team2,omitempty"`
}

// LoadSessionFile reads a session JSON file and applies it to the store:
// configuration first, then each present score block. Missing blocks leave the
// store's corresponding category untouched.
func LoadSessionFile(path string, store *model.MatchStore) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}
	return ApplySessionJSON(data, store)
}

// ApplySessionJSON applies raw session JSON to the store
func ApplySessionJSON(data []byte, store *model.MatchStore) error {
	var session SessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("%w: malformed session JSON: %v", model.ErrValidation, err)
	}

	config := store.Configuration()
	config.Team1Name = session.Team1Name
	config.Team2Name = session.Team2Name
	config.Team1Ranking = session.Team1Ranking
	config.Team2Ranking = session.Team2Ranking
	if session.MatchImportance > 0 {
		config.MatchImportance = session.MatchImportance
	}
	if session.MatchLocation != "" {
		config.MatchLocation = model.MatchLocation(session.MatchLocation)
	}
	config.TotalLine = session.TotalLine
	config.PointSpread = session.PointSpread
	if session.SpreadDirection != "" {
		config.SpreadDirection = model.SpreadDirection(session.SpreadDirection)
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if err := store.Configure(config); err != nil {
		return err
	}

	blocks := []struct {
		category model.Category
		pair     *ScorePair
	}{
		{model.CategoryH2H, session.H2H},
		{model.CategoryTeam1Series, session.Team1},
		{model.CategoryTeam2Series, session.Team2},
	}

	applied := 0
	for _, block := range blocks {
		if block.pair == nil {
			continue
		}
		selfScores, err := ParseScoreList(block.pair.Self)
		if err != nil {
			return fmt.Errorf("category %s: %w", block.category, err)
		}
		opponentScores, err := ParseScoreList(block.pair.Opponent)
		if err != nil {
			return fmt.Errorf("category %s: %w", block.category, err)
		}
		if len(selfScores) == 0 && len(opponentScores) == 0 {
			continue
		}
		n, _, err := store.Ingest(block.category, selfScores, opponentScores)
		if err != nil {
			return err
		}
		applied += n
	}

	logger.Info("session loaded,", applied, "matches across the present categories")
	return nil
}
