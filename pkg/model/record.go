package model

import (
	"math"
	"time"
)

// Compile-time check to ensure MatchRecord implements Persistable
var _ Persistable = (*MatchRecord)(nil)

// Category identifies which of the three record sequences a match belongs to
type Category string

const (
	CategoryH2H         Category = "h2h"
	CategoryTeam1Series Category = "team1"
	CategoryTeam2Series Category = "team2"
)

// Categories lists the three sequences in their canonical order
var Categories = []Category{CategoryH2H, CategoryTeam1Series, CategoryTeam2Series}

// Outcome is the result of a match from the analyzed pairing's point of view.
// OpponentWins only occurs in the per-team series, when the named team lost
// to an unnamed third-party opponent.
type Outcome string

const (
	OutcomeTeam1Wins    Outcome = "team1"
	OutcomeTeam2Wins    Outcome = "team2"
	OutcomeDraw         Outcome = "draw"
	OutcomeOpponentWins Outcome = "opponent"
)

// SpreadResult classifies a finished match against the configured point spread
type SpreadResult string

const (
	SpreadFavoriteCovered SpreadResult = "favorite"
	SpreadUnderdogCovered SpreadResult = "underdog"
	SpreadPush            SpreadResult = "push"
)

// MatchRecord is one observed game. Scores are normalized at ingestion so that
// Team1Score always holds the goals credited to the slot-1 team and Team2Score
// the slot-2 team: in the head-to-head sequence those are the two named teams,
// in the team1 series the opponent occupies slot 2, and in the team2 series
// the opponent occupies slot 1. MatchNumber doubles as the monotonic
// per-category sequence; insertion order is chronological order, oldest first.
type MatchRecord struct {
	Category    Category `json:"category" column:"category" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	MatchNumber int      `json:"matchNumber" column:"match_number" dbtype:"INTEGER NOT NULL" primary:"true"`

	Team1Score int `json:"team1Score" column:"team1_score" dbtype:"INTEGER NOT NULL"`
	Team2Score int `json:"team2Score" column:"team2_score" dbtype:"INTEGER NOT NULL"`

	// Derived at ingestion, immutable afterwards
	TotalScore      int     `json:"totalScore" column:"total_score" dbtype:"INTEGER NOT NULL"`
	Outcome         Outcome `json:"outcome" column:"outcome" dbtype:"TEXT NOT NULL"`
	MarginOfVictory int     `json:"marginOfVictory" column:"margin_of_victory" dbtype:"INTEGER NOT NULL"`
	GoalEfficiency  float64 `json:"goalEfficiency" column:"goal_efficiency" dbtype:"REAL NOT NULL"`
	CleanSheet      bool    `json:"cleanSheet" column:"clean_sheet" dbtype:"INTEGER NOT NULL"`

	// Recomputed whenever the configured lines change; nil when no line is set
	TotalOverLine *bool         `json:"totalOverLine" column:"total_over_line" dbtype:"INTEGER"`
	SpreadCover   *SpreadResult `json:"spreadCover" column:"spread_cover" dbtype:"TEXT"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// newMatchRecord builds a fully derived record from a raw (self, opponent)
// score pair. For the head-to-head category "self" is team1 and "opponent" is
// team2; for the per-team series "self" is the named team's own score.
func newMatchRecord(category Category, matchNumber, selfScore, opponentScore int, config *MatchConfiguration) *MatchRecord {
	rec := &MatchRecord{
		Category:    category,
		MatchNumber: matchNumber,
	}

	switch category {
	case CategoryTeam2Series:
		// team2's own goals live in slot 2, the opponent takes slot 1
		rec.Team1Score = opponentScore
		rec.Team2Score = selfScore
		if selfScore > opponentScore {
			rec.Outcome = OutcomeTeam2Wins
		} else if selfScore < opponentScore {
			rec.Outcome = OutcomeOpponentWins
		} else {
			rec.Outcome = OutcomeDraw
		}
	case CategoryTeam1Series:
		rec.Team1Score = selfScore
		rec.Team2Score = opponentScore
		if selfScore > opponentScore {
			rec.Outcome = OutcomeTeam1Wins
		} else if selfScore < opponentScore {
			rec.Outcome = OutcomeOpponentWins
		} else {
			rec.Outcome = OutcomeDraw
		}
	default:
		rec.Team1Score = selfScore
		rec.Team2Score = opponentScore
		if selfScore > opponentScore {
			rec.Outcome = OutcomeTeam1Wins
		} else if selfScore < opponentScore {
			rec.Outcome = OutcomeTeam2Wins
		} else {
			rec.Outcome = OutcomeDraw
		}
	}

	rec.TotalScore = rec.Team1Score + rec.Team2Score
	rec.MarginOfVictory = intAbs(rec.Team1Score - rec.Team2Score)
	if rec.TotalScore > 0 {
		rec.GoalEfficiency = float64(intMax(rec.Team1Score, rec.Team2Score)) / float64(rec.TotalScore)
	} else {
		rec.GoalEfficiency = 0.5
	}
	rec.CleanSheet = rec.Team1Score == 0 || rec.Team2Score == 0
	rec.applyLines(config)

	return rec
}

// applyLines recomputes the betting-line derived fields against the current
// configuration. The outcome and score-derived fields are never touched here.
func (m *MatchRecord) applyLines(config *MatchConfiguration) {
	if config == nil || !config.HasTotalLine() {
		m.TotalOverLine = nil
	} else {
		over := float64(m.TotalScore) > config.TotalLine
		m.TotalOverLine = &over
	}

	if config == nil || !config.HasPointSpread() {
		m.SpreadCover = nil
		return
	}

	favoredDiff := float64(m.Team1Score - m.Team2Score)
	if config.SpreadDirection == SpreadTeam2 {
		favoredDiff = -favoredDiff
	}

	var cover SpreadResult
	switch {
	case math.Abs(favoredDiff-config.PointSpread) < 1e-9:
		cover = SpreadPush
	case favoredDiff > config.PointSpread:
		cover = SpreadFavoriteCovered
	default:
		cover = SpreadUnderdogCovered
	}
	m.SpreadCover = &cover
}

// scoreFor returns the goals scored by the named side of the analyzed pairing
func (m *MatchRecord) scoreFor(isTeam1 bool) int {
	if isTeam1 {
		return m.Team1Score
	}
	return m.Team2Score
}

// scoreAgainst returns the goals conceded by the named side
func (m *MatchRecord) scoreAgainst(isTeam1 bool) int {
	if isTeam1 {
		return m.Team2Score
	}
	return m.Team1Score
}

// goalDiff is the signed goal difference from the named side's point of view
func (m *MatchRecord) goalDiff(isTeam1 bool) int {
	return m.scoreFor(isTeam1) - m.scoreAgainst(isTeam1)
}

// resultFor classifies the match as 1 (win), 0 (draw) or -1 (loss) for the named side
func (m *MatchRecord) resultFor(isTeam1 bool) int {
	diff := m.goalDiff(isTeam1)
	if diff > 0 {
		return 1
	}
	if diff < 0 {
		return -1
	}
	return 0
}

// clone returns a deep copy so an analysis snapshot cannot observe later mutation
func (m *MatchRecord) clone() *MatchRecord {
	c := *m
	if m.TotalOverLine != nil {
		v := *m.TotalOverLine
		c.TotalOverLine = &v
	}
	if m.SpreadCover != nil {
		v := *m.SpreadCover
		c.SpreadCover = &v
	}
	return &c
}

/////////////////////////////////////////////////////////////////////////
////// Persistable Interface Implementation
/////////////////////////////////////////////////////////////////////////

// GetTableName returns the table name for match records
func (m *MatchRecord) GetTableName() string {
	return "match_record"
}

// GetPrimaryKey returns the compound primary key as a map
func (m *MatchRecord) GetPrimaryKey() map[string]any {
	return map[string]any{
		"category":     string(m.Category),
		"match_number": m.MatchNumber,
	}
}

// BeforeSave stamps the creation time on first save
func (m *MatchRecord) BeforeSave() error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func intMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
