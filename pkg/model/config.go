package model

import "fmt"

// ModelConfig contains all configurable parameters that influence prediction outcomes.
// This centralizes all magic numbers and constants for easy adjustment.
type ModelConfig struct {
	// === FACTOR WEIGHTS (advantage coefficient) ===

	OverallPerformanceWeight float64 // Weight for attack-strength difference (default: 2.2)
	RecentFormWeight         float64 // Weight for recent-form difference (default: 2.8)
	H2HWeight                float64 // Weight for head-to-head advantage (default: 2.5)
	MomentumWeight           float64 // Weight for momentum difference (default: 2.0)
	HomeAdvantageWeight      float64 // Weight for home-side location term (default: 1.6)
	MatchImportanceWeight    float64 // Weight for importance-performance term (default: 1.5)
	RankingWeight            float64 // Weight for ranking difference term (default: 1.2)

	// === LEAGUE BASELINES ===

	LeagueAverageGoals float64 // League average goals per team per game (default: 1.3)
	LeagueAverageTotal float64 // League average total goals per match (default: 2.5)
	DefaultAverage     float64 // Neutral scoring average when no data exists (default: 1.5)

	// === RECENCY DECAY PARAMETERS ===

	FormDecay        float64 // Per-match weight decay for recent form, newest first (default: 0.75)
	MomentumGrowth   float64 // Per-match weight growth for momentum trend (default: 1.8)
	ConsistencyDecay float64 // Per-step decay for result-change rate (default: 0.9)
	CleanSheetDecay  float64 // Per-match decay for clean-sheet recency weighting (default: 0.9)
	TrendDecay       float64 // Per-match decay for scoring-trend weighting (default: 0.8)
	H2HDecayRate     float64 // Exponential decay rate for H2H recency, e^(-rate*i) (default: 0.2)

	// === WINDOW SIZES ===

	FormWindow     int // Matches considered for recent form (default: 5)
	MomentumWindow int // Matches considered "recent" for momentum (default: 3)
	TrendWindow    int // Matches considered "recent" for scoring trends (default: 5)

	// === DATA QUALITY ===

	GoodAnalysisThreshold int     // Total matches needed for a full-confidence run (default: 6)
	NeutralBlendFactor    float64 // Blend toward neutral priors below threshold (default: 0.3)
	TotalBlendFactor      float64 // Blend toward league-average total below threshold (default: 0.4)
	MarginShrinkFactor    float64 // Margin shrink factor below threshold (default: 0.5)

	// === PROBABILITY MODEL ===

	DrawBase            float64 // Base draw probability before adjustments (default: 35)
	DrawScoringPenalty  float64 // Draw reduction per combined goal of scoring rate (default: 4)
	DrawMismatchPenalty float64 // Draw reduction per unit of attack mismatch (default: 15)
	DrawDefensiveBonus  float64 // Draw bonus when both defenses are strong (default: 10)
	DrawImportanceBonus float64 // Draw bonus per unit of importance above 1.3 (default: 8)
	DrawFloor           float64 // Minimum draw probability (default: 5)
	DrawCeiling         float64 // Maximum draw probability (default: 45)
	ProbabilityFloor    float64 // Minimum for any outcome probability (default: 5)
	MaxAdvantage        float64 // Advantage coefficient clamp, +/- (default: 3.0)

	// === SCORE DISTRIBUTION ===

	DistributionRange    int     // Scoreline grid covers 0..N goals per side (default: 5, so 0-4)
	DrawLineBoost        float64 // Correction for equal scorelines (default: 1.3)
	GoallessBoost        float64 // Correction for 0-0 in low-scoring matches (default: 1.7)
	HighScoringBoost     float64 // Correction for high-scoring pairs (default: 1.2)
	BlowoutPenalty       float64 // Correction for combined score above 6 (default: 0.7)
	CommonScorelineBoost float64 // Correction for the common soccer scorelines (default: 1.15)
	OtherBucketCutoff    float64 // Minimum remainder that earns an "Other" row (default: 0.1)

	// === BETTING EDGES ===

	StrongTotalEdge      float64 // Percentage edge for a strong over/under call (default: 12)
	ModerateTotalEdge    float64 // Percentage edge for a moderate over/under call (default: 6)
	StrongSpreadMargin   float64 // Goal difference vs spread for a strong call (default: 0.75)
	ModerateSpreadMargin float64 // Goal difference vs spread for a moderate call (default: 0.35)
	MinActionableMargin  float64 // Below this projected margin the spread is a coin flip (default: 0.3)

	// === IMPORTANCE RANKING ===

	ImportanceFloor   float64 // Per-factor minimum before and after rescale (default: 10)
	ImportanceCeiling float64 // Per-factor maximum before and after rescale (default: 95)
	ImportanceBudget  float64 // The nine factor scores rescale to this sum (default: 500)
}

// DefaultModelConfig returns the default configuration with all standard values
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		OverallPerformanceWeight: 2.2,
		RecentFormWeight:         2.8,
		H2HWeight:                2.5,
		MomentumWeight:           2.0,
		HomeAdvantageWeight:      1.6,
		MatchImportanceWeight:    1.5,
		RankingWeight:            1.2,

		LeagueAverageGoals: 1.3,
		LeagueAverageTotal: 2.5,
		DefaultAverage:     1.5,

		FormDecay:        0.75,
		MomentumGrowth:   1.8,
		ConsistencyDecay: 0.9,
		CleanSheetDecay:  0.9,
		TrendDecay:       0.8,
		H2HDecayRate:     0.2,

		FormWindow:     5,
		MomentumWindow: 3,
		TrendWindow:    5,

		GoodAnalysisThreshold: 6,
		NeutralBlendFactor:    0.3,
		TotalBlendFactor:      0.4,
		MarginShrinkFactor:    0.5,

		DrawBase:            35,
		DrawScoringPenalty:  4,
		DrawMismatchPenalty: 15,
		DrawDefensiveBonus:  10,
		DrawImportanceBonus: 8,
		DrawFloor:           5,
		DrawCeiling:         45,
		ProbabilityFloor:    5,
		MaxAdvantage:        3.0,

		DistributionRange:    5,
		DrawLineBoost:        1.3,
		GoallessBoost:        1.7,
		HighScoringBoost:     1.2,
		BlowoutPenalty:       0.7,
		CommonScorelineBoost: 1.15,
		OtherBucketCutoff:    0.1,

		StrongTotalEdge:      12,
		ModerateTotalEdge:    6,
		StrongSpreadMargin:   0.75,
		ModerateSpreadMargin: 0.35,
		MinActionableMargin:  0.3,

		ImportanceFloor:   10,
		ImportanceCeiling: 95,
		ImportanceBudget:  500,
	}
}

// Global configuration instance
var Config *ModelConfig

func init() {
	Config = DefaultModelConfig()
}

// UpdateConfig allows replacing the global configuration
func UpdateConfig(newConfig *ModelConfig) {
	Config = newConfig
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *ModelConfig) error {
	if config.FormDecay <= 0 || config.FormDecay >= 1 {
		return fmt.Errorf("FormDecay must be between 0 and 1 exclusive, got: %f", config.FormDecay)
	}

	if config.MomentumGrowth <= 1 {
		return fmt.Errorf("MomentumGrowth must be greater than 1, got: %f", config.MomentumGrowth)
	}

	if config.DistributionRange < 3 {
		return fmt.Errorf("DistributionRange should be at least 3 to capture realistic scores, got: %d", config.DistributionRange)
	}

	if config.DrawFloor < 0 || config.DrawCeiling <= config.DrawFloor {
		return fmt.Errorf("draw clamp range is invalid: [%f, %f]", config.DrawFloor, config.DrawCeiling)
	}

	if config.ProbabilityFloor*3 >= 100 {
		return fmt.Errorf("ProbabilityFloor leaves no probability mass to distribute, got: %f", config.ProbabilityFloor)
	}

	if config.GoodAnalysisThreshold < 1 {
		return fmt.Errorf("GoodAnalysisThreshold must be at least 1, got: %d", config.GoodAnalysisThreshold)
	}

	if config.ImportanceFloor >= config.ImportanceCeiling {
		return fmt.Errorf("importance clamp range is invalid: [%f, %f]", config.ImportanceFloor, config.ImportanceCeiling)
	}

	return nil
}

// === HELPER FUNCTIONS FOR EASY ACCESS ===

// GetGoodAnalysisThreshold returns the match count at which blending to priors stops
func GetGoodAnalysisThreshold() int {
	return Config.GoodAnalysisThreshold
}

// GetLeagueAverageGoals returns the per-team league scoring baseline
func GetLeagueAverageGoals() float64 {
	return Config.LeagueAverageGoals
}

// GetLeagueAverageTotal returns the per-match league total baseline
func GetLeagueAverageTotal() float64 {
	return Config.LeagueAverageTotal
}

/////////////////////////////////////////////////////////////////////////
////// Match Configuration
/////////////////////////////////////////////////////////////////////////

// MatchLocation describes the venue of the upcoming match relative to team1
type MatchLocation string

const (
	LocationHome    MatchLocation = "home"
	LocationAway    MatchLocation = "away"
	LocationNeutral MatchLocation = "neutral"
)

// SpreadDirection names which team the point spread favors
type SpreadDirection string

const (
	SpreadTeam1 SpreadDirection = "team1"
	SpreadTeam2 SpreadDirection = "team2"
)

// MatchConfiguration carries the per-session setup: team identities, rankings,
// the stakes of the upcoming match and any posted betting lines.
// It is passed explicitly into every extractor and the prediction model so the
// pipeline stays a pure function of (records, configuration).
type MatchConfiguration struct {
	Team1Name string `json:"team1Name"`
	Team2Name string `json:"team2Name"`

	// 0 means unranked/unknown; lower numbers are better
	Team1Ranking int `json:"team1Ranking"`
	Team2Ranking int `json:"team2Ranking"`

	// Multiplier; 1.0 is a normal match, below 1 a friendly, above 1 high stakes
	MatchImportance float64 `json:"matchImportance"`

	MatchLocation MatchLocation `json:"matchLocation"`

	// 0 means no line posted
	TotalLine       float64         `json:"totalLine"`
	PointSpread     float64         `json:"pointSpread"`
	SpreadDirection SpreadDirection `json:"spreadDirection"`
}

// DefaultMatchConfiguration returns a configuration with neutral defaults
func DefaultMatchConfiguration() MatchConfiguration {
	return MatchConfiguration{
		MatchImportance: 1.0,
		MatchLocation:   LocationNeutral,
		SpreadDirection: SpreadTeam1,
	}
}

// Validate checks the fields that must be set before an analysis can run
func (c *MatchConfiguration) Validate() error {
	if c.Team1Name == "" || c.Team2Name == "" {
		return fmt.Errorf("%w: both team names must be set", ErrValidation)
	}
	if c.Team1Name == c.Team2Name {
		return fmt.Errorf("%w: team names must be distinct", ErrValidation)
	}
	if c.MatchImportance <= 0 {
		return fmt.Errorf("%w: match importance must be positive", ErrValidation)
	}
	switch c.MatchLocation {
	case LocationHome, LocationAway, LocationNeutral:
	default:
		return fmt.Errorf("%w: unknown match location %q", ErrValidation, c.MatchLocation)
	}
	if c.TotalLine < 0 {
		return fmt.Errorf("%w: total line cannot be negative", ErrValidation)
	}
	if c.PointSpread < 0 {
		return fmt.Errorf("%w: point spread cannot be negative", ErrValidation)
	}
	return nil
}

// HasTotalLine reports whether an over/under line is posted
func (c *MatchConfiguration) HasTotalLine() bool {
	return c.TotalLine > 0
}

// HasPointSpread reports whether a point spread is posted
func (c *MatchConfiguration) HasPointSpread() bool {
	return c.PointSpread > 0
}
