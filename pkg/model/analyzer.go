package model

import (
	"errors"
	"fmt"

	"github.com/nurtipurnama/modelv2/internal/logger"
)

// Error taxonomy. Validation failures are reported before any state mutation;
// pipeline failures abort the whole run and leave the previous result intact.
var (
	ErrValidation = errors.New("validation failed")
	ErrPipeline   = errors.New("analysis pipeline failed")
)

// AnalysisResult is the complete output of one analysis run, retained as the
// last good result so the presentation layer can re-render without
// recomputation.
type AnalysisResult struct {
	Probabilities   Probabilities          `json:"probabilities"`
	ProjectedTotal  float64                `json:"projectedTotal"`
	ProjectedMargin float64                `json:"projectedMargin"` // after reconciliation
	RawMargin       float64                `json:"rawMargin"`       // before reconciliation
	Features        *FeatureSnapshot       `json:"features"`
	Config          MatchConfiguration     `json:"config"`
	Distribution    []ScorelineProbability `json:"distribution"`
	Importance      []FactorImportance     `json:"importance"`
	Betting         BettingAdvice          `json:"betting"`
	Insights        []Insight              `json:"insights"`
}

// Analyzer runs the prediction pipeline against a match store
type Analyzer struct {
	store *MatchStore
	last  *AnalysisResult
}

// NewAnalyzer wraps a store for analysis
func NewAnalyzer(store *MatchStore) *Analyzer {
	return &Analyzer{store: store}
}

// LastResult returns the most recent successful analysis, or nil
func (a *Analyzer) LastResult() *AnalysisResult {
	return a.last
}

// Analyze validates the session, takes an atomic snapshot of the three record
// sequences plus configuration, and runs the full pipeline: extractors,
// feature aggregation, the prediction model, consistency reconciliation and
// the downstream derivations. A failure anywhere aborts the run without
// touching the previously stored result.
func (a *Analyzer) Analyze() (result *AnalysisResult, err error) {
	config := a.store.Configuration()
	if verr := config.Validate(); verr != nil {
		return nil, verr
	}
	if a.store.TotalMatches() < 1 {
		return nil, fmt.Errorf("%w: no match data entered", ErrValidation)
	}

	// The computation is deterministic, so a panic here cannot be retried
	// into success; surface it as a single classified error instead
	defer func() {
		if r := recover(); r != nil {
			logger.Error("analysis pipeline panicked", fmt.Sprintf("%v", r))
			result = nil
			err = fmt.Errorf("%w: %v", ErrPipeline, r)
		}
	}()

	snapshot := a.store.snapshot()
	features := BuildFeatureSnapshot(snapshot)

	if !features.Quality.Sufficient {
		logger.Warn("running below the good-analysis threshold,",
			features.Quality.TotalMatches, "of", features.Quality.Threshold,
			"matches; blending toward neutral priors")
	}

	probs := ComputeWinProbabilities(features)
	total := ProjectTotal(features)
	rawMargin := ProjectMargin(features)
	margin := ReconcileProjection(probs, rawMargin)

	result = &AnalysisResult{
		Probabilities:   probs,
		ProjectedTotal:  total,
		ProjectedMargin: margin,
		RawMargin:       rawMargin,
		Features:        features,
		Config:          snapshot.Config,
		Distribution:    GenerateScoreDistribution(total, margin),
		Importance:      ComputeFactorImportance(features),
		Betting:         ComputeBettingAdvice(features, total, margin),
	}
	result.Insights = deriveInsights(features, probs, total, margin)

	a.last = result
	logger.Debug("analysis complete:",
		config.Team1Name, result.Probabilities.Team1,
		"draw", result.Probabilities.Draw,
		config.Team2Name, result.Probabilities.Team2)

	return result, nil
}

/////////////////////////////////////////////////////////////////////////
////// Prediction Accuracy
/////////////////////////////////////////////////////////////////////////

// ProjectionAccuracy compares a stored projection against an actual final
// score, for back-checking predictions once the match has been played
type ProjectionAccuracy struct {
	ActualTeam1Goals int     `json:"actualTeam1Goals"`
	ActualTeam2Goals int     `json:"actualTeam2Goals"`
	ResultCorrect    bool    `json:"resultCorrect"`
	TotalError       float64 `json:"totalError"`
	MarginError      float64 `json:"marginError"`
}

// EvaluateProjection scores an analysis result against the actual scoreline
func EvaluateProjection(result *AnalysisResult, team1Goals, team2Goals int) (*ProjectionAccuracy, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: no analysis result to evaluate", ErrValidation)
	}
	if team1Goals < 0 || team2Goals < 0 {
		return nil, fmt.Errorf("%w: actual scores cannot be negative", ErrValidation)
	}

	actualMargin := float64(team1Goals - team2Goals)
	actualTotal := float64(team1Goals + team2Goals)

	actualOutcome := OutcomeDraw
	if team1Goals > team2Goals {
		actualOutcome = OutcomeTeam1Wins
	} else if team2Goals > team1Goals {
		actualOutcome = OutcomeTeam2Wins
	}

	acc := &ProjectionAccuracy{
		ActualTeam1Goals: team1Goals,
		ActualTeam2Goals: team2Goals,
		ResultCorrect:    result.Probabilities.ImpliedWinner() == actualOutcome,
		TotalError:       absFloat(result.ProjectedTotal - actualTotal),
		MarginError:      absFloat(result.ProjectedMargin - actualMargin),
	}
	return acc, nil
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
