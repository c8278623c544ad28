package model

import "math"

// Recommendation classifies a betting line against the model's projection
type Recommendation string

const (
	RecommendationNoLine         Recommendation = "NO LINE SET"
	RecommendationNoClearEdge    Recommendation = "NO CLEAR EDGE"
	RecommendationStrongOver     Recommendation = "STRONG OVER"
	RecommendationOver           Recommendation = "OVER"
	RecommendationUnder          Recommendation = "UNDER"
	RecommendationStrongUnder    Recommendation = "STRONG UNDER"
	RecommendationStrongFavorite Recommendation = "STRONG FAVORITE"
	RecommendationFavorite       Recommendation = "FAVORITE"
	RecommendationUnderdog       Recommendation = "UNDERDOG"
	RecommendationStrongUnderdog Recommendation = "STRONG UNDERDOG"
)

// BettingAdvice carries the model's edges over the posted lines and the
// resulting recommendations. Edges are zero when no line is posted.
type BettingAdvice struct {
	TotalEdge            float64        `json:"totalEdge"` // percent deviation from the total line
	TotalRecommendation  Recommendation `json:"totalRecommendation"`
	SpreadEdge           float64        `json:"spreadEdge"` // goals of cover beyond the spread
	SpreadRecommendation Recommendation `json:"spreadRecommendation"`
}

// ComputeBettingAdvice compares the projections with the configured lines.
// Edge thresholds widen when the data backing the run is below the
// good-analysis threshold, so a thin sample needs a bigger edge before the
// model calls anything.
func ComputeBettingAdvice(f *FeatureSnapshot, projectedTotal, projectedMargin float64) BettingAdvice {
	advice := BettingAdvice{
		TotalRecommendation:  RecommendationNoLine,
		SpreadRecommendation: RecommendationNoLine,
	}

	quality := lineQualityFactor(f)

	if f.Config.HasTotalLine() {
		advice.TotalEdge = (projectedTotal - f.Config.TotalLine) / f.Config.TotalLine * 100
		advice.TotalRecommendation = classifyTotalEdge(advice.TotalEdge, quality)
	}

	if f.Config.HasPointSpread() {
		favoredMargin := projectedMargin
		if f.Config.SpreadDirection == SpreadTeam2 {
			favoredMargin = -favoredMargin
		}
		advice.SpreadEdge = favoredMargin - f.Config.PointSpread
		advice.SpreadRecommendation = classifySpreadEdge(advice.SpreadEdge, projectedMargin, quality)
	}

	return advice
}

// lineQualityFactor widens the edge thresholds for thin data
func lineQualityFactor(f *FeatureSnapshot) float64 {
	if f.Quality.Sufficient {
		return 1.0
	}
	return 1.5
}

func classifyTotalEdge(edge, quality float64) Recommendation {
	strong := Config.StrongTotalEdge * quality
	moderate := Config.ModerateTotalEdge * quality

	switch {
	case edge >= strong:
		return RecommendationStrongOver
	case edge >= moderate:
		return RecommendationOver
	case edge <= -strong:
		return RecommendationStrongUnder
	case edge <= -moderate:
		return RecommendationUnder
	default:
		return RecommendationNoClearEdge
	}
}

func classifySpreadEdge(edge, projectedMargin, quality float64) Recommendation {
	// A projected margin inside the actionable band is a coin flip regardless
	// of how the spread compares to it
	if math.Abs(projectedMargin) < Config.MinActionableMargin {
		return RecommendationNoClearEdge
	}

	strong := Config.StrongSpreadMargin * quality
	moderate := Config.ModerateSpreadMargin * quality

	switch {
	case edge >= strong:
		return RecommendationStrongFavorite
	case edge >= moderate:
		return RecommendationFavorite
	case edge <= -strong:
		return RecommendationStrongUnderdog
	case edge <= -moderate:
		return RecommendationUnderdog
	default:
		return RecommendationNoClearEdge
	}
}
