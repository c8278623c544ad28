package model

import "math"

// Statistical feature extractors. Every extractor is a pure function of the
// snapshot and tolerates empty or sparse data by returning the documented
// neutral default instead of failing.

// AverageScored is the mean of a side's own goals across the head-to-head
// sequence and its own series. Defaults to the league-neutral 1.5 with no data.
func (sn *Snapshot) AverageScored(isTeam1 bool) float64 {
	matches := sn.matchesFor(isTeam1)
	if len(matches) == 0 {
		return Config.DefaultAverage
	}
	sum := 0
	for _, m := range matches {
		sum += m.scoreFor(isTeam1)
	}
	return float64(sum) / float64(len(matches))
}

// AverageConceded is the mean of the opposition's goals across the same set
func (sn *Snapshot) AverageConceded(isTeam1 bool) float64 {
	matches := sn.matchesFor(isTeam1)
	if len(matches) == 0 {
		return Config.DefaultAverage
	}
	sum := 0
	for _, m := range matches {
		sum += m.scoreAgainst(isTeam1)
	}
	return float64(sum) / float64(len(matches))
}

// AttackStrength relates a side's scoring rate to the league baseline and to
// how leaky the upcoming opponent's defense has been. When the opponent has no
// recorded matches the opponent factor falls back to a neutral 1.0.
func (sn *Snapshot) AttackStrength(isTeam1 bool) float64 {
	avgScored := sn.AverageScored(isTeam1)
	leagueAvg := Config.LeagueAverageGoals

	oppFactor := 1.0
	if len(sn.matchesFor(!isTeam1)) > 0 {
		oppConceded := sn.AverageConceded(!isTeam1)
		oppFactor = leagueAvg / (math.Max(0.5, oppConceded) + 0.2)
	}

	return (avgScored / leagueAvg) * oppFactor
}

// DefenseStrength is the symmetric formula over goals conceded and the
// opponent's scoring rate. Values above 1 mean a defense leakier than the
// league baseline.
func (sn *Snapshot) DefenseStrength(isTeam1 bool) float64 {
	avgConceded := sn.AverageConceded(isTeam1)
	leagueAvg := Config.LeagueAverageGoals

	oppFactor := 1.0
	if len(sn.matchesFor(!isTeam1)) > 0 {
		oppScored := sn.AverageScored(!isTeam1)
		oppFactor = leagueAvg / (math.Max(0.5, oppScored) + 0.2)
	}

	return (avgConceded / leagueAvg) * oppFactor
}

// RecentForm scores the last few matches, newest weighted highest, onto a 0..1
// scale. A win is worth 3 plus a margin bonus capped at 0.7 plus a 0.4
// clean-sheet bonus; a draw 1 plus 0.3 in a high-scoring game; a loss earns
// consolation credit for scoring twice or losing by a single goal.
// Defaults to 0.5 with no matches.
func (sn *Snapshot) RecentForm(isTeam1 bool) float64 {
	matches := sn.matchesFor(isTeam1)
	if len(matches) == 0 {
		return 0.5
	}

	window := Config.FormWindow
	if len(matches) < window {
		window = len(matches)
	}

	totalWeight := 0.0
	weightedScore := 0.0
	for i := 0; i < window; i++ {
		// index 0 is the newest match
		m := matches[len(matches)-1-i]
		weight := math.Pow(Config.FormDecay, float64(i))

		own := m.scoreFor(isTeam1)
		opp := m.scoreAgainst(isTeam1)

		var score float64
		switch {
		case own > opp:
			score = 3 + math.Min(0.7, float64(own-opp)*0.15)
			if opp == 0 {
				score += 0.4
			}
		case own == opp:
			score = 1
			if own+opp >= 4 {
				score += 0.3
			}
		default:
			if own >= 2 {
				score += 0.4
			}
			if opp-own == 1 {
				score += 0.3
			}
		}

		weightedScore += weight * score
		totalWeight += weight
	}

	return weightedScore / (totalWeight * 4.0)
}

// Consistency blends the steadiness of a side's scoring (coefficient of
// variation) with the steadiness of its results (recency-weighted rate of
// result-to-result changes, decay 0.9 per step back). Defaults to 0.5 below
// three score samples.
func (sn *Snapshot) Consistency(isTeam1 bool) float64 {
	matches := sn.matchesFor(isTeam1)
	if len(matches) < 3 {
		return 0.5
	}

	// Score consistency from the coefficient of variation
	scores := make([]float64, len(matches))
	mean := 0.0
	for i, m := range matches {
		scores[i] = float64(m.scoreFor(isTeam1))
		mean += scores[i]
	}
	mean /= float64(len(scores))

	scoreConsistency := 0.5
	if mean > 0 {
		variance := 0.0
		for _, s := range scores {
			variance += (s - mean) * (s - mean)
		}
		variance /= float64(len(scores))
		cv := math.Sqrt(variance) / mean
		scoreConsistency = math.Max(0, 1-cv/2)
	}

	// Result consistency from weighted result changes, oldest first with the
	// most recent transition carrying full weight
	totalWeight := 0.0
	changeWeight := 0.0
	for j := 0; j < len(matches)-1; j++ {
		weight := math.Pow(Config.ConsistencyDecay, float64(len(matches)-2-j))
		totalWeight += weight
		if matches[j].resultFor(isTeam1) != matches[j+1].resultFor(isTeam1) {
			changeWeight += weight
		}
	}
	resultConsistency := 1.0
	if totalWeight > 0 {
		resultConsistency = 1 - changeWeight/totalWeight
	}

	return 0.35*scoreConsistency + 0.65*resultConsistency
}

// Momentum compares the recent window against the side's overall baseline:
// trend-weighted scoring, goal difference and win rate. Positive values mean
// the side is improving. Clamped to [-1, 1]; 0 below three matches.
func (sn *Snapshot) Momentum(isTeam1 bool) float64 {
	matches := sn.matchesFor(isTeam1)
	n := len(matches)
	if n < 3 {
		return 0
	}

	window := Config.MomentumWindow
	recent := matches[n-window:]

	// Trend-weighted recent scoring average; the newest match carries weight 1
	growth := Config.MomentumGrowth
	norm := math.Pow(growth, float64(window-1))
	weightSum := 0.0
	weightedScored := 0.0
	for i, m := range recent {
		weight := math.Pow(growth, float64(i)) / norm
		weightSum += weight
		weightedScored += weight * float64(m.scoreFor(isTeam1))
	}
	recentAvg := weightedScored / weightSum

	var overallScored, overallDiff, overallWins float64
	for _, m := range matches {
		overallScored += float64(m.scoreFor(isTeam1))
		overallDiff += float64(m.goalDiff(isTeam1))
		if m.resultFor(isTeam1) == 1 {
			overallWins++
		}
	}
	overallAvg := overallScored / float64(n)
	overallGoalDiff := overallDiff / float64(n)
	overallWinPct := overallWins / float64(n)

	var recentDiff, recentWins float64
	for _, m := range recent {
		recentDiff += float64(m.goalDiff(isTeam1))
		if m.resultFor(isTeam1) == 1 {
			recentWins++
		}
	}
	recentGoalDiff := recentDiff / float64(window)
	recentWinPct := recentWins / float64(window)

	momentum := (recentAvg-overallAvg)/math.Max(0.5, overallAvg)*0.25 +
		(recentGoalDiff-overallGoalDiff)*0.25 +
		(recentWinPct-overallWinPct)*0.5

	return clamp(momentum*2, -1, 1)
}

// HomeAdvantage estimates how much better a side performs at home, from its
// own series only. Records carry no venue, so the series is assumed to
// alternate venues starting at home (odd sequence numbers are home games).
// Clamped to [0.2, 2.0]; 1.0 when the series is empty.
func (sn *Snapshot) HomeAdvantage(isTeam1 bool) float64 {
	series := sn.seriesFor(isTeam1)
	if len(series) == 0 {
		return 1.0
	}

	var homeWins, awayWins, homeCount, awayCount float64
	var homeDiff, awayDiff float64
	for _, m := range series {
		if m.MatchNumber%2 == 1 {
			homeCount++
			homeDiff += float64(m.goalDiff(isTeam1))
			if m.resultFor(isTeam1) == 1 {
				homeWins++
			}
		} else {
			awayCount++
			awayDiff += float64(m.goalDiff(isTeam1))
			if m.resultFor(isTeam1) == 1 {
				awayWins++
			}
		}
	}

	ratio := 1.0
	if homeCount > 0 && awayCount > 0 {
		homeWinPct := homeWins / homeCount
		awayWinPct := awayWins / awayCount
		if awayWinPct > 0 {
			ratio = homeWinPct / awayWinPct
		}
	}

	var homeGD, awayGD float64
	if homeCount > 0 {
		homeGD = homeDiff / homeCount
	}
	if awayCount > 0 {
		awayGD = awayDiff / awayCount
	}

	advantage := 0.7*ratio + 0.3*clamp(homeGD-awayGD+1, 0, 2)
	return clamp(advantage, 0.2, 2.0)
}

// ImportancePerformance estimates how a side handles pressure matches by
// blending its consistency with its per-match results. Clamped to [0.5, 1.5];
// 1.0 below two matches.
func (sn *Snapshot) ImportancePerformance(isTeam1 bool) float64 {
	matches := sn.matchesFor(isTeam1)
	if len(matches) < 2 {
		return 1.0
	}

	factorSum := 0.0
	for _, m := range matches {
		diff := m.goalDiff(isTeam1)
		switch {
		case diff > 0:
			factorSum += 1.2
		case diff == 0:
			factorSum += 1.0
		default:
			factorSum += 0.8
		}
	}
	avgFactor := factorSum / float64(len(matches))

	performance := 0.6*sn.Consistency(isTeam1) + 0.4*avgFactor
	return clamp(performance, 0.5, 1.5)
}

// Trend holds a recency-weighted recent scoring level against the plain
// average of the earlier matches
type Trend struct {
	Recent   float64 `json:"recent"`
	Baseline float64 `json:"baseline"`
	Delta    float64 `json:"delta"`
}

// TrendSet carries the overall and per-team scoring trends
type TrendSet struct {
	Overall Trend `json:"overall"`
	Team1   Trend `json:"team1"`
	Team2   Trend `json:"team2"`
}

// ScoringTrends compares exponentially weighted recent match totals against
// the plain average of everything before the window, for the whole data set
// and for each side. All zero below three total matches.
func (sn *Snapshot) ScoringTrends() TrendSet {
	all := make([]*MatchRecord, 0, sn.TotalMatches())
	all = append(all, sn.H2H...)
	all = append(all, sn.Team1...)
	all = append(all, sn.Team2...)
	if len(all) < 3 {
		return TrendSet{}
	}

	return TrendSet{
		Overall: totalsTrend(all),
		Team1:   totalsTrend(sn.matchesFor(true)),
		Team2:   totalsTrend(sn.matchesFor(false)),
	}
}

// totalsTrend computes the decay-weighted recent average of match totals
// against the plain average of the earlier matches
func totalsTrend(matches []*MatchRecord) Trend {
	if len(matches) == 0 {
		return Trend{}
	}

	window := Config.TrendWindow
	if len(matches) < window {
		window = len(matches)
	}

	weightSum := 0.0
	weighted := 0.0
	for i := 0; i < window; i++ {
		m := matches[len(matches)-1-i]
		weight := math.Pow(Config.TrendDecay, float64(i))
		weighted += weight * float64(m.TotalScore)
		weightSum += weight
	}
	recent := weighted / weightSum

	rest := matches[:len(matches)-window]
	baseline := recent
	if len(rest) > 0 {
		sum := 0
		for _, m := range rest {
			sum += m.TotalScore
		}
		baseline = float64(sum) / float64(len(rest))
	}

	return Trend{Recent: recent, Baseline: baseline, Delta: recent - baseline}
}

// CleanSheetStats reports how often the opposition was held scoreless
type CleanSheetStats struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CleanSheets counts matches where the named side's opponent scored zero,
// with a recency-weighted percentage (decay 0.9 per step back).
//
// The team2 branch checks the slot-1 score in every category, mirroring the
// behavior this engine was reconciled against.
// TODO: revisit the team2 condition once downstream insight text no longer
// assumes it; the slot-1 score is the opponent's in the head-to-head and
// team2-series categories but team1's own in the team1 series.
func (sn *Snapshot) CleanSheets(isTeam1 bool) CleanSheetStats {
	matches := sn.matchesFor(isTeam1)
	if len(matches) == 0 {
		return CleanSheetStats{}
	}

	count := 0
	weightSum := 0.0
	weighted := 0.0
	for i := range matches {
		// index 0 is the newest match
		m := matches[len(matches)-1-i]
		weight := math.Pow(Config.CleanSheetDecay, float64(i))
		weightSum += weight

		var held bool
		if isTeam1 {
			held = m.Team2Score == 0
		} else {
			held = m.Team1Score == 0
		}
		if held {
			count++
			weighted += weight
		}
	}

	return CleanSheetStats{
		Count:      count,
		Percentage: weighted / weightSum * 100,
	}
}

// H2HAdvantage summarizes the head-to-head record as a signed value in
// team1's favor: a simple win-count ratio blended with an exponentially
// recency-weighted win/loss sum. 0 with no head-to-head matches.
func (sn *Snapshot) H2HAdvantage() float64 {
	if len(sn.H2H) == 0 {
		return 0
	}

	var team1Wins, team2Wins float64
	for _, m := range sn.H2H {
		switch m.Outcome {
		case OutcomeTeam1Wins:
			team1Wins++
		case OutcomeTeam2Wins:
			team2Wins++
		}
	}
	ratio := (team1Wins - team2Wins) / float64(len(sn.H2H))

	weightSum := 0.0
	weighted := 0.0
	for i := range sn.H2H {
		// index 0 is the newest match
		m := sn.H2H[len(sn.H2H)-1-i]
		weight := math.Exp(-Config.H2HDecayRate * float64(i))
		weightSum += weight
		switch m.Outcome {
		case OutcomeTeam1Wins:
			weighted += weight
		case OutcomeTeam2Wins:
			weighted -= weight
		}
	}

	return 0.3*ratio + 0.7*(weighted/weightSum)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
