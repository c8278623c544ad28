package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nurtipurnama/modelv2/internal/logger"
	"github.com/nurtipurnama/modelv2/pkg/ingest"
	"github.com/nurtipurnama/modelv2/pkg/model"
)

func main() {
	sessionPath := flag.String("session", "", "path to a session JSON file describing the matchup and score lists")
	fetchURL := flag.String("fetch", "", "URL of an HTML results table to ingest on top of the session")
	fetchCategory := flag.String("fetch-category", "team1", "category for -fetch: h2h, team1 or team2")
	dbPath := flag.String("db", "", "path to a sqlite database for persisting the session and analysis history")
	showHistory := flag.Bool("history", false, "print the persisted analysis history and exit (requires -db)")
	clearDB := flag.Bool("clear", false, "clear the persisted session and history before doing anything else (requires -db)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger.SetShowDateTime(true)
	if *debug {
		logger.SetLevel(logger.DEBUG)
	}

	logger.Info("Starting match outcome analysis")

	store := model.NewMatchStore()

	var session *model.SessionStore
	if *dbPath != "" {
		var err error
		session, err = model.OpenSessionStore(*dbPath)
		if err != nil {
			logger.Error("Failed to open session store:", err)
			os.Exit(1)
		}
		defer session.Close()

		if *clearDB {
			if err := session.Clear(); err != nil {
				logger.Error("Failed to clear session store:", err)
				os.Exit(1)
			}
			logger.Info("Cleared persisted session and history")
		}
		if *showHistory {
			printHistory(session)
			return
		}
	}

	switch {
	case *sessionPath != "":
		if err := ingest.LoadSessionFile(*sessionPath, store); err != nil {
			logger.Error("Failed to load session file:", err)
			os.Exit(1)
		}
	case session != nil:
		if err := session.LoadRecords(store); err != nil {
			logger.Error("Failed to restore persisted session:", err)
			os.Exit(1)
		}
	case *fetchURL != "":
		// Configuration has to come from somewhere; -fetch alone only
		// supplies scores
		logger.Error("-fetch requires -session or -db to supply the match configuration")
		os.Exit(1)
	default:
		logger.Error("Nothing to analyse: provide -session or -db")
		flag.Usage()
		os.Exit(1)
	}

	if *fetchURL != "" {
		n, err := ingest.FetchResults(*fetchURL, model.Category(*fetchCategory), store)
		if err != nil {
			logger.Error("Failed to ingest fetched results:", err)
			os.Exit(1)
		}
		logger.Info("Ingested", n, "fetched results into category", *fetchCategory)
	}

	analyzer := model.NewAnalyzer(store)
	result, err := analyzer.Analyze()
	if err != nil {
		logger.Error("Analysis failed:", err)
		os.Exit(1)
	}

	printReport(result)

	if session != nil {
		if err := session.SaveRecords(store); err != nil {
			logger.Error("Failed to persist session:", err)
			os.Exit(1)
		}
		if err := session.SaveAnalysis(result); err != nil {
			logger.Error("Failed to persist analysis:", err)
			os.Exit(1)
		}
		logger.Info("Session and analysis persisted to", *dbPath)
	}
}

func printReport(result *model.AnalysisResult) {
	config := result.Config

	logger.Highlight(fmt.Sprintf("%s vs %s", config.Team1Name, config.Team2Name))
	logger.Inform(fmt.Sprintf("  %-24s %6.1f%%", config.Team1Name, result.Probabilities.Team1))
	logger.Inform(fmt.Sprintf("  %-24s %6.1f%%", "Draw", result.Probabilities.Draw))
	logger.Inform(fmt.Sprintf("  %-24s %6.1f%%", config.Team2Name, result.Probabilities.Team2))

	logger.Inform(fmt.Sprintf("Projected total goals: %.2f", result.ProjectedTotal))
	logger.Inform(fmt.Sprintf("Projected margin: %+.2f (%s perspective)", result.ProjectedMargin, config.Team1Name))

	if !result.Features.Quality.Sufficient {
		logger.Warn("Only", result.Features.Quality.TotalMatches, "matches entered,",
			result.Features.Quality.Threshold, "recommended; treat this run as indicative")
	}

	logger.Highlight("Most likely scorelines")
	limit := 6
	for _, line := range result.Distribution {
		if line.Other {
			logger.Inform(fmt.Sprintf("  %-8s %5.1f%%", "Other", line.Probability))
			continue
		}
		if limit == 0 {
			continue
		}
		logger.Inform(fmt.Sprintf("  %d - %-5d %5.1f%%", line.Team1Goals, line.Team2Goals, line.Probability))
		limit--
	}

	logger.Highlight("Factor importance")
	for _, factor := range result.Importance {
		logger.Inform(fmt.Sprintf("  %-22s %5.1f", factor.Factor, factor.Score))
	}

	if len(result.Insights) > 0 {
		logger.Highlight("Notable patterns")
		for _, insight := range result.Insights {
			logger.Inform("  " + phraseInsight(insight, config))
		}
	}

	if config.HasTotalLine() {
		logger.Highlight("Over/under " + fmt.Sprintf("%.1f", config.TotalLine))
		logger.Inform(fmt.Sprintf("  Edge %+.1f%%, call: %s", result.Betting.TotalEdge, result.Betting.TotalRecommendation))
	}
	if config.HasPointSpread() {
		favored := config.Team1Name
		if config.SpreadDirection == model.SpreadTeam2 {
			favored = config.Team2Name
		}
		logger.Highlight(fmt.Sprintf("Spread %.1f (%s favored)", config.PointSpread, favored))
		logger.Inform(fmt.Sprintf("  Edge %+.2f goals, call: %s", result.Betting.SpreadEdge, result.Betting.SpreadRecommendation))
	}
}

// phraseInsight renders one insight as display text; the engine itself only
// emits typed data
func phraseInsight(insight model.Insight, config model.MatchConfiguration) string {
	team := ""
	switch insight.Team {
	case 1:
		team = config.Team1Name
	case 2:
		team = config.Team2Name
	}

	switch insight.Kind {
	case model.InsightFormDominance:
		return fmt.Sprintf("%s holds a clear form edge (%.2f)", team, insight.Value)
	case model.InsightH2HEdge:
		return fmt.Sprintf("%s has the head-to-head edge (%.2f)", team, insight.Value)
	case model.InsightHighScoring:
		return fmt.Sprintf("Goals expected: projection of %.2f is high", insight.Value)
	case model.InsightLowScoring:
		return fmt.Sprintf("A tight, low-scoring match is likely (%.2f projected)", insight.Value)
	case model.InsightMomentumSwing:
		return fmt.Sprintf("%s carries the momentum (%.2f)", team, insight.Value)
	case model.InsightCleanSheetThreat:
		return fmt.Sprintf("%s keeps clean sheets in %.0f%% of recent matches", team, insight.Value)
	case model.InsightTightContest:
		return fmt.Sprintf("Too close to call, draw at %.1f%%", insight.Value)
	case model.InsightThinData:
		return fmt.Sprintf("Only %.0f matches entered, treat projections with caution", insight.Value)
	default:
		return string(insight.Kind)
	}
}

func printHistory(session *model.SessionStore) {
	history, err := session.History()
	if err != nil {
		logger.Error("Failed to read analysis history:", err)
		os.Exit(1)
	}
	if len(history) == 0 {
		logger.Inform("No analysis history recorded")
		return
	}

	logger.Highlight("Analysis history")
	for _, rec := range history {
		logger.Inform(fmt.Sprintf("  #%d %s  %s vs %s  %5.1f / %5.1f / %5.1f  total %.2f margin %+.2f",
			rec.RunID, rec.CreatedAt.Format("2006-01-02 15:04"),
			rec.Team1Name, rec.Team2Name,
			rec.Team1Probability, rec.DrawProbability, rec.Team2Probability,
			rec.ProjectedTotal, rec.ProjectedMargin))
	}
}
