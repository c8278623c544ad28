package model

import (
	"fmt"
	"time"

	"github.com/nurtipurnama/modelv2/internal/logger"
)

// Compile-time check to ensure AnalysisRecord implements Persistable
var _ Persistable = (*AnalysisRecord)(nil)

// AnalysisRecord is the persisted summary of one analysis run
type AnalysisRecord struct {
	RunID int `json:"runId" column:"run_id" dbtype:"INTEGER NOT NULL" primary:"true"`

	Team1Name string `json:"team1Name" column:"team1_name" dbtype:"TEXT NOT NULL"`
	Team2Name string `json:"team2Name" column:"team2_name" dbtype:"TEXT NOT NULL"`

	Team1Probability float64 `json:"team1Probability" column:"team1_probability" dbtype:"REAL NOT NULL"`
	DrawProbability  float64 `json:"drawProbability" column:"draw_probability" dbtype:"REAL NOT NULL"`
	Team2Probability float64 `json:"team2Probability" column:"team2_probability" dbtype:"REAL NOT NULL"`

	ProjectedTotal  float64 `json:"projectedTotal" column:"projected_total" dbtype:"REAL NOT NULL"`
	ProjectedMargin float64 `json:"projectedMargin" column:"projected_margin" dbtype:"REAL NOT NULL"`

	TotalMatches int `json:"totalMatches" column:"total_matches" dbtype:"INTEGER DEFAULT 0"`

	CreatedAt time.Time `json:"createdAt" column:"created_at" dbtype:"DATETIME DEFAULT CURRENT_TIMESTAMP"`
}

// GetTableName returns the table name for analysis history
func (r *AnalysisRecord) GetTableName() string {
	return "analysis_history"
}

// GetPrimaryKey returns the primary key as a map
func (r *AnalysisRecord) GetPrimaryKey() map[string]any {
	return map[string]any{"run_id": r.RunID}
}

// BeforeSave stamps the creation time on first save
func (r *AnalysisRecord) BeforeSave() error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

// SessionStore persists a session's match records and analysis history so a
// session can be revisited later
type SessionStore struct {
	db *Database
}

// OpenSessionStore opens the sqlite-backed session store at the given path
// and ensures its tables exist
func OpenSessionStore(path string) (*SessionStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := db.CreateTable(&MatchRecord{}); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.CreateTable(&AnalysisRecord{}); err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db}, nil
}

// Close closes the underlying database
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// SaveRecords replaces the persisted match records with the store's current
// contents
func (s *SessionStore) SaveRecords(store *MatchStore) error {
	if err := s.db.DeleteWhere(&MatchRecord{}, ""); err != nil {
		return err
	}

	var objects []Persistable
	for _, category := range Categories {
		for _, rec := range store.Records(category) {
			objects = append(objects, rec)
		}
	}
	if len(objects) == 0 {
		return nil
	}

	if err := s.db.SaveAll(objects); err != nil {
		return err
	}
	logger.Debug("persisted", len(objects), "match records")
	return nil
}

// LoadRecords restores the persisted match records into the given store,
// replacing whatever each persisted category currently holds
func (s *SessionStore) LoadRecords(store *MatchStore) error {
	for _, category := range Categories {
		results, err := s.db.FindWhere(&MatchRecord{},
			"category = ? ORDER BY match_number ASC", string(category))
		if err != nil {
			return err
		}
		if len(results) == 0 {
			continue
		}

		// Rebuild the raw (self, opponent) pairs so ingestion rederives
		// everything against the store's current configuration
		selfScores := make([]int, 0, len(results))
		opponentScores := make([]int, 0, len(results))
		for _, r := range results {
			rec, ok := r.(*MatchRecord)
			if !ok {
				return fmt.Errorf("unexpected type in match record results")
			}
			if category == CategoryTeam2Series {
				selfScores = append(selfScores, rec.Team2Score)
				opponentScores = append(opponentScores, rec.Team1Score)
			} else {
				selfScores = append(selfScores, rec.Team1Score)
				opponentScores = append(opponentScores, rec.Team2Score)
			}
		}

		if _, _, err := store.Ingest(category, selfScores, opponentScores); err != nil {
			return err
		}
	}
	return nil
}

// SaveAnalysis appends one analysis result to the history
func (s *SessionStore) SaveAnalysis(result *AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("%w: no analysis result to save", ErrValidation)
	}

	history, err := s.db.FindWhere(&AnalysisRecord{}, "")
	if err != nil {
		return err
	}

	record := &AnalysisRecord{
		RunID:            len(history) + 1,
		Team1Name:        result.Config.Team1Name,
		Team2Name:        result.Config.Team2Name,
		Team1Probability: result.Probabilities.Team1,
		DrawProbability:  result.Probabilities.Draw,
		Team2Probability: result.Probabilities.Team2,
		ProjectedTotal:   result.ProjectedTotal,
		ProjectedMargin:  result.ProjectedMargin,
		TotalMatches:     result.Features.Quality.TotalMatches,
	}
	return s.db.Save(record)
}

// History returns the persisted analysis summaries, oldest first
func (s *SessionStore) History() ([]*AnalysisRecord, error) {
	results, err := s.db.FindWhere(&AnalysisRecord{}, "1=1 ORDER BY run_id ASC")
	if err != nil {
		return nil, err
	}

	records := make([]*AnalysisRecord, 0, len(results))
	for _, r := range results {
		rec, ok := r.(*AnalysisRecord)
		if !ok {
			return nil, fmt.Errorf("unexpected type in analysis history results")
		}
		records = append(records, rec)
	}
	return records, nil
}

// Clear removes all persisted records and history
func (s *SessionStore) Clear() error {
	if err := s.db.DeleteWhere(&MatchRecord{}, ""); err != nil {
		return err
	}
	return s.db.DeleteWhere(&AnalysisRecord{}, "")
}
