package model

import (
	"fmt"
	"sync"

	"github.com/nurtipurnama/modelv2/internal/logger"
)

// MatchStore holds the three ordered record sequences and the current match
// configuration. All mutation goes through the store under a single mutex, and
// analysis works on an atomic deep snapshot, so a run can never observe a
// half-ingested sequence.
type MatchStore struct {
	mu      sync.Mutex
	h2h     []*MatchRecord
	team1   []*MatchRecord
	team2   []*MatchRecord
	config  MatchConfiguration
	version uint64
}

// NewMatchStore returns an empty store with a neutral configuration
func NewMatchStore() *MatchStore {
	return &MatchStore{config: DefaultMatchConfiguration()}
}

// Ingest replaces the named category's sequence with records derived from the
// given score arrays. The two arrays pair up positionally; unequal lengths are
// truncated to the shorter one, which is reported but not fatal. For the
// head-to-head category selfScores are team1's goals; for a per-team series
// they are the named team's own goals and opponentScores the third party's.
// Returns the number of records added and whether truncation occurred.
func (s *MatchStore) Ingest(category Category, selfScores, opponentScores []int) (int, bool, error) {
	if !validCategory(category) {
		return 0, false, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	n := len(selfScores)
	truncated := false
	if len(opponentScores) != n {
		if len(opponentScores) < n {
			n = len(opponentScores)
		}
		truncated = true
		logger.Warn("score arrays have unequal length, truncating to", n, "for category", string(category))
	}
	if n == 0 {
		return 0, truncated, fmt.Errorf("%w: no score pairs to ingest for category %q", ErrValidation, category)
	}

	// Validate everything before touching shared state
	for i := 0; i < n; i++ {
		if selfScores[i] < 0 || opponentScores[i] < 0 {
			return 0, truncated, fmt.Errorf("%w: negative score at position %d", ErrValidation, i+1)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*MatchRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, newMatchRecord(category, i+1, selfScores[i], opponentScores[i], &s.config))
	}
	s.setSequence(category, records)
	s.version++

	logger.Debug("ingested", n, "records into category", string(category))
	return n, truncated, nil
}

// Configure replaces the match configuration. When the total line or point
// spread changed, the line-derived fields are recomputed across all existing
// records in all three categories.
func (s *MatchStore) Configure(config MatchConfiguration) error {
	if config.MatchImportance <= 0 {
		return fmt.Errorf("%w: match importance must be positive", ErrValidation)
	}
	if config.TotalLine < 0 || config.PointSpread < 0 {
		return fmt.Errorf("%w: betting lines cannot be negative", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	linesChanged := config.TotalLine != s.config.TotalLine ||
		config.PointSpread != s.config.PointSpread ||
		config.SpreadDirection != s.config.SpreadDirection

	s.config = config
	if linesChanged {
		for _, seq := range [][]*MatchRecord{s.h2h, s.team1, s.team2} {
			for _, rec := range seq {
				rec.applyLines(&s.config)
			}
		}
		logger.Debug("betting lines changed, rederived line fields on all records")
	}
	s.version++
	return nil
}

// Reset clears all three record sequences; the configuration is kept
func (s *MatchStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h2h = nil
	s.team1 = nil
	s.team2 = nil
	s.version++
}

// Configuration returns a copy of the current match configuration
func (s *MatchStore) Configuration() MatchConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Records returns a copy of the named category's sequence
func (s *MatchStore) Records(category Category) []*MatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSequence(s.sequence(category))
}

// TotalMatches returns the record count across all three categories
func (s *MatchStore) TotalMatches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.h2h) + len(s.team1) + len(s.team2)
}

// Snapshot is a consistent read-copy of the store taken at the start of an
// analysis run. Extractors operate exclusively on snapshots.
type Snapshot struct {
	H2H    []*MatchRecord
	Team1  []*MatchRecord
	Team2  []*MatchRecord
	Config MatchConfiguration
}

// snapshot deep-copies the three sequences plus configuration atomically
func (s *MatchStore) snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Snapshot{
		H2H:    cloneSequence(s.h2h),
		Team1:  cloneSequence(s.team1),
		Team2:  cloneSequence(s.team2),
		Config: s.config,
	}
}

// TotalMatches counts the records captured in the snapshot
func (sn *Snapshot) TotalMatches() int {
	return len(sn.H2H) + len(sn.Team1) + len(sn.Team2)
}

// matchesFor returns the combined head-to-head plus own-series sequence for
// one side of the pairing, oldest first. The head-to-head block precedes the
// series block, matching the ingestion order of the original sessions.
func (sn *Snapshot) matchesFor(isTeam1 bool) []*MatchRecord {
	var series []*MatchRecord
	if isTeam1 {
		series = sn.Team1
	} else {
		series = sn.Team2
	}
	combined := make([]*MatchRecord, 0, len(sn.H2H)+len(series))
	combined = append(combined, sn.H2H...)
	combined = append(combined, series...)
	return combined
}

// seriesFor returns just the own-series sequence for one side
func (sn *Snapshot) seriesFor(isTeam1 bool) []*MatchRecord {
	if isTeam1 {
		return sn.Team1
	}
	return sn.Team2
}

func (s *MatchStore) sequence(category Category) []*MatchRecord {
	switch category {
	case CategoryH2H:
		return s.h2h
	case CategoryTeam1Series:
		return s.team1
	default:
		return s.team2
	}
}

func (s *MatchStore) setSequence(category Category, records []*MatchRecord) {
	switch category {
	case CategoryH2H:
		s.h2h = records
	case CategoryTeam1Series:
		s.team1 = records
	case CategoryTeam2Series:
		s.team2 = records
	}
}

func cloneSequence(records []*MatchRecord) []*MatchRecord {
	if records == nil {
		return nil
	}
	out := make([]*MatchRecord, len(records))
	for i, rec := range records {
		out[i] = rec.clone()
	}
	return out
}

func validCategory(category Category) bool {
	switch category {
	case CategoryH2H, CategoryTeam1Series, CategoryTeam2Series:
		return true
	}
	return false
}
