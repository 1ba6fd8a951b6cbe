package memory

import (
	"context"
	"sync"
)

// ResultRepository tracks which shooters already have recorded scores,
// keyed by competition.
type ResultRepository struct {
	mu       sync.RWMutex
	recorded map[string]map[string]bool
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{recorded: make(map[string]map[string]bool)}
}

func (r *ResultRepository) HasRecorded(_ context.Context, competitionID, shooterID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.recorded[competitionID][shooterID], nil
}

func (r *ResultRepository) Record(competitionID, shooterID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recorded[competitionID] == nil {
		r.recorded[competitionID] = make(map[string]bool)
	}
	r.recorded[competitionID][shooterID] = true
}
