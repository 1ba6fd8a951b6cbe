// Package memory holds in-memory repository implementations used by tests
// and by local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/feltskyting/startlist/internal/domain/startlist"
)

// StartListRepository stores configurations in a map. Values are cloned on
// the way in and out so callers can never alias stored state.
type StartListRepository struct {
	mu    sync.RWMutex
	items map[string]startlist.Configuration
}

func NewStartListRepository() *StartListRepository {
	return &StartListRepository{items: make(map[string]startlist.Configuration)}
}

func (r *StartListRepository) GetByID(_ context.Context, startListID string) (startlist.Configuration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.items[startListID]
	if !ok {
		return startlist.Configuration{}, false, nil
	}

	return cfg.Clone(), true, nil
}

func (r *StartListRepository) ListByCompetition(_ context.Context, competitionID string) ([]startlist.Configuration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lists []startlist.Configuration
	for _, cfg := range r.items {
		if cfg.CompetitionID == competitionID {
			lists = append(lists, cfg.Clone())
		}
	}

	sort.Slice(lists, func(i, j int) bool {
		if lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].ID < lists[j].ID
		}
		return lists[i].CreatedAt.Before(lists[j].CreatedAt)
	})

	return lists, nil
}

func (r *StartListRepository) Upsert(_ context.Context, cfg startlist.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[cfg.ID] = cfg.Clone()

	return nil
}

func (r *StartListRepository) Delete(_ context.Context, startListID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, startListID)

	return nil
}
