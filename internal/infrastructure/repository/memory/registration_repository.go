package memory

import (
	"context"
	"sync"

	"github.com/feltskyting/startlist/internal/domain/registration"
)

type RegistrationRepository struct {
	mu    sync.RWMutex
	items map[string][]registration.Registration
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{items: make(map[string][]registration.Registration)}
}

func (r *RegistrationRepository) ListByCompetition(_ context.Context, competitionID string) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]registration.Registration(nil), r.items[competitionID]...), nil
}

func (r *RegistrationRepository) Add(competitionID string, regs ...registration.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[competitionID] = append(r.items[competitionID], regs...)
}
