package startlist

import "context"

// Repository describes start list persistence needs from use cases.
// Configurations are read-modify-written wholesale; single-writer
// semantics are the caller's responsibility.
type Repository interface {
	GetByID(ctx context.Context, startListID string) (Configuration, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Configuration, error)
	Upsert(ctx context.Context, cfg Configuration) error
	Delete(ctx context.Context, startListID string) error
}
