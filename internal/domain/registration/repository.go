package registration

import "context"

// Repository describes registration read needs from use cases.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Registration, error)
}
