package result

import "context"

// Checker reports whether a shooter already has scored results in a
// competition. Shooters with recorded results cannot be removed from a
// start list.
type Checker interface {
	HasRecorded(ctx context.Context, competitionID, shooterID string) (bool, error)
}
