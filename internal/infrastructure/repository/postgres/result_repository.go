package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/feltskyting/startlist/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) HasRecorded(ctx context.Context, competitionID, shooterID string) (bool, error) {
	query, args, err := qb.Select("1").
		From("results").
		Where(qb.Eq("competition_id", competitionID), qb.Eq("shooter_id", shooterID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build results query: %w", err)
	}

	var marker int
	if err := r.db.GetContext(ctx, &marker, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select result marker: %w", err)
	}

	return true, nil
}
