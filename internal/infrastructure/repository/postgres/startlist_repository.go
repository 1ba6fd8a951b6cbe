package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/feltskyting/startlist/internal/domain/startlist"
	qb "github.com/feltskyting/startlist/internal/platform/querybuilder"
)

const startListUpsertSuffix = "ON CONFLICT (id) DO UPDATE SET " +
	"competition_id = EXCLUDED.competition_id, " +
	"is_official = EXCLUDED.is_official, " +
	"document = EXCLUDED.document, " +
	"updated_at = EXCLUDED.updated_at"

// StartListRepository persists each configuration as one row holding a
// versioned JSON document next to the queryable columns.
type StartListRepository struct {
	db *sqlx.DB
}

func NewStartListRepository(db *sqlx.DB) *StartListRepository {
	return &StartListRepository{db: db}
}

func (r *StartListRepository) GetByID(ctx context.Context, startListID string) (startlist.Configuration, bool, error) {
	query, args, err := qb.Select("id", "competition_id", "is_official", "document", "created_at", "updated_at").
		From("start_lists").
		Where(qb.Eq("id", startListID)).
		ToSQL()
	if err != nil {
		return startlist.Configuration{}, false, fmt.Errorf("build start list query: %w", err)
	}

	var row startListRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return startlist.Configuration{}, false, nil
		}
		return startlist.Configuration{}, false, fmt.Errorf("select start list: %w", err)
	}

	cfg, err := row.toDomain()
	if err != nil {
		return startlist.Configuration{}, false, err
	}

	return cfg, true, nil
}

func (r *StartListRepository) ListByCompetition(ctx context.Context, competitionID string) ([]startlist.Configuration, error) {
	query, args, err := qb.Select("id", "competition_id", "is_official", "document", "created_at", "updated_at").
		From("start_lists").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build start lists query: %w", err)
	}

	var rows []startListRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select start lists: %w", err)
	}

	lists := make([]startlist.Configuration, 0, len(rows))
	for _, row := range rows {
		cfg, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		lists = append(lists, cfg)
	}

	return lists, nil
}

func (r *StartListRepository) Upsert(ctx context.Context, cfg startlist.Configuration) error {
	document, err := encodeDocument(cfg)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertInto("start_lists").
		Columns("id", "competition_id", "is_official", "document", "created_at", "updated_at").
		Values(cfg.ID, cfg.CompetitionID, cfg.IsOfficial, document, cfg.CreatedAt, cfg.UpdatedAt).
		Suffix(startListUpsertSuffix).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build start list upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert start list: %w", err)
	}

	return nil
}

func (r *StartListRepository) Delete(ctx context.Context, startListID string) error {
	query, args, err := qb.DeleteFrom("start_lists").
		Where(qb.Eq("id", startListID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build start list delete: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete start list: %w", err)
	}

	return nil
}
