package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/feltskyting/startlist/internal/domain/registration"
	qb "github.com/feltskyting/startlist/internal/platform/querybuilder"
)

type registrationRow struct {
	ShooterID    string         `db:"shooter_id"`
	Name         string         `db:"shooter_name"`
	ClubID       sql.NullString `db:"club_id"`
	ClubName     sql.NullString `db:"club_name"`
	WeaponClass  string         `db:"weapon_class"`
	RegisteredAt time.Time      `db:"registered_at"`
}

func (r registrationRow) toDomain() registration.Registration {
	return registration.Registration{
		ShooterID:    r.ShooterID,
		Name:         r.Name,
		ClubID:       r.ClubID.String,
		ClubName:     r.ClubName.String,
		WeaponClass:  r.WeaponClass,
		RegisteredAt: r.RegisteredAt,
	}
}

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) ListByCompetition(ctx context.Context, competitionID string) ([]registration.Registration, error) {
	query, args, err := qb.Select("shooter_id", "shooter_name", "club_id", "club_name", "weapon_class", "registered_at").
		From("registrations").
		Where(qb.Eq("competition_id", competitionID), qb.IsNull("cancelled_at")).
		OrderBy("registered_at", "shooter_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build registrations query: %w", err)
	}

	var rows []registrationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select registrations: %w", err)
	}

	regs := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		regs = append(regs, row.toDomain())
	}

	return regs, nil
}
