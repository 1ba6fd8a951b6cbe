package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/feltskyting/startlist/internal/domain/startlist"
	"github.com/feltskyting/startlist/internal/platform/logging"
)

// OfficialService manages which configuration a competition treats as its
// official start list. At most one configuration per competition carries
// the flag once SetOfficial returns successfully.
type OfficialService struct {
	startListRepo startlist.Repository
	logger        *logging.Logger
	now           func() time.Time
}

func NewOfficialService(startListRepo startlist.Repository, logger *logging.Logger) *OfficialService {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &OfficialService{
		startListRepo: startListRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// SetOfficial marks the given configuration official and clears the flag
// on every sibling configuration of the same competition. Sibling failures
// are logged and skipped so one broken row cannot block the promotion.
func (s *OfficialService) SetOfficial(ctx context.Context, startListID string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.SetOfficial")
	defer span.End()

	startListID = strings.TrimSpace(startListID)
	if startListID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: start_list_id is required", ErrInvalidInput)
	}

	target, exists, err := s.startListRepo.GetByID(ctx, startListID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("get start list by id: %w", err)
	}
	if !exists {
		return startlist.Configuration{}, fmt.Errorf("%w: start_list=%s", ErrNotFound, startListID)
	}

	siblings, err := s.startListRepo.ListByCompetition(ctx, target.CompetitionID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("list start lists by competition: %w", err)
	}

	stamp := s.now().UTC()
	for _, sibling := range siblings {
		if sibling.ID == target.ID || !sibling.IsOfficial {
			continue
		}

		sibling.IsOfficial = false
		sibling.UpdatedAt = stamp
		if err := s.startListRepo.Upsert(ctx, sibling); err != nil {
			s.logger.WarnContext(ctx, "unset official flag failed",
				"start_list_id", sibling.ID,
				"competition_id", sibling.CompetitionID,
				"error", err,
			)
		}
	}

	target.IsOfficial = true
	target.UpdatedAt = stamp
	if err := s.startListRepo.Upsert(ctx, target); err != nil {
		return startlist.Configuration{}, fmt.Errorf("set official flag: %w", err)
	}

	s.logger.InfoContext(ctx, "start list marked official",
		"start_list_id", target.ID,
		"competition_id", target.CompetitionID,
	)

	return target, nil
}

// SetUnofficial clears the official flag on the given configuration.
// Unlike SetOfficial it touches only the target row.
func (s *OfficialService) SetUnofficial(ctx context.Context, startListID string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.SetUnofficial")
	defer span.End()

	startListID = strings.TrimSpace(startListID)
	if startListID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: start_list_id is required", ErrInvalidInput)
	}

	target, exists, err := s.startListRepo.GetByID(ctx, startListID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("get start list by id: %w", err)
	}
	if !exists {
		return startlist.Configuration{}, fmt.Errorf("%w: start_list=%s", ErrNotFound, startListID)
	}

	if !target.IsOfficial {
		return target, nil
	}

	target.IsOfficial = false
	target.UpdatedAt = s.now().UTC()
	if err := s.startListRepo.Upsert(ctx, target); err != nil {
		return startlist.Configuration{}, fmt.Errorf("clear official flag: %w", err)
	}

	s.logger.InfoContext(ctx, "start list reverted to draft",
		"start_list_id", target.ID,
		"competition_id", target.CompetitionID,
	)

	return target, nil
}

// GetOfficial returns the competition's official configuration. When no
// configuration carries the flag it reports ErrNotFound.
func (s *OfficialService) GetOfficial(ctx context.Context, competitionID string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OfficialService.GetOfficial")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}

	lists, err := s.startListRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("list start lists by competition: %w", err)
	}

	for _, cfg := range lists {
		if cfg.IsOfficial {
			return cfg, nil
		}
	}

	return startlist.Configuration{}, fmt.Errorf("%w: no official start list for competition=%s", ErrNotFound, competitionID)
}
