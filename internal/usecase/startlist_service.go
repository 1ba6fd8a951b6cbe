package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/feltskyting/startlist/internal/domain/club"
	"github.com/feltskyting/startlist/internal/domain/registration"
	"github.com/feltskyting/startlist/internal/domain/result"
	"github.com/feltskyting/startlist/internal/domain/startlist"
	idgen "github.com/feltskyting/startlist/internal/platform/id"
	"github.com/feltskyting/startlist/internal/platform/logging"
)

const defaultRepairWorkerCount = 4

// GenerateInput carries the organizer's scheduling parameters for one
// partitioning run.
type GenerateInput struct {
	CompetitionID      string
	Format             string
	MaxShootersPerTeam int
	StartInterval      int
	FirstStartTime     string
	MemberSortOrder    string
	ClassStartOrder    string
}

// AddShooterInput identifies the entrant to append. Name and Club are
// optional; missing fields are backfilled from the competition's
// registration list.
type AddShooterInput struct {
	StartListID string
	TeamNumber  int
	ShooterID   string
	Name        string
	Club        string
	WeaponClass string
}

// StartListService orchestrates generation and editing of start list
// configurations. Every edit is load, mutate in memory, save wholesale;
// single-writer semantics are assumed from the request layer.
type StartListService struct {
	registrationRepo registration.Repository
	startListRepo    startlist.Repository
	resultChecker    result.Checker
	clubDirectory    club.Directory
	idGen            idgen.Generator
	logger           *logging.Logger
	repairWorkers    int
	now              func() time.Time
}

func NewStartListService(
	registrationRepo registration.Repository,
	startListRepo startlist.Repository,
	resultChecker result.Checker,
	clubDirectory club.Directory,
	idGen idgen.Generator,
	logger *logging.Logger,
) *StartListService {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &StartListService{
		registrationRepo: registrationRepo,
		startListRepo:    startListRepo,
		resultChecker:    resultChecker,
		clubDirectory:    clubDirectory,
		idGen:            idGen,
		logger:           logger,
		repairWorkers:    defaultRepairWorkerCount,
		now:              time.Now,
	}
}

func (s *StartListService) SetRepairWorkerCount(workers int) {
	if workers > 0 {
		s.repairWorkers = workers
	}
}

// Generate partitions the competition's active registrations into a new
// start list configuration and persists it.
func (s *StartListService) Generate(ctx context.Context, input GenerateInput) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.Generate")
	defer span.End()

	competitionID := strings.TrimSpace(input.CompetitionID)
	if competitionID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}

	regs, err := s.registrationRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("list registrations: %w", err)
	}

	settings := startlist.Settings{
		Format:             strings.TrimSpace(input.Format),
		MaxShootersPerTeam: input.MaxShootersPerTeam,
		StartInterval:      input.StartInterval,
		FirstStartTime:     strings.TrimSpace(input.FirstStartTime),
		MemberSortOrder:    strings.TrimSpace(input.MemberSortOrder),
		ClassStartOrder:    strings.TrimSpace(input.ClassStartOrder),
		GeneratedAt:        s.now().UTC(),
	}

	cfg, err := startlist.Generate(regs, settings)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startListID, err := s.idGen.NewID()
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("generate start list id: %w", err)
	}

	cfg.ID = startListID
	cfg.CompetitionID = competitionID
	cfg.CreatedAt = settings.GeneratedAt
	cfg.UpdatedAt = settings.GeneratedAt

	if err := s.startListRepo.Upsert(ctx, cfg); err != nil {
		return startlist.Configuration{}, fmt.Errorf("save start list: %w", err)
	}

	s.logger.InfoContext(ctx, "start list generated",
		"start_list_id", cfg.ID,
		"competition_id", competitionID,
		"format", settings.Format,
		"teams", len(cfg.Teams),
		"registrations", len(regs),
	)

	return cfg, nil
}

func (s *StartListService) GetByID(ctx context.Context, startListID string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.GetByID")
	defer span.End()

	return s.load(ctx, startListID)
}

func (s *StartListService) ListByCompetition(ctx context.Context, competitionID string) ([]startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.ListByCompetition")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}

	lists, err := s.startListRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list start lists by competition: %w", err)
	}

	return lists, nil
}

func (s *StartListService) Delete(ctx context.Context, startListID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.Delete")
	defer span.End()

	cfg, err := s.load(ctx, startListID)
	if err != nil {
		return err
	}

	if err := s.startListRepo.Delete(ctx, cfg.ID); err != nil {
		return fmt.Errorf("delete start list: %w", err)
	}

	s.logger.InfoContext(ctx, "start list deleted", "start_list_id", cfg.ID, "competition_id", cfg.CompetitionID)

	return nil
}

// AddShooter appends a shooter to the target team. Missing display fields
// are backfilled from the registration list when available.
func (s *StartListService) AddShooter(ctx context.Context, input AddShooterInput) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.AddShooter")
	defer span.End()

	shooterID := strings.TrimSpace(input.ShooterID)
	weaponClass := strings.TrimSpace(input.WeaponClass)
	if shooterID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: shooter_id is required", ErrInvalidInput)
	}
	if weaponClass == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: weapon_class is required", ErrInvalidInput)
	}

	current, err := s.load(ctx, input.StartListID)
	if err != nil {
		return startlist.Configuration{}, err
	}

	shooter := startlist.Shooter{
		ShooterID:   shooterID,
		Name:        strings.TrimSpace(input.Name),
		Club:        strings.TrimSpace(input.Club),
		WeaponClass: weaponClass,
	}

	if shooter.Name == "" || shooter.Club == "" {
		regs, err := s.registrationRepo.ListByCompetition(ctx, current.CompetitionID)
		if err != nil {
			return startlist.Configuration{}, fmt.Errorf("list registrations for backfill: %w", err)
		}
		for _, reg := range regs {
			if reg.ShooterID != shooterID {
				continue
			}
			if shooter.Name == "" {
				shooter.Name = reg.Name
			}
			if shooter.Club == "" {
				shooter.Club = reg.ClubName
			}
			if reg.WeaponClass == weaponClass {
				break
			}
		}
	}

	return s.mutate(ctx, input.StartListID, func(cfg *startlist.Configuration) error {
		return cfg.AddShooter(input.TeamNumber, shooter)
	})
}

// RemoveShooter deletes a shooter from the configuration unless the result
// store already holds scored results for them.
func (s *StartListService) RemoveShooter(ctx context.Context, startListID, shooterID string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.RemoveShooter")
	defer span.End()

	shooterID = strings.TrimSpace(shooterID)
	if shooterID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: shooter_id is required", ErrInvalidInput)
	}

	cfg, err := s.load(ctx, startListID)
	if err != nil {
		return startlist.Configuration{}, err
	}

	recorded, err := s.resultChecker.HasRecorded(ctx, cfg.CompetitionID, shooterID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("check recorded results: %w", err)
	}
	if recorded {
		return startlist.Configuration{}, fmt.Errorf("%w: shooter=%s", ErrResultsRecorded, shooterID)
	}

	return s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		return cfg.RemoveShooter(shooterID)
	})
}

func (s *StartListService) MoveShooter(ctx context.Context, startListID, shooterID string, targetTeamNumber int) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.MoveShooter")
	defer span.End()

	shooterID = strings.TrimSpace(shooterID)
	if shooterID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: shooter_id is required", ErrInvalidInput)
	}

	return s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		return cfg.MoveShooterToTeam(shooterID, targetTeamNumber)
	})
}

// BulkMoveShooters moves each identity into the target team, skipping
// identities that are missing or already there.
func (s *StartListService) BulkMoveShooters(ctx context.Context, startListID string, shooterIDs []string, targetTeamNumber int) (int, startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.BulkMoveShooters")
	defer span.End()

	cleaned := make([]string, 0, len(shooterIDs))
	for _, shooterID := range shooterIDs {
		shooterID = strings.TrimSpace(shooterID)
		if shooterID != "" {
			cleaned = append(cleaned, shooterID)
		}
	}
	if len(cleaned) == 0 {
		return 0, startlist.Configuration{}, fmt.Errorf("%w: shooter_ids are required", ErrInvalidInput)
	}

	moved := 0
	cfg, err := s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		var opErr error
		moved, opErr = cfg.MoveShootersToTeam(cleaned, targetTeamNumber)
		return opErr
	})
	if err != nil {
		return 0, startlist.Configuration{}, err
	}

	return moved, cfg, nil
}

func (s *StartListService) UpdateShooterWeaponClass(ctx context.Context, startListID, shooterID, weaponClass string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.UpdateShooterWeaponClass")
	defer span.End()

	shooterID = strings.TrimSpace(shooterID)
	weaponClass = strings.TrimSpace(weaponClass)
	if shooterID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: shooter_id is required", ErrInvalidInput)
	}
	if weaponClass == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: weapon_class is required", ErrInvalidInput)
	}

	return s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		return cfg.UpdateShooterWeaponClass(shooterID, weaponClass)
	})
}

func (s *StartListService) CreateTeam(ctx context.Context, startListID, startTime, endTime string) (int, startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.CreateTeam")
	defer span.End()

	teamNumber := 0
	cfg, err := s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		var opErr error
		teamNumber, opErr = cfg.CreateTeam(strings.TrimSpace(startTime), strings.TrimSpace(endTime))
		return opErr
	})
	if err != nil {
		return 0, startlist.Configuration{}, err
	}

	return teamNumber, cfg, nil
}

func (s *StartListService) DeleteTeam(ctx context.Context, startListID string, teamNumber int) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.DeleteTeam")
	defer span.End()

	return s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		return cfg.DeleteTeam(teamNumber)
	})
}

func (s *StartListService) UpdateTeamTimes(ctx context.Context, startListID string, teamNumber int, startTime, endTime string) (startlist.Configuration, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.UpdateTeamTimes")
	defer span.End()

	return s.mutate(ctx, startListID, func(cfg *startlist.Configuration) error {
		return cfg.UpdateTeamTimes(teamNumber, strings.TrimSpace(startTime), strings.TrimSpace(endTime))
	})
}

// RepairClubNames backfills missing club display names, first from the
// registration list and then through the club directory on a worker pool.
// It returns how many shooters were repaired.
func (s *StartListService) RepairClubNames(ctx context.Context, startListID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StartListService.RepairClubNames")
	defer span.End()

	cfg, err := s.load(ctx, startListID)
	if err != nil {
		return 0, err
	}

	regs, err := s.registrationRepo.ListByCompetition(ctx, cfg.CompetitionID)
	if err != nil {
		return 0, fmt.Errorf("list registrations: %w", err)
	}

	clubIDByShooter := make(map[string]string, len(regs))
	clubNameByShooter := make(map[string]string, len(regs))
	for _, item := range regs {
		if _, ok := clubIDByShooter[item.ShooterID]; !ok {
			clubIDByShooter[item.ShooterID] = item.ClubID
			clubNameByShooter[item.ShooterID] = item.ClubName
		}
	}

	type gap struct {
		teamIdx int
		slotIdx int
		clubID  string
	}

	repaired := 0
	var gaps []gap
	for ti := range cfg.Teams {
		for si := range cfg.Teams[ti].Shooters {
			shooter := &cfg.Teams[ti].Shooters[si]
			if shooter.Club != "" {
				continue
			}
			if name := clubNameByShooter[shooter.ShooterID]; name != "" {
				shooter.Club = name
				repaired++
				continue
			}
			if clubID := clubIDByShooter[shooter.ShooterID]; clubID != "" {
				gaps = append(gaps, gap{teamIdx: ti, slotIdx: si, clubID: clubID})
			}
		}
	}

	if len(gaps) > 0 && s.clubDirectory != nil {
		pool, poolErr := ants.NewPool(s.repairWorkers)
		if poolErr != nil {
			return 0, fmt.Errorf("create worker pool: %w", poolErr)
		}
		defer pool.Release()

		var mu sync.Mutex
		var wg sync.WaitGroup
		for _, item := range gaps {
			item := item
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()

				name, ok, resolveErr := s.clubDirectory.ResolveName(ctx, item.clubID)
				if resolveErr != nil {
					s.logger.WarnContext(ctx, "resolve club name failed", "club_id", item.clubID, "error", resolveErr)
					return
				}
				if !ok || name == "" {
					return
				}

				mu.Lock()
				cfg.Teams[item.teamIdx].Shooters[item.slotIdx].Club = name
				repaired++
				mu.Unlock()
			})
			if submitErr != nil {
				wg.Done()
				s.logger.WarnContext(ctx, "submit club resolve task failed", "club_id", item.clubID, "error", submitErr)
			}
		}
		wg.Wait()
	}

	if repaired == 0 {
		return 0, nil
	}

	cfg.UpdatedAt = s.now().UTC()
	if err := s.startListRepo.Upsert(ctx, cfg); err != nil {
		return 0, fmt.Errorf("save start list: %w", err)
	}

	s.logger.InfoContext(ctx, "club names repaired", "start_list_id", cfg.ID, "repaired", repaired)

	return repaired, nil
}

func (s *StartListService) load(ctx context.Context, startListID string) (startlist.Configuration, error) {
	startListID = strings.TrimSpace(startListID)
	if startListID == "" {
		return startlist.Configuration{}, fmt.Errorf("%w: start_list_id is required", ErrInvalidInput)
	}

	cfg, exists, err := s.startListRepo.GetByID(ctx, startListID)
	if err != nil {
		return startlist.Configuration{}, fmt.Errorf("get start list by id: %w", err)
	}
	if !exists {
		return startlist.Configuration{}, fmt.Errorf("%w: start_list=%s", ErrNotFound, startListID)
	}

	return cfg, nil
}

// mutate implements the persist-after-success contract: the stored
// configuration is only replaced when the edit operation returned no error.
func (s *StartListService) mutate(ctx context.Context, startListID string, op func(*startlist.Configuration) error) (startlist.Configuration, error) {
	cfg, err := s.load(ctx, startListID)
	if err != nil {
		return startlist.Configuration{}, err
	}

	if err := op(&cfg); err != nil {
		return startlist.Configuration{}, mapEditError(err)
	}

	cfg.UpdatedAt = s.now().UTC()
	if err := s.startListRepo.Upsert(ctx, cfg); err != nil {
		return startlist.Configuration{}, fmt.Errorf("save start list: %w", err)
	}

	return cfg, nil
}

func mapEditError(err error) error {
	switch {
	case errors.Is(err, startlist.ErrTeamNotFound), errors.Is(err, startlist.ErrShooterNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, startlist.ErrShooterExists), errors.Is(err, startlist.ErrShooterInTeam), errors.Is(err, startlist.ErrTeamNotEmpty):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
