package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/feltskyting/startlist/internal/domain/startlist"
	"github.com/feltskyting/startlist/internal/platform/logging"
	"github.com/feltskyting/startlist/internal/usecase"
)

type Handler struct {
	startListService *usecase.StartListService
	officialService  *usecase.OfficialService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	startListService *usecase.StartListService,
	officialService *usecase.OfficialService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Handler{
		startListService: startListService,
		officialService:  officialService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type settingsDTO struct {
	Format             string `json:"format"`
	MaxShootersPerTeam int    `json:"maxShootersPerTeam"`
	StartInterval      int    `json:"startInterval"`
	FirstStartTime     string `json:"firstStartTime"`
	MemberSortOrder    string `json:"memberSortOrder,omitempty"`
	ClassStartOrder    string `json:"classStartOrder,omitempty"`
	GeneratedAtUTC     string `json:"generatedAtUtc"`
}

type shooterDTO struct {
	Position    int    `json:"position"`
	ShooterID   string `json:"shooterId"`
	Name        string `json:"name"`
	Club        string `json:"club,omitempty"`
	WeaponClass string `json:"weaponClass"`
}

type teamDTO struct {
	Number        int          `json:"number"`
	StartTime     string       `json:"startTime"`
	EndTime       string       `json:"endTime,omitempty"`
	ShooterCount  int          `json:"shooterCount"`
	WeaponClasses []string     `json:"weaponClasses"`
	Shooters      []shooterDTO `json:"shooters"`
}

type startListDTO struct {
	ID            string      `json:"id"`
	CompetitionID string      `json:"competitionId"`
	IsOfficial    bool        `json:"isOfficial"`
	Settings      settingsDTO `json:"settings"`
	Teams         []teamDTO   `json:"teams"`
	CreatedAtUTC  string      `json:"createdAtUtc"`
	UpdatedAtUTC  string      `json:"updatedAtUtc"`
}

func startListToDTO(ctx context.Context, cfg startlist.Configuration) startListDTO {
	ctx, span := startSpan(ctx, "httpapi.startListToDTO")
	defer span.End()

	teams := make([]teamDTO, 0, len(cfg.Teams))
	for _, team := range cfg.Teams {
		shooters := make([]shooterDTO, 0, len(team.Shooters))
		for _, shooter := range team.Shooters {
			shooters = append(shooters, shooterDTO{
				Position:    shooter.Position,
				ShooterID:   shooter.ShooterID,
				Name:        shooter.Name,
				Club:        shooter.Club,
				WeaponClass: shooter.WeaponClass,
			})
		}
		teams = append(teams, teamDTO{
			Number:        team.Number,
			StartTime:     team.StartTime,
			EndTime:       team.EndTime,
			ShooterCount:  team.ShooterCount,
			WeaponClasses: append([]string(nil), team.WeaponClasses...),
			Shooters:      shooters,
		})
	}

	return startListDTO{
		ID:            cfg.ID,
		CompetitionID: cfg.CompetitionID,
		IsOfficial:    cfg.IsOfficial,
		Settings: settingsDTO{
			Format:             cfg.Settings.Format,
			MaxShootersPerTeam: cfg.Settings.MaxShootersPerTeam,
			StartInterval:      cfg.Settings.StartInterval,
			FirstStartTime:     cfg.Settings.FirstStartTime,
			MemberSortOrder:    cfg.Settings.MemberSortOrder,
			ClassStartOrder:    cfg.Settings.ClassStartOrder,
			GeneratedAtUTC:     cfg.Settings.GeneratedAt.UTC().Format(time.RFC3339),
		},
		Teams:        teams,
		CreatedAtUTC: cfg.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: cfg.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
