package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/feltskyting/startlist/internal/usecase"
)

type generateStartListRequest struct {
	Format             string `json:"format" validate:"required"`
	MaxShootersPerTeam int    `json:"maxShootersPerTeam" validate:"required,min=1"`
	StartInterval      int    `json:"startInterval" validate:"min=0"`
	FirstStartTime     string `json:"firstStartTime" validate:"required"`
	MemberSortOrder    string `json:"memberSortOrder"`
	ClassStartOrder    string `json:"classStartOrder"`
}

type addShooterRequest struct {
	TeamNumber  int    `json:"teamNumber" validate:"required,min=1"`
	ShooterID   string `json:"shooterId" validate:"required"`
	Name        string `json:"name"`
	Club        string `json:"club"`
	WeaponClass string `json:"weaponClass" validate:"required"`
}

type moveShooterRequest struct {
	TargetTeamNumber int `json:"targetTeamNumber" validate:"required,min=1"`
}

type bulkMoveShootersRequest struct {
	ShooterIDs       []string `json:"shooterIds" validate:"required,min=1,dive,required"`
	TargetTeamNumber int      `json:"targetTeamNumber" validate:"required,min=1"`
}

type updateWeaponClassRequest struct {
	WeaponClass string `json:"weaponClass" validate:"required"`
}

type createTeamRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime"`
}

type updateTeamTimesRequest struct {
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime"`
}

func (h *Handler) decodeRequest(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathTeamNumber(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.PathValue("teamNumber"))
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 0, fmt.Errorf("%w: team number must be a positive integer", usecase.ErrInvalidInput)
	}

	return number, nil
}

func (h *Handler) GenerateStartList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateStartList")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	var req generateStartListRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.startListService.Generate(ctx, usecase.GenerateInput{
		CompetitionID:      competitionID,
		Format:             req.Format,
		MaxShootersPerTeam: req.MaxShootersPerTeam,
		StartInterval:      req.StartInterval,
		FirstStartTime:     req.FirstStartTime,
		MemberSortOrder:    req.MemberSortOrder,
		ClassStartOrder:    req.ClassStartOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "generate start list failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, startListToDTO(ctx, cfg))
}

func (h *Handler) ListStartLists(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStartLists")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	lists, err := h.startListService.ListByCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list start lists failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]startListDTO, 0, len(lists))
	for _, cfg := range lists {
		items = append(items, startListToDTO(ctx, cfg))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetOfficialStartList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOfficialStartList")
	defer span.End()

	competitionID := strings.TrimSpace(r.PathValue("competitionID"))
	cfg, err := h.officialService.GetOfficial(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get official start list failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) GetStartList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStartList")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	cfg, err := h.startListService.GetByID(ctx, startListID)
	if err != nil {
		h.logger.WarnContext(ctx, "get start list failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) DeleteStartList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStartList")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	if err := h.startListService.Delete(ctx, startListID); err != nil {
		h.logger.WarnContext(ctx, "delete start list failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) SetOfficialStartList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetOfficialStartList")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	cfg, err := h.officialService.SetOfficial(ctx, startListID)
	if err != nil {
		h.logger.WarnContext(ctx, "set official start list failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) UnsetOfficialStartList(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnsetOfficialStartList")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	cfg, err := h.officialService.SetUnofficial(ctx, startListID)
	if err != nil {
		h.logger.WarnContext(ctx, "unset official start list failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	var req createTeamRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	_, cfg, err := h.startListService.CreateTeam(ctx, startListID, req.StartTime, req.EndTime)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, startListToDTO(ctx, cfg))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	teamNumber, err := pathTeamNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.startListService.DeleteTeam(ctx, startListID, teamNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "start_list_id", startListID, "team_number", teamNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) UpdateTeamTimes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeamTimes")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	teamNumber, err := pathTeamNumber(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTeamTimesRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.startListService.UpdateTeamTimes(ctx, startListID, teamNumber, req.StartTime, req.EndTime)
	if err != nil {
		h.logger.WarnContext(ctx, "update team times failed", "start_list_id", startListID, "team_number", teamNumber, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) AddShooter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddShooter")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	var req addShooterRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.startListService.AddShooter(ctx, usecase.AddShooterInput{
		StartListID: startListID,
		TeamNumber:  req.TeamNumber,
		ShooterID:   req.ShooterID,
		Name:        req.Name,
		Club:        req.Club,
		WeaponClass: req.WeaponClass,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add shooter failed", "start_list_id", startListID, "shooter_id", req.ShooterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) RemoveShooter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveShooter")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	shooterID := strings.TrimSpace(r.PathValue("shooterID"))
	cfg, err := h.startListService.RemoveShooter(ctx, startListID, shooterID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove shooter failed", "start_list_id", startListID, "shooter_id", shooterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

func (h *Handler) MoveShooter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MoveShooter")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	shooterID := strings.TrimSpace(r.PathValue("shooterID"))
	var req moveShooterRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.startListService.MoveShooter(ctx, startListID, shooterID, req.TargetTeamNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "move shooter failed", "start_list_id", startListID, "shooter_id", shooterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

type bulkMoveResponse struct {
	Moved     int          `json:"moved"`
	StartList startListDTO `json:"startList"`
}

func (h *Handler) BulkMoveShooters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BulkMoveShooters")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	var req bulkMoveShootersRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	moved, cfg, err := h.startListService.BulkMoveShooters(ctx, startListID, req.ShooterIDs, req.TargetTeamNumber)
	if err != nil {
		h.logger.WarnContext(ctx, "bulk move shooters failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bulkMoveResponse{
		Moved:     moved,
		StartList: startListToDTO(ctx, cfg),
	})
}

func (h *Handler) UpdateShooterWeaponClass(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateShooterWeaponClass")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	shooterID := strings.TrimSpace(r.PathValue("shooterID"))
	var req updateWeaponClassRequest
	if err := h.decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	cfg, err := h.startListService.UpdateShooterWeaponClass(ctx, startListID, shooterID, req.WeaponClass)
	if err != nil {
		h.logger.WarnContext(ctx, "update weapon class failed", "start_list_id", startListID, "shooter_id", shooterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startListToDTO(ctx, cfg))
}

type repairClubNamesResponse struct {
	Repaired int `json:"repaired"`
}

func (h *Handler) RepairClubNames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RepairClubNames")
	defer span.End()

	startListID := strings.TrimSpace(r.PathValue("startListID"))
	repaired, err := h.startListService.RepairClubNames(ctx, startListID)
	if err != nil {
		h.logger.WarnContext(ctx, "repair club names failed", "start_list_id", startListID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, repairClubNamesResponse{Repaired: repaired})
}
