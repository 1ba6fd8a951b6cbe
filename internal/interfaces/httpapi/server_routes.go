package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerStartListRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/competitions/{competitionID}/start-lists", handler.GenerateStartList)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/start-lists", handler.ListStartLists)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/start-lists/official", handler.GetOfficialStartList)

	mux.HandleFunc("GET /v1/start-lists/{startListID}", handler.GetStartList)
	mux.HandleFunc("DELETE /v1/start-lists/{startListID}", handler.DeleteStartList)
	mux.HandleFunc("POST /v1/start-lists/{startListID}/official", handler.SetOfficialStartList)
	mux.HandleFunc("DELETE /v1/start-lists/{startListID}/official", handler.UnsetOfficialStartList)

	mux.HandleFunc("POST /v1/start-lists/{startListID}/teams", handler.CreateTeam)
	mux.HandleFunc("DELETE /v1/start-lists/{startListID}/teams/{teamNumber}", handler.DeleteTeam)
	mux.HandleFunc("PATCH /v1/start-lists/{startListID}/teams/{teamNumber}/times", handler.UpdateTeamTimes)

	mux.HandleFunc("POST /v1/start-lists/{startListID}/shooters", handler.AddShooter)
	mux.HandleFunc("POST /v1/start-lists/{startListID}/shooters/move", handler.BulkMoveShooters)
	mux.HandleFunc("DELETE /v1/start-lists/{startListID}/shooters/{shooterID}", handler.RemoveShooter)
	mux.HandleFunc("POST /v1/start-lists/{startListID}/shooters/{shooterID}/move", handler.MoveShooter)
	mux.HandleFunc("PATCH /v1/start-lists/{startListID}/shooters/{shooterID}/weapon-class", handler.UpdateShooterWeaponClass)

	mux.HandleFunc("POST /v1/start-lists/{startListID}/repair-club-names", handler.RepairClubNames)
}
