package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/feltskyting/startlist/internal/domain/registration"
	"github.com/feltskyting/startlist/internal/infrastructure/repository/memory"
	"github.com/feltskyting/startlist/internal/platform/logging"
	"github.com/feltskyting/startlist/internal/usecase"
)

type sequenceIDGenerator struct {
	ids []string
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	next := g.ids[0]
	if len(g.ids) > 1 {
		g.ids = g.ids[1:]
	}
	return next, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	regs := memory.NewRegistrationRepository()
	lists := memory.NewStartListRepository()
	results := memory.NewResultRepository()
	clubs := memory.NewClubDirectory()

	base := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	regs.Add("comp-1",
		registration.Registration{ShooterID: "s1", Name: "Kari Nordmann", ClubID: "club-01", ClubName: "Oslo Feltskyttere", WeaponClass: "A", RegisteredAt: base},
		registration.Registration{ShooterID: "s2", Name: "Ola Hansen", ClubID: "club-01", ClubName: "Oslo Feltskyttere", WeaponClass: "B", RegisteredAt: base.Add(time.Minute)},
		registration.Registration{ShooterID: "s3", Name: "Ingrid Berg", ClubID: "club-02", ClubName: "Bergen Pistolklubb", WeaponClass: "A", RegisteredAt: base.Add(2 * time.Minute)},
	)

	service := usecase.NewStartListService(regs, lists, results, clubs, &sequenceIDGenerator{ids: []string{"sl-1", "sl-2"}}, logging.NewNop())
	official := usecase.NewOfficialService(lists, logging.NewNop())
	handler := NewHandler(service, official, logging.NewNop())

	return NewRouter(handler, logging.NewNop(), nil)
}

func decodeData(t *testing.T, body []byte, target any) {
	t.Helper()

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Data       any    `json:"data"`
	}
	envelope.Data = target
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("unexpected apiVersion %q", envelope.APIVersion)
	}
}

func TestGenerateAndFetchStartList(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"format":"mixed","maxShootersPerTeam":2,"startInterval":60,"firstStartTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/competitions/comp-1/start-lists", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var created startListDTO
	decodeData(t, recorder.Body.Bytes(), &created)
	if created.ID != "sl-1" || len(created.Teams) != 2 {
		t.Fatalf("unexpected created list: %+v", created)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/start-lists/sl-1", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var fetched startListDTO
	decodeData(t, recorder.Body.Bytes(), &fetched)
	if fetched.CompetitionID != "comp-1" {
		t.Fatalf("unexpected competition %q", fetched.CompetitionID)
	}
}

func TestGenerateRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"format":"mixed","maxShootersPerTeam":2,"firstStartTime":"09:00","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/v1/competitions/comp-1/start-lists", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestGetStartListNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/start-lists/missing", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestSetAndGetOfficial(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"format":"mixed","maxShootersPerTeam":2,"startInterval":60,"firstStartTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/competitions/comp-1/start-lists", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("seed generate failed: %d", recorder.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/competitions/comp-1/start-lists/official", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before promotion, got %d", recorder.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/start-lists/sl-1/official", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("set official failed: %d: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/competitions/comp-1/start-lists/official", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 after promotion, got %d", recorder.Code)
	}

	var official startListDTO
	decodeData(t, recorder.Body.Bytes(), &official)
	if !official.IsOfficial || official.ID != "sl-1" {
		t.Fatalf("unexpected official list: %+v", official)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/start-lists/sl-1/official", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("unset official failed: %d: %s", recorder.Code, recorder.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/competitions/comp-1/start-lists/official", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after demotion, got %d", recorder.Code)
	}
}

func TestMoveShooterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"format":"mixed","maxShootersPerTeam":2,"startInterval":60,"firstStartTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/competitions/comp-1/start-lists", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("seed generate failed: %d", recorder.Code)
	}

	var created startListDTO
	decodeData(t, recorder.Body.Bytes(), &created)
	shooterID := created.Teams[0].Shooters[0].ShooterID

	req = httptest.NewRequest(http.MethodPost, "/v1/start-lists/sl-1/shooters/"+shooterID+"/move", strings.NewReader(`{"targetTeamNumber":2}`))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("move failed: %d: %s", recorder.Code, recorder.Body.String())
	}

	var updated startListDTO
	decodeData(t, recorder.Body.Bytes(), &updated)
	if len(updated.Teams[1].Shooters) != 2 {
		t.Fatalf("expected 2 shooters in team 2, got %d", len(updated.Teams[1].Shooters))
	}

	// Moving again targets the team the shooter is already in.
	req = httptest.NewRequest(http.MethodPost, "/v1/start-lists/sl-1/shooters/"+shooterID+"/move", strings.NewReader(`{"targetTeamNumber":2}`))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
}
