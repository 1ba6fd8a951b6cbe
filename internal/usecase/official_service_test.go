package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/feltskyting/startlist/internal/domain/startlist"
	"github.com/feltskyting/startlist/internal/infrastructure/repository/memory"
	"github.com/feltskyting/startlist/internal/platform/logging"
)

type startListRepoMock struct {
	mock.Mock
}

func (m *startListRepoMock) GetByID(ctx context.Context, startListID string) (startlist.Configuration, bool, error) {
	args := m.Called(ctx, startListID)
	return args.Get(0).(startlist.Configuration), args.Bool(1), args.Error(2)
}

func (m *startListRepoMock) ListByCompetition(ctx context.Context, competitionID string) ([]startlist.Configuration, error) {
	args := m.Called(ctx, competitionID)
	lists, _ := args.Get(0).([]startlist.Configuration)
	return lists, args.Error(1)
}

func (m *startListRepoMock) Upsert(ctx context.Context, cfg startlist.Configuration) error {
	args := m.Called(ctx, cfg.ID)
	return args.Error(0)
}

func (m *startListRepoMock) Delete(ctx context.Context, startListID string) error {
	args := m.Called(ctx, startListID)
	return args.Error(0)
}

func storedConfig(id string, official bool) startlist.Configuration {
	return startlist.Configuration{
		ID:            id,
		CompetitionID: "comp-1",
		IsOfficial:    official,
		CreatedAt:     time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestSetOfficialClearsSiblings(t *testing.T) {
	repo := memory.NewStartListRepository()
	ctx := context.Background()
	for _, cfg := range []startlist.Configuration{
		storedConfig("sl-1", true),
		storedConfig("sl-2", false),
		storedConfig("sl-3", false),
	} {
		if err := repo.Upsert(ctx, cfg); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	service := NewOfficialService(repo, logging.NewNop())
	promoted, err := service.SetOfficial(ctx, "sl-2")
	if err != nil {
		t.Fatalf("set official failed: %v", err)
	}
	if !promoted.IsOfficial {
		t.Fatal("promoted configuration should carry the official flag")
	}

	lists, err := repo.ListByCompetition(ctx, "comp-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, cfg := range lists {
		if cfg.ID == "sl-2" && !cfg.IsOfficial {
			t.Fatal("sl-2 should be official")
		}
		if cfg.ID != "sl-2" && cfg.IsOfficial {
			t.Fatalf("%s should no longer be official", cfg.ID)
		}
	}
}

func TestSetOfficialNotFound(t *testing.T) {
	service := NewOfficialService(memory.NewStartListRepository(), logging.NewNop())

	_, err := service.SetOfficial(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetOfficialContinuesWhenSiblingSaveFails(t *testing.T) {
	repo := &startListRepoMock{}
	target := storedConfig("sl-2", false)
	brokenSibling := storedConfig("sl-1", true)
	healthySibling := storedConfig("sl-3", true)

	repo.On("GetByID", mock.Anything, "sl-2").Return(target, true, nil)
	repo.On("ListByCompetition", mock.Anything, "comp-1").
		Return([]startlist.Configuration{brokenSibling, target, healthySibling}, nil)
	repo.On("Upsert", mock.Anything, "sl-1").Return(errors.New("row locked"))
	repo.On("Upsert", mock.Anything, "sl-3").Return(nil)
	repo.On("Upsert", mock.Anything, "sl-2").Return(nil)

	service := NewOfficialService(repo, logging.NewNop())
	promoted, err := service.SetOfficial(context.Background(), "sl-2")
	if err != nil {
		t.Fatalf("set official failed: %v", err)
	}
	if !promoted.IsOfficial {
		t.Fatal("target should be official despite the sibling failure")
	}

	repo.AssertCalled(t, "Upsert", mock.Anything, "sl-1")
	repo.AssertCalled(t, "Upsert", mock.Anything, "sl-3")
	repo.AssertCalled(t, "Upsert", mock.Anything, "sl-2")
}

func TestSetUnofficialFlipsOnlyTarget(t *testing.T) {
	repo := memory.NewStartListRepository()
	ctx := context.Background()
	for _, cfg := range []startlist.Configuration{
		storedConfig("sl-1", true),
		storedConfig("sl-2", false),
	} {
		if err := repo.Upsert(ctx, cfg); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	service := NewOfficialService(repo, logging.NewNop())
	demoted, err := service.SetUnofficial(ctx, "sl-1")
	if err != nil {
		t.Fatalf("set unofficial failed: %v", err)
	}
	if demoted.IsOfficial {
		t.Fatal("demoted configuration should no longer carry the official flag")
	}

	if _, err := service.GetOfficial(ctx, "comp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no official list, got %v", err)
	}
}

func TestSetUnofficialOnDraftIsNoop(t *testing.T) {
	repo := &startListRepoMock{}
	repo.On("GetByID", mock.Anything, "sl-2").Return(storedConfig("sl-2", false), true, nil)

	service := NewOfficialService(repo, logging.NewNop())
	cfg, err := service.SetUnofficial(context.Background(), "sl-2")
	if err != nil {
		t.Fatalf("set unofficial failed: %v", err)
	}
	if cfg.IsOfficial {
		t.Fatal("draft configuration should stay unofficial")
	}

	repo.AssertNotCalled(t, "Upsert", mock.Anything, "sl-2")
}

func TestGetOfficial(t *testing.T) {
	repo := memory.NewStartListRepository()
	ctx := context.Background()
	if err := repo.Upsert(ctx, storedConfig("sl-1", false)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := repo.Upsert(ctx, storedConfig("sl-2", true)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	service := NewOfficialService(repo, logging.NewNop())
	cfg, err := service.GetOfficial(ctx, "comp-1")
	if err != nil {
		t.Fatalf("get official failed: %v", err)
	}
	if cfg.ID != "sl-2" {
		t.Fatalf("expected sl-2, got %s", cfg.ID)
	}
}

func TestGetOfficialNotFound(t *testing.T) {
	repo := memory.NewStartListRepository()
	ctx := context.Background()
	if err := repo.Upsert(ctx, storedConfig("sl-1", false)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	service := NewOfficialService(repo, logging.NewNop())
	if _, err := service.GetOfficial(ctx, "comp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
