package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/feltskyting/startlist/internal/config"
	"github.com/feltskyting/startlist/internal/domain/club"
	"github.com/feltskyting/startlist/internal/domain/registration"
	"github.com/feltskyting/startlist/internal/domain/result"
	"github.com/feltskyting/startlist/internal/domain/startlist"
	"github.com/feltskyting/startlist/internal/infrastructure/memberdir"
	"github.com/feltskyting/startlist/internal/infrastructure/repository/memory"
	"github.com/feltskyting/startlist/internal/infrastructure/repository/postgres"
	"github.com/feltskyting/startlist/internal/interfaces/httpapi"
	idgen "github.com/feltskyting/startlist/internal/platform/id"
	"github.com/feltskyting/startlist/internal/platform/logging"
	"github.com/feltskyting/startlist/internal/usecase"
)

// NewHTTPServer wires repositories, services, and the router. Without a
// DB_URL the service runs on seeded in-memory stores.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	var (
		registrationRepo registration.Repository
		startListRepo    startlist.Repository
		resultChecker    result.Checker
		clubDirectory    club.Directory
	)

	if cfg.DBURL != "" {
		db, err := sqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}

		registrationRepo = postgres.NewRegistrationRepository(db)
		startListRepo = postgres.NewStartListRepository(db)
		resultChecker = postgres.NewResultRepository(db)
		logger.Info("using postgres repositories")
	} else {
		regs := memory.NewRegistrationRepository()
		results := memory.NewResultRepository()
		clubs := memory.NewClubDirectory()
		memory.SeedDemoData(regs, results, clubs)

		registrationRepo = regs
		startListRepo = memory.NewStartListRepository()
		resultChecker = results
		clubDirectory = clubs
		logger.Info("using seeded in-memory repositories", "competition_id", memory.SeedCompetitionID)
	}

	if cfg.MemberDirBaseURL != "" {
		clubDirectory = memberdir.NewClient(cfg.MemberDirBaseURL, cfg.MemberDirTimeout)
		logger.Info("using member directory club resolution", "base_url", cfg.MemberDirBaseURL)
	}

	startListSvc := usecase.NewStartListService(
		registrationRepo,
		startListRepo,
		resultChecker,
		clubDirectory,
		idgen.NewRandomGenerator("sl"),
		logger,
	)
	startListSvc.SetRepairWorkerCount(cfg.RepairWorkerCount)

	officialSvc := usecase.NewOfficialService(startListRepo, logger)

	handler := httpapi.NewHandler(startListSvc, officialSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
