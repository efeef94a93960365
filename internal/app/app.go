package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dominofed/federation-backend/internal/config"
	"github.com/dominofed/federation-backend/internal/infrastructure/repository/postgres"
	"github.com/dominofed/federation-backend/internal/interfaces/httpapi"
	"github.com/dominofed/federation-backend/internal/platform/logging"
	"github.com/dominofed/federation-backend/internal/usecase"
)

// NewHTTPServer connects the database, seeds reference data and wires the
// HTTP stack. The returned cleanup closes the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := connectDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	clubRepo := postgres.NewClubRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	typeRepo := postgres.NewTourTypeRepository(db)
	tournamentRepo := postgres.NewTournamentRepository(db)
	resultRepo := postgres.NewResultRepository(db)

	clubSvc := usecase.NewClubService(clubRepo)
	playerSvc := usecase.NewPlayerService(playerRepo, clubRepo)
	typeSvc := usecase.NewTourTypeService(typeRepo)
	tournamentSvc := usecase.NewTournamentService(tournamentRepo, typeRepo, clubRepo)
	resultSvc := usecase.NewResultService(resultRepo, playerRepo, typeRepo)
	importSvc := usecase.NewImportService(clubRepo, playerRepo, typeRepo, tournamentRepo, resultRepo)
	exportSvc := usecase.NewExportService(clubRepo, playerRepo, tournamentRepo, resultRepo)

	handler := httpapi.NewHandler(
		clubSvc,
		playerSvc,
		typeSvc,
		tournamentSvc,
		resultSvc,
		importSvc,
		exportSvc,
		httpapi.NewTemplateStore(cfg.TemplateDir),
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, db.Close, nil
}

func connectDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	attrs := []attribute.KeyValue{attribute.String("db.system", "postgresql")}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		attrs = append(attrs, attribute.String("db.name", name))
	}

	db, err := otelsqlx.Open("postgres", cfg.DBURL, otelsql.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
