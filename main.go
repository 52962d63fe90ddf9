package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerflow/adapters/excel"
	"careerflow/adapters/postgres"
	"careerflow/app"
	"careerflow/internal"
	"careerflow/internal/config"
	"careerflow/internal/errors"
	"careerflow/internal/linkedin"
	"careerflow/internal/migration"
	"careerflow/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger := internal.NewLogger()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	jobRepo := postgres.NewJobRepository(db)

	uiApp, err := ui.NewApp(ui.Deps{
		Jobs:      app.NewJobService(jobRepo, logger),
		Stats:     app.NewStatsService(),
		Letters:   app.NewCoverLetterService(appConfig.Letter.ApplicantName),
		Parser:    linkedin.NewParser(linkedin.WithLogger(logger)),
		Exporter:  excel.NewJobExporter(),
		ImportCfg: appConfig.Import,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	server := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: uiApp.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting CareerFlow server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
