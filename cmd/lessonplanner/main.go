package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/lessonplanner/internal/cli"
	"github.com/alexanderramin/lessonplanner/internal/config"
	"github.com/alexanderramin/lessonplanner/internal/db"
	"github.com/alexanderramin/lessonplanner/internal/engine"
	"github.com/alexanderramin/lessonplanner/internal/repository"
	"github.com/alexanderramin/lessonplanner/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	activityRepo := repository.NewSQLiteActivityRepo(database)
	runRepo := repository.NewSQLiteRunRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	eng := engine.New(cfg.Engine)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Recommend: service.NewRecommendService(activityRepo, runRepo, eng, logger, observer),
		Catalog:   service.NewCatalogService(activityRepo, uow, observer),
		Meta:      service.NewMetaService(eng.Config()),
		Runs:      service.NewRunService(runRepo),
	}

	// Forms and the results browser need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
