package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/studyplan/internal/cli"
	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/db"
	"github.com/alexanderramin/studyplan/internal/repository"
	"github.com/alexanderramin/studyplan/internal/scheduler"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logLevel := slog.LevelWarn
	if cfg.LogUseCases {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Wire repositories
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	sessionRepo := repository.NewSQLitePlannedSessionRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	// Wire services
	scheduleSvc := service.NewScheduleService(sessionRepo, uow, scheduler.New(policy), observers...)

	app := &cli.App{
		WorkItems: service.NewWorkItemService(workItemRepo, progressRepo, sessionRepo, scheduleSvc),
		Events:    service.NewEventService(eventRepo, scheduleSvc),
		Schedule:  scheduleSvc,
		Import:    service.NewImportService(scheduleSvc, observers...),
		Location:  policy.Location,
		Logger:    logger,
	}

	// Forms are only offered on an interactive terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
