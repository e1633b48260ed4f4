package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/scoutbot/internal/config"
	"github.com/templui/scoutbot/internal/db"
	"github.com/templui/scoutbot/internal/handler"
	"github.com/templui/scoutbot/internal/repository"
	"github.com/templui/scoutbot/internal/service"
)

// App holds the process-wide state. It is built once at startup and torn
// down at exit.
type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	ObjectiveService   *service.ObjectiveService
	LeaderboardService *service.LeaderboardService
	CommandHandler     *handler.CommandHandler
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := NewWithDB(cfg, database, service.SystemClock)
	if err != nil {
		database.Close()
		return nil, err
	}
	return app, nil
}

// NewWithDB wires services on an already migrated database and loads their
// state: expired objectives are purged first so they are never hydrated.
func NewWithDB(cfg *config.Config, database *sqlx.DB, now service.Clock) (*App, error) {
	// Repositories
	objectiveRepository := repository.NewObjectiveRepository(database)
	userCountRepository := repository.NewUserCountRepository(database)

	// Services
	leaderboardService := service.NewLeaderboardService(userCountRepository)
	objectiveService := service.NewObjectiveService(objectiveRepository, leaderboardService, now)

	_, err := objectiveService.PurgeExpired(objectiveService.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to purge expired objectives: %w", err)
	}

	_, err = objectiveService.Hydrate()
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate objectives: %w", err)
	}

	_, err = leaderboardService.Hydrate()
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate leaderboard: %w", err)
	}

	return &App{
		Cfg:                cfg,
		DB:                 database,
		ObjectiveService:   objectiveService,
		LeaderboardService: leaderboardService,
		CommandHandler:     handler.NewCommandHandler(objectiveService, leaderboardService, cfg.LeaderboardSize),
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
