package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/scoutbot/internal/db"
	"github.com/templui/scoutbot/internal/model"
	"github.com/templui/scoutbot/internal/repository"
)

var errStoreDown = errors.New("disk I/O error")

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "scoutbot.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})
	if err := db.RunMigrations(database.DB, "sqlite"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

// testClock is a settable Clock
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type services struct {
	db          *sqlx.DB
	clock       *testClock
	objectives  *ObjectiveService
	leaderboard *LeaderboardService
}

func newServices(t *testing.T, database *sqlx.DB, now time.Time) *services {
	t.Helper()

	clock := &testClock{now: now}
	leaderboard := NewLeaderboardService(repository.NewUserCountRepository(database))
	objectives := NewObjectiveService(repository.NewObjectiveRepository(database), leaderboard, clock.Now)
	return &services{db: database, clock: clock, objectives: objectives, leaderboard: leaderboard}
}

// restart simulates a process restart against the same database
func (s *services) restart(t *testing.T) *services {
	t.Helper()

	next := newServices(t, s.db, s.clock.now)
	if _, err := next.objectives.PurgeExpired(next.clock.now); err != nil {
		t.Fatalf("purge expired: %v", err)
	}
	if _, err := next.objectives.Hydrate(); err != nil {
		t.Fatalf("hydrate objectives: %v", err)
	}
	if _, err := next.leaderboard.Hydrate(); err != nil {
		t.Fatalf("hydrate leaderboard: %v", err)
	}
	return next
}

type failingObjectiveRepository struct{}

func (failingObjectiveRepository) Create(*model.Objective) error { return errStoreDown }
func (failingObjectiveRepository) Objectives() ([]*model.Objective, error) {
	return nil, errStoreDown
}
func (failingObjectiveRepository) DeleteUnlockedBy(time.Time) (int64, error) {
	return 0, errStoreDown
}

type failingUserCountRepository struct{}

func (failingUserCountRepository) Upsert(int64, int) error { return errStoreDown }
func (failingUserCountRepository) UserCounts() ([]*model.UserCount, error) { return nil, errStoreDown }
func (failingUserCountRepository) DeleteAll() (int64, error) { return 0, errStoreDown }
