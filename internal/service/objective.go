package service

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/templui/scoutbot/internal/model"
	"github.com/templui/scoutbot/internal/repository"
	"github.com/templui/scoutbot/internal/validation"
)

// ObjectiveService owns the list of registered objectives for the life of
// the process. Expired objectives stay in memory until the next restart and
// are filtered out at read time.
type ObjectiveService struct {
	repo        repository.ObjectiveRepository
	leaderboard *LeaderboardService
	now         Clock

	mu         sync.Mutex
	objectives []model.Objective
}

func NewObjectiveService(
	repo repository.ObjectiveRepository,
	leaderboard *LeaderboardService,
	now Clock,
) *ObjectiveService {
	if now == nil {
		now = SystemClock
	}
	return &ObjectiveService{
		repo:        repo,
		leaderboard: leaderboard,
		now:         now,
	}
}

// Register records an objective that unlocks durationText ("HH:MM") from now
// and credits owner on the leaderboard.
func (s *ObjectiveService) Register(owner model.Owner, name, mapName, durationText string) (*model.Objective, error) {
	duration, err := validation.ParseDuration(durationText)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	objective := model.Objective{
		Owner:    owner,
		Name:     strings.TrimSpace(name),
		Map:      strings.TrimSpace(mapName),
		// Stored unlock times carry microseconds, so memory must not hold more
		UnlockAt: s.now().UTC().Truncate(time.Microsecond).Add(duration),
	}

	// Persist before touching memory so a failed write leaves both sides equal
	err = s.repo.Create(&objective)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save objective: %w", ErrStoreUnavailable, err)
	}
	s.objectives = append(s.objectives, objective)

	slog.Info("objective registered",
		"objective_id", objective.ID,
		"user_id", owner.ID,
		"name", objective.Name,
		"map", objective.Map,
		"unlock_at", objective.UnlockAt,
	)

	// The objective stands even if the tally write fails; the two tables are independent
	count, err := s.leaderboard.Increment(owner.ID)
	if err != nil {
		slog.Error("failed to increment leaderboard", "user_id", owner.ID, "objective_id", objective.ID, "error", err)
	} else {
		slog.Debug("leaderboard incremented", "user_id", owner.ID, "count", count)
	}

	return &objective, nil
}

// Pending returns every objective still locked at asOf, in registration order
func (s *ObjectiveService) Pending(asOf time.Time) []model.Objective {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]model.Objective, 0, len(s.objectives))
	for _, objective := range s.objectives {
		if objective.IsPending(asOf) {
			pending = append(pending, objective)
		}
	}
	return pending
}

// PendingNow is Pending at the service clock's current instant
func (s *ObjectiveService) PendingNow() []model.Objective {
	return s.Pending(s.now())
}

// PurgeExpired deletes stored objectives that unlocked at or before asOf.
// Run once at startup, before Hydrate.
func (s *ObjectiveService) PurgeExpired(asOf time.Time) (int64, error) {
	deleted, err := s.repo.DeleteUnlockedBy(asOf)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to purge expired objectives: %w", ErrStoreUnavailable, err)
	}

	slog.Info("expired objectives purged", "deleted", deleted, "as_of", asOf)
	return deleted, nil
}

// Hydrate replaces the in-memory list with every stored objective
func (s *ObjectiveService) Hydrate() ([]model.Objective, error) {
	stored, err := s.repo.Objectives()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load objectives: %w", ErrStoreUnavailable, err)
	}

	objectives := make([]model.Objective, 0, len(stored))
	for _, objective := range stored {
		objectives = append(objectives, *objective)
	}

	s.mu.Lock()
	s.objectives = objectives
	s.mu.Unlock()

	slog.Info("objectives hydrated", "count", len(objectives))
	return slices.Clone(objectives), nil
}

// Now exposes the service clock so callers render against the same instant
func (s *ObjectiveService) Now() time.Time {
	return s.now()
}
