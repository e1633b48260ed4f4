package service

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/templui/scoutbot/internal/model"
	"github.com/templui/scoutbot/internal/repository"
)

// LeaderboardService keeps per-user objective counts in memory and mirrors
// every change to the user_counts table before it becomes visible.
type LeaderboardService struct {
	repo repository.UserCountRepository

	mu     sync.Mutex
	counts map[int64]int
	order  []int64 // user ids by first increment
}

func NewLeaderboardService(repo repository.UserCountRepository) *LeaderboardService {
	return &LeaderboardService{
		repo:   repo,
		counts: make(map[int64]int),
	}
}

// Hydrate replaces the in-memory counts with the stored ones
func (s *LeaderboardService) Hydrate() (map[int64]int, error) {
	rows, err := s.repo.UserCounts()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load user counts: %w", ErrStoreUnavailable, err)
	}

	counts := make(map[int64]int, len(rows))
	order := make([]int64, 0, len(rows))
	for _, row := range rows {
		if _, seen := counts[row.UserID]; !seen {
			order = append(order, row.UserID)
		}
		counts[row.UserID] = row.Count
	}

	s.mu.Lock()
	s.counts = counts
	s.order = order
	s.mu.Unlock()

	slog.Info("leaderboard hydrated", "users", len(order))
	return maps.Clone(counts), nil
}

// Increment adds one to userID's count and returns the new value.
// On a store failure the in-memory count is left unchanged.
func (s *LeaderboardService) Increment(userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, seen := s.counts[userID]
	next := current + 1

	err := s.repo.Upsert(userID, next)
	if err != nil {
		return current, fmt.Errorf("%w: failed to save count for user %d: %w", ErrStoreUnavailable, userID, err)
	}

	if !seen {
		s.order = append(s.order, userID)
	}
	s.counts[userID] = next

	return next, nil
}

// Top returns up to n entries by count descending. Equal counts keep the
// order in which users first appeared.
func (s *LeaderboardService) Top(n int) []model.UserCount {
	if n <= 0 {
		return []model.UserCount{}
	}

	s.mu.Lock()
	entries := make([]model.UserCount, 0, len(s.order))
	for _, userID := range s.order {
		entries = append(entries, model.UserCount{UserID: userID, Count: s.counts[userID]})
	}
	s.mu.Unlock()

	slices.SortStableFunc(entries, func(a, b model.UserCount) int {
		return b.Count - a.Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Count returns userID's current count, zero when absent
func (s *LeaderboardService) Count(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[userID]
}

// Reset deletes every stored count and clears memory.
// Callers are responsible for authorization.
func (s *LeaderboardService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.repo.DeleteAll()
	if err != nil {
		return fmt.Errorf("%w: failed to reset leaderboard: %w", ErrStoreUnavailable, err)
	}

	s.counts = make(map[int64]int)
	s.order = nil

	slog.Info("leaderboard reset", "deleted", deleted)
	return nil
}
