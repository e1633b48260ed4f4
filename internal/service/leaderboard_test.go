package service

import (
	"errors"
	"testing"

	"github.com/templui/scoutbot/internal/model"
	"github.com/templui/scoutbot/internal/repository"
)

func TestIncrementMirrorsStore(t *testing.T) {
	database := openTestDB(t)
	leaderboard := NewLeaderboardService(repository.NewUserCountRepository(database))

	for want := 1; want <= 3; want++ {
		got, err := leaderboard.Increment(42)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Fatalf("increment = %d, want %d", got, want)
		}

		stored, err := repository.NewUserCountRepository(database).UserCounts()
		if err != nil {
			t.Fatalf("user counts: %v", err)
		}
		if len(stored) != 1 || stored[0].Count != got {
			t.Fatalf("stored = %+v, want count %d", stored, got)
		}
	}
}

func TestIncrementStoreFailureKeepsMemory(t *testing.T) {
	leaderboard := NewLeaderboardService(failingUserCountRepository{})

	got, err := leaderboard.Increment(7)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("increment error = %v, want %v", err, ErrStoreUnavailable)
	}
	if got != 0 {
		t.Fatalf("increment = %d, want 0", got)
	}
	if top := leaderboard.Top(10); len(top) != 0 {
		t.Fatalf("top = %+v, want empty", top)
	}
}

func TestTopOrdersByCountThenFirstSeen(t *testing.T) {
	leaderboard := NewLeaderboardService(repository.NewUserCountRepository(openTestDB(t)))

	for _, userID := range []int64{5, 3, 9, 3, 9, 1, 3} {
		if _, err := leaderboard.Increment(userID); err != nil {
			t.Fatalf("increment %d: %v", userID, err)
		}
	}

	want := []model.UserCount{
		{UserID: 3, Count: 3},
		{UserID: 9, Count: 2},
		{UserID: 5, Count: 1},
		{UserID: 1, Count: 1},
	}
	got := leaderboard.Top(10)
	if len(got) != len(want) {
		t.Fatalf("top = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("top = %+v, want %+v", got, want)
		}
	}

	if got := leaderboard.Top(2); len(got) != 2 || got[1] != want[1] {
		t.Fatalf("top(2) = %+v, want %+v", got, want[:2])
	}
	if got := leaderboard.Top(0); len(got) != 0 {
		t.Fatalf("top(0) = %+v, want empty", got)
	}
}

func TestTieOrderSurvivesHydrate(t *testing.T) {
	database := openTestDB(t)
	leaderboard := NewLeaderboardService(repository.NewUserCountRepository(database))
	for _, userID := range []int64{900, 100, 500} {
		if _, err := leaderboard.Increment(userID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	hydrated := NewLeaderboardService(repository.NewUserCountRepository(database))
	counts, err := hydrated.Hydrate()
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("hydrated = %v, want 3 users", counts)
	}

	got := hydrated.Top(10)
	for i, userID := range []int64{900, 100, 500} {
		if got[i].UserID != userID {
			t.Fatalf("top = %+v, want insertion order 900,100,500", got)
		}
	}
}

func TestResetClearsMemoryAndStore(t *testing.T) {
	database := openTestDB(t)
	leaderboard := NewLeaderboardService(repository.NewUserCountRepository(database))
	for _, userID := range []int64{1, 2, 2} {
		if _, err := leaderboard.Increment(userID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	if err := leaderboard.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, k := range []int{1, 10} {
		if got := leaderboard.Top(k); len(got) != 0 {
			t.Fatalf("top(%d) after reset = %+v, want empty", k, got)
		}
	}

	counts, err := NewLeaderboardService(repository.NewUserCountRepository(database)).Hydrate()
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("hydrated after reset = %v, want empty", counts)
	}

	// counting starts over
	if got, err := leaderboard.Increment(2); err != nil || got != 1 {
		t.Fatalf("increment after reset = %d, %v, want 1", got, err)
	}
}

func TestResetStoreFailureKeepsMemory(t *testing.T) {
	leaderboard := NewLeaderboardService(failingUserCountRepository{})
	leaderboard.counts[1] = 4
	leaderboard.order = []int64{1}

	if err := leaderboard.Reset(); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("reset error = %v, want %v", err, ErrStoreUnavailable)
	}
	if got := leaderboard.Count(1); got != 4 {
		t.Fatalf("count = %d, want 4", got)
	}
}
