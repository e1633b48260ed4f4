package model

// UserCount is one leaderboard entry: how many objectives a user has registered since the last reset.
type UserCount struct {
	UserID int64 `db:"user_id"`
	Count  int   `db:"count"`
}
