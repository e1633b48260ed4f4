package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/scoutbot/internal/model"
)

var (
	ErrInvalidCount = errors.New("count must be positive")
)

type UserCountRepository interface {
	Upsert(userID int64, count int) error
	UserCounts() ([]*model.UserCount, error)
	DeleteAll() (int64, error)
}

type userCountRepository struct {
	db *sqlx.DB
}

func NewUserCountRepository(db *sqlx.DB) UserCountRepository {
	return &userCountRepository{db: db}
}

// Upsert stores count for userID. New users are appended after every existing
// row so UserCounts keeps first-registration order across restarts.
func (r *userCountRepository) Upsert(userID int64, count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}

	query := `INSERT INTO user_counts (user_id, count, seq)
	          VALUES ($1, $2, (SELECT COALESCE(MAX(seq), 0) + 1 FROM user_counts))
	          ON CONFLICT (user_id) DO UPDATE SET count = excluded.count`

	_, err := r.db.Exec(query, userID, count)
	return err
}

// UserCounts returns every counter in first-registration order
func (r *userCountRepository) UserCounts() ([]*model.UserCount, error) {
	var counts []*model.UserCount
	query := `SELECT user_id, count FROM user_counts ORDER BY seq ASC, user_id ASC`

	err := r.db.Select(&counts, query)
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *userCountRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM user_counts`)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
