package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/scoutbot/internal/model"
)

type ObjectiveRepository interface {
	Create(objective *model.Objective) error
	Objectives() ([]*model.Objective, error)
	DeleteUnlockedBy(asOf time.Time) (int64, error)
}

type objectiveRepository struct {
	db *sqlx.DB
}

func NewObjectiveRepository(db *sqlx.DB) ObjectiveRepository {
	return &objectiveRepository{db: db}
}

// Create inserts the objective and sets its ID to the storage-assigned row id
func (r *objectiveRepository) Create(objective *model.Objective) error {
	row := objective.Row()
	query := `INSERT INTO objectives (user_id, user_name, name, map_name, unlock_time)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := r.db.QueryRow(query,
		row.UserID,
		row.UserName,
		row.Name,
		row.MapName,
		row.UnlockTime,
	).Scan(&objective.ID)

	return err
}

// Objectives returns every stored objective in registration order
func (r *objectiveRepository) Objectives() ([]*model.Objective, error) {
	var rows []model.ObjectiveRow
	query := `SELECT id, user_id, user_name, name, map_name, unlock_time FROM objectives ORDER BY id ASC`

	err := r.db.Select(&rows, query)
	if err != nil {
		return nil, err
	}

	objectives := make([]*model.Objective, 0, len(rows))
	for _, row := range rows {
		objective, err := row.Objective()
		if err != nil {
			return nil, fmt.Errorf("objective %d: %w", row.ID, err)
		}
		objectives = append(objectives, &objective)
	}

	return objectives, nil
}

// DeleteUnlockedBy removes every objective whose unlock time is at or before asOf
func (r *objectiveRepository) DeleteUnlockedBy(asOf time.Time) (int64, error) {
	query := `DELETE FROM objectives WHERE unlock_time <= $1`
	result, err := r.db.Exec(query, model.FormatUnlockTime(asOf))
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
