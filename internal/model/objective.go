package model

import (
	"fmt"
	"time"
)

// UnlockTimeLayout is the persisted form of Objective.UnlockAt.
// Always UTC and fixed width so string order matches instant order.
const UnlockTimeLayout = "2006-01-02T15:04:05.000000Z"

// Owner is a snapshot of the user who registered an objective.
// Name is captured at registration time and never refreshed.
type Owner struct {
	ID   int64
	Name string
}

type Objective struct {
	ID       int64
	Owner    Owner
	Name     string
	Map      string
	UnlockAt time.Time
}

// IsPending reports whether the objective is still locked at asOf.
func (o Objective) IsPending(asOf time.Time) bool {
	return o.UnlockAt.After(asOf)
}

// ObjectiveRow is the storage representation of an Objective.
type ObjectiveRow struct {
	ID         int64  `db:"id"`
	UserID     int64  `db:"user_id"`
	UserName   string `db:"user_name"`
	Name       string `db:"name"`
	MapName    string `db:"map_name"`
	UnlockTime string `db:"unlock_time"`
}

func FormatUnlockTime(t time.Time) string {
	return t.UTC().Format(UnlockTimeLayout)
}

func ParseUnlockTime(value string) (time.Time, error) {
	t, err := time.Parse(UnlockTimeLayout, value)
	if err != nil {
		// rows written by other tools may carry an offset
		t, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid unlock time %q: %w", value, err)
		}
	}
	return t.UTC(), nil
}

func (o Objective) Row() ObjectiveRow {
	return ObjectiveRow{
		ID:         o.ID,
		UserID:     o.Owner.ID,
		UserName:   o.Owner.Name,
		Name:       o.Name,
		MapName:    o.Map,
		UnlockTime: FormatUnlockTime(o.UnlockAt),
	}
}

func (r ObjectiveRow) Objective() (Objective, error) {
	unlockAt, err := ParseUnlockTime(r.UnlockTime)
	if err != nil {
		return Objective{}, err
	}
	return Objective{
		ID:       r.ID,
		Owner:    Owner{ID: r.UserID, Name: r.UserName},
		Name:     r.Name,
		Map:      r.MapName,
		UnlockAt: unlockAt,
	}, nil
}
