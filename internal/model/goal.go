package model

import (
	"time"
)

// GoalType is the horizon a goal is tracked over.
type GoalType string

const (
	GoalTypeWeek  GoalType = "week"
	GoalTypeMonth GoalType = "month"
	GoalTypeYear  GoalType = "year"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeWeek, GoalTypeMonth, GoalTypeYear:
		return true
	}
	return false
}

type Goal struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user"`
	Title       string    `db:"title" json:"title"`
	Type        GoalType  `db:"type" json:"type"`
	Progress    int       `db:"progress" json:"progress"`
	IsCompleted bool      `db:"is_completed" json:"isCompleted"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
