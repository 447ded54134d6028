package model

import (
	"time"
)

type CourseTopic struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user"`
	CourseID    string    `db:"course_id" json:"course"`
	WeekNumber  int       `db:"week_number" json:"weekNumber"`
	TopicTitle  string    `db:"topic_title" json:"topicTitle"`
	IsCompleted bool      `db:"is_completed" json:"isCompleted"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
