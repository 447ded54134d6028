package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
)

var ErrCourseTopicNotFound = errors.New("course topic not found")

type CourseTopicRepository interface {
	Create(topic *model.CourseTopic) error
	ByID(userID, topicID string) (*model.CourseTopic, error)
	Topics(userID, courseID string) ([]*model.CourseTopic, error)
	Update(topic *model.CourseTopic) error
	Delete(userID, topicID string) error
}

type courseTopicRepository struct {
	db *sqlx.DB
}

func NewCourseTopicRepository(db *sqlx.DB) CourseTopicRepository {
	return &courseTopicRepository{db: db}
}

func (r *courseTopicRepository) Create(topic *model.CourseTopic) error {
	query := `INSERT INTO course_topics (id, user_id, course_id, week_number, topic_title, is_completed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		topic.ID,
		topic.UserID,
		topic.CourseID,
		topic.WeekNumber,
		topic.TopicTitle,
		topic.IsCompleted,
		topic.CreatedAt,
		topic.UpdatedAt,
	)

	return err
}

func (r *courseTopicRepository) ByID(userID, topicID string) (*model.CourseTopic, error) {
	topic := &model.CourseTopic{}
	query := `SELECT * FROM course_topics WHERE id = $1 AND user_id = $2`

	err := r.db.Get(topic, query, topicID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCourseTopicNotFound
	}

	return topic, err
}

// Topics returns the user's topics, syllabus order. An empty courseID
// returns topics across all courses.
func (r *courseTopicRepository) Topics(userID, courseID string) ([]*model.CourseTopic, error) {
	var topics []*model.CourseTopic

	query := `SELECT * FROM course_topics WHERE user_id = $1 ORDER BY week_number ASC, created_at DESC`
	args := []any{userID}
	if courseID != "" {
		query = `SELECT * FROM course_topics WHERE user_id = $1 AND course_id = $2 ORDER BY week_number ASC, created_at DESC`
		args = append(args, courseID)
	}

	err := r.db.Select(&topics, query, args...)
	if err != nil {
		return nil, err
	}

	return topics, nil
}

func (r *courseTopicRepository) Update(topic *model.CourseTopic) error {
	query := `UPDATE course_topics
	          SET course_id = $1, week_number = $2, topic_title = $3, is_completed = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		topic.CourseID,
		topic.WeekNumber,
		topic.TopicTitle,
		topic.IsCompleted,
		topic.UpdatedAt,
		topic.ID,
		topic.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCourseTopicNotFound
	}

	return nil
}

func (r *courseTopicRepository) Delete(userID, topicID string) error {
	query := `DELETE FROM course_topics WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, topicID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCourseTopicNotFound
	}

	return nil
}
