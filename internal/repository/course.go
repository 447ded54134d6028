package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseRepository interface {
	Create(course *model.Course) error
	ByID(userID, courseID string) (*model.Course, error)
	Courses(userID string) ([]*model.Course, error)
	Update(course *model.Course) error
	Delete(userID, courseID string) error
}

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	query := `INSERT INTO courses (id, user_id, course_name, schedule, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		course.ID,
		course.UserID,
		course.CourseName,
		course.Schedule,
		course.CreatedAt,
		course.UpdatedAt,
	)

	return err
}

func (r *courseRepository) ByID(userID, courseID string) (*model.Course, error) {
	course := &model.Course{}
	query := `SELECT * FROM courses WHERE id = $1 AND user_id = $2`

	err := r.db.Get(course, query, courseID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCourseNotFound
	}

	return course, err
}

func (r *courseRepository) Courses(userID string) ([]*model.Course, error) {
	var courses []*model.Course
	query := `SELECT * FROM courses WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&courses, query, userID)
	if err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) Update(course *model.Course) error {
	query := `UPDATE courses
	          SET course_name = $1, schedule = $2, updated_at = $3
	          WHERE id = $4 AND user_id = $5`

	result, err := r.db.Exec(query,
		course.CourseName,
		course.Schedule,
		course.UpdatedAt,
		course.ID,
		course.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// Delete removes the course and every topic that references it in a
// single transaction, so a course can never leave orphaned topics.
func (r *courseRepository) Delete(userID, courseID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM course_topics WHERE course_id = $1 AND user_id = $2`, courseID, userID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM courses WHERE id = $1 AND user_id = $2`, courseID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCourseNotFound
	}

	return tx.Commit()
}
