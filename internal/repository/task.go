package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(task *model.Task) error
	ByID(userID, taskID string) (*model.Task, error)
	Tasks(userID string) ([]*model.Task, error)
	Update(task *model.Task) error
	Delete(userID, taskID string) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	query := `INSERT INTO tasks (id, user_id, title, date, prayer_time, category, is_completed, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		task.ID,
		task.UserID,
		task.Title,
		task.Date,
		task.PrayerTime,
		task.Category,
		task.IsCompleted,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return err
}

func (r *taskRepository) ByID(userID, taskID string) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1 AND user_id = $2`

	err := r.db.Get(task, query, taskID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}

	return task, err
}

func (r *taskRepository) Tasks(userID string) ([]*model.Task, error) {
	var tasks []*model.Task
	query := `SELECT * FROM tasks WHERE user_id = $1 ORDER BY date DESC, created_at DESC`

	err := r.db.Select(&tasks, query, userID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	query := `UPDATE tasks
	          SET title = $1, date = $2, prayer_time = $3, category = $4, is_completed = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		task.Title,
		task.Date,
		task.PrayerTime,
		task.Category,
		task.IsCompleted,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) Delete(userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, taskID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}
