package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
	"github.com/Amoory-Elmihy-77/Baraka/internal/validation"
)

var (
	ErrTaskTitleRequired = validation.Error("title is required")
	ErrInvalidPrayerTime = validation.Error("prayerTime must be one of Fajr, Dhuhr, Asr, Maghrib, Isha")
	ErrInvalidCategory   = validation.Error("category must be one of important_urgent, important_not_urgent, not_important_urgent, not_important_not_urgent")
)

type CreateTaskInput struct {
	Title       string             `json:"title"`
	Date        *time.Time         `json:"date"`
	PrayerTime  model.PrayerTime   `json:"prayerTime"`
	Category    model.TaskCategory `json:"category"`
	IsCompleted bool               `json:"isCompleted"`
}

// UpdateTaskInput carries a partial update: only non-nil fields are
// applied.
type UpdateTaskInput struct {
	Title       *string             `json:"title"`
	Date        *time.Time          `json:"date"`
	PrayerTime  *model.PrayerTime   `json:"prayerTime"`
	Category    *model.TaskCategory `json:"category"`
	IsCompleted *bool               `json:"isCompleted"`
}

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(userID string, in CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTaskTitleRequired
	}
	if !in.PrayerTime.Valid() {
		return nil, ErrInvalidPrayerTime
	}
	if !in.Category.Valid() {
		return nil, ErrInvalidCategory
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}

	task := &model.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Date:        date,
		PrayerTime:  in.PrayerTime,
		Category:    in.Category,
		IsCompleted: in.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) ByID(userID, taskID string) (*model.Task, error) {
	return s.repo.ByID(userID, taskID)
}

func (s *TaskService) Tasks(userID string) ([]*model.Task, error) {
	return s.repo.Tasks(userID)
}

func (s *TaskService) Update(userID, taskID string, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.repo.ByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *in.Title
	}
	if in.Date != nil {
		task.Date = *in.Date
	}
	if in.PrayerTime != nil {
		if !in.PrayerTime.Valid() {
			return nil, ErrInvalidPrayerTime
		}
		task.PrayerTime = *in.PrayerTime
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		task.Category = *in.Category
	}
	if in.IsCompleted != nil {
		task.IsCompleted = *in.IsCompleted
	}

	task.UpdatedAt = time.Now()

	err = s.repo.Update(task)
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(userID, taskID string) error {
	return s.repo.Delete(userID, taskID)
}
