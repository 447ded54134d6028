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
	ErrGoalTitleRequired = validation.Error("title is required")
	ErrInvalidGoalType   = validation.Error("type must be one of week, month, year")
)

type CreateGoalInput struct {
	Title       string         `json:"title"`
	Type        model.GoalType `json:"type"`
	Progress    int            `json:"progress"`
	IsCompleted bool           `json:"isCompleted"`
}

type UpdateGoalInput struct {
	Title       *string         `json:"title"`
	Type        *model.GoalType `json:"type"`
	Progress    *int            `json:"progress"`
	IsCompleted *bool           `json:"isCompleted"`
}

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// clampProgress keeps progress inside the 0-100 percentage range.
func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (s *GoalService) Create(userID string, in CreateGoalInput) (*model.Goal, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrGoalTitleRequired
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidGoalType
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Type:        in.Type,
		Progress:    clampProgress(in.Progress),
		IsCompleted: in.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.repo.ByID(userID, goalID)
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

func (s *GoalService) Update(userID, goalID string, in UpdateGoalInput) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrGoalTitleRequired
		}
		goal.Title = *in.Title
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, ErrInvalidGoalType
		}
		goal.Type = *in.Type
	}
	if in.Progress != nil {
		goal.Progress = clampProgress(*in.Progress)
	}
	if in.IsCompleted != nil {
		goal.IsCompleted = *in.IsCompleted
	}

	goal.UpdatedAt = time.Now()

	err = s.repo.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	return s.repo.Delete(userID, goalID)
}
