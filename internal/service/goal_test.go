package service

import (
	"errors"
	"testing"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
)

func testGoalService(t *testing.T) (*GoalService, string) {
	t.Helper()

	conn := testDB(t)
	return NewGoalService(repository.NewGoalRepository(conn)), seedUserID(t, conn)
}

func TestGoalProgressClamping(t *testing.T) {
	svc, userID := testGoalService(t)

	tests := []struct {
		name string
		in   int
		want int
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"in range", 42, 42},
		{"over", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal, err := svc.Create(userID, CreateGoalInput{
				Title:    "clamp",
				Type:     model.GoalTypeWeek,
				Progress: tt.in,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if goal.Progress != tt.want {
				t.Errorf("progress = %d, want %d", goal.Progress, tt.want)
			}
		})
	}
}

func TestGoalClearProgress(t *testing.T) {
	svc, userID := testGoalService(t)

	goal, err := svc.Create(userID, CreateGoalInput{
		Title:       "Finish tafsir series",
		Type:        model.GoalTypeYear,
		Progress:    80,
		IsCompleted: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	progress := 0
	completed := false
	cleared, err := svc.Update(userID, goal.ID, UpdateGoalInput{
		Progress:    &progress,
		IsCompleted: &completed,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if cleared.Progress != 0 || cleared.IsCompleted {
		t.Errorf("got progress=%d completed=%v, want 0/false", cleared.Progress, cleared.IsCompleted)
	}
	if cleared.Title != "Finish tafsir series" || cleared.Type != model.GoalTypeYear {
		t.Error("clearing progress must not touch title or type")
	}
}

func TestGoalCreateValidation(t *testing.T) {
	svc, userID := testGoalService(t)

	_, err := svc.Create(userID, CreateGoalInput{Type: model.GoalTypeWeek})
	if !errors.Is(err, ErrGoalTitleRequired) {
		t.Errorf("Create no title = %v, want ErrGoalTitleRequired", err)
	}

	_, err = svc.Create(userID, CreateGoalInput{Title: "x", Type: "decade"})
	if !errors.Is(err, ErrInvalidGoalType) {
		t.Errorf("Create bad type = %v, want ErrInvalidGoalType", err)
	}
}

func TestGoalUpdateMissing(t *testing.T) {
	svc, userID := testGoalService(t)

	progress := 10
	_, err := svc.Update(userID, "no-such-goal", UpdateGoalInput{Progress: &progress})
	if !errors.Is(err, repository.ErrGoalNotFound) {
		t.Errorf("Update missing = %v, want ErrGoalNotFound", err)
	}
}
