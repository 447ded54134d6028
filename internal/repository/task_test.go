package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
)

func seedTask(t *testing.T, conn *sqlx.DB, userID, title string, date, createdAt time.Time) *model.Task {
	t.Helper()

	task := &model.Task{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      title,
		Date:       date,
		PrayerTime: model.PrayerFajr,
		Category:   model.CategoryImportantUrgent,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	err := NewTaskRepository(conn).Create(task)
	if err != nil {
		t.Fatalf("failed to seed task %q: %v", title, err)
	}
	return task
}

func TestTaskRepositoryCreateAndFetch(t *testing.T) {
	conn := testDB(t)
	repo := NewTaskRepository(conn)
	user := seedUser(t, conn, "tasks@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	created := seedTask(t, conn, user.ID, "Read Quran", now, now)

	got, err := repo.ByID(user.ID, created.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}

	if got.Title != "Read Quran" {
		t.Errorf("title = %q, want %q", got.Title, "Read Quran")
	}
	if got.PrayerTime != model.PrayerFajr {
		t.Errorf("prayerTime = %q, want %q", got.PrayerTime, model.PrayerFajr)
	}
	if got.Category != model.CategoryImportantUrgent {
		t.Errorf("category = %q, want %q", got.Category, model.CategoryImportantUrgent)
	}
	if got.IsCompleted {
		t.Error("new task should not be completed")
	}
	if !got.Date.Equal(now) {
		t.Errorf("date = %v, want %v", got.Date, now)
	}
}

func TestTaskRepositoryOrdering(t *testing.T) {
	conn := testDB(t)
	repo := NewTaskRepository(conn)
	user := seedUser(t, conn, "order@example.com")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedTask(t, conn, user.ID, "oldest", base.AddDate(0, 0, -2), base)
	seedTask(t, conn, user.ID, "newest", base, base.Add(2*time.Minute))
	seedTask(t, conn, user.ID, "same day, earlier insert", base, base.Add(time.Minute))

	tasks, err := repo.Tasks(user.ID)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}

	want := []string{"newest", "same day, earlier insert", "oldest"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d].Title = %q, want %q", i, tasks[i].Title, title)
		}
	}
}

func TestTaskRepositoryOwnershipIsolation(t *testing.T) {
	conn := testDB(t)
	repo := NewTaskRepository(conn)

	owner := seedUser(t, conn, "owner@example.com")
	other := seedUser(t, conn, "other@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	task := seedTask(t, conn, owner.ID, "private", now, now)

	if _, err := repo.ByID(other.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("ByID as other user = %v, want ErrTaskNotFound", err)
	}

	if err := repo.Delete(other.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete as other user = %v, want ErrTaskNotFound", err)
	}

	task.Title = "hijacked"
	task.UserID = other.ID
	if err := repo.Update(task); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Update as other user = %v, want ErrTaskNotFound", err)
	}

	// Still reachable and unchanged for the owner
	got, err := repo.ByID(owner.ID, task.ID)
	if err != nil {
		t.Fatalf("ByID as owner: %v", err)
	}
	if got.Title != "private" {
		t.Errorf("title = %q, want %q", got.Title, "private")
	}
}

func TestTaskRepositoryDeleteTwice(t *testing.T) {
	conn := testDB(t)
	repo := NewTaskRepository(conn)
	user := seedUser(t, conn, "delete@example.com")

	now := time.Now().UTC().Truncate(time.Second)
	task := seedTask(t, conn, user.ID, "ephemeral", now, now)

	if err := repo.Delete(user.ID, task.ID); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := repo.Delete(user.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second Delete = %v, want ErrTaskNotFound", err)
	}
}
