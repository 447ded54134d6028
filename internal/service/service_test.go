package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Amoory-Elmihy-77/Baraka/internal/db"
	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
)

const testJWTSecret = "test-secret-do-not-reuse"

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

func testAuthService(t *testing.T, conn *sqlx.DB) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(conn), testJWTSecret, time.Hour)
}

func registerUser(t *testing.T, auth *AuthService, email string) *model.User {
	t.Helper()

	user, err := auth.Register("tester", email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user
}

func seedUserID(t *testing.T, conn *sqlx.DB) string {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     "tester",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repository.NewUserRepository(conn).Create(user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user.ID
}
