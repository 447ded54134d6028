package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Amoory-Elmihy-77/Baraka/internal/db"
	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	// A single connection keeps the in-memory database alive
	conn.SetMaxOpenConns(1)

	err = db.RunMigrations(conn.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

func seedUser(t *testing.T, conn *sqlx.DB, email string) *model.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     "tester",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := NewUserRepository(conn).Create(user)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}
