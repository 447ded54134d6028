package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Amoory-Elmihy-77/Baraka/internal/app"
	"github.com/Amoory-Elmihy-77/Baraka/internal/config"
	"github.com/Amoory-Elmihy-77/Baraka/internal/db"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
	"github.com/Amoory-Elmihy-77/Baraka/internal/routes"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

// newTestServer stands up the whole API against an in-memory database.
func newTestServer(t *testing.T) *httptest.Server {
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

	userRepo := repository.NewUserRepository(conn)
	a := &app.App{
		Cfg: &config.Config{
			AppEnv:            "test",
			JWTSecret:         "handler-test-secret",
			JWTExpiry:         time.Hour,
			CORSAllowedOrigin: "*",
		},
		DB:          conn,
		AuthService: service.NewAuthService(userRepo, "handler-test-secret", time.Hour),
		TaskService: service.NewTaskService(repository.NewTaskRepository(conn)),
		GoalService: service.NewGoalService(repository.NewGoalRepository(conn)),
		AcademicService: service.NewAcademicService(
			repository.NewCourseRepository(conn),
			repository.NewCourseTopicRepository(conn),
		),
	}

	server := httptest.NewServer(routes.SetupRoutes(a))
	t.Cleanup(func() {
		server.Close()
		conn.Close()
	})
	return server
}

// doJSON issues a request with an optional bearer token and decodes
// the JSON response into out (when out is non-nil).
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

var userSeq int

// registerTestUser creates an account and returns its token.
func registerTestUser(t *testing.T, server *httptest.Server) string {
	t.Helper()

	userSeq++
	var resp struct {
		Token string `json:"token"`
	}
	status := doJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "tester",
		"email":    fmt.Sprintf("user%d@example.com", userSeq),
		"password": "sturdy-pass-phrase",
	}, &resp)

	if status != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", status)
	}
	if resp.Token == "" {
		t.Fatal("register returned no token")
	}
	return resp.Token
}

func message(t *testing.T, body map[string]any) string {
	t.Helper()

	msg, _ := body["message"].(string)
	return msg
}

func TestHealthCheck(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	status := doJSON(t, server, http.MethodGet, "/", "", nil, &body)

	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if body["status"] != "OK" {
		t.Errorf("status field = %q, want OK", body["status"])
	}
	if body["service"] != "Task Management API" {
		t.Errorf("service field = %q, want Task Management API", body["service"])
	}
}

func TestRegisterResponseShape(t *testing.T) {
	server := newTestServer(t)

	var resp map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "shape",
		"email":    "shape@example.com",
		"password": "sturdy-pass-phrase",
	}, &resp)

	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if _, ok := resp["token"].(string); !ok {
		t.Error("response has no top-level token")
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatal("response has no top-level user")
	}
	if user["email"] != "shape@example.com" {
		t.Errorf("user.email = %v, want shape@example.com", user["email"])
	}
	// The hash must never leak
	for _, key := range []string{"password", "passwordHash", "password_hash"} {
		if _, found := user[key]; found {
			t.Errorf("user response leaks %q", key)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	server := newTestServer(t)

	payload := map[string]string{
		"username": "dup",
		"email":    "dup@example.com",
		"password": "sturdy-pass-phrase",
	}
	if status := doJSON(t, server, http.MethodPost, "/api/auth/register", "", payload, nil); status != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", status)
	}

	var body map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/auth/register", "", payload, &body)
	if status != http.StatusBadRequest {
		t.Errorf("second register status = %d, want 400", status)
	}
	if message(t, body) == "" {
		t.Error("error body has no message")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	server := newTestServer(t)
	registerTestUser(t, server)

	var body map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    fmt.Sprintf("user%d@example.com", userSeq),
		"password": "not-the-password",
	}, &body)

	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if message(t, body) != "Invalid email or password" {
		t.Errorf("message = %q, want %q", message(t, body), "Invalid email or password")
	}
}

func TestProtectedRoutesRejectBadTokens(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{"missing token", "", "Not authorized, token missing"},
		{"garbage token", "garbage", "Not authorized, token invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			status := doJSON(t, server, http.MethodGet, "/api/tasks", tt.token, nil, &body)

			if status != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", status)
			}
			if message(t, body) != tt.wantMsg {
				t.Errorf("message = %q, want %q", message(t, body), tt.wantMsg)
			}
		})
	}
}

func TestTaskLifecycle(t *testing.T) {
	server := newTestServer(t)
	token := registerTestUser(t, server)

	// Empty list comes back as [], not null
	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(bytes.TrimSpace(raw)) != "[]" {
		t.Errorf("empty list body = %s, want []", raw)
	}

	var task map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":      "Read after Fajr",
		"prayerTime": "Fajr",
		"category":   "important_not_urgent",
	}, &task)

	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	if task["isCompleted"] != false {
		t.Errorf("isCompleted = %v, want false", task["isCompleted"])
	}
	if task["date"] == nil {
		t.Error("omitted date was not defaulted")
	}

	id := task["id"].(string)

	done := map[string]any{"isCompleted": true}
	var updated map[string]any
	if status := doJSON(t, server, http.MethodPut, "/api/tasks/"+id, token, done, &updated); status != http.StatusOK {
		t.Fatalf("update status = %d, want 200", status)
	}
	if updated["isCompleted"] != true {
		t.Errorf("isCompleted after update = %v, want true", updated["isCompleted"])
	}
	if updated["title"] != "Read after Fajr" {
		t.Errorf("title after partial update = %v, want unchanged", updated["title"])
	}

	var deleted map[string]any
	if status := doJSON(t, server, http.MethodDelete, "/api/tasks/"+id, token, nil, &deleted); status != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", status)
	}
	if message(t, deleted) != "Task deleted" {
		t.Errorf("delete message = %q, want %q", message(t, deleted), "Task deleted")
	}

	if status := doJSON(t, server, http.MethodGet, "/api/tasks/"+id, token, nil, nil); status != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", status)
	}
}

func TestTaskValidationErrors(t *testing.T) {
	server := newTestServer(t)
	token := registerTestUser(t, server)

	var body map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":      "bad slot",
		"prayerTime": "Midnight",
		"category":   "important_urgent",
	}, &body)

	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if message(t, body) == "" {
		t.Error("error body has no message")
	}
}

func TestCrossUserIsolation(t *testing.T) {
	server := newTestServer(t)
	owner := registerTestUser(t, server)
	other := registerTestUser(t, server)

	var task map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/tasks", owner, map[string]any{
		"title":      "private",
		"prayerTime": "Isha",
		"category":   "important_urgent",
	}, &task)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	id := task["id"].(string)

	// Another user sees 404, indistinguishable from nonexistence
	if status := doJSON(t, server, http.MethodGet, "/api/tasks/"+id, other, nil, nil); status != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", status)
	}
	update := map[string]any{"title": "stolen"}
	if status := doJSON(t, server, http.MethodPut, "/api/tasks/"+id, other, update, nil); status != http.StatusNotFound {
		t.Errorf("cross-user update status = %d, want 404", status)
	}
	if status := doJSON(t, server, http.MethodDelete, "/api/tasks/"+id, other, nil, nil); status != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", status)
	}

	// Owner is unaffected
	if status := doJSON(t, server, http.MethodGet, "/api/tasks/"+id, owner, nil, nil); status != http.StatusOK {
		t.Errorf("owner get status = %d, want 200", status)
	}
}

func TestGoalClearProgress(t *testing.T) {
	server := newTestServer(t)
	token := registerTestUser(t, server)

	var goal map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/goals", token, map[string]any{
		"title":       "Hifz juz 30",
		"type":        "month",
		"progress":    80,
		"isCompleted": true,
	}, &goal)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	id := goal["id"].(string)

	var cleared map[string]any
	status = doJSON(t, server, http.MethodPut, "/api/goals/"+id, token, map[string]any{
		"progress":    0,
		"isCompleted": false,
	}, &cleared)
	if status != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", status)
	}

	if cleared["progress"] != float64(0) {
		t.Errorf("progress = %v, want 0", cleared["progress"])
	}
	if cleared["isCompleted"] != false {
		t.Errorf("isCompleted = %v, want false", cleared["isCompleted"])
	}
	if cleared["title"] != "Hifz juz 30" {
		t.Errorf("title = %v, want unchanged", cleared["title"])
	}
}

func TestAcademicsCascadeAndFilter(t *testing.T) {
	server := newTestServer(t)
	token := registerTestUser(t, server)

	var course map[string]any
	status := doJSON(t, server, http.MethodPost, "/api/academics/courses", token, map[string]any{
		"courseName": "Usul al-Fiqh",
		"schedule":   []map[string]string{{"day": "Tuesday", "time": "16:00"}},
	}, &course)
	if status != http.StatusCreated {
		t.Fatalf("create course status = %d, want 201", status)
	}
	courseID := course["id"].(string)

	var keep map[string]any
	if status := doJSON(t, server, http.MethodPost, "/api/academics/courses", token, map[string]any{"courseName": "Arabic"}, &keep); status != http.StatusCreated {
		t.Fatalf("create second course status = %d, want 201", status)
	}
	keepID := keep["id"].(string)

	for week := 1; week <= 2; week++ {
		status := doJSON(t, server, http.MethodPost, "/api/academics/topics", token, map[string]any{
			"course":     courseID,
			"weekNumber": week,
			"topicTitle": fmt.Sprintf("week %d", week),
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("create topic status = %d, want 201", status)
		}
	}
	if status := doJSON(t, server, http.MethodPost, "/api/academics/topics", token, map[string]any{
		"course":     keepID,
		"weekNumber": 1,
		"topicTitle": "nahw basics",
	}, nil); status != http.StatusCreated {
		t.Fatalf("create kept topic status = %d, want 201", status)
	}

	// Filter narrows to one course
	var filtered []map[string]any
	if status := doJSON(t, server, http.MethodGet, "/api/academics/topics?course="+courseID, token, nil, &filtered); status != http.StatusOK {
		t.Fatalf("filtered list status = %d, want 200", status)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered topics = %d, want 2", len(filtered))
	}

	// Topics referencing an unknown course are rejected
	var bad map[string]any
	if status := doJSON(t, server, http.MethodPost, "/api/academics/topics", token, map[string]any{
		"course":     "no-such-course",
		"weekNumber": 1,
		"topicTitle": "orphan",
	}, &bad); status != http.StatusBadRequest {
		t.Errorf("orphan topic status = %d, want 400", status)
	}

	// Deleting the course takes its topics with it
	var deleted map[string]any
	if status := doJSON(t, server, http.MethodDelete, "/api/academics/courses/"+courseID, token, nil, &deleted); status != http.StatusOK {
		t.Fatalf("delete course status = %d, want 200", status)
	}
	if message(t, deleted) != "Course deleted" {
		t.Errorf("delete message = %q, want %q", message(t, deleted), "Course deleted")
	}

	var remaining []map[string]any
	if status := doJSON(t, server, http.MethodGet, "/api/academics/topics", token, nil, &remaining); status != http.StatusOK {
		t.Fatalf("list topics status = %d, want 200", status)
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining topics = %d, want 1", len(remaining))
	}
	if remaining[0]["topicTitle"] != "nahw basics" {
		t.Errorf("surviving topic = %v, want nahw basics", remaining[0]["topicTitle"])
	}
}

func TestAuthRateLimit(t *testing.T) {
	server := newTestServer(t)

	payload := map[string]string{
		"email":    "ratelimit@example.com",
		"password": "whatever-pass",
	}

	// The limiter keys on client IP; pin one so other tests stay clean
	var last int
	for i := 0; i < 11; i++ {
		data, _ := json.Marshal(payload)
		req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/auth/login", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")

		resp, err := server.Client().Do(req)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		resp.Body.Close()
		last = resp.StatusCode
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("11th auth request status = %d, want 429", last)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/tasks", nil)
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("Allow-Headers missing")
	}
}
