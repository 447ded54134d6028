// Package client is the consuming side of the API: it holds the
// session, attaches the bearer token to every request, and drops the
// session the moment the server rejects it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

// ErrUnauthorized means the server rejected the token. The persisted
// session has already been cleared when this is returned.
var ErrUnauthorized = errors.New("not authorized")

// sessionTTL mirrors the server's default token expiry.
const sessionTTL = 168 * time.Hour

// APIError is any non-2xx response other than a 401.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *SessionStore
	session    *Session
}

// New builds a client against baseURL and loads any persisted session
// from the store.
func New(baseURL string, store *SessionStore) (*Client, error) {
	session, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Fixed timeout, no retry: a slow call just fails.
			Timeout: 10 * time.Second,
		},
		store:   store,
		session: session,
	}, nil
}

// LoggedIn reports whether the client holds a usable session.
func (c *Client) LoggedIn() bool {
	return c.session != nil && !c.session.Expired()
}

func (c *Client) clearSession() {
	c.session = nil
	_ = c.store.Clear()
}

func (c *Client) saveSession(token string) error {
	session := &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	c.session = session
	return c.store.Save(session)
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	err = c.saveSession(resp.Token)
	if err != nil {
		return nil, err
	}

	return resp.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	err = c.saveSession(resp.Token)
	if err != nil {
		return nil, err
	}

	return resp.User, nil
}

// Logout tears the session down locally. Tokens are self-contained so
// there is nothing to revoke server-side.
func (c *Client) Logout() error {
	c.session = nil
	return c.store.Clear()
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateTask(ctx context.Context, in service.CreateTaskInput) (*model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", in, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Tasks(ctx context.Context) ([]*model.Task, error) {
	var tasks []*model.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Task(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in service.UpdateTaskInput) (*model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), in, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateGoal(ctx context.Context, in service.CreateGoalInput) (*model.Goal, error) {
	var goal model.Goal
	err := c.do(ctx, http.MethodPost, "/api/goals", in, &goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (c *Client) Goals(ctx context.Context) ([]*model.Goal, error) {
	var goals []*model.Goal
	err := c.do(ctx, http.MethodGet, "/api/goals", nil, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (c *Client) Goal(ctx context.Context, id string) (*model.Goal, error) {
	var goal model.Goal
	err := c.do(ctx, http.MethodGet, "/api/goals/"+url.PathEscape(id), nil, &goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id string, in service.UpdateGoalInput) (*model.Goal, error) {
	var goal model.Goal
	err := c.do(ctx, http.MethodPut, "/api/goals/"+url.PathEscape(id), in, &goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ClearGoalProgress resets a goal to zero progress, not completed.
func (c *Client) ClearGoalProgress(ctx context.Context, id string) (*model.Goal, error) {
	progress := 0
	completed := false
	return c.UpdateGoal(ctx, id, service.UpdateGoalInput{
		Progress:    &progress,
		IsCompleted: &completed,
	})
}

func (c *Client) DeleteGoal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/goals/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateCourse(ctx context.Context, in service.CreateCourseInput) (*model.Course, error) {
	var course model.Course
	err := c.do(ctx, http.MethodPost, "/api/academics/courses", in, &course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) Courses(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	err := c.do(ctx, http.MethodGet, "/api/academics/courses", nil, &courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) Course(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := c.do(ctx, http.MethodGet, "/api/academics/courses/"+url.PathEscape(id), nil, &course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, in service.UpdateCourseInput) (*model.Course, error) {
	var course model.Course
	err := c.do(ctx, http.MethodPut, "/api/academics/courses/"+url.PathEscape(id), in, &course)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse also removes the course's topics; the server cascades.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/academics/courses/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateTopic(ctx context.Context, in service.CreateTopicInput) (*model.CourseTopic, error) {
	var topic model.CourseTopic
	err := c.do(ctx, http.MethodPost, "/api/academics/topics", in, &topic)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// Topics lists course topics; courseID "" lists them all.
func (c *Client) Topics(ctx context.Context, courseID string) ([]*model.CourseTopic, error) {
	path := "/api/academics/topics"
	if courseID != "" {
		path += "?course=" + url.QueryEscape(courseID)
	}

	var topics []*model.CourseTopic
	err := c.do(ctx, http.MethodGet, path, nil, &topics)
	if err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *Client) Topic(ctx context.Context, id string) (*model.CourseTopic, error) {
	var topic model.CourseTopic
	err := c.do(ctx, http.MethodGet, "/api/academics/topics/"+url.PathEscape(id), nil, &topic)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *Client) UpdateTopic(ctx context.Context, id string, in service.UpdateTopicInput) (*model.CourseTopic, error) {
	var topic model.CourseTopic
	err := c.do(ctx, http.MethodPut, "/api/academics/topics/"+url.PathEscape(id), in, &topic)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *Client) DeleteTopic(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/academics/topics/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession()
		return ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "unexpected error"}
		var errBody struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		err = json.NewDecoder(resp.Body).Decode(out)
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
