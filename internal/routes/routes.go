package routes

import (
	"net/http"

	"github.com/Amoory-Elmihy-77/Baraka/internal/app"
	"github.com/Amoory-Elmihy-77/Baraka/internal/handler"
	"github.com/Amoory-Elmihy-77/Baraka/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	task := handler.NewTaskHandler(app.TaskService)
	goal := handler.NewGoalHandler(app.GoalService)
	academic := handler.NewAcademicHandler(app.AcademicService)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /{$}", health.Health)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()
	protected := middleware.RequireAuth(app.AuthService)

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /api/auth/me", protected(auth.Me))

	// Tasks
	mux.HandleFunc("POST /api/tasks", protected(task.Create))
	mux.HandleFunc("GET /api/tasks", protected(task.List))
	mux.HandleFunc("GET /api/tasks/{id}", protected(task.Get))
	mux.HandleFunc("PUT /api/tasks/{id}", protected(task.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", protected(task.Delete))

	// Goals
	mux.HandleFunc("POST /api/goals", protected(goal.Create))
	mux.HandleFunc("GET /api/goals", protected(goal.List))
	mux.HandleFunc("GET /api/goals/{id}", protected(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", protected(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", protected(goal.Delete))

	// Courses
	mux.HandleFunc("POST /api/academics/courses", protected(academic.CreateCourse))
	mux.HandleFunc("GET /api/academics/courses", protected(academic.ListCourses))
	mux.HandleFunc("GET /api/academics/courses/{id}", protected(academic.GetCourse))
	mux.HandleFunc("PUT /api/academics/courses/{id}", protected(academic.UpdateCourse))
	mux.HandleFunc("DELETE /api/academics/courses/{id}", protected(academic.DeleteCourse))

	// Course Topics
	mux.HandleFunc("POST /api/academics/topics", protected(academic.CreateTopic))
	mux.HandleFunc("GET /api/academics/topics", protected(academic.ListTopics))
	mux.HandleFunc("GET /api/academics/topics/{id}", protected(academic.GetTopic))
	mux.HandleFunc("PUT /api/academics/topics/{id}", protected(academic.UpdateTopic))
	mux.HandleFunc("DELETE /api/academics/topics/{id}", protected(academic.DeleteTopic))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Recover,
		middleware.CORS(app.Cfg.CORSAllowedOrigin),
		middleware.RequestLogging,
	)
}
