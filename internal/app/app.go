package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Amoory-Elmihy-77/Baraka/internal/config"
	"github.com/Amoory-Elmihy-77/Baraka/internal/db"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	AuthService     *service.AuthService
	TaskService     *service.TaskService
	GoalService     *service.GoalService
	AcademicService *service.AcademicService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	taskRepository := repository.NewTaskRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	courseRepository := repository.NewCourseRepository(database)
	topicRepository := repository.NewCourseTopicRepository(database)

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	taskService := service.NewTaskService(taskRepository)
	goalService := service.NewGoalService(goalRepository)
	academicService := service.NewAcademicService(courseRepository, topicRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		AuthService:     authService,
		TaskService:     taskService,
		GoalService:     goalService,
		AcademicService: academicService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
