package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Amoory-Elmihy-77/Baraka/internal/ctxkeys"
	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
	"github.com/Amoory-Elmihy-77/Baraka/internal/validation"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.CreateTaskInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(userID, in)
	if err != nil {
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to create task", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	tasks, err := h.taskService.Tasks(userID)
	if err != nil {
		slog.Error("failed to fetch tasks", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}

	if tasks == nil {
		tasks = []*model.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	taskID := r.PathValue("id")

	task, err := h.taskService.ByID(userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to fetch task", "error", err, "user_id", userID, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	taskID := r.PathValue("id")

	var in service.UpdateTaskInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(userID, taskID, in)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to update task", "error", err, "user_id", userID, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	taskID := r.PathValue("id")

	err := h.taskService.Delete(userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		slog.Error("failed to delete task", "error", err, "user_id", userID, "task_id", taskID)
		writeError(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}
