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

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.CreateGoalInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goalService.Create(userID, in)
	if err != nil {
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to create goal", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		slog.Error("failed to fetch goals", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch goals")
		return
	}

	if goals == nil {
		goals = []*model.Goal{}
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		slog.Error("failed to fetch goal", "error", err, "user_id", userID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var in service.UpdateGoalInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goalService.Update(userID, goalID, in)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to update goal", "error", err, "user_id", userID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			writeError(w, http.StatusNotFound, "Goal not found")
			return
		}
		slog.Error("failed to delete goal", "error", err, "user_id", userID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}
