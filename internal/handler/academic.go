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

// AcademicHandler serves both courses and their weekly topics, the
// two halves of the academic page.
type AcademicHandler struct {
	academicService *service.AcademicService
}

func NewAcademicHandler(academicService *service.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicService: academicService}
}

func (h *AcademicHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.CreateCourseInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.academicService.CreateCourse(userID, in)
	if err != nil {
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to create course", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to create course")
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

func (h *AcademicHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	courses, err := h.academicService.Courses(userID)
	if err != nil {
		slog.Error("failed to fetch courses", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch courses")
		return
	}

	if courses == nil {
		courses = []*model.Course{}
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *AcademicHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	courseID := r.PathValue("id")

	course, err := h.academicService.CourseByID(userID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return
		}
		slog.Error("failed to fetch course", "error", err, "user_id", userID, "course_id", courseID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch course")
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *AcademicHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	courseID := r.PathValue("id")

	var in service.UpdateCourseInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.academicService.UpdateCourse(userID, courseID, in)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return
		}
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to update course", "error", err, "user_id", userID, "course_id", courseID)
		writeError(w, http.StatusInternalServerError, "Failed to update course")
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *AcademicHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	courseID := r.PathValue("id")

	err := h.academicService.DeleteCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "Course not found")
			return
		}
		slog.Error("failed to delete course", "error", err, "user_id", userID, "course_id", courseID)
		writeError(w, http.StatusInternalServerError, "Failed to delete course")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted"})
}

func (h *AcademicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.CreateTopicInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.academicService.CreateTopic(userID, in)
	if err != nil {
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to create course topic", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to create course topic")
		return
	}

	writeJSON(w, http.StatusCreated, topic)
}

// ListTopics honors the optional ?course=<id> equality filter.
func (h *AcademicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	courseID := r.URL.Query().Get("course")

	topics, err := h.academicService.Topics(userID, courseID)
	if err != nil {
		slog.Error("failed to fetch course topics", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch course topics")
		return
	}

	if topics == nil {
		topics = []*model.CourseTopic{}
	}

	writeJSON(w, http.StatusOK, topics)
}

func (h *AcademicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	topicID := r.PathValue("id")

	topic, err := h.academicService.TopicByID(userID, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseTopicNotFound) {
			writeError(w, http.StatusNotFound, "Course topic not found")
			return
		}
		slog.Error("failed to fetch course topic", "error", err, "user_id", userID, "topic_id", topicID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch course topic")
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

func (h *AcademicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	topicID := r.PathValue("id")

	var in service.UpdateTopicInput
	err := decodeJSON(r, &in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topic, err := h.academicService.UpdateTopic(userID, topicID, in)
	if err != nil {
		if errors.Is(err, repository.ErrCourseTopicNotFound) {
			writeError(w, http.StatusNotFound, "Course topic not found")
			return
		}
		var ve validation.Error
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		slog.Error("failed to update course topic", "error", err, "user_id", userID, "topic_id", topicID)
		writeError(w, http.StatusInternalServerError, "Failed to update course topic")
		return
	}

	writeJSON(w, http.StatusOK, topic)
}

func (h *AcademicHandler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	topicID := r.PathValue("id")

	err := h.academicService.DeleteTopic(userID, topicID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseTopicNotFound) {
			writeError(w, http.StatusNotFound, "Course topic not found")
			return
		}
		slog.Error("failed to delete course topic", "error", err, "user_id", userID, "topic_id", topicID)
		writeError(w, http.StatusInternalServerError, "Failed to delete course topic")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Course topic deleted"})
}
