package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/repository"
	"github.com/Amoory-Elmihy-77/Baraka/internal/validation"
)

var (
	ErrCourseNameRequired = validation.Error("courseName is required")
	ErrTopicTitleRequired = validation.Error("topicTitle is required")
	ErrInvalidWeekNumber  = validation.Error("weekNumber must be at least 1")
	ErrCourseRequired     = validation.Error("course does not exist")
)

type CreateCourseInput struct {
	CourseName string             `json:"courseName"`
	Schedule   model.ScheduleList `json:"schedule"`
}

type UpdateCourseInput struct {
	CourseName *string             `json:"courseName"`
	Schedule   *model.ScheduleList `json:"schedule"`
}

type CreateTopicInput struct {
	Course      string `json:"course"`
	WeekNumber  int    `json:"weekNumber"`
	TopicTitle  string `json:"topicTitle"`
	IsCompleted bool   `json:"isCompleted"`
}

type UpdateTopicInput struct {
	Course      *string `json:"course"`
	WeekNumber  *int    `json:"weekNumber"`
	TopicTitle  *string `json:"topicTitle"`
	IsCompleted *bool   `json:"isCompleted"`
}

// AcademicService manages courses and the weekly topics that belong to
// them. A topic always references a course owned by the same user.
type AcademicService struct {
	courseRepo repository.CourseRepository
	topicRepo  repository.CourseTopicRepository
}

func NewAcademicService(courseRepo repository.CourseRepository, topicRepo repository.CourseTopicRepository) *AcademicService {
	return &AcademicService{
		courseRepo: courseRepo,
		topicRepo:  topicRepo,
	}
}

func (s *AcademicService) CreateCourse(userID string, in CreateCourseInput) (*model.Course, error) {
	if strings.TrimSpace(in.CourseName) == "" {
		return nil, ErrCourseNameRequired
	}

	schedule := in.Schedule
	if schedule == nil {
		schedule = model.ScheduleList{}
	}

	now := time.Now()
	course := &model.Course{
		ID:         uuid.New().String(),
		UserID:     userID,
		CourseName: in.CourseName,
		Schedule:   schedule,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.courseRepo.Create(course)
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

func (s *AcademicService) CourseByID(userID, courseID string) (*model.Course, error) {
	return s.courseRepo.ByID(userID, courseID)
}

func (s *AcademicService) Courses(userID string) ([]*model.Course, error) {
	return s.courseRepo.Courses(userID)
}

func (s *AcademicService) UpdateCourse(userID, courseID string, in UpdateCourseInput) (*model.Course, error) {
	course, err := s.courseRepo.ByID(userID, courseID)
	if err != nil {
		return nil, err
	}

	if in.CourseName != nil {
		if strings.TrimSpace(*in.CourseName) == "" {
			return nil, ErrCourseNameRequired
		}
		course.CourseName = *in.CourseName
	}
	if in.Schedule != nil {
		course.Schedule = *in.Schedule
	}

	course.UpdatedAt = time.Now()

	err = s.courseRepo.Update(course)
	if err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes the course and all of its topics.
func (s *AcademicService) DeleteCourse(userID, courseID string) error {
	return s.courseRepo.Delete(userID, courseID)
}

func (s *AcademicService) CreateTopic(userID string, in CreateTopicInput) (*model.CourseTopic, error) {
	if strings.TrimSpace(in.TopicTitle) == "" {
		return nil, ErrTopicTitleRequired
	}
	if in.WeekNumber < 1 {
		return nil, ErrInvalidWeekNumber
	}

	// The referenced course must exist and belong to the same user.
	_, err := s.courseRepo.ByID(userID, in.Course)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, ErrCourseRequired
		}
		return nil, fmt.Errorf("failed to check course: %w", err)
	}

	now := time.Now()
	topic := &model.CourseTopic{
		ID:          uuid.New().String(),
		UserID:      userID,
		CourseID:    in.Course,
		WeekNumber:  in.WeekNumber,
		TopicTitle:  in.TopicTitle,
		IsCompleted: in.IsCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.topicRepo.Create(topic)
	if err != nil {
		return nil, fmt.Errorf("failed to create course topic: %w", err)
	}

	return topic, nil
}

func (s *AcademicService) TopicByID(userID, topicID string) (*model.CourseTopic, error) {
	return s.topicRepo.ByID(userID, topicID)
}

// Topics lists the user's topics, optionally narrowed to one course.
func (s *AcademicService) Topics(userID, courseID string) ([]*model.CourseTopic, error) {
	return s.topicRepo.Topics(userID, courseID)
}

func (s *AcademicService) UpdateTopic(userID, topicID string, in UpdateTopicInput) (*model.CourseTopic, error) {
	topic, err := s.topicRepo.ByID(userID, topicID)
	if err != nil {
		return nil, err
	}

	if in.TopicTitle != nil {
		if strings.TrimSpace(*in.TopicTitle) == "" {
			return nil, ErrTopicTitleRequired
		}
		topic.TopicTitle = *in.TopicTitle
	}
	if in.WeekNumber != nil {
		if *in.WeekNumber < 1 {
			return nil, ErrInvalidWeekNumber
		}
		topic.WeekNumber = *in.WeekNumber
	}
	if in.Course != nil {
		_, err := s.courseRepo.ByID(userID, *in.Course)
		if err != nil {
			if errors.Is(err, repository.ErrCourseNotFound) {
				return nil, ErrCourseRequired
			}
			return nil, fmt.Errorf("failed to check course: %w", err)
		}
		topic.CourseID = *in.Course
	}
	if in.IsCompleted != nil {
		topic.IsCompleted = *in.IsCompleted
	}

	topic.UpdatedAt = time.Now()

	err = s.topicRepo.Update(topic)
	if err != nil {
		return nil, err
	}

	return topic, nil
}

func (s *AcademicService) DeleteTopic(userID, topicID string) error {
	return s.topicRepo.Delete(userID, topicID)
}
