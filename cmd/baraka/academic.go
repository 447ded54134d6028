package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Amoory-Elmihy-77/Baraka/internal/client"
	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Manage courses",
}

var courseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses, newest first",
	RunE:  runCourseList,
}

var courseAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseAdd,
}

var courseRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a course and all its topics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCourseRm,
}

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage course topics",
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics by week number",
	RunE:  runTopicList,
}

var topicAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a topic to a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicAdd,
}

var topicDoneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark a topic completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicDone,
}

var topicRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicRm,
}

var (
	courseSchedule []string
	topicCourse    string
	topicWeek      int
)

func init() {
	courseAddCmd.Flags().StringSliceVar(&courseSchedule, "schedule", nil, "Schedule entries as DAY@TIME, e.g. Monday@10:00")

	topicListCmd.Flags().StringVar(&topicCourse, "course", "", "Filter by course ID")
	topicAddCmd.Flags().StringVar(&topicCourse, "course", "", "Course ID the topic belongs to")
	topicAddCmd.Flags().IntVar(&topicWeek, "week", 1, "Week number")
	topicAddCmd.MarkFlagRequired("course")

	courseCmd.AddCommand(courseListCmd, courseAddCmd, courseRmCmd)
	topicCmd.AddCommand(topicListCmd, topicAddCmd, topicDoneCmd, topicRmCmd)
	rootCmd.AddCommand(courseCmd, topicCmd)
}

func runCourseList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	courses, err := c.Courses(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSCHEDULE")
	for _, course := range courses {
		entries := make([]string, len(course.Schedule))
		for i, s := range course.Schedule {
			entries[i] = s.Day + "@" + s.Time
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(course.ID), course.CourseName, strings.Join(entries, ", "))
	}
	return w.Flush()
}

func runCourseAdd(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	var schedule model.ScheduleList
	for _, entry := range courseSchedule {
		day, at, ok := strings.Cut(entry, "@")
		if !ok {
			return fmt.Errorf("invalid schedule entry %q, want DAY@TIME", entry)
		}
		schedule = append(schedule, model.ScheduleEntry{Day: day, Time: at})
	}

	course, err := c.CreateCourse(context.Background(), service.CreateCourseInput{
		CourseName: args[0],
		Schedule:   schedule,
	})
	if err != nil {
		return err
	}

	log.Info("course added", "id", shortID(course.ID), "name", course.CourseName)
	return nil
}

func runCourseRm(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveCourseID(c, args[0])
	if err != nil {
		return err
	}

	err = c.DeleteCourse(context.Background(), id)
	if err != nil {
		return err
	}

	log.Info("course deleted", "id", shortID(id))
	return nil
}

func runTopicList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	courseID := topicCourse
	if courseID != "" {
		courseID, err = resolveCourseID(c, courseID)
		if err != nil {
			return err
		}
	}

	topics, err := c.Topics(context.Background(), courseID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWEEK\tCOURSE\tDONE\tTITLE")
	for _, t := range topics {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			shortID(t.ID), t.WeekNumber, shortID(t.CourseID), mark(t.IsCompleted), t.TopicTitle)
	}
	return w.Flush()
}

func runTopicAdd(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	courseID, err := resolveCourseID(c, topicCourse)
	if err != nil {
		return err
	}

	topic, err := c.CreateTopic(context.Background(), service.CreateTopicInput{
		Course:     courseID,
		WeekNumber: topicWeek,
		TopicTitle: args[0],
	})
	if err != nil {
		return err
	}

	log.Info("topic added", "id", shortID(topic.ID), "week", topic.WeekNumber)
	return nil
}

func runTopicDone(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveTopicID(c, args[0])
	if err != nil {
		return err
	}

	done := true
	topic, err := c.UpdateTopic(context.Background(), id, service.UpdateTopicInput{IsCompleted: &done})
	if err != nil {
		return err
	}

	log.Info("topic completed", "title", topic.TopicTitle)
	return nil
}

func runTopicRm(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveTopicID(c, args[0])
	if err != nil {
		return err
	}

	err = c.DeleteTopic(context.Background(), id)
	if err != nil {
		return err
	}

	log.Info("topic deleted", "id", shortID(id))
	return nil
}

func resolveCourseID(c *client.Client, arg string) (string, error) {
	courses, err := c.Courses(context.Background())
	if err != nil {
		return "", err
	}

	ids := make([]string, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}
	return matchID(ids, arg)
}

func resolveTopicID(c *client.Client, arg string) (string, error) {
	topics, err := c.Topics(context.Background(), "")
	if err != nil {
		return "", err
	}

	ids := make([]string, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}
	return matchID(ids, arg)
}
