package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Amoory-Elmihy-77/Baraka/internal/client"
	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage prayer-time tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest date first",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskDoneCmd = &cobra.Command{
	Use:   "complete ID",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var (
	taskPrayer   string
	taskCategory string
	taskDate     string
)

func init() {
	taskAddCmd.Flags().StringVar(&taskPrayer, "prayer", "", "Prayer time slot (Fajr, Dhuhr, Asr, Maghrib, Isha)")
	taskAddCmd.Flags().StringVar(&taskCategory, "category", "", "Eisenhower category (important_urgent, important_not_urgent, not_important_urgent, not_important_not_urgent)")
	taskAddCmd.Flags().StringVar(&taskDate, "date", "", "Task date as YYYY-MM-DD (defaults to today)")

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskDoneCmd, taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	tasks, err := c.Tasks(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tPRAYER\tCATEGORY\tDONE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), t.Date.Format("2006-01-02"), t.PrayerTime, t.Category, mark(t.IsCompleted), t.Title)
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	in := service.CreateTaskInput{
		Title:      args[0],
		PrayerTime: model.PrayerTime(taskPrayer),
		Category:   model.TaskCategory(taskCategory),
	}
	if taskDate != "" {
		d, err := time.Parse("2006-01-02", taskDate)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		in.Date = &d
	}

	task, err := c.CreateTask(context.Background(), in)
	if err != nil {
		return err
	}

	log.Info("task added", "id", shortID(task.ID), "title", task.Title)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveTaskID(c, args[0])
	if err != nil {
		return err
	}

	done := true
	task, err := c.UpdateTask(context.Background(), id, service.UpdateTaskInput{IsCompleted: &done})
	if err != nil {
		return err
	}

	log.Info("task completed", "title", task.Title)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveTaskID(c, args[0])
	if err != nil {
		return err
	}

	err = c.DeleteTask(context.Background(), id)
	if err != nil {
		return err
	}

	log.Info("task deleted", "id", shortID(id))
	return nil
}

// resolveTaskID accepts a full UUID or a unique short prefix of one.
func resolveTaskID(c *client.Client, arg string) (string, error) {
	tasks, err := c.Tasks(context.Background())
	if err != nil {
		return "", err
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return matchID(ids, arg)
}
