package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Amoory-Elmihy-77/Baraka/internal/client"
	"github.com/Amoory-Elmihy-77/Baraka/internal/model"
	"github.com/Amoory-Elmihy-77/Baraka/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage weekly, monthly, and yearly goals",
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals, newest first",
	RunE:  runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalAdd,
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress ID PERCENT",
	Short: "Set a goal's progress (0-100)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalProgress,
}

var goalClearCmd = &cobra.Command{
	Use:   "clear ID",
	Short: "Reset a goal's progress to zero",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalClear,
}

var goalRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRm,
}

var goalType string

func init() {
	goalAddCmd.Flags().StringVar(&goalType, "type", "week", "Goal horizon (week, month, year)")

	goalCmd.AddCommand(goalListCmd, goalAddCmd, goalProgressCmd, goalClearCmd, goalRmCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	goals, err := c.Goals(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPROGRESS\tDONE\tTITLE")
	for _, g := range goals {
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%s\t%s\n",
			shortID(g.ID), g.Type, g.Progress, mark(g.IsCompleted), g.Title)
	}
	return w.Flush()
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	goal, err := c.CreateGoal(context.Background(), service.CreateGoalInput{
		Title: args[0],
		Type:  model.GoalType(goalType),
	})
	if err != nil {
		return err
	}

	log.Info("goal added", "id", shortID(goal.ID), "title", goal.Title)
	return nil
}

func runGoalProgress(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveGoalID(c, args[0])
	if err != nil {
		return err
	}

	var progress int
	_, err = fmt.Sscanf(args[1], "%d", &progress)
	if err != nil {
		return fmt.Errorf("parse progress: %w", err)
	}

	goal, err := c.UpdateGoal(context.Background(), id, service.UpdateGoalInput{Progress: &progress})
	if err != nil {
		return err
	}

	log.Info("progress updated", "title", goal.Title, "progress", goal.Progress)
	return nil
}

func runGoalClear(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveGoalID(c, args[0])
	if err != nil {
		return err
	}

	goal, err := c.ClearGoalProgress(context.Background(), id)
	if err != nil {
		return err
	}

	log.Info("progress cleared", "title", goal.Title)
	return nil
}

func runGoalRm(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveGoalID(c, args[0])
	if err != nil {
		return err
	}

	err = c.DeleteGoal(context.Background(), id)
	if err != nil {
		return err
	}

	log.Info("goal deleted", "id", shortID(id))
	return nil
}

func resolveGoalID(c *client.Client, arg string) (string, error) {
	goals, err := c.Goals(context.Background())
	if err != nil {
		return "", err
	}

	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return matchID(ids, arg)
}
