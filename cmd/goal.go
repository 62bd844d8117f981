/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/store"
	"github.com/nakachan-ing/zentasks/internal/util"
	"github.com/spf13/cobra"
)

var goalMonth string
var goalAll bool

func openGoals() (*app, *store.GoalStore) {
	a := mustOpenApp()
	if _, err := a.requireUser(); err != nil {
		log.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	goals, err := a.goalStore()
	if err != nil {
		log.Printf("❌ Error loading goals: %v\n", err)
		os.Exit(1)
	}
	return a, goals
}

// goalCmd represents the goal command
var goalCmd = &cobra.Command{
	Use:     "goal",
	Short:   "Manage monthly goals",
	Aliases: []string{"g"},
}

var addGoalCmd = &cobra.Command{
	Use:     "add [text]",
	Short:   "Add a goal for this month",
	Args:    cobra.MinimumNArgs(1),
	Aliases: []string{"new", "n"},
	Run: func(cmd *cobra.Command, args []string) {
		a, goals := openGoals()
		defer a.Close()

		goal, err := goals.AddGoal(strings.Join(args, " "))
		if err != nil {
			log.Printf("❌ Failed to add goal: %v\n", err)
			return
		}
		fmt.Printf("✅ Goal %d has been created successfully.\n", goal.ID)
	},
}

var listGoalCmd = &cobra.Command{
	Use:     "list",
	Short:   "List this month's goals",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		a, goals := openGoals()
		defer a.Close()

		now := a.clock.Now()
		var shown []model.Goal
		label := "🎯 All goals"
		if goalAll {
			shown = goals.Goals()
		} else {
			year, month, err := util.ParseMonth(goalMonth, now)
			if err != nil {
				log.Printf("❌ Invalid month %q, expected YYYY-MM\n", goalMonth)
				return
			}
			shown = goals.GoalsForMonth(year, month, now.Location())
			label = fmt.Sprintf("🎯 Goals for %s %d", month, year)
		}

		theme := a.theme()
		fmt.Print(renderProgress(label, store.GoalProgress(shown), theme))
		if len(shown) == 0 {
			fmt.Println("No goals yet.")
			return
		}

		t := newTable(theme)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("ID"), text.FgGreen.Sprintf("Goal"), text.FgGreen.Sprintf("Created"),
		})
		for _, g := range shown {
			title := g.Text
			if g.Completed {
				title = text.CrossedOut.Sprintf("%s", g.Text)
			}
			t.AppendRow(table.Row{g.ID, title, g.CreatedAt})
		}
		t.Render()
	},
}

var doneGoalCmd = &cobra.Command{
	Use:     "done [Goal ID]",
	Short:   "Toggle a goal between done and not done",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"toggle"},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}

		a, goals := openGoals()
		defer a.Close()

		if err := goals.ToggleComplete(id); err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				log.Printf("❌ Failed to update goal: %v\n", err)
			}
			return
		}
		fmt.Printf("✅ Goal %d updated (%d%% completed)\n", id, int(goals.Progress()+0.5))
	},
}

var deleteGoalCmd = &cobra.Command{
	Use:     "remove [Goal ID]",
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}

		a, goals := openGoals()
		defer a.Close()

		goals.DeleteGoal(id)
		fmt.Printf("✅ Goal %d deleted\n", id)
	},
}

var progressGoalCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the share of completed goals",
	Run: func(cmd *cobra.Command, args []string) {
		a, goals := openGoals()
		defer a.Close()

		fmt.Print(renderProgress("🎯 Goal progress", goals.Progress(), a.theme()))
	},
}

func init() {
	goalCmd.AddCommand(addGoalCmd)
	goalCmd.AddCommand(listGoalCmd)
	goalCmd.AddCommand(doneGoalCmd)
	goalCmd.AddCommand(deleteGoalCmd)
	goalCmd.AddCommand(progressGoalCmd)
	rootCmd.AddCommand(goalCmd)

	listGoalCmd.Flags().StringVarP(&goalMonth, "month", "m", "", "Month to show (YYYY-MM, default this month)")
	listGoalCmd.Flags().BoolVar(&goalAll, "all", false, "Show goals of every month")
}
