/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/store"
	"github.com/nakachan-ing/zentasks/internal/util"
	"github.com/spf13/cobra"
)

var addDeadline string
var addPriority string
var addCategory string
var addAlarm string
var listCategory string
var editText string
var editDeadline string
var editPriority string
var editCategory string
var editAlarm string
var taskFrom string
var taskTo string
var taskSearchQuery string
var taskSortPriority bool
var taskUseEditor bool
var taskPageSize int

// openTasks opens storage, checks the session and loads the task store.
func openTasks() (*app, *store.TaskStore) {
	a := mustOpenApp()
	if _, err := a.requireUser(); err != nil {
		log.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	tasks, err := a.taskStore()
	if err != nil {
		log.Printf("❌ Error loading tasks: %v\n", err)
		os.Exit(1)
	}
	return a, tasks
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, model.ErrInvalidInput)
	}
	return id, nil
}

func taskMarkdown(t model.Task) string {
	var md strings.Builder
	title := t.Text
	if t.Completed {
		title = "~~" + title + "~~"
	}
	fmt.Fprintf(&md, "# %s\n\n", title)
	fmt.Fprintf(&md, "- **ID:** %d\n", t.ID)
	fmt.Fprintf(&md, "- **Priority:** %s\n", t.Priority)
	fmt.Fprintf(&md, "- **Category:** 📁 %s\n", t.Category)
	if t.DeadlineTime != "" {
		fmt.Fprintf(&md, "- **Deadline:** ⏰ %s\n", displayDateTime(t.DeadlineTime))
	}
	if t.HasAlarm() {
		state := "pending"
		if t.AlarmTriggered {
			state = "fired"
		}
		fmt.Fprintf(&md, "- **Alarm:** %s (%s)\n", displayDateTime(t.AlarmTime), state)
	}
	fmt.Fprintf(&md, "- **Created:** %s\n", t.CreatedAt)
	return md.String()
}

// applyTaskEdit writes edit over before, then the alarm and completion state when
// they differ from before.
func applyTaskEdit(tasks *store.TaskStore, before model.Task, edit store.TaskEdit, alarmAt string, completed bool) error {
	if err := tasks.EditTask(before.ID, edit); err != nil {
		return err
	}
	if alarmAt != before.AlarmTime {
		if err := tasks.SetAlarm(before.ID, alarmAt); err != nil {
			return fmt.Errorf("failed to update alarm: %w", err)
		}
	}
	if completed != before.Completed {
		if err := tasks.ToggleComplete(before.ID); err != nil {
			return fmt.Errorf("failed to update completion: %w", err)
		}
	}
	return nil
}

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:     "task",
	Short:   "Manage tasks",
	Aliases: []string{"t"},
}

var addTaskCmd = &cobra.Command{
	Use:     "add [text]",
	Short:   "Add a new task",
	Args:    cobra.MinimumNArgs(1),
	Aliases: []string{"new", "n"},
	Run: func(cmd *cobra.Command, args []string) {
		a, tasks := openTasks()
		defer a.Close()

		task, err := tasks.AddTask(store.NewTask{
			Text:         strings.Join(args, " "),
			DeadlineTime: addDeadline,
			Priority:     addPriority,
			Category:     addCategory,
			AlarmTime:    addAlarm,
		})
		if err != nil {
			log.Printf("❌ Failed to add task: %v\n", err)
			return
		}

		fmt.Printf("✅ Task %d has been created successfully.\n", task.ID)
	},
}

var listTaskCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	Run: func(cmd *cobra.Command, args []string) {
		a, tasks := openTasks()
		defer a.Close()

		filteredTasks, err := tasks.FilterByCategory(listCategory)
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}
		filteredTasks = util.FullTextSearch(filteredTasks, taskSearchQuery)
		filteredTasks = util.FilterByDeadline(filteredTasks, taskFrom, taskTo)
		if taskSortPriority {
			filteredTasks = util.SortByPriority(filteredTasks)
		}

		theme := a.theme()
		fmt.Print(renderProgress("📝 My Tasks  📅 "+a.clock.Now().Format("2006-01-02"), tasks.Progress(), theme))
		fmt.Printf("Tasks: %v tasks shown\n", len(filteredTasks))

		if len(filteredTasks) == 0 {
			return
		}

		page := 0

		// `--limit -1` で全件表示
		pageSize := taskPageSize
		if pageSize <= 0 {
			pageSize = len(filteredTasks)
		}

		for {
			start := page * pageSize
			end := start + pageSize
			if end > len(filteredTasks) {
				end = len(filteredTasks)
			}

			t := newTable(theme)
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{
				text.FgGreen.Sprintf("ID"), text.FgGreen.Sprintf("%s", text.Bold.Sprintf("Task")),
				text.FgGreen.Sprintf("Deadline"),
				text.FgGreen.Sprintf("Priority"),
				text.FgGreen.Sprintf("Category"),
				text.FgGreen.Sprintf("Alarm"),
			})

			for _, task := range filteredTasks[start:end] {
				title := task.Text
				if task.Completed {
					title = text.CrossedOut.Sprintf("%s", task.Text)
				}
				t.AppendRow(table.Row{
					task.ID,
					title,
					displayDateTime(task.DeadlineTime),
					priorityColored(task.Priority),
					task.Category,
					alarmCell(task),
				})
			}

			t.Render()

			if end >= len(filteredTasks) {
				break
			}

			fmt.Print("\nPress Enter for the next page (q to quit): ")
			input, _ := stdinReader.ReadString('\n')
			if strings.TrimSpace(input) == "q" {
				break
			}
			page++
		}
	},
}

var showTaskCmd = &cobra.Command{
	Use:     "show [Task ID]",
	Short:   "Show task detail",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"s"},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}

		a, tasks := openTasks()
		defer a.Close()

		task, ok := tasks.Get(id)
		if !ok {
			log.Printf("❌ Task with ID %d not found", id)
			return
		}

		renderedContent, err := glamour.Render(taskMarkdown(task), string(a.theme()))
		if err != nil {
			log.Printf("⚠️ Failed to render markdown content: %v", err)
			fmt.Println(taskMarkdown(task))
			return
		}
		fmt.Println(renderedContent)
	},
}

var doneTaskCmd = &cobra.Command{
	Use:     "done [Task ID]",
	Short:   "Toggle a task between done and not done",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"toggle"},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}

		a, tasks := openTasks()
		defer a.Close()

		if err := tasks.ToggleComplete(id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return
			}
			log.Printf("❌ Failed to update task: %v\n", err)
			return
		}

		task, _ := tasks.Get(id)
		state := "not done"
		if task.Completed {
			state = "done"
		}
		fmt.Printf("✅ Task %d marked %s (%d%% completed)\n", id, state, int(tasks.Progress()+0.5))
	},
}

var editTaskCmd = &cobra.Command{
	Use:     "edit [Task ID]",
	Short:   "Edit a task's text, deadline, priority or category",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"e"},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}

		a, tasks := openTasks()
		defer a.Close()

		task, ok := tasks.Get(id)
		if !ok {
			log.Printf("❌ Task with ID %d not found", id)
			return
		}

		edit := store.TaskEdit{
			Text:         task.Text,
			DeadlineTime: task.DeadlineTime,
			Priority:     string(task.Priority),
			Category:     string(task.Category),
		}
		alarmAt := task.AlarmTime
		completed := task.Completed

		if taskUseEditor {
			frontMatter, body, err := util.EditTaskDocument(task, *a.config)
			if err != nil {
				log.Printf("❌ Failed to edit task: %v\n", err)
				return
			}
			edit = store.TaskEdit{
				Text:         body,
				DeadlineTime: frontMatter.Deadline,
				Priority:     frontMatter.Priority,
				Category:     frontMatter.Category,
			}
			alarmAt = frontMatter.Alarm
			completed = frontMatter.Completed
		} else {
			if cmd.Flags().Changed("text") {
				edit.Text = editText
			}
			if cmd.Flags().Changed("deadline") {
				edit.DeadlineTime = editDeadline
			}
			if cmd.Flags().Changed("priority") {
				edit.Priority = editPriority
			}
			if cmd.Flags().Changed("category") {
				edit.Category = editCategory
			}
			if cmd.Flags().Changed("alarm") {
				alarmAt = editAlarm
			}
		}

		if err := applyTaskEdit(tasks, task, edit, alarmAt, completed); err != nil {
			log.Printf("❌ Failed to edit task: %v\n", err)
			return
		}

		color.New(color.FgGreen).Printf("✅ Task %d updated\n", id)
	},
}

var alarmTaskCmd = &cobra.Command{
	Use:   "alarm [Task ID] [time|none]",
	Short: "Set or clear a task's alarm",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}
		alarmAt := args[1]
		if strings.EqualFold(alarmAt, "none") {
			alarmAt = ""
		}

		a, tasks := openTasks()
		defer a.Close()

		if err := tasks.SetAlarm(id, alarmAt); err != nil {
			log.Printf("❌ Failed to set alarm: %v\n", err)
			return
		}

		task, _ := tasks.Get(id)
		switch {
		case !task.HasAlarm():
			fmt.Printf("✅ Alarm cleared for task %d\n", id)
		case task.AlarmTriggered:
			fmt.Printf("⚠️ Alarm for task %d set to %s but it has already fired and will not fire again (set alarm.rearm_on_edit to change this)\n",
				id, displayDateTime(task.AlarmTime))
		default:
			fmt.Printf("✅ Alarm for task %d set to %s\n", id, displayDateTime(task.AlarmTime))
		}
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:     "remove [Task ID]",
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}

		a, tasks := openTasks()
		defer a.Close()

		tasks.DeleteTask(id)
		fmt.Printf("✅ Task %d deleted\n", id)
	},
}

var progressTaskCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the share of completed tasks",
	Run: func(cmd *cobra.Command, args []string) {
		a, tasks := openTasks()
		defer a.Close()

		fmt.Print(renderProgress("📝 Task progress", tasks.Progress(), a.theme()))
	},
}

func init() {
	taskCmd.AddCommand(addTaskCmd)
	taskCmd.AddCommand(listTaskCmd)
	taskCmd.AddCommand(showTaskCmd)
	taskCmd.AddCommand(doneTaskCmd)
	taskCmd.AddCommand(editTaskCmd)
	taskCmd.AddCommand(alarmTaskCmd)
	taskCmd.AddCommand(deleteTaskCmd)
	taskCmd.AddCommand(progressTaskCmd)
	rootCmd.AddCommand(taskCmd)

	addTaskCmd.Flags().StringVarP(&addDeadline, "deadline", "d", "", "Deadline (YYYY-MM-DD HH:MM)")
	addTaskCmd.Flags().StringVarP(&addPriority, "priority", "p", "Medium", "Priority: High, Medium or Low")
	addTaskCmd.Flags().StringVarP(&addCategory, "category", "c", "Personal", "Category: Personal, Work, Study, Health, Finance or Other")
	addTaskCmd.Flags().StringVarP(&addAlarm, "alarm", "a", "", "Alarm time (YYYY-MM-DD HH:MM)")

	listTaskCmd.Flags().StringVarP(&listCategory, "category", "c", "All", "Filter by category")
	listTaskCmd.Flags().StringVarP(&taskSearchQuery, "search", "q", "", "Search by text")
	listTaskCmd.Flags().StringVar(&taskFrom, "from", "", "Filter by deadline from (YYYY-MM-DD)")
	listTaskCmd.Flags().StringVar(&taskTo, "to", "", "Filter by deadline to (YYYY-MM-DD)")
	listTaskCmd.Flags().BoolVar(&taskSortPriority, "by-priority", false, "Sort High to Low")
	listTaskCmd.Flags().IntVar(&taskPageSize, "limit", 20, "Set the number of tasks to display per page (-1 for all)")

	editTaskCmd.Flags().StringVar(&editText, "text", "", "New text")
	editTaskCmd.Flags().StringVarP(&editDeadline, "deadline", "d", "", "New deadline (empty clears it)")
	editTaskCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "New priority")
	editTaskCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editTaskCmd.Flags().StringVarP(&editAlarm, "alarm", "a", "", "New alarm time (empty clears it)")
	editTaskCmd.Flags().BoolVarP(&taskUseEditor, "editor", "e", false, "Edit the task as a document in $EDITOR")
}
