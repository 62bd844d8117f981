/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Short:   "List categories with their task counts",
	Aliases: []string{"cat"},
	Run: func(cmd *cobra.Command, args []string) {
		a, tasks := openTasks()
		defer a.Close()

		all := tasks.Tasks()
		t := newTable(a.theme())
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			text.FgGreen.Sprintf("Category"), text.FgGreen.Sprintf("Tasks"), text.FgGreen.Sprintf("Done"),
		})
		for _, c := range model.Categories {
			inCategory, _ := tasks.FilterByCategory(string(c))
			done := 0
			for _, task := range inCategory {
				if task.Completed {
					done++
				}
			}
			t.AppendRow(table.Row{"📁 " + string(c), len(inCategory), done})
		}
		t.AppendFooter(table.Row{"All", len(all), fmt.Sprintf("%.0f%%", tasks.Progress())})
		t.Render()
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
}
