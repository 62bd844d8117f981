/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/store"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle|light|dark]",
	Short:     "Show or change the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"toggle", "light", "dark"},
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		if len(args) == 0 {
			fmt.Printf("Theme: %s\n", a.theme())
			return
		}

		var next model.Theme
		var err error
		switch args[0] {
		case "toggle":
			next, err = store.ToggleTheme(a.kv, a.keys)
		default:
			next = model.Theme(args[0])
			err = store.SaveTheme(a.kv, a.keys, next)
		}
		if err != nil {
			log.Printf("❌ Failed to save theme: %v\n", err)
			return
		}

		label := "🌙 Dark Mode"
		if next == model.ThemeLight {
			label = "☀ Light Mode"
		}
		fmt.Println(headingStyle(next).Render(label))
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
