/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/store"
	"github.com/spf13/cobra"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize config.yaml",
	Run: func(cmd *cobra.Command, args []string) {

		configPath, err := store.GetConfigPath()
		if err != nil {
			log.Fatalf("❌ Failed to get config path: %v", err)
		}

		if _, err := os.Stat(configPath); err == nil && !initForce {
			fmt.Println("📄 Config file already exists at:", configPath)
			fmt.Println("   Use --force to overwrite it with the defaults.")
			return
		}

		// デフォルトの設定を YAML に変換して保存
		if err := store.SaveConfigFile(configPath, model.DefaultConfig()); err != nil {
			log.Fatalf("%v", err)
		}

		fmt.Println("✅ zentasks initialized successfully!")
		fmt.Println("📄 Config file created at:", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}
