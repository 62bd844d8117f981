/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/session"
	"github.com/nakachan-ing/zentasks/internal/store"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zentasks",
	Short: "A calm personal task and goal tracker",
	Long: `ZenTasks keeps your tasks and monthly goals on this machine.

Log in, add tasks with a deadline, priority, category and alarm, track monthly
goals, and run "zentasks watch" to get a notification and a sound when an alarm is due.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// app bundles what every command needs: config, storage and the session.
type app struct {
	config  *model.Config
	kv      store.KV
	keys    store.Keys
	clock   clock.Clock
	session *session.Manager
	closeKV func() error
}

func openApp() (*app, error) {
	config, err := store.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("❌ Error loading config: %w", err)
	}

	kv, closeKV, err := store.Open(*config)
	if err != nil {
		return nil, fmt.Errorf("❌ Error opening storage: %w", err)
	}

	keys := store.NewKeys(config.Namespace)
	clk := clock.New()
	return &app{
		config:  config,
		kv:      kv,
		keys:    keys,
		clock:   clk,
		session: session.NewManager(kv, keys, clk, log.Default()),
		closeKV: closeKV,
	}, nil
}

// mustOpenApp is openApp for Run funcs: it logs and exits on failure.
func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		log.Printf("%v\n", err)
		os.Exit(1)
	}
	return a
}

func (a *app) Close() {
	if err := a.closeKV(); err != nil {
		log.Printf("⚠️ Failed to close storage: %v", err)
	}
}

var errNotLoggedIn = errors.New("not logged in, run `zentasks login` first")

func (a *app) requireUser() (*model.User, error) {
	user, ok := a.session.RestoreSession()
	if !ok {
		return nil, errNotLoggedIn
	}
	return user, nil
}

func (a *app) taskStore() (*store.TaskStore, error) {
	return store.NewTaskStore(a.kv, a.keys, a.clock, log.Default(),
		store.WithRearm(a.config.Alarm.RearmOnEdit))
}

func (a *app) goalStore() (*store.GoalStore, error) {
	return store.NewGoalStore(a.kv, a.keys, a.clock, log.Default())
}

func (a *app) theme() model.Theme {
	return store.LoadTheme(a.kv, a.keys)
}

func init() {
	log.SetFlags(0)
}
