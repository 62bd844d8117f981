/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/nakachan-ing/zentasks/internal/alarm"
	"github.com/nakachan-ing/zentasks/internal/notify"
	"github.com/nakachan-ing/zentasks/internal/util"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run alarms in the foreground until interrupted",
	Long: `Watch checks your tasks every second. When a task's alarm time arrives it
shows a desktop notification and plays a sound, once per alarm.

Only one watcher may run per data directory. Logging out stops the watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, tasks := openTasks()
		defer a.Close()

		if err := os.MkdirAll(a.config.DataDir, 0755); err != nil {
			return fmt.Errorf("❌ Failed to create data directory: %w", err)
		}
		lockPath := filepath.Join(a.config.DataDir, a.config.Namespace+".watch.lock")
		lock, err := util.CreateLockFile(lockPath, a.config.Namespace)
		if errors.Is(err, util.ErrLocked) {
			return fmt.Errorf("❌ Another watcher is running: %w", err)
		} else if err != nil {
			return err
		}
		defer func() {
			if err := util.RemoveLockFile(lockPath, lock); err != nil {
				log.Printf("⚠️ Failed to remove lock file: %v", err)
			}
		}()

		var dispatcher notify.Dispatcher = notify.Disabled{}
		if a.config.Notifications.Enable {
			dispatcher = notify.NewDesktop(
				a.config.Notifications.AppName,
				a.config.Notifications.Icon,
				notify.ParsePermission(a.config.Notifications.Permission),
			)
		}

		interval := time.Duration(a.config.Alarm.IntervalSeconds) * time.Second
		engine := alarm.NewEngine(tasks, dispatcher, notify.NewExecPlayer(os.Stderr), a.clock, alarm.Options{
			Interval: interval,
			Sound:    a.config.Alarm.Sound,
			Volume:   a.config.Alarm.Volume,
			Reload:   true,
		}, log.Default())

		unsubscribe := engine.Subscribe(func(ev alarm.Event) {
			color.New(color.FgHiYellow, color.Bold).Printf("⏰ %s  %s\n", ev.FiredAt.Format("15:04"), ev.Task.Text)
			if !ev.Notified {
				fmt.Println("   (desktop notification not delivered)")
			}
		})
		defer unsubscribe()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// a logout from another shell tears the watcher down
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			ticker := a.clock.Ticker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, err := a.requireUser(); err != nil {
						log.Printf("👋 Session ended, stopping watcher")
						cancel()
						return
					}
				}
			}
		}()

		fmt.Printf("👀 Watching %d tasks (Ctrl+C to stop)\n", tasks.Len())
		engine.Tick()
		return engine.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
