/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginPassword string
var signupPassword string
var signupConfirm string
var resetYes bool

// stdinReader is the single buffered reader over stdin; every prompt reads from it.
var stdinReader = bufio.NewReader(os.Stdin)

// promptSecret reads a line without echo when stdin is a terminal.
func promptSecret(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		return string(b), err
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func greet(user model.User) {
	color.New(color.FgGreen, color.Bold).Printf("✅ Welcome, %s!\n", user.Username)
	fmt.Printf("Member since %s\n", user.MemberSince().Format("2006-01-02 15:04"))
}

var signupCmd = &cobra.Command{
	Use:   "signup [username]",
	Short: "Create a local profile and log in",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		var err error
		if signupPassword == "" {
			if signupPassword, err = promptSecret("Password: "); err != nil {
				log.Printf("❌ Failed to read password: %v\n", err)
				return
			}
		}
		if signupConfirm == "" {
			if signupConfirm, err = promptSecret("Confirm password: "); err != nil {
				log.Printf("❌ Failed to read password: %v\n", err)
				return
			}
		}

		user, err := a.session.Signup(args[0], signupPassword, signupConfirm)
		if errors.Is(err, model.ErrPasswordMismatch) {
			log.Printf("❌ Passwords do not match, try again.\n")
			return
		} else if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}
		greet(user)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		var err error
		if loginPassword == "" {
			if loginPassword, err = promptSecret("Password: "); err != nil {
				log.Printf("❌ Failed to read password: %v\n", err)
				return
			}
		}

		user, err := a.session.Login(args[0], loginPassword)
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}
		greet(user)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out, keeping tasks and goals",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		if err := a.session.Logout(); err != nil {
			log.Printf("%v\n", err)
			return
		}
		fmt.Println("👋 Logged out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()

		user, err := a.requireUser()
		if err != nil {
			log.Printf("❌ %v\n", err)
			return
		}
		fmt.Printf("👤 %s (member since %s)\n", user.Username, user.MemberSince().Format("2006-01-02"))
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the session, tasks, goals and theme",
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes {
			fmt.Print("This deletes all ZenTasks data. Continue? [y/N]: ")
			input, _ := stdinReader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(input)) != "y" {
				fmt.Println("Aborted.")
				return
			}
		}

		a := mustOpenApp()
		defer a.Close()

		if err := a.session.ClearAllData(); err != nil {
			log.Printf("%v\n", err)
			return
		}
		fmt.Println("✅ All data cleared")
	},
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd, resetCmd)
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupConfirm, "confirm", "", "Password confirmation (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}
