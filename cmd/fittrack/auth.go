// ABOUTME: CLI commands for accounts: signup, login, logout and whoami.
// ABOUTME: One session is active per machine; logging out keeps all user data.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fittrack/internal/auth"
	"github.com/spf13/cobra"
)

var (
	authName     string
	authEmail    string
	authPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	Long: `Create a local account. The password must be at least 6 characters and
is stored as a bcrypt hash. If --password is omitted it is read from stdin.

EXAMPLES:

  fittrack signup --name Ada --email ada@example.com
  echo secret123 | fittrack signup --name Ada --email ada@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrPrompt(cmd.InOrStdin())
		if err != nil {
			return err
		}
		a, err := newAuth()
		if err != nil {
			return err
		}

		sess, err := a.SignUp(authName, authEmail, password)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}

		color.Green("✓ Welcome, %s! You are logged in as %s", sess.Name, sess.Email)
		fmt.Println("Next: fittrack profile set --age 30 --gender female --level beginner --time 30")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing account",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordOrPrompt(cmd.InOrStdin())
		if err != nil {
			return err
		}
		a, err := newAuth()
		if err != nil {
			return err
		}

		sess, err := a.Login(authEmail, password)
		switch {
		case errors.Is(err, auth.ErrNoAccount):
			return fmt.Errorf("no account for %s (run 'fittrack signup')", authEmail)
		case err != nil:
			return fmt.Errorf("login failed: %w", err)
		}

		color.Green("✓ Logged in as %s", sess.Name)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out (your data is kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuth()
		if err != nil {
			return err
		}
		if err := a.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		color.Green("✓ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := currentUser()
		if err != nil {
			return err
		}
		faint := color.New(color.Faint)
		fmt.Printf("%s <%s>\n", sess.Name, sess.Email)
		fmt.Printf("%s %s\n", faint.Sprint("user id:"), sess.UserID)
		fmt.Printf("%s %s\n", faint.Sprint("since:  "), sess.LoginDate.Format("2006-01-02 15:04"))
		return nil
	},
}

func passwordOrPrompt(in io.Reader) (string, error) {
	if authPassword != "" {
		return authPassword, nil
	}
	if env := os.Getenv("FITTRACK_PASSWORD"); env != "" {
		return env, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	signupCmd.Flags().StringVar(&authName, "name", "", "display name")
	signupCmd.Flags().StringVar(&authEmail, "email", "", "email address")
	signupCmd.Flags().StringVar(&authPassword, "password", "", "password (read from stdin if omitted)")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringVar(&authEmail, "email", "", "email address")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "password (read from stdin if omitted)")
	_ = loginCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)
}
