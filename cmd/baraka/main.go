// Package main implements the baraka CLI, a terminal client for the
// Baraka API.
package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Amoory-Elmihy-77/Baraka/internal/client"
)

func main() {
	log.SetReportTimestamp(false)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "baraka",
	Short: "Baraka - prayer-time tasks, goals, and courses from the terminal",
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, meCmd)
}

// cliConfig is the optional TOML config file; BARAKA_URL wins over it.
type cliConfig struct {
	BaseURL string `toml:"base_url"`
}

func baseURL() string {
	if v := os.Getenv("BARAKA_URL"); v != "" {
		return v
	}

	dir, err := os.UserConfigDir()
	if err == nil {
		var cfg cliConfig
		_, err = toml.DecodeFile(filepath.Join(dir, "baraka", "config.toml"), &cfg)
		if err == nil && cfg.BaseURL != "" {
			return cfg.BaseURL
		}
	}

	return "http://localhost:5001"
}

func newClient() (*client.Client, error) {
	path, err := client.DefaultSessionPath()
	if err != nil {
		return nil, err
	}

	return client.New(baseURL(), client.NewSessionStore(path))
}

var (
	registerUsername string
	registerEmail    string
	registerPassword string
	loginEmail       string
	loginPassword    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and start a session",
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and start a session",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged-in user",
	RunE:  runMe,
}

func init() {
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	user, err := c.Register(context.Background(), registerUsername, registerEmail, registerPassword)
	if err != nil {
		return err
	}

	log.Info("registered", "username", user.Username, "email", user.Email)
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	user, err := c.Login(context.Background(), loginEmail, loginPassword)
	if err != nil {
		return err
	}

	log.Info("logged in", "username", user.Username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	err = c.Logout()
	if err != nil {
		return err
	}

	log.Info("logged out")
	return nil
}

func runMe(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	user, err := c.Me(context.Background())
	if err != nil {
		return err
	}

	log.Info("logged in as", "username", user.Username, "email", user.Email)
	return nil
}
