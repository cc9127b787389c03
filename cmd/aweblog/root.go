package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command for the aweblog CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aweblog",
		Short: "Aweblog - a minimal blogging service",
		Long: `Aweblog is a minimal blogging service with cookie-based sessions,
a JSON API, and server-rendered pages backed by PostgreSQL.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile()
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "optional .env file to load before reading the environment")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}

// loadEnvFile loads variables from the --env-file flag, or from ./.env when
// one exists. Variables already set in the environment win.
func loadEnvFile() error {
	if envFile != "" {
		return godotenv.Load(envFile)
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}
