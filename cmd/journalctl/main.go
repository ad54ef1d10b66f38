// Command journalctl runs operator tasks against the journal database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/config"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	cfg     *config.Config
	verbose bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedOrgCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(invitesCmd)
}

var rootCmd = &cobra.Command{
	Use:   "journalctl",
	Short: "Operator tasks for the family journal",
	Long:  `journalctl migrates the schema, seeds organizations and accounts, and reports on invites.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		cfg = config.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB connects through gorm with the configured DSN.
func openDB() (*gorm.DB, error) {
	logLevel := logger.Warn
	if verbose {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
