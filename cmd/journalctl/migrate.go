package main

import (
	"fmt"

	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/spf13/cobra"
)

// extensions are created before the tables that use them.
var extensions = []string{"citext", "pgcrypto"}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}

		for _, ext := range extensions {
			if err := db.Exec("CREATE EXTENSION IF NOT EXISTS " + ext).Error; err != nil {
				return fmt.Errorf("creating extension %s: %w", ext, err)
			}
		}

		if err := db.AutoMigrate(model.All()...); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}

		fmt.Println("Schema migrated successfully")
		return nil
	},
}
