package main

import (
	"github.com/spf13/cobra"

	"agrow/database"
	"agrow/pkg/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		logging.Log.WithField("driver", cfg.DBDriver).Info("[migrate] done")
		return nil
	},
}
