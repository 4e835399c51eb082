package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blogem/campus-admin/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenDB(appConfig.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		pending, err := database.PendingMigrations(db)
		if err != nil {
			return err
		}

		if err := database.RunMigrations(db, logger); err != nil {
			return err
		}

		logger.Info("migrations complete", zap.Strings("applied", pending))
		if len(pending) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		}
		for _, version := range pending {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
		}
		return nil
	},
}
