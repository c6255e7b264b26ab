package main

import (
	"paintingstore/internal/infra/db"

	"github.com/spf13/cobra"
)

// api migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables for all models",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gdb, log, err := bootDB()
		if err != nil {
			return err
		}
		log.Info("running migrations")
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		log.Info("migrations done")
		return nil
	},
}

var seedDestroy bool

// api seed [--destroy]
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample catalog (or wipe all data with --destroy)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, gdb, log, err := bootDB()
		if err != nil {
			return err
		}
		if err := db.Migrate(gdb); err != nil {
			return err
		}

		if seedDestroy {
			if err := db.Destroy(cmd.Context(), gdb); err != nil {
				return err
			}
			log.Warn("all data destroyed")
			return nil
		}

		n, err := db.Seed(cmd.Context(), gdb)
		if err != nil {
			return err
		}
		log.WithField("inserted", n).Info("seed done")
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedDestroy, "destroy", false, "delete orders, paintings, users and audit logs")
}
