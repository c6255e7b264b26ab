package main

import (
	"context"
	"os/signal"
	"syscall"

	"paintingstore/internal/server"

	"github.com/spf13/cobra"
)

// api serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, gdb, log, err := bootDB()
		if err != nil {
			return err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			defer func() { _ = sqlDB.Close() }()
		}

		catalogCache, closeCache := newCatalogCache(ctx, cfg, log)
		defer closeCache()

		e := server.New(server.Deps{
			Config: cfg,
			DB:     gdb,
			Cache:  catalogCache,
			Log:    log,
		})

		addr := ":" + cfg.Port
		return server.Start(ctx, e, addr, log)
	},
}
