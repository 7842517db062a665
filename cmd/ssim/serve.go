package main

import (
	"fmt"

	"github.com/cwbudde/ssim/internal/server"
	"github.com/cwbudde/ssim/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	dataDir   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP comparison service",
	Long: `Starts an HTTP server that accepts comparison jobs and reports their
results. With --data, completed comparisons are persisted as reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var reportStore store.Store
		if dataDir != "" {
			fsStore, err := store.NewFSStore(dataDir)
			if err != nil {
				return fmt.Errorf("failed to open report store: %w", err)
			}
			reportStore = fsStore
		}

		srv := server.NewServer(serveAddr, reportStore)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&dataDir, "data", "", "Directory for persisted reports (empty = no persistence)")
	rootCmd.AddCommand(serveCmd)
}
