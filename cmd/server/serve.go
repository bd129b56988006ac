package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/sozercan/listing-lens/internal/analyzer"
	"github.com/sozercan/listing-lens/internal/backend"
	"github.com/sozercan/listing-lens/internal/metrics"
	"github.com/sozercan/listing-lens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web front-end",
	Long:  `Starts the HTTP server with the analysis page, the JSON API and the metrics endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetString("port")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := backend.NewClient(cfg.Analysis)
		if err != nil {
			return fmt.Errorf("failed to create analysis client: %w", err)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)

		srv, err := server.New(*cfg, analyzer.New(client, m), m, reg)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides config)")
}
