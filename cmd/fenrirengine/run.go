package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fenrir/internal/config"
	"fenrir/internal/engine"
	"fenrir/internal/metrics"
	fnet "fenrir/internal/net"
)

func newRunCmd() *cobra.Command {
	var configPath string
	var address string
	var port int
	var pair string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the engine, accepting requests over TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			if port != 0 {
				cfg.Port = port
			}
			if pair != "" {
				cfg.Pair = pair
			}

			eng := engine.New(cfg.Pair)
			srv := fnet.New(cfg.Address, cfg.Port, eng)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go serveMetrics(cfg.MetricsPort)

			log.Info().Str("pair", cfg.Pair).Str("address", cfg.Address).Int("port", cfg.Port).Msg("starting fenrirengine")
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file")
	cmd.Flags().StringVar(&address, "address", "", "listen address (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&pair, "pair", "", "traded pair (overrides config)")
	return cmd
}

func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	log.Info().Int("port", port).Msg("serving metrics")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}
