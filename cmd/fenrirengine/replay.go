package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fenrir/internal/engine"
	"fenrir/internal/journal"
)

func newReplayCmd() *cobra.Command {
	var journalPath string
	var pair string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed a recorded journal through the engine and print the resulting trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			if journalPath == "" {
				return fmt.Errorf("--journal is required")
			}

			f, err := os.Open(journalPath)
			if err != nil {
				return err
			}
			defer f.Close()

			eng := engine.New(pair)
			reader := journal.NewReader(f)

			var processed int
			for {
				req, err := reader.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}

				switch r := req.(type) {
				case engine.CreateRequest:
					if err := eng.Create(r); err != nil {
						log.Warn().Err(err).Uint64("order_id", uint64(r.OrderID)).Msg("rejected create")
					}
				case engine.CancelRequest:
					if err := eng.Cancel(r); err != nil {
						log.Warn().Err(err).Uint64("order_id", uint64(r.OrderID)).Msg("rejected cancel")
					}
				default:
					return fmt.Errorf("unexpected request type %T", req)
				}
				processed++

				for _, trade := range eng.DrainTrades() {
					fmt.Println(trade.String())
				}
			}

			log.Info().Int("requests", processed).Msg("replay complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", "", "path to a newline-delimited JSON journal")
	cmd.Flags().StringVar(&pair, "pair", "ETH/USDT", "pair to replay against")
	return cmd
}
