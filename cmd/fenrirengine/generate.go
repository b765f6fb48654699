package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"fenrir/internal/journal"
)

func newGenerateCmd() *cobra.Command {
	var pair string
	var count int
	var seed int64
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic, seeded journal of CREATE/CANCEL requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := journal.Generate(pair, count, seed)

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			writer := journal.NewWriter(w)
			for _, line := range lines {
				if err := writer.WriteLine(line); err != nil {
					return err
				}
			}

			log.Info().Int("requests", len(lines)).Int64("seed", seed).Msg("generated journal")
			return nil
		},
	}

	cmd.Flags().StringVar(&pair, "pair", "ETH/USDT", "pair to generate requests for")
	cmd.Flags().IntVar(&count, "count", 1000, "number of requests to generate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for deterministic output")
	cmd.Flags().StringVar(&out, "out", "", "output file (defaults to stdout)")
	return cmd
}
