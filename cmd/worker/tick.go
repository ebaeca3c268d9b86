package main

import (
	"context"
	"encoding/json"

	"monkey-social/internal/domain/world"

	"github.com/spf13/cobra"
)

func newTickCmd(flags *rootFlags) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run a single world tick and print its report as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dice := world.NewDice()
			if cmd.Flags().Changed("seed") {
				dice = world.NewSeededDice(seed)
			}

			ctx := cmd.Context()
			a, err := wireApp(ctx, flags, dice, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.WorldTickTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.WorldTickTimeout)
				defer cancel()
			}

			rep, err := a.job.Tick(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible tick")
	return cmd
}
