package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/program/dbc"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

func newAccountCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "account [pubkey]",
		Short: "Show whether an account exists and which program owns it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parsePubkey("account", args[0])
			if err != nil {
				return err
			}
			deps, err := newRuntime(cmd, opts)
			if err != nil {
				return err
			}
			deps.settings.Admin.Release()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			out := cmd.OutOrStdout()
			acc, err := deps.rpc.GetAccountInfo(ctx, pub)
			if errors.Is(err, types.ErrAccountNotFound) {
				fmt.Fprintf(out, "account=%s exists=false\n", pub)
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetch account: %w", err)
			}
			if acc == nil || acc.Value == nil {
				fmt.Fprintf(out, "account=%s exists=false\n", pub)
				return nil
			}

			var data []byte
			if acc.Value.Data != nil {
				data = acc.Value.Data.GetBinary()
			}
			kind := "unknown"
			if acc.Value.Owner.Equals(dbc.ProgramKey) {
				if k := dbc.AccountKind(data); k != "" {
					kind = k
				}
			}
			fmt.Fprintf(out, "account=%s exists=true owner=%s dbc=%t kind=%s lamports=%d size=%d\n",
				pub, acc.Value.Owner, acc.Value.Owner.Equals(dbc.ProgramKey), kind, acc.Value.Lamports, len(data))
			return nil
		},
	}
}
