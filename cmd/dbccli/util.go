package main

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/workflow"
)

// parsePubkey converts base58 string to PublicKey.
func parsePubkey(label, v string) (solana.PublicKey, error) {
	if v == "" {
		return solana.PublicKey{}, fmt.Errorf("%s is required", label)
	}
	pk, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%s invalid pubkey: %w", label, err)
	}
	return pk, nil
}

func parseTokenType(s string) (params.TokenType, error) {
	switch strings.ToLower(s) {
	case "spl", "token":
		return params.TokenTypeSPL, nil
	case "token2022", "token-2022":
		return params.TokenTypeToken2022, nil
	}
	return 0, fmt.Errorf("unknown token type %q (spl|token2022)", s)
}

func tokenProgram(tt params.TokenType) solana.PublicKey {
	if tt == params.TokenTypeToken2022 {
		return constants.Token2022ProgramID
	}
	return constants.TokenProgramID
}

func printResult(cmd *cobra.Command, label string, res workflow.Result) {
	out := cmd.OutOrStdout()
	if !res.Address.IsZero() {
		fmt.Fprintf(out, "%s=%s\n", label, res.Address)
	}
	if !res.Pool.IsZero() {
		fmt.Fprintf(out, "pool=%s\n", res.Pool)
	}
	if res.Simulation != nil {
		printSimResult(cmd, res.Simulation)
		return
	}
	if !res.Signature.IsZero() {
		fmt.Fprintf(out, "signature=%s\nstage=%s\n", res.Signature, res.Stage)
	}
	if res.ExplorerURL != "" {
		fmt.Fprintf(out, "explorer=%s\n", res.ExplorerURL)
	}
}

func printSimResult(cmd *cobra.Command, res *solanarpc.SimulateTransactionResult) {
	out := cmd.OutOrStdout()
	if res.Err != nil {
		fmt.Fprintf(out, "simulation error: %v\n", res.Err)
	} else {
		fmt.Fprintln(out, "simulation ok")
	}
	if res.UnitsConsumed != nil {
		fmt.Fprintf(out, "units=%d\n", *res.UnitsConsumed)
	}
	if len(res.Logs) > 0 {
		fmt.Fprintln(out, "logs:")
		for _, l := range res.Logs {
			fmt.Fprintf(out, "  %s\n", l)
		}
	}
}
