package main

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/workflow"
)

type createPoolOpts struct {
	config        string
	quoteMint     string
	quoteProgram  string
	creator       string
	tokenType     string
	name          string
	symbol        string
	uri           string
	vanityPrefix  string
	vanitySuffix  string
	vanityTimeout time.Duration
	simulate      bool
	preview       bool
	skipPreflight bool
}

func newCreatePoolCmd(g *globalOpts) *cobra.Command {
	o := &createPoolOpts{}
	cmd := &cobra.Command{
		Use:   "create-pool",
		Short: "Create a pool and its base mint under an existing configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newRuntime(cmd, g)
			if err != nil {
				return err
			}
			admin := deps.settings.Admin
			defer admin.Release()

			desc, err := poolDescriptor(o, deps.settings.ConfigAddress)
			if err != nil {
				return err
			}

			wopts := deps.workflowOptions(g)
			wopts = append(wopts, workflow.WithVanity(o.vanityPrefix, o.vanitySuffix, o.vanityTimeout))
			if o.preview {
				wopts = append(wopts, workflow.WithPreview(cmd.OutOrStdout()))
			}
			if o.simulate {
				wopts = append(wopts, workflow.WithSimulate())
			}
			if cmd.Flags().Changed("skip-preflight") {
				wopts = append(wopts, workflow.WithSkipPreflight(o.skipPreflight))
			}
			if o.quoteProgram != "" {
				tt, err := parseTokenType(o.quoteProgram)
				if err != nil {
					return fmt.Errorf("quote-token-program: %w", err)
				}
				wopts = append(wopts, workflow.WithQuoteTokenProgram(tokenProgram(tt)))
			}

			res, err := workflow.CreatePool(cmd.Context(), deps.rpc, &admin, desc, wopts...)
			printResult(cmd, "base_mint", res)
			return err
		},
	}
	cmd.Flags().StringVar(&o.config, "config", "", "configuration account (default DBC_CONFIG_ADDRESS)")
	cmd.Flags().StringVar(&o.quoteMint, "quote-mint", "", "quote mint pubkey (default WSOL)")
	cmd.Flags().StringVar(&o.quoteProgram, "quote-token-program", "", "token program of the quote mint (spl|token2022); looked up on chain when empty")
	cmd.Flags().StringVar(&o.creator, "creator", "", "pool creator pubkey (default admin)")
	cmd.Flags().StringVar(&o.tokenType, "token-type", "token2022", "base token standard (spl|token2022); must match the configuration")
	cmd.Flags().StringVar(&o.name, "name", "", "token name")
	cmd.Flags().StringVar(&o.symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&o.uri, "uri", "", "token metadata uri")
	cmd.Flags().StringVar(&o.vanityPrefix, "vanity-prefix", "", "base mint address prefix")
	cmd.Flags().StringVar(&o.vanitySuffix, "vanity-suffix", "", "base mint address suffix")
	cmd.Flags().DurationVar(&o.vanityTimeout, "vanity-timeout", 5*time.Minute, "vanity search timeout")
	cmd.Flags().BoolVar(&o.simulate, "simulate", false, "simulate instead of broadcasting")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "print accounts and arguments without broadcasting")
	cmd.Flags().BoolVar(&o.skipPreflight, "skip-preflight", true, "skip preflight simulation on broadcast")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("uri")
	return cmd
}

func poolDescriptor(o *createPoolOpts, defaultConfig solana.PublicKey) (params.PoolInput, error) {
	desc := params.PoolInput{
		Config: defaultConfig,
		Name:   o.name,
		Symbol: o.symbol,
		URI:    o.uri,
	}
	if o.config != "" {
		pk, err := parsePubkey("config", o.config)
		if err != nil {
			return desc, err
		}
		desc.Config = pk
	}
	if desc.Config.IsZero() {
		return desc, fmt.Errorf("config is required (use --config or DBC_CONFIG_ADDRESS)")
	}
	if o.quoteMint != "" {
		pk, err := parsePubkey("quote-mint", o.quoteMint)
		if err != nil {
			return desc, err
		}
		desc.QuoteMint = pk
	}
	if o.creator != "" {
		pk, err := parsePubkey("creator", o.creator)
		if err != nil {
			return desc, err
		}
		desc.Creator = pk
	}
	tt, err := parseTokenType(o.tokenType)
	if err != nil {
		return desc, err
	}
	desc.TokenType = tt
	return desc, nil
}
