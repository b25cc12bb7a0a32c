package main

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/workflow"
)

type createConfigOpts struct {
	paramsFile    string
	feeClaimer    string
	leftover      string
	quoteMint     string
	vanityPrefix  string
	vanitySuffix  string
	vanityTimeout time.Duration
	simulate      bool
	preview       bool
	skipPreflight bool
}

func newCreateConfigCmd(g *globalOpts) *cobra.Command {
	o := &createConfigOpts{}
	cmd := &cobra.Command{
		Use:   "create-config",
		Short: "Create a dynamic bonding curve configuration account",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := newRuntime(cmd, g)
			if err != nil {
				return err
			}
			admin := deps.settings.Admin
			defer admin.Release()

			desc, err := configDescriptor(o, admin.PublicKey())
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

			res, err := workflow.CreateConfig(cmd.Context(), deps.rpc, &admin, desc, wopts...)
			printResult(cmd, "config", res)
			return err
		},
	}
	cmd.Flags().StringVar(&o.paramsFile, "params", "", "configuration description file (yaml|json|toml); defaults to the built-in curve")
	cmd.Flags().StringVar(&o.feeClaimer, "fee-claimer", "", "fee claimer pubkey (default admin)")
	cmd.Flags().StringVar(&o.leftover, "leftover-receiver", "", "leftover receiver pubkey (default admin)")
	cmd.Flags().StringVar(&o.quoteMint, "quote-mint", "", "quote mint pubkey (default WSOL)")
	cmd.Flags().StringVar(&o.vanityPrefix, "vanity-prefix", "", "config address prefix")
	cmd.Flags().StringVar(&o.vanitySuffix, "vanity-suffix", "", "config address suffix")
	cmd.Flags().DurationVar(&o.vanityTimeout, "vanity-timeout", 5*time.Minute, "vanity search timeout")
	cmd.Flags().BoolVar(&o.simulate, "simulate", false, "simulate instead of broadcasting")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "print accounts and arguments without network calls")
	cmd.Flags().BoolVar(&o.skipPreflight, "skip-preflight", false, "skip preflight simulation on broadcast")
	return cmd
}

func configDescriptor(o *createConfigOpts, admin solana.PublicKey) (params.ConfigInput, error) {
	var desc params.ConfigInput
	if o.paramsFile != "" {
		f, err := params.LoadConfigFile(o.paramsFile)
		if err != nil {
			return desc, err
		}
		desc, err = f.Input(admin, solana.PublicKey{})
		if err != nil {
			return desc, err
		}
	} else {
		desc = params.DefaultConfigInput(admin, solana.PublicKey{})
	}

	overrides := []struct {
		label string
		value string
		dst   *solana.PublicKey
	}{
		{"fee-claimer", o.feeClaimer, &desc.FeeClaimer},
		{"leftover-receiver", o.leftover, &desc.LeftoverReceiver},
		{"quote-mint", o.quoteMint, &desc.QuoteMint},
	}
	for _, ov := range overrides {
		if ov.value == "" {
			continue
		}
		pk, err := parsePubkey(ov.label, ov.value)
		if err != nil {
			return desc, fmt.Errorf("create-config: %w", err)
		}
		*ov.dst = pk
	}
	return desc, nil
}
