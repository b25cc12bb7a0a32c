package workflow

import (
	"context"
	"fmt"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/autofill"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

// CreateConfig creates a configuration account owned by the program. A fresh
// identity is generated for the account and released when the run ends.
// Zero payer, fee claimer, leftover receiver, and quote mint fields in desc
// default to the admin (or WSOL for the quote mint). desc.Config is ignored.
func CreateConfig(ctx context.Context, node Node, admin wallet.Signer, desc params.ConfigInput, opts ...Option) (Result, error) {
	o := newOptions(opts)
	if admin == nil {
		return Result{}, types.ErrNilSigner
	}
	if err := requireNode(node, o); err != nil {
		return Result{}, err
	}

	configKey, err := autofill.GenerateKey(ctx, o.vanityOptions()...)
	if err != nil {
		return Result{}, fmt.Errorf("generate config identity: %w", err)
	}
	defer configKey.Release()

	desc.Config = configKey.PublicKey()
	fillConfigDefaults(&desc, admin)

	cfg, err := params.NewConfig(desc)
	if err != nil {
		return Result{}, err
	}
	log := o.Logger.With().
		Str("config", cfg.Address().String()).
		Str("payer", cfg.Payer().String()).
		Logger()
	log.Info().Msg("configuration descriptor built")

	draft, err := autofill.DBCCreateConfig(cfg, o.autofillOptions()...)
	if err != nil {
		return Result{}, err
	}
	res := Result{Address: cfg.Address()}
	if o.Preview != nil {
		return res, nil
	}

	o.Logger = log
	out, err := submit(ctx, o.builder(node, false), o, draft.Draft, admin, &configKey)
	out.Address = res.Address
	if err != nil {
		log.Error().Err(err).Str("stage", out.Stage.String()).Msg("create config failed")
		return out, err
	}
	log.Info().
		Str("signature", out.Signature.String()).
		Str("stage", out.Stage.String()).
		Msg("create config finished")
	return out, nil
}

func fillConfigDefaults(desc *params.ConfigInput, admin wallet.Signer) {
	pk := admin.PublicKey()
	if desc.Payer.IsZero() {
		desc.Payer = pk
	}
	if desc.FeeClaimer.IsZero() {
		desc.FeeClaimer = pk
	}
	if desc.LeftoverReceiver.IsZero() {
		desc.LeftoverReceiver = pk
	}
	if desc.QuoteMint.IsZero() {
		desc.QuoteMint = constants.WSOLMint
	}
}
