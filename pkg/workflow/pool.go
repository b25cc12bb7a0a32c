package workflow

import (
	"context"
	"fmt"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/autofill"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

// CreatePool creates a pool and its base mint under an existing
// configuration. A fresh identity is generated for the base mint and
// released when the run ends. Zero payer and creator default to the admin;
// desc.BaseMint is ignored. Whether desc.Config exists is decided by the
// network at broadcast.
func CreatePool(ctx context.Context, node Node, admin wallet.Signer, desc params.PoolInput, opts ...Option) (Result, error) {
	o := newOptions(opts)
	if admin == nil {
		return Result{}, types.ErrNilSigner
	}
	if err := requireNode(node, o); err != nil {
		return Result{}, err
	}

	mintKey, err := autofill.GenerateKey(ctx, o.vanityOptions()...)
	if err != nil {
		return Result{}, fmt.Errorf("generate base mint identity: %w", err)
	}
	defer mintKey.Release()

	desc.BaseMint = mintKey.PublicKey()
	if desc.Payer.IsZero() {
		desc.Payer = admin.PublicKey()
	}
	if desc.Creator.IsZero() {
		desc.Creator = admin.PublicKey()
	}

	pool, err := params.NewPool(desc)
	if err != nil {
		return Result{}, err
	}
	log := o.Logger.With().
		Str("config", pool.Config().String()).
		Str("base_mint", pool.BaseMint().String()).
		Str("payer", pool.Payer().String()).
		Logger()
	log.Info().Msg("pool descriptor built")

	var reader autofill.AccountReader
	if node != nil {
		reader = node
	}
	draft, err := autofill.DBCCreatePool(ctx, reader, pool, o.autofillOptions()...)
	if err != nil {
		return Result{}, err
	}
	res := Result{Address: pool.BaseMint(), Pool: draft.Pool}
	if o.Preview != nil {
		return res, nil
	}

	o.Logger = log
	out, err := submit(ctx, o.builder(node, true), o, draft.Draft, admin, &mintKey)
	out.Address = res.Address
	out.Pool = res.Pool
	if err != nil {
		log.Error().Err(err).Str("stage", out.Stage.String()).Msg("create pool failed")
		return out, err
	}
	log.Info().
		Str("pool", out.Pool.String()).
		Str("signature", out.Signature.String()).
		Str("stage", out.Stage.String()).
		Msg("create pool finished")
	return out, nil
}
