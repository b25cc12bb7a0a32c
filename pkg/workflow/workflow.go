// Package workflow runs the two administrative workflows: creating a
// configuration account and creating a pool against one. Each run builds a
// descriptor, assembles a transaction, and submits it through the executor.
package workflow

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/autofill"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/config"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/txbuilder"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/vanity"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

// Node is the network capability the workflows need. *rpc.Client satisfies it.
type Node interface {
	txbuilder.Node
	autofill.AccountReader
}

// Result describes the outcome of a workflow run.
type Result struct {
	// Address is the created configuration account or base mint.
	Address solana.PublicKey
	// Pool is set by CreatePool.
	Pool        solana.PublicKey
	Signature   solana.Signature
	Stage       txbuilder.Stage
	ExplorerURL string
	Simulation  *solanarpc.SimulateTransactionResult
}

// Confirmed reports whether the transaction reached the requested depth.
func (r Result) Confirmed() bool {
	return r.Stage == txbuilder.StageConfirmed
}

func (o *Options) autofillOptions() []autofill.Option {
	var out []autofill.Option
	if o.Preview != nil {
		out = append(out, autofill.WithPreview(o.Preview))
	}
	if o.JitoTip > 0 {
		out = append(out, autofill.WithJitoTip(o.JitoTip))
	}
	if !o.QuoteTokenProgram.IsZero() {
		out = append(out, autofill.WithQuoteTokenProgram(o.QuoteTokenProgram))
	}
	return out
}

func (o *Options) vanityOptions() []autofill.Option {
	return []autofill.Option{autofill.WithVanity(vanity.Options{
		Prefix:  o.VanityPrefix,
		Suffix:  o.VanitySuffix,
		Timeout: o.VanityTimeout,
	})}
}

func (o *Options) builder(node Node, skipPreflight bool) *txbuilder.Builder {
	if o.SkipPreflight != nil {
		skipPreflight = *o.SkipPreflight
	}
	return txbuilder.NewBuilder(node, solanarpc.CommitmentType(o.Level)).
		WithSkipPreflight(skipPreflight).
		WithRelay(o.Relay).
		WithPollInterval(o.PollInterval).
		WithLogger(o.Logger)
}

// submit assembles, signs, and either simulates or broadcasts draft.
func submit(ctx context.Context, b *txbuilder.Builder, o *Options, draft txbuilder.Draft, signers ...wallet.Signer) (Result, error) {
	var res Result
	sub, err := b.Assemble(ctx, draft)
	if err != nil {
		return stageOf(res, sub), err
	}
	if err := b.Sign(ctx, sub, signers...); err != nil {
		return stageOf(res, sub), err
	}
	res.Signature = sub.Signature

	if o.Simulate {
		sim, err := b.Simulate(ctx, sub)
		res.Simulation = sim
		res.Stage = sub.Stage()
		return res, err
	}

	sig, err := b.SendAndConfirm(ctx, sub, o.Level)
	if !sig.IsZero() {
		res.Signature = sig
		res.ExplorerURL = config.ExplorerTxURL(o.Network, sig.String())
	}
	return stageOf(res, sub), err
}

func stageOf(res Result, sub *txbuilder.Submission) Result {
	if sub != nil {
		res.Stage = sub.Stage()
	}
	return res
}

func requireNode(node Node, o *Options) error {
	if node == nil && o.Preview == nil {
		return types.ErrNilRPC
	}
	return nil
}

// IsRejected reports whether a workflow error is a rejection by the
// network or by the local signature policy.
func IsRejected(err error) bool {
	return errors.Is(err, types.ErrTransactionRejected) || errors.Is(err, types.ErrSignerMissing)
}
