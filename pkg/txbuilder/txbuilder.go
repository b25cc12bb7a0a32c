// Package txbuilder assembles drafts into signed transactions and drives
// them through broadcast and confirmation.
package txbuilder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

// ConfirmationLevel represents transaction confirmation depth.
type ConfirmationLevel string

const (
	ConfirmationProcessed ConfirmationLevel = "processed"
	ConfirmationConfirmed ConfirmationLevel = "confirmed"
	ConfirmationFinalized ConfirmationLevel = "finalized"
)

// ParseConfirmationLevel maps a commitment string to a level.
func ParseConfirmationLevel(s string) ConfirmationLevel {
	switch ConfirmationLevel(s) {
	case ConfirmationProcessed, ConfirmationFinalized:
		return ConfirmationLevel(s)
	default:
		return ConfirmationConfirmed
	}
}

// Node is the subset of the network client the builder needs.
// *rpc.Client satisfies it.
type Node interface {
	GetLatestBlockhash(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error)
	GetBlockHeight(ctx context.Context) (uint64, error)
	GetSignatureStatuses(ctx context.Context, sigs ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error)
	SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts *solanarpc.SimulateTransactionOpts) (*solanarpc.SimulateTransactionResponse, error)
}

// Relay is an alternative broadcast route such as a block engine.
type Relay interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

const (
	defaultPollInterval      = 400 * time.Millisecond
	defaultMaxLookupFailures = 10
)

// Builder ties together the node, signing, and submission.
type Builder struct {
	node              Node
	commitment        solanarpc.CommitmentType
	skipPreflight     bool
	relay             Relay
	pollInterval      time.Duration
	maxLookupFailures int
	log               zerolog.Logger
}

// NewBuilder constructs a builder with the provided node and commitment.
func NewBuilder(node Node, commitment solanarpc.CommitmentType) *Builder {
	if commitment == "" {
		commitment = solanarpc.CommitmentConfirmed
	}
	return &Builder{
		node:              node,
		commitment:        commitment,
		pollInterval:      defaultPollInterval,
		maxLookupFailures: defaultMaxLookupFailures,
		log:               zerolog.Nop(),
	}
}

// WithSkipPreflight configures whether the node skips preflight simulation.
func (b *Builder) WithSkipPreflight(skip bool) *Builder {
	b.skipPreflight = skip
	return b
}

// WithRelay routes broadcasts through r instead of the node. Pass nil to
// use the node. Confirmation always goes through the node.
func (b *Builder) WithRelay(r Relay) *Builder {
	b.relay = r
	return b
}

// WithPollInterval sets the status polling interval.
func (b *Builder) WithPollInterval(d time.Duration) *Builder {
	if d > 0 {
		b.pollInterval = d
	}
	return b
}

// WithMaxLookupFailures bounds how many consecutive failed lookups
// confirmation tolerates.
func (b *Builder) WithMaxLookupFailures(n int) *Builder {
	if n > 0 {
		b.maxLookupFailures = n
	}
	return b
}

// WithLogger sets the logger used for stage transitions.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.log = log
	return b
}

// HasRelay reports whether a relay is configured.
func (b *Builder) HasRelay() bool {
	return b.relay != nil
}

// Commitment returns the preflight and confirmation commitment.
func (b *Builder) Commitment() solanarpc.CommitmentType {
	return b.commitment
}

// BuildTransaction builds a transaction stamped with a fresh blockhash.
func (b *Builder) BuildTransaction(ctx context.Context, feePayer solana.PublicKey, instructions ...solana.Instruction) (*solana.Transaction, uint64, error) {
	if b.node == nil {
		return nil, 0, types.ErrNilRPC
	}
	if len(instructions) == 0 {
		return nil, 0, types.ErrNoInstructions
	}

	latest, err := b.node.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("get latest blockhash: %w", err)
	}
	if latest == nil || latest.Value == nil {
		return nil, 0, fmt.Errorf("get latest blockhash: empty response")
	}

	builder := solana.NewTransactionBuilder().
		SetRecentBlockHash(latest.Value.Blockhash).
		SetFeePayer(feePayer)
	for _, ix := range instructions {
		builder.AddInstruction(ix)
	}

	tx, err := builder.Build()
	if err != nil {
		return nil, 0, fmt.Errorf("build transaction: %w", err)
	}
	return tx, latest.Value.LastValidBlockHeight, nil
}

// Assemble turns a draft into a submission with a fresh blockhash attached.
func (b *Builder) Assemble(ctx context.Context, draft Draft) (*Submission, error) {
	if err := draft.validate(); err != nil {
		return nil, err
	}
	sub := &Submission{Draft: draft, stage: StageBuilt}
	b.logStage(sub)

	tx, lastValid, err := b.BuildTransaction(ctx, draft.FeePayer, draft.Instructions...)
	if err != nil {
		_ = sub.advance(StageRejected, err)
		b.logStage(sub)
		return sub, err
	}
	sub.Tx = tx
	sub.LastValidBlockHeight = lastValid
	if err := sub.advance(StageBlockhashAttached, nil); err != nil {
		return sub, err
	}
	b.logStage(sub)
	return sub, nil
}

// SignTransaction signs tx with the provided signers in account-key order.
// Duplicate signers are collapsed and signers the message does not require
// are ignored. Signing the same message twice yields the same signatures.
func SignTransaction(ctx context.Context, tx *solana.Transaction, signers ...wallet.Signer) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 {
		return nil
	}
	if len(tx.Message.AccountKeys) < required {
		return fmt.Errorf("not enough account keys for required signatures")
	}

	signerMap := make(map[solana.PublicKey]wallet.Signer, len(signers))
	for _, s := range signers {
		if s == nil {
			continue
		}
		signerMap[s.PublicKey()] = s
	}

	for i := 0; i < required; i++ {
		pk := tx.Message.AccountKeys[i]
		if _, ok := signerMap[pk]; !ok {
			return types.MissingSignerError{Signer: pk.String()}
		}
	}

	messageBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	sigs := make([]solana.Signature, required)
	for i := 0; i < required; i++ {
		pk := tx.Message.AccountKeys[i]
		sig, err := signerMap[pk].SignMessage(ctx, messageBytes)
		if err != nil {
			return fmt.Errorf("sign message for %s: %w", pk, err)
		}
		sigs[i] = sig
	}
	tx.Signatures = sigs
	return nil
}

// Sign applies every required signature. A missing signer rejects the
// submission locally; nothing is broadcast.
func (b *Builder) Sign(ctx context.Context, sub *Submission, signers ...wallet.Signer) error {
	if sub == nil || sub.Tx == nil {
		return fmt.Errorf("submission has no transaction")
	}
	if sub.stage == StageSigned {
		return b.resign(ctx, sub, signers...)
	}
	if sub.stage != StageBlockhashAttached {
		return fmt.Errorf("cannot sign submission in stage %s", sub.stage)
	}
	if err := SignTransaction(ctx, sub.Tx, signers...); err != nil {
		b.reject(sub, err)
		return err
	}
	sub.Signature = sub.Tx.Signatures[0]
	if err := sub.advance(StageSigned, nil); err != nil {
		return err
	}
	b.logStage(sub)
	return nil
}

// resign re-applies signatures to an already signed submission. The message
// is unchanged so the signatures are too.
func (b *Builder) resign(ctx context.Context, sub *Submission, signers ...wallet.Signer) error {
	if err := SignTransaction(ctx, sub.Tx, signers...); err != nil {
		return err
	}
	sub.Signature = sub.Tx.Signatures[0]
	return nil
}

// Simulate runs the signed or unsigned transaction through the node's
// simulator. Program failures are returned as *types.ProgramError.
func (b *Builder) Simulate(ctx context.Context, sub *Submission) (*solanarpc.SimulateTransactionResult, error) {
	if b.node == nil {
		return nil, types.ErrNilRPC
	}
	if sub == nil || sub.Tx == nil {
		return nil, fmt.Errorf("submission has no transaction")
	}
	res, err := b.node.SimulateTransaction(ctx, sub.Tx, &solanarpc.SimulateTransactionOpts{
		SigVerify:  sub.stage == StageSigned,
		Commitment: b.commitment,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("simulate: empty response")
	}
	if simErr := types.ParseSimulationError(res.Value.Err, res.Value.Logs); simErr != nil {
		return res.Value, simErr
	}
	return res.Value, nil
}

// Send broadcasts a signed submission exactly once. If a relay is
// configured it is used; otherwise the node receives the transaction.
func (b *Builder) Send(ctx context.Context, sub *Submission) (solana.Signature, error) {
	if sub == nil || sub.stage != StageSigned {
		stage := "nil"
		if sub != nil {
			stage = sub.stage.String()
		}
		return solana.Signature{}, fmt.Errorf("cannot broadcast submission in stage %s", stage)
	}

	var (
		sig solana.Signature
		err error
	)
	if b.relay != nil {
		sig, err = b.relay.SendTransaction(ctx, sub.Tx)
	} else if b.node == nil {
		err = types.ErrNilRPC
	} else {
		sig, err = b.node.SendTransaction(ctx, sub.Tx, solanarpc.TransactionOpts{
			SkipPreflight:       b.skipPreflight,
			PreflightCommitment: b.commitment,
		})
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", types.ErrTransactionRejected, err)
		b.reject(sub, err)
		return solana.Signature{}, err
	}

	if !sig.IsZero() {
		sub.Signature = sig
	}
	if err := sub.advance(StageBroadcast, nil); err != nil {
		return sub.Signature, err
	}
	b.logStage(sub)
	return sub.Signature, nil
}

// SendAndConfirm broadcasts a signed submission and waits until it reaches
// level, is rejected, or its blockhash expires.
func (b *Builder) SendAndConfirm(ctx context.Context, sub *Submission, level ConfirmationLevel) (solana.Signature, error) {
	sig, err := b.Send(ctx, sub)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := b.WaitForConfirmation(ctx, sub, level); err != nil {
		return sig, err
	}
	return sig, nil
}

// Execute signs and submits a prepared submission.
func (b *Builder) Execute(ctx context.Context, sub *Submission, level ConfirmationLevel, signers ...wallet.Signer) (solana.Signature, error) {
	if err := b.Sign(ctx, sub, signers...); err != nil {
		return solana.Signature{}, err
	}
	return b.SendAndConfirm(ctx, sub, level)
}

// BuildSignSendAndConfirm assembles, signs, broadcasts, and confirms a draft.
func (b *Builder) BuildSignSendAndConfirm(ctx context.Context, draft Draft, level ConfirmationLevel, signers ...wallet.Signer) (*Submission, error) {
	sub, err := b.Assemble(ctx, draft)
	if err != nil {
		return sub, err
	}
	_, err = b.Execute(ctx, sub, level, signers...)
	return sub, err
}

// WaitForConfirmation polls the signature status of a broadcast submission.
// The submission times out once the chain passes its last valid block height
// without the signature becoming visible. If the node cannot answer for
// maxLookupFailures consecutive lookups the submission is rejected with the
// last RPC error.
func (b *Builder) WaitForConfirmation(ctx context.Context, sub *Submission, level ConfirmationLevel) error {
	if b.node == nil {
		return types.ErrNilRPC
	}
	if sub == nil || sub.stage != StageBroadcast {
		return fmt.Errorf("submission is not awaiting confirmation")
	}

	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	var (
		failures int
		lastErr  error
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		status, err := b.status(ctx, sub.Signature)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			lastErr = err
			b.log.Debug().Err(err).Str("signature", sub.Signature.String()).Int("failures", failures).Msg("status lookup failed")
		} else if status != nil {
			failures = 0
		}

		if status == nil {
			height, err := b.node.GetBlockHeight(ctx)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failures++
				lastErr = err
			case sub.LastValidBlockHeight > 0 && height > sub.LastValidBlockHeight:
				cause := fmt.Errorf("%w: block height %d passed %d", types.ErrConfirmationTimeout, height, sub.LastValidBlockHeight)
				_ = sub.advance(StageTimedOut, cause)
				b.logStage(sub)
				return cause
			default:
				failures = 0
			}
			if failures >= b.maxLookupFailures {
				var rpcErr types.RPCError
				if !errors.As(lastErr, &rpcErr) {
					lastErr = types.RPCError{Op: "confirm", Err: lastErr}
				}
				cause := fmt.Errorf("%w: node unreachable after %d failed lookups: %w", types.ErrTransactionRejected, failures, lastErr)
				b.reject(sub, cause)
				return cause
			}
			continue
		}

		if status.Err != nil {
			cause := fmt.Errorf("%w: %w", types.ErrTransactionRejected, types.ParseSimulationError(status.Err, nil))
			b.reject(sub, cause)
			return cause
		}
		if reached(status.ConfirmationStatus, level) {
			if err := sub.advance(StageConfirmed, nil); err != nil {
				return err
			}
			b.logStage(sub)
			return nil
		}
	}
}

func (b *Builder) status(ctx context.Context, sig solana.Signature) (*solanarpc.SignatureStatusesResult, error) {
	resp, err := b.node.GetSignatureStatuses(ctx, sig)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Value) == 0 {
		return nil, nil
	}
	return resp.Value[0], nil
}

func reached(got solanarpc.ConfirmationStatusType, level ConfirmationLevel) bool {
	switch level {
	case ConfirmationProcessed:
		return true
	case ConfirmationFinalized:
		return got == solanarpc.ConfirmationStatusFinalized
	default:
		return got == solanarpc.ConfirmationStatusConfirmed ||
			got == solanarpc.ConfirmationStatusFinalized
	}
}

func (b *Builder) reject(sub *Submission, cause error) {
	if sub.stage.Terminal() {
		return
	}
	_ = sub.advance(StageRejected, cause)
	b.logStage(sub)
}

func (b *Builder) logStage(sub *Submission) {
	ev := b.log.Debug()
	if sub.stage == StageRejected || sub.stage == StageTimedOut {
		ev = b.log.Warn().Err(sub.err)
	}
	if !sub.Signature.IsZero() {
		ev = ev.Str("signature", sub.Signature.String())
	}
	ev.Str("stage", sub.stage.String()).Msg("transaction stage")
}

// IsTimeout reports whether err ended a submission by blockhash expiry.
func IsTimeout(err error) bool {
	return errors.Is(err, types.ErrConfirmationTimeout)
}
