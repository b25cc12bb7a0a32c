package txbuilder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

func newSigner(t *testing.T) wallet.Local {
	t.Helper()
	w, err := wallet.NewEphemeral()
	require.NoError(t, err)
	return w
}

// twoSignerDraft needs the payer and an extra account signature.
func twoSignerDraft(payer, extra solana.PublicKey) Draft {
	ix := solana.NewInstruction(solana.SystemProgramID, solana.AccountMetaSlice{
		solana.NewAccountMeta(extra, true, true),
		solana.NewAccountMeta(payer, true, true),
	}, []byte{0})
	return Draft{FeePayer: payer, Instructions: []solana.Instruction{ix}}
}

func newTestBuilder(node Node) *Builder {
	return NewBuilder(node, solanarpc.CommitmentConfirmed).WithPollInterval(time.Millisecond)
}

func TestDraftRequiredSigners(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	extra := solana.NewWallet().PublicKey()
	d := twoSignerDraft(payer, extra)
	d = d.Append(system.NewTransferInstruction(1, payer, solana.NewWallet().PublicKey()).Build())

	assert.Equal(t, []solana.PublicKey{payer, extra}, d.RequiredSigners())
}

func TestAssembleValidatesDraft(t *testing.T) {
	b := newTestBuilder(&fakeNode{})

	_, err := b.Assemble(context.Background(), Draft{})
	assert.ErrorIs(t, err, types.ErrNilFeePayer)

	_, err = b.Assemble(context.Background(), Draft{FeePayer: solana.NewWallet().PublicKey()})
	assert.ErrorIs(t, err, types.ErrNoInstructions)
}

func TestBuildSignSendAndConfirm(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{
		lastValid: 1000,
		statuses: []*solanarpc.SignatureStatusesResult{
			nil,
			confirmedStatus(solanarpc.ConfirmationStatusProcessed),
			confirmedStatus(solanarpc.ConfirmationStatusConfirmed),
		},
	}
	b := newTestBuilder(node)

	sub, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.NoError(t, err)

	assert.Equal(t, StageConfirmed, sub.Stage())
	assert.NoError(t, sub.Err())
	assert.Equal(t, 1, node.sends)
	assert.Equal(t, sub.Tx.Signatures[0], sub.Signature)
	parsed, err := solana.SignatureFromBase58(sub.Signature.String())
	require.NoError(t, err)
	assert.Equal(t, sub.Signature, parsed)
	assert.Equal(t, uint64(1000), sub.LastValidBlockHeight)
	require.NoError(t, sub.Tx.VerifySignatures())
}

func TestDuplicateSignersCollapse(t *testing.T) {
	payer := newSigner(t)
	node := &fakeNode{lastValid: 10, statuses: []*solanarpc.SignatureStatusesResult{confirmedStatus(solanarpc.ConfirmationStatusFinalized)}}
	b := newTestBuilder(node)

	// payer is also the creator-like extra signer
	draft := twoSignerDraft(payer.PublicKey(), payer.PublicKey())
	sub, err := b.BuildSignSendAndConfirm(context.Background(), draft, ConfirmationFinalized, payer, payer, nil)
	require.NoError(t, err)
	assert.Len(t, sub.Tx.Signatures, 1)
	assert.Equal(t, StageConfirmed, sub.Stage())
}

func TestMissingSignerRejectsWithoutBroadcast(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{lastValid: 10}
	b := newTestBuilder(node)

	sub, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer)
	require.Error(t, err)

	var missing types.MissingSignerError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, extra.PublicKey().String(), missing.Signer)
	assert.ErrorIs(t, err, types.ErrSignerMissing)
	assert.Equal(t, StageRejected, sub.Stage())
	assert.Zero(t, node.sends)
}

func TestSigningTwiceIsIdempotent(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	b := newTestBuilder(&fakeNode{lastValid: 10})

	sub, err := b.Assemble(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()))
	require.NoError(t, err)
	require.Equal(t, StageBlockhashAttached, sub.Stage())

	require.NoError(t, b.Sign(context.Background(), sub, payer, extra))
	first := append([]solana.Signature{}, sub.Tx.Signatures...)

	require.NoError(t, b.Sign(context.Background(), sub, extra, payer))
	assert.Equal(t, first, sub.Tx.Signatures)
	assert.Equal(t, StageSigned, sub.Stage())
}

func TestStaleBlockhashTimesOut(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{lastValid: 100, blockHeight: 101}
	b := newTestBuilder(node)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := b.BuildSignSendAndConfirm(ctx, twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.NoError(t, ctx.Err(), "timed out by block height, not by context")
	assert.Equal(t, StageTimedOut, sub.Stage())
	assert.Equal(t, 1, node.sends)
}

func TestUnreadableStatusStillTimesOut(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{
		lastValid:   100,
		blockHeight: 5000,
		statusErr:   errors.New("connection refused"),
	}
	b := newTestBuilder(node)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sub, err := b.BuildSignSendAndConfirm(ctx, twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.NoError(t, ctx.Err())
	assert.Equal(t, StageTimedOut, sub.Stage())
}

func TestUnreachableNodeRejectsAfterFailureCap(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	down := errors.New("connection refused")
	node := &fakeNode{
		lastValid: 100,
		statusErr: down,
		heightErr: down,
	}
	b := newTestBuilder(node).WithMaxLookupFailures(3)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sub, err := b.BuildSignSendAndConfirm(ctx, twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.Error(t, err)
	assert.NoError(t, ctx.Err(), "ended by the failure cap, not by context")
	assert.Equal(t, StageRejected, sub.Stage())
	assert.ErrorIs(t, err, types.ErrTransactionRejected)
	assert.ErrorIs(t, err, down)
	var rpcErr types.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, "confirm", rpcErr.Op)
	assert.Equal(t, 1, node.sends)
	assert.LessOrEqual(t, node.statusHits, 2)
}

func TestTransientHeightFailuresTolerated(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{
		lastValid: 100,
		statuses:  []*solanarpc.SignatureStatusesResult{nil, nil, confirmedStatus(solanarpc.ConfirmationStatusConfirmed)},
		heightErr: errors.New("connection refused"),
	}
	b := newTestBuilder(node).WithMaxLookupFailures(3)

	sub, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.NoError(t, err)
	assert.Equal(t, StageConfirmed, sub.Stage())
	assert.Equal(t, 2, node.heightHits)
}

func TestSendErrorRejects(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{
		lastValid: 10,
		sendErr:   errors.New("AnchorError caused by account: config. Error Code: AccountNotInitialized"),
	}
	b := newTestBuilder(node)

	sub, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTransactionRejected)
	assert.Contains(t, err.Error(), "AccountNotInitialized")
	assert.Equal(t, StageRejected, sub.Stage())
	assert.Equal(t, 1, node.sends, "broadcast is never retried")
	assert.Zero(t, node.statusHits)
}

func TestOnChainFailureRejects(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{
		lastValid: 10,
		statuses: []*solanarpc.SignatureStatusesResult{{
			ConfirmationStatus: solanarpc.ConfirmationStatusConfirmed,
			Err: map[string]interface{}{
				"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": float64(3012)}},
			},
		}},
	}
	b := newTestBuilder(node)

	sub, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTransactionRejected)

	var progErr *types.ProgramError
	require.True(t, errors.As(err, &progErr))
	assert.Equal(t, 3012, progErr.Code)
	assert.Equal(t, StageRejected, sub.Stage())
}

func TestSendUsesRelayWhenConfigured(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{lastValid: 10, statuses: []*solanarpc.SignatureStatusesResult{confirmedStatus(solanarpc.ConfirmationStatusConfirmed)}}
	relay := &fakeRelay{}
	b := newTestBuilder(node).WithRelay(relay)
	assert.True(t, b.HasRelay())

	sub, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationConfirmed, payer, extra)
	require.NoError(t, err)
	assert.Equal(t, 1, relay.sends)
	assert.Zero(t, node.sends)
	assert.Equal(t, StageConfirmed, sub.Stage())
}

func TestSendPassesPreflightSettings(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{lastValid: 10, statuses: []*solanarpc.SignatureStatusesResult{confirmedStatus(solanarpc.ConfirmationStatusConfirmed)}}
	b := newTestBuilder(node).WithSkipPreflight(true)

	_, err := b.BuildSignSendAndConfirm(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()),
		ConfirmationProcessed, payer, extra)
	require.NoError(t, err)
	assert.True(t, node.sendOpts.SkipPreflight)
	assert.Equal(t, solanarpc.CommitmentConfirmed, node.sendOpts.PreflightCommitment)
}

func TestSendRequiresSignedStage(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{lastValid: 10}
	b := newTestBuilder(node)

	sub, err := b.Assemble(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()))
	require.NoError(t, err)
	_, err = b.Send(context.Background(), sub)
	assert.Error(t, err)
	assert.Zero(t, node.sends)
}

func TestSimulateReportsProgramError(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{
		lastValid: 10,
		simErr: map[string]interface{}{
			"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": float64(3012)}},
		},
		simLogs: []string{"Program log: AnchorError caused by account: config. Error Code: AccountNotInitialized."},
	}
	b := newTestBuilder(node)

	sub, err := b.Assemble(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()))
	require.NoError(t, err)
	require.NoError(t, b.Sign(context.Background(), sub, payer, extra))

	res, err := b.Simulate(context.Background(), sub)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Contains(t, err.Error(), "account 'config' not initialized")
	assert.Equal(t, StageSigned, sub.Stage(), "simulation does not advance the stage")
	assert.Zero(t, node.sends)
}

func TestWaitHonorsContext(t *testing.T) {
	payer, extra := newSigner(t), newSigner(t)
	node := &fakeNode{lastValid: 100, blockHeight: 50}
	b := newTestBuilder(node)

	sub, err := b.Assemble(context.Background(), twoSignerDraft(payer.PublicKey(), extra.PublicKey()))
	require.NoError(t, err)
	require.NoError(t, b.Sign(context.Background(), sub, payer, extra))
	_, err = b.Send(context.Background(), sub)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = b.WaitForConfirmation(ctx, sub, ConfirmationConfirmed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StageBroadcast, sub.Stage())
}

func TestParseConfirmationLevel(t *testing.T) {
	assert.Equal(t, ConfirmationFinalized, ParseConfirmationLevel("finalized"))
	assert.Equal(t, ConfirmationProcessed, ParseConfirmationLevel("processed"))
	assert.Equal(t, ConfirmationConfirmed, ParseConfirmationLevel(""))
	assert.Equal(t, ConfirmationConfirmed, ParseConfirmationLevel("bogus"))
}
