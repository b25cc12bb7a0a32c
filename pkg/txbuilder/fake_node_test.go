package txbuilder

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
)

// fakeNode scripts node responses. Statuses are consumed in order and the
// last one repeats.
type fakeNode struct {
	mu sync.Mutex

	lastValid   uint64
	blockHeight uint64
	statuses    []*solanarpc.SignatureStatusesResult
	sendErr     error
	statusErr   error
	heightErr   error
	simErr      interface{}
	simLogs     []string

	sends      int
	simulates  int
	statusHits int
	heightHits int
	sent       *solana.Transaction
	sendOpts   solanarpc.TransactionOpts
}

func (f *fakeNode) GetLatestBlockhash(context.Context) (*solanarpc.GetLatestBlockhashResult, error) {
	return &solanarpc.GetLatestBlockhashResult{
		Value: &solanarpc.LatestBlockhashResult{
			Blockhash:            solana.Hash(solana.NewWallet().PublicKey()),
			LastValidBlockHeight: f.lastValid,
		},
	}, nil
}

func (f *fakeNode) GetBlockHeight(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heightHits++
	if f.heightErr != nil {
		return 0, f.heightErr
	}
	return f.blockHeight, nil
}

func (f *fakeNode) GetSignatureStatuses(_ context.Context, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusHits++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	var st *solanarpc.SignatureStatusesResult
	if n := len(f.statuses); n > 0 {
		if f.statusHits <= n {
			st = f.statuses[f.statusHits-1]
		} else {
			st = f.statuses[n-1]
		}
	}
	return &solanarpc.GetSignatureStatusesResult{Value: []*solanarpc.SignatureStatusesResult{st}}, nil
}

func (f *fakeNode) SendTransaction(_ context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends++
	f.sent = tx
	f.sendOpts = opts
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	return tx.Signatures[0], nil
}

func (f *fakeNode) SimulateTransaction(context.Context, *solana.Transaction, *solanarpc.SimulateTransactionOpts) (*solanarpc.SimulateTransactionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulates++
	return &solanarpc.SimulateTransactionResponse{
		Value: &solanarpc.SimulateTransactionResult{Err: f.simErr, Logs: f.simLogs},
	}, nil
}

type fakeRelay struct {
	sends int
}

func (r *fakeRelay) SendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	r.sends++
	return tx.Signatures[0], nil
}

func confirmedStatus(level solanarpc.ConfirmationStatusType) *solanarpc.SignatureStatusesResult {
	return &solanarpc.SignatureStatusesResult{ConfirmationStatus: level}
}
