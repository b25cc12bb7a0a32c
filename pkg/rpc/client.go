package rpc

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/config"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

// Client wraps solana-go rpc.Client with retry, timeout, and rate limiting.
// Reads are retried; SendTransaction is attempted exactly once.
type Client struct {
	raw     *solanarpc.Client
	cfg     config.RPCConfig
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds a configured Client.
func NewClient(cfg config.RPCConfig) *Client {
	return NewClientWithRaw(solanarpc.New(cfg.ResolveRPCURL()), cfg)
}

// NewClientWithRaw wraps an existing solana-go client.
func NewClientWithRaw(raw *solanarpc.Client, cfg config.RPCConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst == 0 {
			burst = int(cfg.RateLimit.RPS * 2)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	return &Client{
		raw:     raw,
		cfg:     cfg,
		limiter: limiter,
		log:     cfg.Logger,
	}
}

// Raw exposes the underlying solana-go client.
func (c *Client) Raw() *solanarpc.Client {
	return c.raw
}

// Commitment is the configured commitment level.
func (c *Client) Commitment() solanarpc.CommitmentType {
	return c.cfg.CommitmentType()
}

// GetLatestBlockhash fetches the latest blockhash at the configured commitment.
func (c *Client) GetLatestBlockhash(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error) {
	var out *solanarpc.GetLatestBlockhashResult
	err := c.call(ctx, "getLatestBlockhash", func(ctx context.Context) error {
		var err error
		out, err = c.raw.GetLatestBlockhash(ctx, c.Commitment())
		return err
	})
	return out, err
}

// GetBlockHeight returns the current block height at the configured commitment.
func (c *Client) GetBlockHeight(ctx context.Context) (uint64, error) {
	var out uint64
	err := c.call(ctx, "getBlockHeight", func(ctx context.Context) error {
		var err error
		out, err = c.raw.GetBlockHeight(ctx, c.Commitment())
		return err
	})
	return out, err
}

// GetSignatureStatuses looks up signatures, including the node's history.
func (c *Client) GetSignatureStatuses(ctx context.Context, sigs ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
	var out *solanarpc.GetSignatureStatusesResult
	err := c.call(ctx, "getSignatureStatuses", func(ctx context.Context) error {
		var err error
		out, err = c.raw.GetSignatureStatuses(ctx, true, sigs...)
		return err
	})
	return out, err
}

// GetAccountInfo fetches an account. A missing account yields types.ErrAccountNotFound.
func (c *Client) GetAccountInfo(ctx context.Context, account solana.PublicKey) (*solanarpc.GetAccountInfoResult, error) {
	var out *solanarpc.GetAccountInfoResult
	err := c.call(ctx, "getAccountInfo", func(ctx context.Context) error {
		var err error
		out, err = c.raw.GetAccountInfoWithOpts(ctx, account, &solanarpc.GetAccountInfoOpts{
			Commitment: c.Commitment(),
		})
		if errors.Is(err, solanarpc.ErrNotFound) {
			return backoff.Permanent(types.ErrAccountNotFound)
		}
		return err
	})
	if errors.Is(err, types.ErrAccountNotFound) {
		return nil, types.ErrAccountNotFound
	}
	return out, err
}

// SendTransaction submits a signed transaction once. Node rejections are
// returned as types.RPCError; preflight failures carry the parsed program error.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return solana.Signature{}, err
		}
	}
	sig, err := c.raw.SendTransactionWithOpts(ctx, tx, opts)
	if err != nil {
		return solana.Signature{}, types.ClassifyRPCError("sendTransaction", withPreflightDetail(err))
	}
	return sig, nil
}

// SimulateTransaction simulates a transaction for debugging.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts *solanarpc.SimulateTransactionOpts) (*solanarpc.SimulateTransactionResponse, error) {
	var res *solanarpc.SimulateTransactionResponse
	err := c.call(ctx, "simulateTransaction", func(ctx context.Context) error {
		var err error
		res, err = c.raw.SimulateTransactionWithOpts(ctx, tx, opts)
		return err
	})
	return res, err
}

func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	attempt := func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, backoff.Permanent(err)
			}
		}
		err := fn(ctx)
		if err != nil && !retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	attempts := 1
	if c.cfg.Retry.Enabled && c.cfg.Retry.MaxAttempts > 1 {
		attempts = c.cfg.Retry.MaxAttempts
	}

	n := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		n++
		return attempt()
	},
		backoff.WithBackOff(c.policy()),
		backoff.WithMaxTries(uint(attempts)),
		backoff.WithNotify(func(err error, d time.Duration) {
			c.log.Debug().
				Str("op", op).
				Int("attempt", n).
				Dur("backoff", d).
				Err(err).
				Msg("rpc retry")
		}),
	)
	if err != nil {
		return types.ClassifyRPCError(op, err)
	}
	return nil
}

func (c *Client) policy() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.Retry.InitialBackoff
	if b.InitialInterval <= 0 {
		b.InitialInterval = 100 * time.Millisecond
	}
	if c.cfg.Retry.MaxBackoff > 0 {
		b.MaxInterval = c.cfg.Retry.MaxBackoff
	}
	if !c.cfg.Retry.Jitter {
		b.RandomizationFactor = 0
	}
	return b
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// transientCodes are JSON-RPC error codes a node returns while it catches
// up or sheds load. Any other JSON-RPC error is an answer, not an outage.
var transientCodes = map[int]bool{
	429:    true, // rate limited
	-32004: true, // block not available
	-32005: true, // node is behind
	-32014: true, // block status not yet available
	-32016: true, // minimum context slot not reached
}

func retryable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		return transientCodes[rpcErr.Code]
	}
	return types.IsRetryableError(err)
}

// withPreflightDetail appends the parsed preflight failure to a node error.
func withPreflightDetail(err error) error {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return err
	}
	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return err
	}
	var logs []string
	if raw, ok := data["logs"].([]interface{}); ok {
		for _, l := range raw {
			if s, ok := l.(string); ok {
				logs = append(logs, s)
			}
		}
	}
	if detail := types.ParseSimulationError(data["err"], logs); detail != nil {
		return errors.Join(err, detail)
	}
	return err
}
