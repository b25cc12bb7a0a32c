// Package jito routes signed transactions through a Jito block engine.
//
// A bundle only lands if it pays a tip, so callers append TipInstruction to
// their draft before signing.
package jito

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	jitorpc "github.com/jito-labs/jito-go-rpc"
)

const (
	MainnetBlockEngine = "https://mainnet.block-engine.jito.wtf/api/v1"
	TestnetBlockEngine = "https://testnet.block-engine.jito.wtf/api/v1"

	// DefaultTipLamports is the tip used when none is configured.
	DefaultTipLamports uint64 = 1_000_000
)

// ErrRateLimited marks a bundle the block engine refused to accept.
var ErrRateLimited = errors.New("jito rate limited")

// MainnetTipAccounts are the published tip accounts.
var MainnetTipAccounts = []solana.PublicKey{
	solana.MustPublicKeyFromBase58("96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5"),
	solana.MustPublicKeyFromBase58("HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe"),
	solana.MustPublicKeyFromBase58("Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY"),
	solana.MustPublicKeyFromBase58("ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49"),
	solana.MustPublicKeyFromBase58("DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh"),
	solana.MustPublicKeyFromBase58("ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt"),
	solana.MustPublicKeyFromBase58("DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL"),
	solana.MustPublicKeyFromBase58("3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT"),
}

// RandomTipAccount picks a tip account without a network call.
func RandomTipAccount() solana.PublicKey {
	return MainnetTipAccounts[rand.Intn(len(MainnetTipAccounts))]
}

// TipInstruction transfers lamports from payer to a random tip account.
func TipInstruction(payer solana.PublicKey, lamports uint64) solana.Instruction {
	if lamports == 0 {
		lamports = DefaultTipLamports
	}
	return system.NewTransferInstruction(lamports, payer, RandomTipAccount()).Build()
}

// Client sends single-transaction bundles, rotating across endpoints.
type Client struct {
	endpoints []string
	uuid      string
	next      uint32
}

// NewClient creates a client for one endpoint. uuid may be empty.
func NewClient(endpoint, uuid string) *Client {
	if endpoint == "" {
		endpoint = MainnetBlockEngine
	}
	return NewClientWithEndpoints([]string{endpoint}, uuid)
}

// NewClientWithEndpoints creates a client that rotates across endpoints.
func NewClientWithEndpoints(endpoints []string, uuid string) *Client {
	if len(endpoints) == 0 {
		endpoints = []string{MainnetBlockEngine}
	}
	return &Client{endpoints: endpoints, uuid: uuid}
}

// Endpoints returns the configured block engine URLs.
func (c *Client) Endpoints() []string {
	return append([]string(nil), c.endpoints...)
}

func (c *Client) endpoint() string {
	idx := atomic.AddUint32(&c.next, 1) - 1
	return c.endpoints[int(idx)%len(c.endpoints)]
}

// SendTransaction submits tx as a one-transaction bundle. It is attempted
// once; a rate-limited attempt is reported with ErrRateLimited.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}
	if tx == nil || len(tx.Signatures) == 0 {
		return solana.Signature{}, fmt.Errorf("jito: transaction is not signed")
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("marshal transaction: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	client := jitorpc.NewJitoJsonRpcClient(c.endpoint(), c.uuid)
	resp, err := client.SendBundle([][]string{{encoded}})
	if err != nil {
		if isRateLimitError(err) {
			return solana.Signature{}, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return solana.Signature{}, fmt.Errorf("jito send bundle: %w", err)
	}

	var bundleID string
	if err := json.Unmarshal(resp, &bundleID); err != nil {
		return solana.Signature{}, fmt.Errorf("unmarshal bundle response: %w", err)
	}
	if bundleID == "" {
		return solana.Signature{}, fmt.Errorf("jito: empty bundle id")
	}
	return tx.Signatures[0], nil
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "congested") ||
		strings.Contains(msg, "429")
}
