package config

import (
	"fmt"
	"io"
	"time"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
)

// Network is the cluster the workflows talk to. It picks the default RPC
// endpoint and the explorer cluster parameter.
type Network string

const (
	NetworkMainnet  Network = "mainnet"
	NetworkTestnet  Network = "testnet"
	NetworkDevnet   Network = "devnet"
	NetworkLocalnet Network = "localnet"
	NetworkCustom   Network = "custom"
)

var rpcURLs = map[Network]string{
	NetworkMainnet:  solanarpc.MainNetBeta_RPC,
	NetworkTestnet:  solanarpc.TestNet_RPC,
	NetworkDevnet:   solanarpc.DevNet_RPC,
	NetworkLocalnet: solanarpc.LocalNet_RPC,
}

// ParseNetwork maps a cluster name to a Network.
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case NetworkMainnet, NetworkTestnet, NetworkDevnet, NetworkLocalnet, NetworkCustom:
		return Network(s), nil
	case "mainnet-beta":
		return NetworkMainnet, nil
	}
	return "", fmt.Errorf("unknown network %q", s)
}

// DefaultRPCURL returns the public endpoint of a known network, or "".
func DefaultRPCURL(network Network) string {
	return rpcURLs[network]
}

// ExplorerTxURL links a transaction signature on solscan.
func ExplorerTxURL(network Network, signature string) string {
	return explorerURL(network, "tx", signature)
}

// ExplorerAccountURL links an account on solscan.
func ExplorerAccountURL(network Network, address string) string {
	return explorerURL(network, "account", address)
}

func explorerURL(network Network, kind, id string) string {
	url := "https://solscan.io/" + kind + "/" + id
	switch network {
	case NetworkDevnet, NetworkTestnet:
		url += "?cluster=" + string(network)
	case NetworkLocalnet:
		url += "?cluster=custom&customUrl=" + solanarpc.LocalNet_RPC
	}
	return url
}

// RetryConfig controls retries of read calls. Broadcasts are never retried.
type RetryConfig struct {
	Enabled        bool
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Jitter         bool
}

// RateLimitConfig throttles outbound RPC calls.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// RPCConfig is the node connection used by both workflows.
type RPCConfig struct {
	Network    Network
	RPCURL     string
	Commitment string
	Timeout    time.Duration
	Retry      RetryConfig
	RateLimit  RateLimitConfig
	Logger     zerolog.Logger
}

// DefaultRPCConfig targets devnet at confirmed commitment.
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		Network:    NetworkDevnet,
		RPCURL:     DefaultRPCURL(NetworkDevnet),
		Commitment: string(solanarpc.CommitmentConfirmed),
		Timeout:    20 * time.Second,
		Retry: RetryConfig{
			Enabled:        true,
			MaxAttempts:    3,
			InitialBackoff: 150 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Jitter:         true,
		},
		RateLimit: RateLimitConfig{
			RPS:   8,
			Burst: 16,
		},
		Logger: zerolog.New(io.Discard),
	}
}

// ResolveRPCURL returns RPCURL if set, otherwise the network default.
func (c RPCConfig) ResolveRPCURL() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	return DefaultRPCURL(c.Network)
}

// CommitmentType returns the commitment, defaulting to confirmed.
func (c RPCConfig) CommitmentType() solanarpc.CommitmentType {
	if c.Commitment == "" {
		return solanarpc.CommitmentConfirmed
	}
	return solanarpc.CommitmentType(c.Commitment)
}

// Validate rejects settings no node would accept.
func (c RPCConfig) Validate() error {
	switch c.CommitmentType() {
	case solanarpc.CommitmentProcessed, solanarpc.CommitmentConfirmed, solanarpc.CommitmentFinalized:
	default:
		return fmt.Errorf("unknown commitment %q", c.Commitment)
	}
	if c.ResolveRPCURL() == "" {
		return fmt.Errorf("no RPC URL for network %q", c.Network)
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
