package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/wallet"
)

// Environment keys read by Load.
const (
	EnvAdminKey      = "ADMIN_KEY"
	EnvRPCURL        = "DBC_RPC_URL"
	EnvNetwork       = "DBC_NETWORK"
	EnvCommitment    = "DBC_COMMITMENT"
	EnvConfigAddress = "DBC_CONFIG_ADDRESS"
	EnvJitoEndpoint  = "DBC_JITO_ENDPOINT"
)

// Settings is the process configuration resolved once at startup.
type Settings struct {
	RPC           RPCConfig
	Admin         wallet.Local
	ConfigAddress solana.PublicKey // zero when not provided
	JitoEndpoint  string
}

// LoadOptions selects where Load looks for values.
type LoadOptions struct {
	// EnvFiles are dotenv files loaded without overriding the environment.
	// Missing files are ignored.
	EnvFiles []string
	// Base seeds RPC values before the environment is applied.
	Base RPCConfig
	// Lookup replaces the process environment, mainly for tests.
	Lookup func(key string) (string, bool)
}

// Load builds Settings from dotenv files and the environment.
// A missing or malformed ADMIN_KEY fails before any network I/O.
func Load(opts LoadOptions) (Settings, error) {
	if len(opts.EnvFiles) > 0 && opts.Lookup == nil {
		for _, f := range opts.EnvFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return Settings{}, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	v := viper.New()
	for _, key := range []string{EnvAdminKey, EnvRPCURL, EnvNetwork, EnvCommitment, EnvConfigAddress, EnvJitoEndpoint} {
		if opts.Lookup != nil {
			if val, ok := opts.Lookup(key); ok {
				v.Set(key, val)
			}
			continue
		}
		_ = v.BindEnv(key)
	}

	rpcCfg := opts.Base
	if rpcCfg.Commitment == "" {
		rpcCfg = DefaultRPCConfig()
	}
	if s := strings.TrimSpace(v.GetString(EnvNetwork)); s != "" {
		network, err := ParseNetwork(s)
		if err != nil {
			return Settings{}, err
		}
		rpcCfg.Network = network
		rpcCfg.RPCURL = DefaultRPCURL(network)
	}
	if s := strings.TrimSpace(v.GetString(EnvRPCURL)); s != "" {
		rpcCfg.RPCURL = s
	}
	if s := strings.TrimSpace(v.GetString(EnvCommitment)); s != "" {
		rpcCfg.Commitment = s
	}

	if err := rpcCfg.Validate(); err != nil {
		return Settings{}, err
	}

	secret := v.GetString(EnvAdminKey)
	if strings.TrimSpace(secret) == "" {
		return Settings{}, fmt.Errorf("%w: %s is not set", types.ErrMalformedCredential, EnvAdminKey)
	}
	admin, err := wallet.ParseSecret(secret)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", EnvAdminKey, err)
	}

	out := Settings{
		RPC:          rpcCfg,
		Admin:        admin,
		JitoEndpoint: strings.TrimSpace(v.GetString(EnvJitoEndpoint)),
	}
	if s := strings.TrimSpace(v.GetString(EnvConfigAddress)); s != "" {
		pk, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return Settings{}, types.NewValidationError(EnvConfigAddress, fmt.Sprintf("invalid pubkey: %v", err))
		}
		out.ConfigAddress = pk
	}
	return out, nil
}
