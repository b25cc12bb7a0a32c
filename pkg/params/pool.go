package params

import (
	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

// PoolInput describes a pool minted against an existing configuration.
type PoolInput struct {
	Config    solana.PublicKey
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey // defaults to WSOL
	Payer     solana.PublicKey
	Creator   solana.PublicKey
	TokenType TokenType

	Name   string
	Symbol string
	URI    string
}

// Pool is a validated pool creation descriptor.
type Pool struct {
	in PoolInput
}

// NewPool validates in and returns an immutable descriptor.
// Whether Config exists on chain is left to the network.
func NewPool(in PoolInput) (*Pool, error) {
	if in.QuoteMint.IsZero() {
		in.QuoteMint = constants.WSOLMint
	}
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{
		"config":   in.Config,
		"baseMint": in.BaseMint,
		"payer":    in.Payer,
		"creator":  in.Creator,
	}); err != nil {
		return nil, err
	}
	if in.BaseMint.Equals(in.QuoteMint) {
		return nil, types.NewValidationError("baseMint", "must differ from quoteMint")
	}
	if in.TokenType > TokenTypeToken2022 {
		return nil, types.NewValidationError("tokenType", "unknown token type")
	}
	if err := types.ValidateStringLength("name", in.Name, constants.MaxNameLength); err != nil {
		return nil, err
	}
	if err := types.ValidateStringLength("symbol", in.Symbol, constants.MaxSymbolLength); err != nil {
		return nil, err
	}
	if err := types.ValidateStringLength("uri", in.URI, constants.MaxURILength); err != nil {
		return nil, err
	}
	return &Pool{in: in}, nil
}

// Input returns a copy of the validated description.
func (p *Pool) Input() PoolInput {
	return p.in
}

// Config is the referenced configuration account.
func (p *Pool) Config() solana.PublicKey {
	return p.in.Config
}

// BaseMint is the new asset minted by the pool.
func (p *Pool) BaseMint() solana.PublicKey {
	return p.in.BaseMint
}

// Payer funds pool creation.
func (p *Pool) Payer() solana.PublicKey {
	return p.in.Payer
}
