package dbc

import (
	"bytes"

	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
)

// DeriveEventAuthorityPDA returns the Anchor event authority of the program.
func DeriveEventAuthorityPDA() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(constants.SeedEventAuthority)}, ProgramKey)
}

// DerivePoolPDA returns the virtual pool address for config and mint pair.
// The larger mint key is seeded first.
func DerivePoolPDA(config, baseMint, quoteMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	first, second := quoteMint, baseMint
	if bytes.Compare(baseMint[:], quoteMint[:]) > 0 {
		first, second = baseMint, quoteMint
	}
	return solana.FindProgramAddress([][]byte{
		[]byte(constants.SeedPool),
		config[:],
		first[:],
		second[:],
	}, ProgramKey)
}

// DeriveTokenVaultPDA returns the vault holding mint tokens for pool.
func DeriveTokenVaultPDA(mint, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(constants.SeedTokenVault),
		mint[:],
		pool[:],
	}, ProgramKey)
}

// DeriveMintMetadataPDA returns the Metaplex metadata account of mint.
func DeriveMintMetadataPDA(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(constants.SeedMetadata),
		constants.MetadataProgramID[:],
		mint[:],
	}, constants.MetadataProgramID)
}
