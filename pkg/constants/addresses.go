package constants

import "github.com/gagliardetto/solana-go"

// Programs the create instructions reference.
var (
	SystemProgramID          = solana.SystemProgramID
	TokenProgramID           = solana.TokenProgramID
	Token2022ProgramID       = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
	MetadataProgramID        = solana.MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

	DBCProgramID     = solana.MustPublicKeyFromBase58("dbcij3LWUppWqq96dh6gJWwBifmcGfLSB5D4DuSMaqN")
	DBCPoolAuthority = solana.MustPublicKeyFromBase58("FhVo3mqL8PW5pH5U2CN4XE33DokiyZnUwuGpH2hmHLuM")
)

// WSOLMint is the native mint. Pools quoted in SOL use it.
var WSOLMint = solana.WrappedSol

// Seeds of the program-derived addresses in pkg/program/dbc.
const (
	SeedPool           = "pool"
	SeedTokenVault     = "token_vault"
	SeedMetadata       = "metadata"
	SeedEventAuthority = "__event_authority"
)
