package params

// BaseFeeMode selects how the base fee decays after activation.
type BaseFeeMode uint8

const (
	BaseFeeModeFeeSchedulerLinear BaseFeeMode = iota
	BaseFeeModeFeeSchedulerExponential
	BaseFeeModeRateLimiter
)

// ActivationType defines whether activation points are slots or timestamps.
type ActivationType uint8

const (
	ActivationTypeSlot ActivationType = iota
	ActivationTypeTimestamp
)

// CollectFeeMode defines which side of a swap fees are taken from.
type CollectFeeMode uint8

const (
	CollectFeeModeQuoteToken CollectFeeMode = iota
	CollectFeeModeOutputToken
)

// MigrationOption names the venue a pool migrates to.
type MigrationOption uint8

const (
	MigrationOptionMeteoraDAMM MigrationOption = iota
	MigrationOptionMeteoraDAMMV2
)

// TokenType defines the token standard of the base mint.
type TokenType uint8

const (
	TokenTypeSPL TokenType = iota
	TokenTypeToken2022
)

// MigrationFeeOption selects the fee tier of the migrated pool.
type MigrationFeeOption uint8

const (
	MigrationFeeFixedBps25 MigrationFeeOption = iota
	MigrationFeeFixedBps30
	MigrationFeeFixedBps100
	MigrationFeeFixedBps200
	MigrationFeeFixedBps400
	MigrationFeeFixedBps600
	MigrationFeeCustomizable // DAMM v2 only
)

// TokenUpdateAuthority defines who may update the base mint metadata.
type TokenUpdateAuthority uint8

const (
	TokenUpdateAuthorityCreator TokenUpdateAuthority = iota
	TokenUpdateAuthorityImmutable
	TokenUpdateAuthorityPartner
	TokenUpdateAuthorityCreatorUpdateAndMint
	TokenUpdateAuthorityPartnerUpdateAndMint
)

const (
	minTokenDecimal = 6
	maxTokenDecimal = 9
)
