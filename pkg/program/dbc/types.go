package dbc

import (
	"encoding/binary"
	"math/big"

	bin "github.com/gagliardetto/binary"
)

type BaseFeeParameters struct {
	CliffFeeNumerator uint64 `bin:"cliff_fee_numerator"`
	FirstFactor       uint16 `bin:"first_factor"`
	SecondFactor      uint64 `bin:"second_factor"`
	ThirdFactor       uint64 `bin:"third_factor"`
	BaseFeeMode       uint8  `bin:"base_fee_mode"`
}

type DynamicFeeParameters struct {
	BinStep                  uint16      `bin:"bin_step"`
	BinStepU128              bin.Uint128 `bin:"bin_step_u128"`
	FilterPeriod             uint16      `bin:"filter_period"`
	DecayPeriod              uint16      `bin:"decay_period"`
	ReductionFactor          uint16      `bin:"reduction_factor"`
	MaxVolatilityAccumulator uint32      `bin:"max_volatility_accumulator"`
	VariableFeeControl       uint32      `bin:"variable_fee_control"`
}

type PoolFeeParameters struct {
	BaseFee    BaseFeeParameters     `bin:"base_fee"`
	DynamicFee *DynamicFeeParameters `bin:"dynamic_fee optional"`
}

type LockedVestingParams struct {
	AmountPerPeriod                uint64 `bin:"amount_per_period"`
	CliffDurationFromMigrationTime uint64 `bin:"cliff_duration_from_migration_time"`
	Frequency                      uint64 `bin:"frequency"`
	NumberOfPeriod                 uint64 `bin:"number_of_period"`
	CliffUnlockAmount              uint64 `bin:"cliff_unlock_amount"`
}

type TokenSupplyParams struct {
	PreMigrationTokenSupply  uint64 `bin:"pre_migration_token_supply"`
	PostMigrationTokenSupply uint64 `bin:"post_migration_token_supply"`
}

type MigrationFee struct {
	FeePercentage        uint8 `bin:"fee_percentage"`
	CreatorFeePercentage uint8 `bin:"creator_fee_percentage"`
}

type LiquidityDistributionParameters struct {
	SqrtPrice bin.Uint128 `bin:"sqrt_price"`
	Liquidity bin.Uint128 `bin:"liquidity"`
}

type ConfigParameters struct {
	PoolFees                    PoolFeeParameters                 `bin:"pool_fees"`
	CollectFeeMode              uint8                             `bin:"collect_fee_mode"`
	MigrationOption             uint8                             `bin:"migration_option"`
	ActivationType              uint8                             `bin:"activation_type"`
	TokenType                   uint8                             `bin:"token_type"`
	TokenDecimal                uint8                             `bin:"token_decimal"`
	PartnerLpPercentage         uint8                             `bin:"partner_lp_percentage"`
	PartnerLockedLpPercentage   uint8                             `bin:"partner_locked_lp_percentage"`
	CreatorLpPercentage         uint8                             `bin:"creator_lp_percentage"`
	CreatorLockedLpPercentage   uint8                             `bin:"creator_locked_lp_percentage"`
	MigrationQuoteThreshold     uint64                            `bin:"migration_quote_threshold"`
	SqrtStartPrice              bin.Uint128                       `bin:"sqrt_start_price"`
	LockedVesting               LockedVestingParams               `bin:"locked_vesting"`
	MigrationFeeOption          uint8                             `bin:"migration_fee_option"`
	TokenSupply                 *TokenSupplyParams                `bin:"token_supply optional"`
	CreatorTradingFeePercentage uint8                             `bin:"creator_trading_fee_percentage"`
	TokenUpdateAuthority        uint8                             `bin:"token_update_authority"`
	MigrationFee                MigrationFee                      `bin:"migration_fee"`
	Padding0                    [7]uint8                          `bin:"padding_0"`
	Padding1                    [7]uint64                         `bin:"padding_1"`
	Curve                       []LiquidityDistributionParameters `bin:"curve"`
}

type InitializePoolParameters struct {
	Name   string `bin:"name"`
	Symbol string `bin:"symbol"`
	Uri    string `bin:"uri"`
}

// U128 converts a non-negative integer of at most 128 bits to its wire form.
// Callers validate the range first.
func U128(v *big.Int) bin.Uint128 {
	out := bin.Uint128{Endianness: binary.LittleEndian}
	if v == nil {
		return out
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	out.Lo = new(big.Int).And(v, mask).Uint64()
	out.Hi = new(big.Int).Rsh(v, 64).Uint64()
	return out
}
