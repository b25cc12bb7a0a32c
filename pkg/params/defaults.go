package params

import (
	"math/big"

	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
)

// DefaultConfigInput returns the launch configuration used on devnet: a linear
// fee scheduler at a 0.25% cliff fee, dynamic fees on, migration to DAMM v2
// once 0.08 SOL is raised and a two point curve ending at the max sqrt price.
// The payer also claims fees and receives leftovers.
func DefaultConfigInput(payer, config solana.PublicKey) ConfigInput {
	return ConfigInput{
		Payer:            payer,
		Config:           config,
		FeeClaimer:       payer,
		LeftoverReceiver: payer,
		QuoteMint:        constants.WSOLMint,
		BaseFee: BaseFee{
			CliffFeeNumerator: MustUint("2500000"),
			FirstFactor:       0,
			SecondFactor:      Uint(0),
			ThirdFactor:       Uint(0),
			Mode:              BaseFeeModeFeeSchedulerLinear,
		},
		DynamicFee: &DynamicFee{
			BinStep:                  1,
			BinStepU128:              MustUint("1844674407370955"),
			FilterPeriod:             10,
			DecayPeriod:              120,
			ReductionFactor:          1000,
			VariableFeeControl:       100000,
			MaxVolatilityAccumulator: 100000,
		},
		ActivationType:            ActivationTypeSlot,
		CollectFeeMode:            CollectFeeModeOutputToken,
		MigrationOption:           MigrationOptionMeteoraDAMMV2,
		TokenType:                 TokenTypeToken2022,
		TokenDecimal:              9,
		TokenUpdateAuthority:      TokenUpdateAuthorityImmutable,
		MigrationQuoteThreshold:   MustUint("80000000"),
		PartnerLpPercentage:       0,
		CreatorLpPercentage:       0,
		PartnerLockedLpPercentage: 100,
		CreatorLockedLpPercentage: 0,
		SqrtStartPrice:            MustUint("58333726687135158"),
		LockedVesting: LockedVesting{
			AmountPerPeriod:                Uint(0),
			CliffDurationFromMigrationTime: Uint(0),
			Frequency:                      Uint(0),
			NumberOfPeriod:                 Uint(0),
			CliffUnlockAmount:              Uint(0),
		},
		MigrationFeeOption: MigrationFeeFixedBps600,
		TokenSupply: &TokenSupply{
			PreMigration:  MustUint("10000000000000000000"),
			PostMigration: MustUint("10000000000000000000"),
		},
		CreatorTradingFeePercentage: 0,
		MigrationFee: MigrationFee{
			FeePercentage:        25,
			CreatorFeePercentage: 50,
		},
		Curve: []CurvePoint{
			{
				SqrtPrice: MustUint("233334906748540631"),
				Liquidity: MustUint("622226417996106429201027821619672729"),
			},
			{
				SqrtPrice: new(big.Int).Set(constants.MaxSqrtPrice),
				Liquidity: Uint(1),
			},
		},
	}
}
