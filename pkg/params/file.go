package params

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/gagliardetto/solana-go"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

// ConfigFile is the on-disk form of a configuration description. Integer
// amounts are strings so that u64/u128 values survive YAML and JSON decoding.
// Empty keys fall back to the payer (fee claimer, leftover receiver) or WSOL
// (quote mint).
type ConfigFile struct {
	FeeClaimer       string `mapstructure:"fee_claimer"`
	LeftoverReceiver string `mapstructure:"leftover_receiver"`
	QuoteMint        string `mapstructure:"quote_mint"`

	BaseFee struct {
		CliffFeeNumerator string `mapstructure:"cliff_fee_numerator"`
		FirstFactor       uint16 `mapstructure:"first_factor"`
		SecondFactor      string `mapstructure:"second_factor"`
		ThirdFactor       string `mapstructure:"third_factor"`
		Mode              uint8  `mapstructure:"mode"`
	} `mapstructure:"base_fee"`

	DynamicFee *struct {
		BinStep                  uint16 `mapstructure:"bin_step"`
		BinStepU128              string `mapstructure:"bin_step_u128"`
		FilterPeriod             uint16 `mapstructure:"filter_period"`
		DecayPeriod              uint16 `mapstructure:"decay_period"`
		ReductionFactor          uint16 `mapstructure:"reduction_factor"`
		VariableFeeControl       uint32 `mapstructure:"variable_fee_control"`
		MaxVolatilityAccumulator uint32 `mapstructure:"max_volatility_accumulator"`
	} `mapstructure:"dynamic_fee"`

	ActivationType       uint8 `mapstructure:"activation_type"`
	CollectFeeMode       uint8 `mapstructure:"collect_fee_mode"`
	MigrationOption      uint8 `mapstructure:"migration_option"`
	TokenType            uint8 `mapstructure:"token_type"`
	TokenDecimal         uint8 `mapstructure:"token_decimal"`
	TokenUpdateAuthority uint8 `mapstructure:"token_update_authority"`

	MigrationQuoteThreshold string `mapstructure:"migration_quote_threshold"`

	PartnerLpPercentage       uint8 `mapstructure:"partner_lp_percentage"`
	CreatorLpPercentage       uint8 `mapstructure:"creator_lp_percentage"`
	PartnerLockedLpPercentage uint8 `mapstructure:"partner_locked_lp_percentage"`
	CreatorLockedLpPercentage uint8 `mapstructure:"creator_locked_lp_percentage"`

	SqrtStartPrice string `mapstructure:"sqrt_start_price"`

	LockedVesting struct {
		AmountPerPeriod                string `mapstructure:"amount_per_period"`
		CliffDurationFromMigrationTime string `mapstructure:"cliff_duration_from_migration_time"`
		Frequency                      string `mapstructure:"frequency"`
		NumberOfPeriod                 string `mapstructure:"number_of_period"`
		CliffUnlockAmount              string `mapstructure:"cliff_unlock_amount"`
	} `mapstructure:"locked_vesting"`

	MigrationFeeOption uint8 `mapstructure:"migration_fee_option"`

	TokenSupply *struct {
		PreMigration  string `mapstructure:"pre_migration"`
		PostMigration string `mapstructure:"post_migration"`
	} `mapstructure:"token_supply"`

	CreatorTradingFeePercentage uint8 `mapstructure:"creator_trading_fee_percentage"`

	MigrationFee struct {
		FeePercentage        uint8 `mapstructure:"fee_percentage"`
		CreatorFeePercentage uint8 `mapstructure:"creator_fee_percentage"`
	} `mapstructure:"migration_fee"`

	Curve []struct {
		SqrtPrice string `mapstructure:"sqrt_price"`
		Liquidity string `mapstructure:"liquidity"`
	} `mapstructure:"curve"`
}

// LoadConfigFile reads a configuration description (yaml, json or toml).
func LoadConfigFile(path string) (ConfigFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return ConfigFile{}, fmt.Errorf("read params file: %w", err)
	}
	var f ConfigFile
	hook := mapstructure.ComposeDecodeHookFunc(
		quotedIntegers,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&f, viper.DecodeHook(hook)); err != nil {
		return ConfigFile{}, fmt.Errorf("decode params file: %w", err)
	}
	return f, nil
}

// quotedIntegers refuses numeric literals for string fields. JSON decodes
// every number as float64, so an unquoted u64 or u128 would reach the
// string field already rounded.
func quotedIntegers(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil, fmt.Errorf("numeric literal %v must be written as a quoted string", data)
	}
	return data, nil
}

// Input converts the file into a ConfigInput for payer and config.
// Integer fields that are empty decode as zero.
func (f ConfigFile) Input(payer, config solana.PublicKey) (ConfigInput, error) {
	p := fileParser{}
	in := ConfigInput{
		Payer:            payer,
		Config:           config,
		FeeClaimer:       p.key("fee_claimer", f.FeeClaimer, payer),
		LeftoverReceiver: p.key("leftover_receiver", f.LeftoverReceiver, payer),
		QuoteMint:        p.key("quote_mint", f.QuoteMint, constants.WSOLMint),
		BaseFee: BaseFee{
			CliffFeeNumerator: p.uint("base_fee.cliff_fee_numerator", f.BaseFee.CliffFeeNumerator),
			FirstFactor:       f.BaseFee.FirstFactor,
			SecondFactor:      p.uint("base_fee.second_factor", f.BaseFee.SecondFactor),
			ThirdFactor:       p.uint("base_fee.third_factor", f.BaseFee.ThirdFactor),
			Mode:              BaseFeeMode(f.BaseFee.Mode),
		},
		ActivationType:            ActivationType(f.ActivationType),
		CollectFeeMode:            CollectFeeMode(f.CollectFeeMode),
		MigrationOption:           MigrationOption(f.MigrationOption),
		TokenType:                 TokenType(f.TokenType),
		TokenDecimal:              f.TokenDecimal,
		TokenUpdateAuthority:      TokenUpdateAuthority(f.TokenUpdateAuthority),
		MigrationQuoteThreshold:   p.uint("migration_quote_threshold", f.MigrationQuoteThreshold),
		PartnerLpPercentage:       f.PartnerLpPercentage,
		CreatorLpPercentage:       f.CreatorLpPercentage,
		PartnerLockedLpPercentage: f.PartnerLockedLpPercentage,
		CreatorLockedLpPercentage: f.CreatorLockedLpPercentage,
		SqrtStartPrice:            p.uint("sqrt_start_price", f.SqrtStartPrice),
		LockedVesting: LockedVesting{
			AmountPerPeriod:                p.uint("locked_vesting.amount_per_period", f.LockedVesting.AmountPerPeriod),
			CliffDurationFromMigrationTime: p.uint("locked_vesting.cliff_duration_from_migration_time", f.LockedVesting.CliffDurationFromMigrationTime),
			Frequency:                      p.uint("locked_vesting.frequency", f.LockedVesting.Frequency),
			NumberOfPeriod:                 p.uint("locked_vesting.number_of_period", f.LockedVesting.NumberOfPeriod),
			CliffUnlockAmount:              p.uint("locked_vesting.cliff_unlock_amount", f.LockedVesting.CliffUnlockAmount),
		},
		MigrationFeeOption:          MigrationFeeOption(f.MigrationFeeOption),
		CreatorTradingFeePercentage: f.CreatorTradingFeePercentage,
		MigrationFee: MigrationFee{
			FeePercentage:        f.MigrationFee.FeePercentage,
			CreatorFeePercentage: f.MigrationFee.CreatorFeePercentage,
		},
	}
	if df := f.DynamicFee; df != nil {
		in.DynamicFee = &DynamicFee{
			BinStep:                  df.BinStep,
			BinStepU128:              p.uint("dynamic_fee.bin_step_u128", df.BinStepU128),
			FilterPeriod:             df.FilterPeriod,
			DecayPeriod:              df.DecayPeriod,
			ReductionFactor:          df.ReductionFactor,
			VariableFeeControl:       df.VariableFeeControl,
			MaxVolatilityAccumulator: df.MaxVolatilityAccumulator,
		}
	}
	if ts := f.TokenSupply; ts != nil {
		in.TokenSupply = &TokenSupply{
			PreMigration:  p.uint("token_supply.pre_migration", ts.PreMigration),
			PostMigration: p.uint("token_supply.post_migration", ts.PostMigration),
		}
	}
	for i, pt := range f.Curve {
		in.Curve = append(in.Curve, CurvePoint{
			SqrtPrice: p.uint(fmt.Sprintf("curve[%d].sqrt_price", i), pt.SqrtPrice),
			Liquidity: p.uint(fmt.Sprintf("curve[%d].liquidity", i), pt.Liquidity),
		})
	}
	if p.err != nil {
		return ConfigInput{}, p.err
	}
	return in, nil
}

// fileParser keeps the first conversion error.
type fileParser struct {
	err error
}

func (p *fileParser) uint(field, s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	v, err := ParseUint(s)
	if err != nil {
		if p.err == nil {
			p.err = types.NewValidationError(field, err.Error())
		}
		return new(big.Int)
	}
	return v
}

func (p *fileParser) key(field, s string, fallback solana.PublicKey) solana.PublicKey {
	if s == "" {
		return fallback
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		if p.err == nil {
			p.err = types.NewValidationError(field, fmt.Sprintf("invalid pubkey: %v", err))
		}
		return solana.PublicKey{}
	}
	return pk
}
