package params

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

// BaseFee is the base fee segment. CliffFeeNumerator is over constants.FeeDenominator.
type BaseFee struct {
	CliffFeeNumerator *big.Int
	FirstFactor       uint16
	SecondFactor      *big.Int
	ThirdFactor       *big.Int
	Mode              BaseFeeMode
}

// DynamicFee is the volatility-driven fee component.
type DynamicFee struct {
	BinStep                  uint16
	BinStepU128              *big.Int
	FilterPeriod             uint16
	DecayPeriod              uint16
	ReductionFactor          uint16
	VariableFeeControl       uint32
	MaxVolatilityAccumulator uint32
}

// LockedVesting schedules the base tokens locked at migration.
type LockedVesting struct {
	AmountPerPeriod                *big.Int
	CliffDurationFromMigrationTime *big.Int
	Frequency                      *big.Int
	NumberOfPeriod                 *big.Int
	CliffUnlockAmount              *big.Int
}

// TokenSupply fixes the base supply before and after migration.
type TokenSupply struct {
	PreMigration  *big.Int
	PostMigration *big.Int
}

// MigrationFee splits the migration fee between partner and creator.
type MigrationFee struct {
	FeePercentage        uint8
	CreatorFeePercentage uint8
}

// CurvePoint is one (sqrtPrice, liquidity) breakpoint of the bonding curve.
type CurvePoint struct {
	SqrtPrice *big.Int
	Liquidity *big.Int
}

// ConfigInput is the literal description of a pool configuration.
type ConfigInput struct {
	Payer            solana.PublicKey
	Config           solana.PublicKey
	FeeClaimer       solana.PublicKey
	LeftoverReceiver solana.PublicKey
	QuoteMint        solana.PublicKey

	BaseFee    BaseFee
	DynamicFee *DynamicFee

	ActivationType       ActivationType
	CollectFeeMode       CollectFeeMode
	MigrationOption      MigrationOption
	TokenType            TokenType
	TokenDecimal         uint8
	TokenUpdateAuthority TokenUpdateAuthority

	MigrationQuoteThreshold *big.Int

	PartnerLpPercentage       uint8
	CreatorLpPercentage       uint8
	PartnerLockedLpPercentage uint8
	CreatorLockedLpPercentage uint8

	SqrtStartPrice *big.Int
	LockedVesting  LockedVesting

	MigrationFeeOption          MigrationFeeOption
	TokenSupply                 *TokenSupply
	CreatorTradingFeePercentage uint8
	MigrationFee                MigrationFee

	Curve []CurvePoint
}

// Config is a validated configuration descriptor. It can only be obtained
// from NewConfig and holds its own copy of every big integer.
type Config struct {
	in ConfigInput
}

// NewConfig validates in and returns an immutable descriptor.
func NewConfig(in ConfigInput) (*Config, error) {
	cp := in.clone()
	if err := cp.validate(); err != nil {
		return nil, err
	}
	return &Config{in: cp}, nil
}

// Input returns a deep copy of the validated description.
func (c *Config) Input() ConfigInput {
	return c.in.clone()
}

// Address is the public key of the configuration account to create.
func (c *Config) Address() solana.PublicKey {
	return c.in.Config
}

// Payer funds the configuration account.
func (c *Config) Payer() solana.PublicKey {
	return c.in.Payer
}

// QuoteMint is the quote asset every pool of this configuration trades against.
func (c *Config) QuoteMint() solana.PublicKey {
	return c.in.QuoteMint
}

// TokenType is the base token standard pools of this configuration mint.
func (c *Config) TokenType() TokenType {
	return c.in.TokenType
}

func (in ConfigInput) clone() ConfigInput {
	out := in
	out.BaseFee.CliffFeeNumerator = cloneInt(in.BaseFee.CliffFeeNumerator)
	out.BaseFee.SecondFactor = cloneInt(in.BaseFee.SecondFactor)
	out.BaseFee.ThirdFactor = cloneInt(in.BaseFee.ThirdFactor)
	if in.DynamicFee != nil {
		df := *in.DynamicFee
		df.BinStepU128 = cloneInt(in.DynamicFee.BinStepU128)
		out.DynamicFee = &df
	}
	out.MigrationQuoteThreshold = cloneInt(in.MigrationQuoteThreshold)
	out.SqrtStartPrice = cloneInt(in.SqrtStartPrice)
	out.LockedVesting = LockedVesting{
		AmountPerPeriod:                cloneInt(in.LockedVesting.AmountPerPeriod),
		CliffDurationFromMigrationTime: cloneInt(in.LockedVesting.CliffDurationFromMigrationTime),
		Frequency:                      cloneInt(in.LockedVesting.Frequency),
		NumberOfPeriod:                 cloneInt(in.LockedVesting.NumberOfPeriod),
		CliffUnlockAmount:              cloneInt(in.LockedVesting.CliffUnlockAmount),
	}
	if in.TokenSupply != nil {
		out.TokenSupply = &TokenSupply{
			PreMigration:  cloneInt(in.TokenSupply.PreMigration),
			PostMigration: cloneInt(in.TokenSupply.PostMigration),
		}
	}
	if in.Curve != nil {
		out.Curve = make([]CurvePoint, len(in.Curve))
		for i, p := range in.Curve {
			out.Curve[i] = CurvePoint{SqrtPrice: cloneInt(p.SqrtPrice), Liquidity: cloneInt(p.Liquidity)}
		}
	}
	return out
}

func (in *ConfigInput) validate() error {
	if err := types.ValidatePublicKeys(map[string]solana.PublicKey{
		"payer":            in.Payer,
		"config":           in.Config,
		"feeClaimer":       in.FeeClaimer,
		"leftoverReceiver": in.LeftoverReceiver,
		"quoteMint":        in.QuoteMint,
	}); err != nil {
		return err
	}
	if in.Config.Equals(in.Payer) {
		return types.NewValidationError("config", "must differ from payer")
	}

	if err := in.validateFees(); err != nil {
		return err
	}
	if err := in.validateModes(); err != nil {
		return err
	}
	if err := in.validateSplits(); err != nil {
		return err
	}
	if err := in.validateAmounts(); err != nil {
		return err
	}
	return validateCurve(in.SqrtStartPrice, in.Curve)
}

func (in *ConfigInput) validateFees() error {
	bf := in.BaseFee
	if err := types.ValidateUint("baseFee.cliffFeeNumerator", bf.CliffFeeNumerator, 64); err != nil {
		return err
	}
	n := bf.CliffFeeNumerator.Uint64()
	if n < constants.MinFeeNumerator || n > constants.MaxFeeNumerator {
		return types.NewValidationError("baseFee.cliffFeeNumerator",
			fmt.Sprintf("must be within [%d, %d], got %d", constants.MinFeeNumerator, constants.MaxFeeNumerator, n))
	}
	if err := types.ValidateUint("baseFee.secondFactor", orZero(bf.SecondFactor), 64); err != nil {
		return err
	}
	if err := types.ValidateUint("baseFee.thirdFactor", orZero(bf.ThirdFactor), 64); err != nil {
		return err
	}
	if bf.Mode > BaseFeeModeRateLimiter {
		return types.NewValidationError("baseFee.mode", fmt.Sprintf("unknown mode %d", bf.Mode))
	}
	if df := in.DynamicFee; df != nil {
		if df.BinStep == 0 {
			return types.NewValidationError("dynamicFee.binStep", "must be greater than 0")
		}
		if err := types.ValidateUint("dynamicFee.binStepU128", df.BinStepU128, 128); err != nil {
			return err
		}
	}
	return nil
}

func (in *ConfigInput) validateModes() error {
	switch {
	case in.ActivationType > ActivationTypeTimestamp:
		return types.NewValidationError("activationType", fmt.Sprintf("unknown value %d", in.ActivationType))
	case in.CollectFeeMode > CollectFeeModeOutputToken:
		return types.NewValidationError("collectFeeMode", fmt.Sprintf("unknown value %d", in.CollectFeeMode))
	case in.MigrationOption > MigrationOptionMeteoraDAMMV2:
		return types.NewValidationError("migrationOption", fmt.Sprintf("unknown value %d", in.MigrationOption))
	case in.TokenType > TokenTypeToken2022:
		return types.NewValidationError("tokenType", fmt.Sprintf("unknown value %d", in.TokenType))
	case in.MigrationFeeOption > MigrationFeeCustomizable:
		return types.NewValidationError("migrationFeeOption", fmt.Sprintf("unknown value %d", in.MigrationFeeOption))
	case in.TokenUpdateAuthority > TokenUpdateAuthorityPartnerUpdateAndMint:
		return types.NewValidationError("tokenUpdateAuthority", fmt.Sprintf("unknown value %d", in.TokenUpdateAuthority))
	case in.TokenDecimal < minTokenDecimal || in.TokenDecimal > maxTokenDecimal:
		return types.NewValidationError("tokenDecimal",
			fmt.Sprintf("must be within [%d, %d], got %d", minTokenDecimal, maxTokenDecimal, in.TokenDecimal))
	}
	return nil
}

func (in *ConfigInput) validateSplits() error {
	lp := []struct {
		name string
		pct  uint8
	}{
		{"partnerLpPercentage", in.PartnerLpPercentage},
		{"creatorLpPercentage", in.CreatorLpPercentage},
		{"partnerLockedLpPercentage", in.PartnerLockedLpPercentage},
		{"creatorLockedLpPercentage", in.CreatorLockedLpPercentage},
	}
	sum := 0
	for _, f := range lp {
		if err := types.ValidatePercentage(f.name, f.pct); err != nil {
			return err
		}
		sum += int(f.pct)
	}
	if sum > 100 {
		return types.NewValidationError("lpPercentage", fmt.Sprintf("LP split sums to %d, must not exceed 100", sum))
	}

	if err := types.ValidatePercentage("creatorTradingFeePercentage", in.CreatorTradingFeePercentage); err != nil {
		return err
	}

	mf := in.MigrationFee
	if err := types.ValidatePercentage("migrationFee.feePercentage", mf.FeePercentage); err != nil {
		return err
	}
	if err := types.ValidatePercentage("migrationFee.creatorFeePercentage", mf.CreatorFeePercentage); err != nil {
		return err
	}
	if total := int(mf.FeePercentage) + int(mf.CreatorFeePercentage); total > 100 {
		return types.NewValidationError("migrationFee", fmt.Sprintf("fee split sums to %d, must not exceed 100", total))
	}
	return nil
}

func (in *ConfigInput) validateAmounts() error {
	if err := types.ValidateUint("migrationQuoteThreshold", in.MigrationQuoteThreshold, 64); err != nil {
		return err
	}
	if in.MigrationQuoteThreshold.Sign() == 0 {
		return types.NewValidationError("migrationQuoteThreshold", "must be greater than 0")
	}

	lv := in.LockedVesting
	for _, f := range []struct {
		name string
		v    *big.Int
	}{
		{"lockedVesting.amountPerPeriod", lv.AmountPerPeriod},
		{"lockedVesting.cliffDurationFromMigrationTime", lv.CliffDurationFromMigrationTime},
		{"lockedVesting.frequency", lv.Frequency},
		{"lockedVesting.numberOfPeriod", lv.NumberOfPeriod},
		{"lockedVesting.cliffUnlockAmount", lv.CliffUnlockAmount},
	} {
		if err := types.ValidateUint(f.name, orZero(f.v), 64); err != nil {
			return err
		}
	}

	if ts := in.TokenSupply; ts != nil {
		if err := types.ValidateUint("tokenSupply.preMigration", ts.PreMigration, 64); err != nil {
			return err
		}
		if err := types.ValidateUint("tokenSupply.postMigration", ts.PostMigration, 64); err != nil {
			return err
		}
		if ts.PostMigration.Cmp(ts.PreMigration) > 0 {
			return types.NewValidationError("tokenSupply.postMigration", "must not exceed pre-migration supply")
		}
	}
	return nil
}

func validateCurve(start *big.Int, curve []CurvePoint) error {
	if err := types.ValidateUint("sqrtStartPrice", start, 128); err != nil {
		return err
	}
	if start.Cmp(constants.MinSqrtPrice) < 0 || start.Cmp(constants.MaxSqrtPrice) >= 0 {
		return types.NewValidationError("sqrtStartPrice", "outside the supported sqrt price range")
	}
	if len(curve) == 0 {
		return types.NewValidationError("curve", "requires at least one point")
	}
	if len(curve) > constants.MaxCurvePoints {
		return types.NewValidationError("curve", fmt.Sprintf("at most %d points, got %d", constants.MaxCurvePoints, len(curve)))
	}

	prev := start
	for i, p := range curve {
		field := fmt.Sprintf("curve[%d]", i)
		if err := types.ValidateUint(field+".sqrtPrice", p.SqrtPrice, 128); err != nil {
			return err
		}
		if err := types.ValidateUint(field+".liquidity", p.Liquidity, 128); err != nil {
			return err
		}
		if p.Liquidity.Sign() == 0 {
			return types.NewValidationError(field+".liquidity", "must be greater than 0")
		}
		if p.SqrtPrice.Cmp(prev) <= 0 {
			if i == 0 {
				return types.NewValidationError(field+".sqrtPrice", "must be greater than sqrtStartPrice")
			}
			return types.NewValidationError(field+".sqrtPrice", "curve must be strictly increasing in sqrtPrice")
		}
		if p.SqrtPrice.Cmp(constants.MaxSqrtPrice) > 0 {
			return types.NewValidationError(field+".sqrtPrice", "exceeds the maximum sqrt price")
		}
		prev = p.SqrtPrice
	}
	return nil
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
