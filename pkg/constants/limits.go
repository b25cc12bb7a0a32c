package constants

import "math/big"

// Fee numerators are expressed over FeeDenominator.
const (
	FeeDenominator  uint64 = 1_000_000_000
	MinFeeNumerator uint64 = 100_000     // 0.01%
	MaxFeeNumerator uint64 = 990_000_000 // 99%
)

// Metaplex metadata limits.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

// MaxCurvePoints is the number of liquidity distribution points a config may hold.
const MaxCurvePoints = 20

var (
	MinSqrtPrice, _ = new(big.Int).SetString("4295048016", 10)
	MaxSqrtPrice, _ = new(big.Int).SetString("79226673521066979257578248091", 10)

	// BinStepBpsU128Default is bin step 1 expressed as a Q64 fixed point value.
	BinStepBpsU128Default, _ = new(big.Int).SetString("1844674407370955", 10)
)
