package autofill

import (
	"context"
	"math/big"

	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/program/dbc"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/txbuilder"
)

// ConfigDraft is the unsigned create_config transaction skeleton.
type ConfigDraft struct {
	Accounts dbc.CreateConfigAccounts
	Args     dbc.ConfigParameters
	Draft    txbuilder.Draft
}

// PoolDraft is the unsigned pool initialization skeleton.
type PoolDraft struct {
	Pool       solana.PublicKey
	BaseVault  solana.PublicKey
	QuoteVault solana.PublicKey
	Args       dbc.InitializePoolParameters
	Draft      txbuilder.Draft
}

// poolAccounts is the union of both initialize_virtual_pool account lists.
type poolAccounts struct {
	Config            solana.PublicKey
	PoolAuthority     solana.PublicKey
	Creator           solana.PublicKey
	BaseMint          solana.PublicKey
	QuoteMint         solana.PublicKey
	Pool              solana.PublicKey
	BaseVault         solana.PublicKey
	QuoteVault        solana.PublicKey
	MintMetadata      solana.PublicKey
	MetadataProgram   solana.PublicKey
	Payer             solana.PublicKey
	TokenQuoteProgram solana.PublicKey
	TokenProgram      solana.PublicKey
	SystemProgram     solana.PublicKey
	EventAuthority    solana.PublicKey
	Program           solana.PublicKey
}

// DBCCreateConfig builds the create_config instruction for a validated
// configuration. Payer is the fee payer; payer and config both sign.
//
// Example:
//
//	draft, err := autofill.DBCCreateConfig(cfg, autofill.WithPreview(os.Stdout))
func DBCCreateConfig(cfg *params.Config, opts ...Option) (ConfigDraft, error) {
	options := newOptions(opts)
	in := cfg.Input()

	eventAuthority, _, err := dbc.DeriveEventAuthorityPDA()
	if err != nil {
		return ConfigDraft{}, err
	}
	accts := dbc.CreateConfigAccounts{
		Config:           in.Config,
		FeeClaimer:       in.FeeClaimer,
		LeftoverReceiver: in.LeftoverReceiver,
		QuoteMint:        in.QuoteMint,
		Payer:            in.Payer,
		SystemProgram:    constants.SystemProgramID,
		EventAuthority:   eventAuthority,
		Program:          dbc.ProgramKey,
	}
	if err := applyPubkeyOverrides(&accts, options.Overrides); err != nil {
		return ConfigDraft{}, err
	}

	args := ConfigParameters(in)
	ix, err := dbc.BuildCreateConfig(accts, args)
	if err != nil {
		return ConfigDraft{}, err
	}

	instrs := appendJitoTip([]solana.Instruction{ix}, accts.Payer, options)
	writePreview(options, struct {
		Accounts dbc.CreateConfigAccounts `json:"accounts"`
		Args     dbc.ConfigParameters     `json:"args"`
	}{accts, args})

	return ConfigDraft{
		Accounts: accts,
		Args:     args,
		Draft:    txbuilder.Draft{FeePayer: accts.Payer, Instructions: instrs},
	}, nil
}

// DBCCreatePool builds the pool initialization instruction. The token type
// selects between the SPL variant, which also creates Metaplex metadata, and
// the Token-2022 variant. reader may be nil when the quote mint is WSOL or
// WithQuoteTokenProgram is given; otherwise a nil reader is a ValidationError.
//
// Example:
//
//	draft, err := autofill.DBCCreatePool(ctx, rpc, pool)
//	// Sign with payer, creator, and the base mint keypair
func DBCCreatePool(ctx context.Context, reader AccountReader, pool *params.Pool, opts ...Option) (PoolDraft, error) {
	options := newOptions(opts)
	in := pool.Input()

	accts, err := dbcAutofillPool(ctx, reader, in, options)
	if err != nil {
		return PoolDraft{}, err
	}
	if err := applyPubkeyOverrides(&accts, options.Overrides); err != nil {
		return PoolDraft{}, err
	}

	args := dbc.InitializePoolParameters{Name: in.Name, Symbol: in.Symbol, Uri: in.URI}

	var ix solana.Instruction
	if in.TokenType == params.TokenTypeToken2022 {
		ix, err = dbc.BuildInitializeVirtualPoolWithToken2022(dbc.InitializeVirtualPoolWithToken2022Accounts{
			Config:            accts.Config,
			PoolAuthority:     accts.PoolAuthority,
			Creator:           accts.Creator,
			BaseMint:          accts.BaseMint,
			QuoteMint:         accts.QuoteMint,
			Pool:              accts.Pool,
			BaseVault:         accts.BaseVault,
			QuoteVault:        accts.QuoteVault,
			Payer:             accts.Payer,
			TokenQuoteProgram: accts.TokenQuoteProgram,
			TokenProgram:      accts.TokenProgram,
			SystemProgram:     accts.SystemProgram,
			EventAuthority:    accts.EventAuthority,
			Program:           accts.Program,
		}, args)
	} else {
		ix, err = dbc.BuildInitializeVirtualPoolWithSplToken(dbc.InitializeVirtualPoolWithSplTokenAccounts{
			Config:            accts.Config,
			PoolAuthority:     accts.PoolAuthority,
			Creator:           accts.Creator,
			BaseMint:          accts.BaseMint,
			QuoteMint:         accts.QuoteMint,
			Pool:              accts.Pool,
			BaseVault:         accts.BaseVault,
			QuoteVault:        accts.QuoteVault,
			MintMetadata:      accts.MintMetadata,
			MetadataProgram:   accts.MetadataProgram,
			Payer:             accts.Payer,
			TokenQuoteProgram: accts.TokenQuoteProgram,
			TokenProgram:      accts.TokenProgram,
			SystemProgram:     accts.SystemProgram,
			EventAuthority:    accts.EventAuthority,
			Program:           accts.Program,
		}, args)
	}
	if err != nil {
		return PoolDraft{}, err
	}

	instrs := appendJitoTip([]solana.Instruction{ix}, accts.Payer, options)
	writePreview(options, struct {
		Accounts poolAccounts                 `json:"accounts"`
		Args     dbc.InitializePoolParameters `json:"args"`
	}{accts, args})

	return PoolDraft{
		Pool:       accts.Pool,
		BaseVault:  accts.BaseVault,
		QuoteVault: accts.QuoteVault,
		Args:       args,
		Draft:      txbuilder.Draft{FeePayer: accts.Payer, Instructions: instrs},
	}, nil
}

func dbcAutofillPool(ctx context.Context, reader AccountReader, in params.PoolInput, options *Options) (poolAccounts, error) {
	var accts poolAccounts
	quoteProgram, err := resolveQuoteTokenProgram(ctx, reader, in.QuoteMint, options)
	if err != nil {
		return accts, err
	}

	pool, _, err := dbc.DerivePoolPDA(in.Config, in.BaseMint, in.QuoteMint)
	if err != nil {
		return accts, err
	}
	baseVault, _, err := dbc.DeriveTokenVaultPDA(in.BaseMint, pool)
	if err != nil {
		return accts, err
	}
	quoteVault, _, err := dbc.DeriveTokenVaultPDA(in.QuoteMint, pool)
	if err != nil {
		return accts, err
	}
	eventAuthority, _, err := dbc.DeriveEventAuthorityPDA()
	if err != nil {
		return accts, err
	}

	accts = poolAccounts{
		Config:            in.Config,
		PoolAuthority:     constants.DBCPoolAuthority,
		Creator:           in.Creator,
		BaseMint:          in.BaseMint,
		QuoteMint:         in.QuoteMint,
		Pool:              pool,
		BaseVault:         baseVault,
		QuoteVault:        quoteVault,
		Payer:             in.Payer,
		TokenQuoteProgram: quoteProgram,
		TokenProgram:      constants.Token2022ProgramID,
		SystemProgram:     constants.SystemProgramID,
		EventAuthority:    eventAuthority,
		Program:           dbc.ProgramKey,
	}
	if in.TokenType == params.TokenTypeSPL {
		metadata, _, err := dbc.DeriveMintMetadataPDA(in.BaseMint)
		if err != nil {
			return accts, err
		}
		accts.MintMetadata = metadata
		accts.MetadataProgram = constants.MetadataProgramID
		accts.TokenProgram = constants.TokenProgramID
	}
	return accts, nil
}

// ConfigParameters converts a validated configuration into its wire form.
func ConfigParameters(in params.ConfigInput) dbc.ConfigParameters {
	out := dbc.ConfigParameters{
		PoolFees: dbc.PoolFeeParameters{
			BaseFee: dbc.BaseFeeParameters{
				CliffFeeNumerator: u64(in.BaseFee.CliffFeeNumerator),
				FirstFactor:       in.BaseFee.FirstFactor,
				SecondFactor:      u64(in.BaseFee.SecondFactor),
				ThirdFactor:       u64(in.BaseFee.ThirdFactor),
				BaseFeeMode:       uint8(in.BaseFee.Mode),
			},
		},
		CollectFeeMode:            uint8(in.CollectFeeMode),
		MigrationOption:           uint8(in.MigrationOption),
		ActivationType:            uint8(in.ActivationType),
		TokenType:                 uint8(in.TokenType),
		TokenDecimal:              in.TokenDecimal,
		PartnerLpPercentage:       in.PartnerLpPercentage,
		PartnerLockedLpPercentage: in.PartnerLockedLpPercentage,
		CreatorLpPercentage:       in.CreatorLpPercentage,
		CreatorLockedLpPercentage: in.CreatorLockedLpPercentage,
		MigrationQuoteThreshold:   u64(in.MigrationQuoteThreshold),
		SqrtStartPrice:            dbc.U128(in.SqrtStartPrice),
		LockedVesting: dbc.LockedVestingParams{
			AmountPerPeriod:                u64(in.LockedVesting.AmountPerPeriod),
			CliffDurationFromMigrationTime: u64(in.LockedVesting.CliffDurationFromMigrationTime),
			Frequency:                      u64(in.LockedVesting.Frequency),
			NumberOfPeriod:                 u64(in.LockedVesting.NumberOfPeriod),
			CliffUnlockAmount:              u64(in.LockedVesting.CliffUnlockAmount),
		},
		MigrationFeeOption:          uint8(in.MigrationFeeOption),
		CreatorTradingFeePercentage: in.CreatorTradingFeePercentage,
		TokenUpdateAuthority:        uint8(in.TokenUpdateAuthority),
		MigrationFee: dbc.MigrationFee{
			FeePercentage:        in.MigrationFee.FeePercentage,
			CreatorFeePercentage: in.MigrationFee.CreatorFeePercentage,
		},
	}

	if d := in.DynamicFee; d != nil {
		out.PoolFees.DynamicFee = &dbc.DynamicFeeParameters{
			BinStep:                  d.BinStep,
			BinStepU128:              dbc.U128(d.BinStepU128),
			FilterPeriod:             d.FilterPeriod,
			DecayPeriod:              d.DecayPeriod,
			ReductionFactor:          d.ReductionFactor,
			MaxVolatilityAccumulator: d.MaxVolatilityAccumulator,
			VariableFeeControl:       d.VariableFeeControl,
		}
	}
	if s := in.TokenSupply; s != nil {
		out.TokenSupply = &dbc.TokenSupplyParams{
			PreMigrationTokenSupply:  u64(s.PreMigration),
			PostMigrationTokenSupply: u64(s.PostMigration),
		}
	}

	out.Curve = make([]dbc.LiquidityDistributionParameters, len(in.Curve))
	for i, p := range in.Curve {
		out.Curve[i] = dbc.LiquidityDistributionParameters{
			SqrtPrice: dbc.U128(p.SqrtPrice),
			Liquidity: dbc.U128(p.Liquidity),
		}
	}
	return out
}

func u64(v *big.Int) uint64 {
	if v == nil {
		return 0
	}
	return v.Uint64()
}
