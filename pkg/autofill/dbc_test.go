package autofill

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/constants"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/params"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/program/dbc"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

type fakeReader struct {
	owners map[solana.PublicKey]solana.PublicKey
	calls  int
}

func (f *fakeReader) GetAccountInfo(_ context.Context, account solana.PublicKey) (*solanarpc.GetAccountInfoResult, error) {
	f.calls++
	owner, ok := f.owners[account]
	if !ok {
		return nil, types.ErrAccountNotFound
	}
	return &solanarpc.GetAccountInfoResult{Value: &solanarpc.Account{Owner: owner}}, nil
}

func testConfig(t *testing.T) *params.Config {
	t.Helper()
	cfg, err := params.NewConfig(params.DefaultConfigInput(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()))
	require.NoError(t, err)
	return cfg
}

func testPool(t *testing.T, tokenType params.TokenType, quote solana.PublicKey) *params.Pool {
	t.Helper()
	admin := solana.NewWallet().PublicKey()
	pool, err := params.NewPool(params.PoolInput{
		Config:    solana.NewWallet().PublicKey(),
		BaseMint:  solana.NewWallet().PublicKey(),
		QuoteMint: quote,
		Payer:     admin,
		Creator:   admin,
		TokenType: tokenType,
		Name:      "Test Token",
		Symbol:    "TEST",
		URI:       "https://example.com/metadata.json",
	})
	require.NoError(t, err)
	return pool
}

func TestDBCCreateConfig(t *testing.T) {
	cfg := testConfig(t)

	out, err := DBCCreateConfig(cfg)
	require.NoError(t, err)

	require.Len(t, out.Draft.Instructions, 1)
	assert.Equal(t, dbc.ProgramKey, out.Draft.Instructions[0].ProgramID())
	assert.Equal(t, cfg.Payer(), out.Draft.FeePayer)
	assert.Equal(t, []solana.PublicKey{cfg.Payer(), cfg.Address()}, out.Draft.RequiredSigners())

	eventAuthority, _, err := dbc.DeriveEventAuthorityPDA()
	require.NoError(t, err)
	assert.Equal(t, eventAuthority, out.Accounts.EventAuthority)
	assert.Equal(t, constants.WSOLMint, out.Accounts.QuoteMint)
	assert.Len(t, out.Args.Curve, len(cfg.Input().Curve))
}

func TestDBCCreateConfigPreviewAndOverrides(t *testing.T) {
	cfg := testConfig(t)
	claimer := solana.NewWallet().PublicKey()

	var buf bytes.Buffer
	out, err := DBCCreateConfig(cfg,
		WithPreview(&buf),
		WithOverrides(map[string]solana.PublicKey{"fee_claimer": claimer}),
	)
	require.NoError(t, err)
	assert.Equal(t, claimer, out.Accounts.FeeClaimer)

	var preview struct {
		Accounts map[string]string `json:"accounts"`
		Args     json.RawMessage   `json:"args"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &preview))
	assert.Equal(t, claimer.String(), preview.Accounts["FeeClaimer"])
	assert.NotEmpty(t, preview.Args)
}

func TestDBCCreateConfigJitoTip(t *testing.T) {
	cfg := testConfig(t)
	tipAccount := solana.NewWallet().PublicKey()

	out, err := DBCCreateConfig(cfg, WithJitoTip(5000), WithJitoTipAccount(tipAccount))
	require.NoError(t, err)
	require.Len(t, out.Draft.Instructions, 2)

	tip := out.Draft.Instructions[1]
	assert.Equal(t, solana.SystemProgramID, tip.ProgramID())
	metas := tip.Accounts()
	assert.Equal(t, cfg.Payer(), metas[0].PublicKey)
	assert.Equal(t, tipAccount, metas[1].PublicKey)
	// tip adds no signer beyond the payer
	assert.Len(t, out.Draft.RequiredSigners(), 2)
}

func TestConfigParametersCarriesOptionalBlocks(t *testing.T) {
	in := params.DefaultConfigInput(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	in.DynamicFee = nil
	in.TokenSupply = nil

	out := ConfigParameters(in)
	assert.Nil(t, out.PoolFees.DynamicFee)
	assert.Nil(t, out.TokenSupply)
	assert.Equal(t, in.CreatorTradingFeePercentage, out.CreatorTradingFeePercentage)
	assert.Equal(t, in.BaseFee.CliffFeeNumerator.Uint64(), out.PoolFees.BaseFee.CliffFeeNumerator)
}

func TestDBCCreatePoolToken2022(t *testing.T) {
	pool := testPool(t, params.TokenTypeToken2022, solana.PublicKey{})
	in := pool.Input()

	out, err := DBCCreatePool(context.Background(), nil, pool)
	require.NoError(t, err)

	require.Len(t, out.Draft.Instructions, 1)
	ix := out.Draft.Instructions[0]
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, dbc.InitializeVirtualPoolWithToken2022Discriminator, data[:8])

	metas := ix.Accounts()
	require.Len(t, metas, 14)
	assert.Equal(t, constants.DBCPoolAuthority, metas[1].PublicKey)
	assert.Equal(t, constants.TokenProgramID, metas[9].PublicKey, "WSOL quote uses the classic token program")
	assert.Equal(t, constants.Token2022ProgramID, metas[10].PublicKey)

	wantPool, _, err := dbc.DerivePoolPDA(in.Config, in.BaseMint, constants.WSOLMint)
	require.NoError(t, err)
	assert.Equal(t, wantPool, out.Pool)
	assert.Equal(t, wantPool, metas[5].PublicKey)

	// payer doubles as creator, base mint signs
	assert.Equal(t, []solana.PublicKey{in.Payer, in.BaseMint}, out.Draft.RequiredSigners())
}

func TestDBCCreatePoolSPL(t *testing.T) {
	pool := testPool(t, params.TokenTypeSPL, solana.PublicKey{})
	in := pool.Input()

	out, err := DBCCreatePool(context.Background(), nil, pool)
	require.NoError(t, err)

	ix := out.Draft.Instructions[0]
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, dbc.InitializeVirtualPoolWithSplTokenDiscriminator, data[:8])

	metas := ix.Accounts()
	require.Len(t, metas, 16)
	metadata, _, err := dbc.DeriveMintMetadataPDA(in.BaseMint)
	require.NoError(t, err)
	assert.Equal(t, metadata, metas[8].PublicKey)
	assert.Equal(t, constants.MetadataProgramID, metas[9].PublicKey)
	assert.Equal(t, constants.TokenProgramID, metas[12].PublicKey)
}

func TestDBCCreatePoolResolvesQuoteProgram(t *testing.T) {
	quote := solana.NewWallet().PublicKey()
	reader := &fakeReader{owners: map[solana.PublicKey]solana.PublicKey{quote: constants.Token2022ProgramID}}
	pool := testPool(t, params.TokenTypeToken2022, quote)

	out, err := DBCCreatePool(context.Background(), reader, pool)
	require.NoError(t, err)
	assert.Equal(t, 1, reader.calls)
	assert.Equal(t, constants.Token2022ProgramID, out.Draft.Instructions[0].Accounts()[9].PublicKey)
}

func TestDBCCreatePoolQuoteProgramOverride(t *testing.T) {
	quote := solana.NewWallet().PublicKey()
	reader := &fakeReader{}
	pool := testPool(t, params.TokenTypeToken2022, quote)

	out, err := DBCCreatePool(context.Background(), reader, pool, WithQuoteTokenProgram(constants.Token2022ProgramID))
	require.NoError(t, err)
	assert.Zero(t, reader.calls)
	assert.Equal(t, constants.Token2022ProgramID, out.Draft.Instructions[0].Accounts()[9].PublicKey)
}

func TestDBCCreatePoolRejectsBadQuoteMint(t *testing.T) {
	missing := solana.NewWallet().PublicKey()
	notMint := solana.NewWallet().PublicKey()
	reader := &fakeReader{owners: map[solana.PublicKey]solana.PublicKey{notMint: solana.SystemProgramID}}

	for _, quote := range []solana.PublicKey{missing, notMint} {
		_, err := DBCCreatePool(context.Background(), reader, testPool(t, params.TokenTypeToken2022, quote))
		var verr types.ValidationError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.Equal(t, "quoteMint", verr.Field)
	}
}

func TestDBCCreatePoolWithoutReaderNeedsQuoteProgram(t *testing.T) {
	quote := solana.NewWallet().PublicKey()
	pool := testPool(t, params.TokenTypeToken2022, quote)

	_, err := DBCCreatePool(context.Background(), nil, pool)
	var verr types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quoteTokenProgram", verr.Field)

	out, err := DBCCreatePool(context.Background(), nil, pool, WithQuoteTokenProgram(constants.Token2022ProgramID))
	require.NoError(t, err)
	assert.Equal(t, constants.Token2022ProgramID, out.Draft.Instructions[0].Accounts()[9].PublicKey)
}

func TestApplyPubkeyOverridesKeyForms(t *testing.T) {
	a, b, c := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	accts := dbc.CreateConfigAccounts{}
	require.NoError(t, applyPubkeyOverrides(&accts, map[string]solana.PublicKey{
		"Config":           a,
		"leftoverReceiver": b,
		"event_authority":  c,
	}))
	assert.Equal(t, a, accts.Config)
	assert.Equal(t, b, accts.LeftoverReceiver)
	assert.Equal(t, c, accts.EventAuthority)
	assert.True(t, accts.Payer.IsZero())

	err := applyPubkeyOverrides(&accts, map[string]solana.PublicKey{"not_a_field": a})
	var verr types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "not_a_field", verr.Field)
}

func TestMergeOverridesFromJSON(t *testing.T) {
	key := solana.NewWallet().PublicKey()
	m, err := MergeOverridesFromJSON(nil, []byte(`{"payer":"`+key.String()+`"}`))
	require.NoError(t, err)
	assert.Equal(t, key, m["payer"])

	_, err = MergeOverridesFromJSON(nil, []byte(`{"payer":"not-base58!"}`))
	assert.Error(t, err)
}
