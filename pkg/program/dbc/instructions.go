package dbc

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var CreateConfigDiscriminator = []byte{201, 207, 243, 114, 75, 111, 47, 189}

var InitializeVirtualPoolWithSplTokenDiscriminator = []byte{140, 85, 215, 176, 102, 54, 104, 79}

var InitializeVirtualPoolWithToken2022Discriminator = []byte{169, 118, 51, 78, 145, 110, 220, 155}

type CreateConfigAccounts struct {
	Config           solana.PublicKey
	FeeClaimer       solana.PublicKey
	LeftoverReceiver solana.PublicKey
	QuoteMint        solana.PublicKey
	Payer            solana.PublicKey
	SystemProgram    solana.PublicKey
	EventAuthority   solana.PublicKey
	Program          solana.PublicKey
}

func (a CreateConfigAccounts) ToAccountMetas() []*solana.AccountMeta {
	metas := make([]*solana.AccountMeta, 0, 8)
	metas = append(metas, solana.NewAccountMeta(a.Config, true, true))
	metas = append(metas, solana.NewAccountMeta(a.FeeClaimer, false, false))
	metas = append(metas, solana.NewAccountMeta(a.LeftoverReceiver, false, false))
	metas = append(metas, solana.NewAccountMeta(a.QuoteMint, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Payer, true, true))
	metas = append(metas, solana.NewAccountMeta(a.SystemProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.EventAuthority, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Program, false, false))
	return metas
}

func BuildCreateConfig(accounts CreateConfigAccounts, args ConfigParameters) (solana.Instruction, error) {
	return build(CreateConfigDiscriminator, accounts.ToAccountMetas(), args)
}

type InitializeVirtualPoolWithSplTokenAccounts struct {
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

func (a InitializeVirtualPoolWithSplTokenAccounts) ToAccountMetas() []*solana.AccountMeta {
	metas := make([]*solana.AccountMeta, 0, 16)
	metas = append(metas, solana.NewAccountMeta(a.Config, false, false))
	metas = append(metas, solana.NewAccountMeta(a.PoolAuthority, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Creator, false, true))
	metas = append(metas, solana.NewAccountMeta(a.BaseMint, true, true))
	metas = append(metas, solana.NewAccountMeta(a.QuoteMint, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Pool, true, false))
	metas = append(metas, solana.NewAccountMeta(a.BaseVault, true, false))
	metas = append(metas, solana.NewAccountMeta(a.QuoteVault, true, false))
	metas = append(metas, solana.NewAccountMeta(a.MintMetadata, true, false))
	metas = append(metas, solana.NewAccountMeta(a.MetadataProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Payer, true, true))
	metas = append(metas, solana.NewAccountMeta(a.TokenQuoteProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.TokenProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.SystemProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.EventAuthority, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Program, false, false))
	return metas
}

func BuildInitializeVirtualPoolWithSplToken(accounts InitializeVirtualPoolWithSplTokenAccounts, args InitializePoolParameters) (solana.Instruction, error) {
	return build(InitializeVirtualPoolWithSplTokenDiscriminator, accounts.ToAccountMetas(), args)
}

type InitializeVirtualPoolWithToken2022Accounts struct {
	Config            solana.PublicKey
	PoolAuthority     solana.PublicKey
	Creator           solana.PublicKey
	BaseMint          solana.PublicKey
	QuoteMint         solana.PublicKey
	Pool              solana.PublicKey
	BaseVault         solana.PublicKey
	QuoteVault        solana.PublicKey
	Payer             solana.PublicKey
	TokenQuoteProgram solana.PublicKey
	TokenProgram      solana.PublicKey
	SystemProgram     solana.PublicKey
	EventAuthority    solana.PublicKey
	Program           solana.PublicKey
}

func (a InitializeVirtualPoolWithToken2022Accounts) ToAccountMetas() []*solana.AccountMeta {
	metas := make([]*solana.AccountMeta, 0, 14)
	metas = append(metas, solana.NewAccountMeta(a.Config, false, false))
	metas = append(metas, solana.NewAccountMeta(a.PoolAuthority, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Creator, false, true))
	metas = append(metas, solana.NewAccountMeta(a.BaseMint, true, true))
	metas = append(metas, solana.NewAccountMeta(a.QuoteMint, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Pool, true, false))
	metas = append(metas, solana.NewAccountMeta(a.BaseVault, true, false))
	metas = append(metas, solana.NewAccountMeta(a.QuoteVault, true, false))
	metas = append(metas, solana.NewAccountMeta(a.Payer, true, true))
	metas = append(metas, solana.NewAccountMeta(a.TokenQuoteProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.TokenProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.SystemProgram, false, false))
	metas = append(metas, solana.NewAccountMeta(a.EventAuthority, false, false))
	metas = append(metas, solana.NewAccountMeta(a.Program, false, false))
	return metas
}

func BuildInitializeVirtualPoolWithToken2022(accounts InitializeVirtualPoolWithToken2022Accounts, args InitializePoolParameters) (solana.Instruction, error) {
	return build(InitializeVirtualPoolWithToken2022Discriminator, accounts.ToAccountMetas(), args)
}

func build(disc []byte, metas []*solana.AccountMeta, args interface{}) (solana.Instruction, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 256))
	buf.Write(disc)
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, fmt.Errorf("encode args: %w", err)
	}
	return solana.NewInstruction(ProgramKey, metas, buf.Bytes()), nil
}
