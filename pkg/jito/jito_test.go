package jito

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTipInstruction(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	ix := TipInstruction(payer, 0)

	assert.Equal(t, solana.SystemProgramID, ix.ProgramID())
	metas := ix.Accounts()
	require.Len(t, metas, 2)
	assert.Equal(t, payer, metas[0].PublicKey)
	assert.True(t, metas[0].IsSigner)
	assert.Contains(t, MainnetTipAccounts, metas[1].PublicKey)

	data, err := ix.Data()
	require.NoError(t, err)
	decoded, err := system.DecodeInstruction(metas, data)
	require.NoError(t, err)
	transfer, ok := decoded.Impl.(*system.Transfer)
	require.True(t, ok)
	assert.Equal(t, DefaultTipLamports, *transfer.Lamports)
}

func TestClientEndpoints(t *testing.T) {
	assert.Equal(t, []string{MainnetBlockEngine}, NewClient("", "").Endpoints())
	assert.Equal(t, []string{MainnetBlockEngine}, NewClientWithEndpoints(nil, "").Endpoints())
	assert.Equal(t, []string{TestnetBlockEngine}, NewClient(TestnetBlockEngine, "id").Endpoints())
}
