package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/program/dbc"
)

func instructionError(code interface{}) map[string]interface{} {
	return map[string]interface{}{
		"InstructionError": []interface{}{float64(0), map[string]interface{}{"Custom": code}},
	}
}

func TestParseSimulationErrorCustomCode(t *testing.T) {
	logs := []string{
		"Program dbcij3LWUppWqq96dh6gJWwBifmcGfLSB5D4DuSMaqN invoke [1]",
		"Program log: AnchorError caused by account: config. Error Code: AccountNotInitialized. Error Number: 3012.",
	}

	for _, code := range []interface{}{float64(3012), json.Number("3012")} {
		err := ParseSimulationError(instructionError(code), logs)
		var progErr *ProgramError
		require.True(t, errors.As(err, &progErr), "code %v", code)
		assert.Equal(t, 3012, progErr.Code)
		assert.Equal(t, "account 'config' not initialized (create the account first)", progErr.Message)
		assert.Equal(t, "config", progErr.Account)
		assert.Equal(t, dbc.ProgramName, progErr.Program)
		assert.Equal(t, logs, progErr.Logs)
	}
}

func TestParseSimulationErrorNamedCode(t *testing.T) {
	logs := []string{"Program log: AnchorError occurred. Error Code: InvalidCurve. Error Number: 6012. Error Message: Invalid curve."}
	errVal := map[string]interface{}{
		"InstructionError": []interface{}{float64(1), map[string]interface{}{"Custom": float64(6012)}},
	}
	var progErr *ProgramError
	require.ErrorAs(t, ParseSimulationError(errVal, logs), &progErr)
	assert.Equal(t, 1, progErr.Instruction)
	assert.Equal(t, "InvalidCurve (error code 6012)", progErr.Message)
	assert.Empty(t, progErr.Account)
}

func TestParseSimulationErrorFallback(t *testing.T) {
	assert.NoError(t, ParseSimulationError(nil, nil))

	err := ParseSimulationError("BlockhashNotFound", nil)
	assert.ErrorIs(t, err, ErrSimulationFailed)

	err = ParseSimulationError(map[string]interface{}{"InstructionError": []interface{}{float64(0), "InvalidAccountData"}}, nil)
	assert.ErrorIs(t, err, ErrSimulationFailed)

	err = ParseSimulationError(instructionError(float64(6000)), nil)
	assert.EqualError(t, err, "program dynamic_bonding_curve error [6000]: error code 6000")
}

func TestClassifyRPCError(t *testing.T) {
	assert.NoError(t, ClassifyRPCError("op", nil))

	err := ClassifyRPCError("sendTransaction", errors.New("Transaction simulation failed: Blockhash not found"))
	assert.ErrorIs(t, err, ErrBlockhashExpired)
	var rpcErr RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, "sendTransaction", rpcErr.Op)

	err = ClassifyRPCError("getBlockHeight", errors.New("connection refused"))
	assert.False(t, IsBlockhashExpired(err))
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil))
	assert.False(t, IsRetryableError(&ProgramError{Code: 3012}))
	assert.False(t, IsRetryableError(NewValidationError("curve", "bad")))
	assert.False(t, IsRetryableError(MissingSignerError{Signer: "x"}))
	assert.False(t, IsRetryableError(fmt.Errorf("load: %w", ErrMalformedCredential)))
	assert.True(t, IsRetryableError(errors.New("timeout")))
}

func TestMissingSignerError(t *testing.T) {
	err := MissingSignerError{Signer: "abc"}
	assert.ErrorIs(t, err, ErrSignerMissing)
	assert.Equal(t, "missing signer for abc", err.Error())
}

func TestValidators(t *testing.T) {
	assert.Error(t, ValidatePublicKey("payer", solana.PublicKey{}))
	assert.NoError(t, ValidatePublicKey("payer", solana.NewWallet().PublicKey()))

	err := ValidatePublicKeys(map[string]solana.PublicKey{
		"quoteMint": {},
		"config":    {},
		"payer":     solana.NewWallet().PublicKey(),
	})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "config", verr.Field)

	assert.NoError(t, ValidatePercentage("pct", 100))
	assert.Error(t, ValidatePercentage("pct", 101))

	max := new(big.Int).Lsh(big.NewInt(1), 64)
	assert.Error(t, ValidateUint("v", max, 64))
	assert.NoError(t, ValidateUint("v", max.Sub(max, big.NewInt(1)), 64))
	assert.Error(t, ValidateUint("v", big.NewInt(-1), 64))
	assert.Error(t, ValidateUint("v", nil, 64))

	assert.Error(t, ValidateStringLength("name", "", 32))
	assert.Error(t, ValidateStringLength("name", "abcdef", 5))
	assert.NoError(t, ValidateStringLength("name", "abcde", 5))
}
