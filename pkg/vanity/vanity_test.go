package vanity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSuffix(t *testing.T) {
	res, err := Generate(context.Background(), Options{Suffix: "z", Workers: 2, Timeout: 30 * time.Second})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.PublicKey.String(), "z"))
	assert.Equal(t, res.PrivateKey.PublicKey(), res.PublicKey)
	assert.NotZero(t, res.Attempts)
}

func TestGenerateCaseInsensitivePrefix(t *testing.T) {
	res, err := Generate(context.Background(), Options{Prefix: "a", CaseInsensitive: true, Timeout: 30 * time.Second})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.ToLower(res.PublicKey.String()), "a"))
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := Generate(context.Background(), Options{})
	assert.Error(t, err)

	_, err = Generate(context.Background(), Options{Suffix: "0"})
	assert.ErrorContains(t, err, "base58")
}

func TestGenerateTimesOut(t *testing.T) {
	_, err := Generate(context.Background(), Options{Prefix: "zzzzzzzzzz", Workers: 1, Timeout: 20 * time.Millisecond})
	assert.Error(t, err)
}

func TestEstimateDifficulty(t *testing.T) {
	assert.Equal(t, uint64(1), EstimateDifficulty(0, 0))
	assert.Equal(t, uint64(58*58*58), EstimateDifficulty(2, 1))
}
