package txbuilder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTransitions(t *testing.T) {
	sub := &Submission{stage: StageBuilt}

	assert.Error(t, sub.advance(StageSigned, nil), "cannot skip blockhash")
	require.NoError(t, sub.advance(StageBlockhashAttached, nil))
	require.NoError(t, sub.advance(StageSigned, nil))
	assert.Error(t, sub.advance(StageConfirmed, nil), "cannot confirm before broadcast")
	require.NoError(t, sub.advance(StageBroadcast, nil))
	require.NoError(t, sub.advance(StageConfirmed, nil))

	for _, to := range []Stage{StageRejected, StageTimedOut, StageBroadcast} {
		assert.Error(t, sub.advance(to, nil), "confirmed is terminal")
	}
}

func TestAnyLiveStageCanBeRejected(t *testing.T) {
	cause := errors.New("boom")
	for _, from := range []Stage{StageBuilt, StageBlockhashAttached, StageSigned, StageBroadcast} {
		sub := &Submission{stage: from}
		require.NoError(t, sub.advance(StageRejected, cause), from.String())
		assert.Equal(t, cause, sub.Err())
		assert.True(t, sub.Stage().Terminal())
	}
}

func TestTimeoutOnlyAfterBroadcast(t *testing.T) {
	sub := &Submission{stage: StageSigned}
	assert.Error(t, sub.advance(StageTimedOut, nil))
	sub.stage = StageBroadcast
	assert.NoError(t, sub.advance(StageTimedOut, nil))
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "blockhash_attached", StageBlockhashAttached.String())
	assert.Equal(t, "timed_out", StageTimedOut.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
