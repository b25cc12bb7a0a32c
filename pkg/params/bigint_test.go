package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint(t *testing.T) {
	v, err := ParseUint("622226417996106429201027821619672729")
	require.NoError(t, err)
	assert.Equal(t, "622226417996106429201027821619672729", v.String())

	v, err = ParseUint(" 10_000_000_000_000_000_000 ")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", v.String())

	for _, bad := range []string{"", "  ", "-1", "1.5", "0x10", "abc"} {
		_, err := ParseUint(bad)
		assert.Error(t, err, "literal %q", bad)
	}
}

func TestMustUintPanicsOnBadLiteral(t *testing.T) {
	assert.Panics(t, func() { MustUint("-7") })
	assert.NotPanics(t, func() { MustUint("7") })
}
