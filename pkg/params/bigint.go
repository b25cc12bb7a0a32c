package params

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUint parses a base-10 literal into a non-negative big integer.
// Underscores are accepted as digit separators.
func ParseUint(s string) (*big.Int, error) {
	lit := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if lit == "" {
		return nil, fmt.Errorf("empty integer literal")
	}
	v, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer literal %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative integer literal %q", s)
	}
	return v, nil
}

// MustUint is ParseUint for literals known at compile time.
func MustUint(s string) *big.Int {
	v, err := ParseUint(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Uint wraps a native value.
func Uint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
