package types

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/gagliardetto/solana-go"
)

// ValidatePublicKey rejects the zero key.
func ValidatePublicKey(name string, key solana.PublicKey) error {
	if key.IsZero() {
		return NewValidationError(name, "cannot be zero")
	}
	return nil
}

// ValidatePublicKeys checks every key, reporting the first zero one in name
// order so repeated runs name the same field.
func ValidatePublicKeys(keys map[string]solana.PublicKey) error {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ValidatePublicKey(name, keys[name]); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePercentage validates a percentage in [0, 100].
func ValidatePercentage(name string, pct uint8) error {
	if pct > 100 {
		return NewValidationError(name, fmt.Sprintf("must be <= 100, got %d", pct))
	}
	return nil
}

// ValidateUint validates v is a non-negative integer that fits in bits.
func ValidateUint(name string, v *big.Int, bits int) error {
	if v == nil {
		return NewValidationError(name, "is required")
	}
	if v.Sign() < 0 {
		return NewValidationError(name, "must be non-negative")
	}
	if v.BitLen() > bits {
		return NewValidationError(name, fmt.Sprintf("does not fit in u%d", bits))
	}
	return nil
}

// ValidateStringLength validates a non-empty string of at most max bytes.
func ValidateStringLength(name, v string, max int) error {
	if v == "" {
		return NewValidationError(name, "is required")
	}
	if len(v) > max {
		return NewValidationError(name, fmt.Sprintf("must be at most %d bytes, got %d", max, len(v)))
	}
	return nil
}
