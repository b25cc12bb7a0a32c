package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/types"
)

// Signer performs detached signatures for transaction messages.
type Signer interface {
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// Local wraps a local private key.
type Local struct {
	key solana.PrivateKey
}

// NewLocalFromKeygen loads a solana-keygen JSON file.
func NewLocalFromKeygen(path string) (Local, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return Local{}, fmt.Errorf("%w: load keypair: %v", types.ErrMalformedCredential, err)
	}
	return newChecked(key)
}

// NewLocalFromBase58 constructs a local signer from base58-encoded key.
func NewLocalFromBase58(privateKey string) (Local, error) {
	raw, err := base58.Decode(strings.TrimSpace(privateKey))
	if err != nil {
		return Local{}, fmt.Errorf("%w: decode base58 key: %v", types.ErrMalformedCredential, err)
	}
	return newChecked(solana.PrivateKey(raw))
}

// NewLocalFromJSON constructs a local signer from a JSON array of the 64
// secret key bytes, the format written by solana-keygen.
func NewLocalFromJSON(data []byte) (Local, error) {
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return Local{}, fmt.Errorf("%w: decode json key: %v", types.ErrMalformedCredential, err)
	}
	raw := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return Local{}, fmt.Errorf("%w: key byte %d out of range", types.ErrMalformedCredential, i)
		}
		raw[i] = byte(v)
	}
	return newChecked(solana.PrivateKey(raw))
}

// ParseSecret accepts either a JSON byte array or a base58 string.
func ParseSecret(secret string) (Local, error) {
	s := strings.TrimSpace(secret)
	if s == "" {
		return Local{}, fmt.Errorf("%w: secret is empty", types.ErrMalformedCredential)
	}
	if strings.HasPrefix(s, "[") {
		return NewLocalFromJSON([]byte(s))
	}
	return NewLocalFromBase58(s)
}

// NewLocalFromPrivateKey constructs a local signer from existing private key.
func NewLocalFromPrivateKey(key solana.PrivateKey) Local {
	return Local{key: key}
}

// NewEphemeral generates a fresh keypair that lives only in memory.
func NewEphemeral() (Local, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return Local{}, fmt.Errorf("generate keypair: %w", err)
	}
	return Local{key: key}, nil
}

// newChecked rejects keys whose public half does not match the seed.
func newChecked(key solana.PrivateKey) (Local, error) {
	if len(key) != ed25519.PrivateKeySize {
		return Local{}, fmt.Errorf("%w: expected %d key bytes, got %d", types.ErrMalformedCredential, ed25519.PrivateKeySize, len(key))
	}
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !derived.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(key[ed25519.SeedSize:])) {
		return Local{}, fmt.Errorf("%w: public key does not match secret", types.ErrMalformedCredential)
	}
	return Local{key: key}, nil
}

// PublicKey returns the associated public key.
func (l Local) PublicKey() solana.PublicKey {
	if len(l.key) != ed25519.PrivateKeySize {
		return solana.PublicKey{}
	}
	return l.key.PublicKey()
}

// SignMessage signs the provided message bytes.
func (l Local) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	select {
	case <-ctx.Done():
		return solana.Signature{}, ctx.Err()
	default:
		if len(l.key) == 0 {
			return solana.Signature{}, fmt.Errorf("sign message: key released")
		}
		sig, err := l.key.Sign(message)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("sign message: %w", err)
		}
		return sig, nil
	}
}

// PrivateKey exposes the key for callers that must hand it to the operator.
func (l Local) PrivateKey() solana.PrivateKey {
	return l.key
}

// Release zeroes the key material. The signer is unusable afterwards.
func (l *Local) Release() {
	for i := range l.key {
		l.key[i] = 0
	}
	l.key = nil
}
