// Package vanity searches for keypairs whose base58 address carries a chosen
// prefix or suffix. It is used for ephemeral config and mint identities.
package vanity

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"
)

// Result is a matching keypair and the cost of finding it.
type Result struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
	Attempts   uint64
	Duration   time.Duration
}

// Options is the pattern to search for. Workers defaults to NumCPU and a
// zero Timeout searches until ctx ends.
type Options struct {
	Prefix          string
	Suffix          string
	Workers         int
	Timeout         time.Duration
	CaseInsensitive bool
}

// Enabled reports whether a pattern was requested.
func (o Options) Enabled() bool {
	return o.Prefix != "" || o.Suffix != ""
}

// Generate fans the search out over Workers goroutines and returns the
// first keypair whose address matches. Patterns outside the base58 alphabet
// are rejected up front since they can never match.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if !opts.Enabled() {
		return nil, fmt.Errorf("prefix or suffix is required")
	}
	if err := checkAlphabet(opts.Prefix + opts.Suffix); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	prefix, suffix := opts.Prefix, opts.Suffix
	if opts.CaseInsensitive {
		prefix = strings.ToLower(prefix)
		suffix = strings.ToLower(suffix)
	}

	searchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var (
		attempts atomic.Uint64
		found    atomic.Pointer[Result]
	)
	startTime := time.Now()

	g, gctx := errgroup.WithContext(searchCtx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for found.Load() == nil {
				if err := gctx.Err(); err != nil {
					return nil
				}

				key, err := solana.NewRandomPrivateKey()
				if err != nil {
					continue
				}
				n := attempts.Add(1)

				addr := key.PublicKey().String()
				if opts.CaseInsensitive {
					addr = strings.ToLower(addr)
				}
				if strings.HasPrefix(addr, prefix) && strings.HasSuffix(addr, suffix) {
					found.CompareAndSwap(nil, &Result{
						PrivateKey: key,
						PublicKey:  key.PublicKey(),
						Attempts:   n,
						Duration:   time.Since(startTime),
					})
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if result := found.Load(); result != nil {
		return result, nil
	}
	if err := searchCtx.Err(); err != nil {
		return nil, fmt.Errorf("search cancelled after %d attempts: %w", attempts.Load(), err)
	}
	return nil, fmt.Errorf("search failed after %d attempts", attempts.Load())
}

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

func checkAlphabet(pattern string) error {
	for _, r := range pattern {
		if !strings.ContainsRune(base58Alphabet, r) {
			return fmt.Errorf("character %q is not in the base58 alphabet", r)
		}
	}
	return nil
}

// EstimateDifficulty is the expected number of keypairs to try for a
// case-sensitive pattern of the given lengths.
func EstimateDifficulty(prefixLen, suffixLen int) uint64 {
	total := prefixLen + suffixLen
	result := uint64(1)
	for i := 0; i < total; i++ {
		result *= 58
	}
	return result
}
