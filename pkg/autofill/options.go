package autofill

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/vanity"
)

const defaultVanityTimeout = 5 * time.Minute

// Tip is a lamport transfer appended after the program instruction so a
// Jito block engine will pick the transaction up. A zero Account picks one
// of the published tip accounts.
type Tip struct {
	Lamports uint64
	Account  solana.PublicKey
}

// Options tunes how drafts and identities are produced.
type Options struct {
	Overrides         map[string]solana.PublicKey
	Preview           io.Writer
	Vanity            vanity.Options
	Tip               Tip
	QuoteTokenProgram solana.PublicKey
}

type Option func(*Options)

func newOptions(opts []Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOverrides replaces derived accounts by field name (Go, lowerCamel, or snake_case).
func WithOverrides(m map[string]solana.PublicKey) Option {
	return func(o *Options) { o.Overrides = m }
}

// WithPreview writes the resolved accounts and arguments as JSON to w.
func WithPreview(w io.Writer) Option {
	return func(o *Options) { o.Preview = w }
}

// WithVanity makes GenerateKey search for an address matching v.
// A zero Timeout means five minutes.
func WithVanity(v vanity.Options) Option {
	return func(o *Options) { o.Vanity = v }
}

// WithJitoTip appends a tip transfer from the payer as the last instruction.
func WithJitoTip(lamports uint64) Option {
	return func(o *Options) { o.Tip.Lamports = lamports }
}

// WithJitoTipAccount pins the tip recipient.
func WithJitoTipAccount(account solana.PublicKey) Option {
	return func(o *Options) { o.Tip.Account = account }
}

// WithQuoteTokenProgram sets the token program of the quote mint and skips the lookup.
func WithQuoteTokenProgram(program solana.PublicKey) Option {
	return func(o *Options) { o.QuoteTokenProgram = program }
}

// MergeOverridesFromJSON decodes {"field": "<base58>"} into dst, allocating
// it when nil.
func MergeOverridesFromJSON(dst map[string]solana.PublicKey, raw []byte) (map[string]solana.PublicKey, error) {
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make(map[string]solana.PublicKey, len(m))
	}
	for field, addr := range m {
		pk, err := solana.PublicKeyFromBase58(addr)
		if err != nil {
			return nil, err
		}
		dst[field] = pk
	}
	return dst, nil
}
