package workflow

import (
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/soumalya340/Meteora-Pool-Create/pkg/config"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/txbuilder"
)

// Options configures a workflow run.
type Options struct {
	Network       config.Network
	Level         txbuilder.ConfirmationLevel
	Logger        zerolog.Logger
	Preview       io.Writer
	Simulate      bool
	SkipPreflight *bool
	VanityPrefix  string
	VanitySuffix  string
	VanityTimeout time.Duration
	Relay         txbuilder.Relay
	JitoTip       uint64
	PollInterval  time.Duration
	// QuoteTokenProgram skips looking up the quote mint's owner.
	QuoteTokenProgram solana.PublicKey
}

// Option functional option.
type Option func(*Options)

func newOptions(opts []Option) *Options {
	o := &Options{
		Network: config.NetworkDevnet,
		Level:   txbuilder.ConfirmationConfirmed,
		Logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithNetwork selects the cluster used for explorer links.
func WithNetwork(n config.Network) Option {
	return func(o *Options) { o.Network = n }
}

// WithConfirmationLevel sets how deep confirmation must go.
func WithConfirmationLevel(l txbuilder.ConfirmationLevel) Option {
	return func(o *Options) { o.Level = l }
}

// WithLogger sets the stage logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithPreview prints the resolved accounts and arguments to w and stops
// before any network call.
func WithPreview(w io.Writer) Option {
	return func(o *Options) { o.Preview = w }
}

// WithSimulate signs and simulates the transaction instead of broadcasting it.
func WithSimulate() Option {
	return func(o *Options) { o.Simulate = true }
}

// WithSkipPreflight overrides the workflow's preflight default.
func WithSkipPreflight(skip bool) Option {
	return func(o *Options) { o.SkipPreflight = &skip }
}

// WithVanity searches for an ephemeral identity whose address matches.
func WithVanity(prefix, suffix string, timeout time.Duration) Option {
	return func(o *Options) {
		o.VanityPrefix = prefix
		o.VanitySuffix = suffix
		o.VanityTimeout = timeout
	}
}

// WithJito broadcasts through relay and appends a tip of tipLamports.
func WithJito(relay txbuilder.Relay, tipLamports uint64) Option {
	return func(o *Options) {
		o.Relay = relay
		o.JitoTip = tipLamports
	}
}

// WithQuoteTokenProgram sets the token program of the pool's quote mint.
// Previews without a node need it for any quote mint other than WSOL.
func WithQuoteTokenProgram(program solana.PublicKey) Option {
	return func(o *Options) { o.QuoteTokenProgram = program }
}

// WithPollInterval sets the confirmation polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) { o.PollInterval = d }
}
