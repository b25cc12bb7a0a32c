package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	sdkconfig "github.com/soumalya340/Meteora-Pool-Create/pkg/config"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/jito"
	sdkrpc "github.com/soumalya340/Meteora-Pool-Create/pkg/rpc"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/txbuilder"
	"github.com/soumalya340/Meteora-Pool-Create/pkg/workflow"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOpts struct {
	envFile        string
	rpcURL         string
	network        string
	commitment     string
	retryAttempts  int
	retryBackoffMs int
	rateLimitRPS   float64
	logLevel       string
	timeoutSec     int
	pollMs         int
	jito           bool
	jitoTip        uint64
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	root := &cobra.Command{
		Use:           "dbccli",
		Short:         "Meteora dynamic bonding curve admin CLI (config + pool creation)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file (ignored if missing)")
	root.PersistentFlags().StringVar(&opts.rpcURL, "rpc-url", "", "RPC endpoint (overrides DBC_RPC_URL)")
	root.PersistentFlags().StringVar(&opts.network, "network", "", "cluster: devnet|testnet|mainnet|localnet|custom (overrides DBC_NETWORK)")
	root.PersistentFlags().StringVar(&opts.commitment, "commitment", "", "commitment level (overrides DBC_COMMITMENT)")
	root.PersistentFlags().IntVar(&opts.retryAttempts, "retry-attempts", 3, "RPC read retry attempts")
	root.PersistentFlags().IntVar(&opts.retryBackoffMs, "retry-backoff-ms", 150, "initial backoff in ms")
	root.PersistentFlags().Float64Var(&opts.rateLimitRPS, "rate-limit-rps", 8, "rate limit RPS (0 to disable)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	root.PersistentFlags().IntVar(&opts.timeoutSec, "timeout-sec", 20, "per-request RPC timeout seconds")
	root.PersistentFlags().IntVar(&opts.pollMs, "poll-ms", 400, "confirmation polling interval in ms")
	root.PersistentFlags().BoolVar(&opts.jito, "jito", false, "broadcast through the Jito block engine")
	root.PersistentFlags().Uint64Var(&opts.jitoTip, "jito-tip", jito.DefaultTipLamports, "Jito tip in lamports")

	root.AddCommand(
		newSettingsCmd(opts),
		newCreateConfigCmd(opts),
		newCreatePoolCmd(opts),
		newAccountCmd(opts),
	)

	return root
}

func newSettingsCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show resolved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "network=%s\nrpc=%s\ncommitment=%s\n", settings.RPC.Network, settings.RPC.ResolveRPCURL(), settings.RPC.Commitment)
			fmt.Fprintf(out, "admin=%s\n", settings.Admin.PublicKey())
			if !settings.ConfigAddress.IsZero() {
				fmt.Fprintf(out, "config=%s\n", settings.ConfigAddress)
			}
			if settings.JitoEndpoint != "" {
				fmt.Fprintf(out, "jito=%s\n", settings.JitoEndpoint)
			}
			return nil
		},
	}
}

// loadSettings resolves env and flags. Flags win over the environment.
func loadSettings(cmd *cobra.Command, opts *globalOpts) (sdkconfig.Settings, error) {
	base := sdkconfig.DefaultRPCConfig()
	base.RateLimit.RPS = opts.rateLimitRPS
	base.Retry.MaxAttempts = opts.retryAttempts
	if opts.retryBackoffMs > 0 {
		base.Retry.InitialBackoff = time.Duration(opts.retryBackoffMs) * time.Millisecond
	}
	if opts.timeoutSec > 0 {
		base.Timeout = time.Duration(opts.timeoutSec) * time.Second
	}
	base.Logger = newLogger(cmd, opts)

	var files []string
	if opts.envFile != "" {
		files = append(files, opts.envFile)
	}
	settings, err := sdkconfig.Load(sdkconfig.LoadOptions{EnvFiles: files, Base: base})
	if err != nil {
		return sdkconfig.Settings{}, err
	}

	if opts.network != "" {
		network, err := sdkconfig.ParseNetwork(opts.network)
		if err != nil {
			return sdkconfig.Settings{}, err
		}
		settings.RPC.Network = network
		settings.RPC.RPCURL = sdkconfig.DefaultRPCURL(network)
	}
	if opts.rpcURL != "" {
		settings.RPC.RPCURL = opts.rpcURL
	}
	if opts.commitment != "" {
		settings.RPC.Commitment = opts.commitment
	}
	if err := settings.RPC.Validate(); err != nil {
		return sdkconfig.Settings{}, err
	}
	return settings, nil
}

type runtimeDeps struct {
	settings sdkconfig.Settings
	rpc      *sdkrpc.Client
	log      zerolog.Logger
}

func newRuntime(cmd *cobra.Command, opts *globalOpts) (*runtimeDeps, error) {
	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return nil, err
	}
	return &runtimeDeps{
		settings: settings,
		rpc:      sdkrpc.NewClient(settings.RPC),
		log:      settings.RPC.Logger,
	}, nil
}

// workflowOptions maps global flags onto workflow options.
func (d *runtimeDeps) workflowOptions(opts *globalOpts) []workflow.Option {
	out := []workflow.Option{
		workflow.WithNetwork(d.settings.RPC.Network),
		workflow.WithConfirmationLevel(txbuilder.ParseConfirmationLevel(d.settings.RPC.Commitment)),
		workflow.WithLogger(d.log),
		workflow.WithPollInterval(time.Duration(opts.pollMs) * time.Millisecond),
	}
	if opts.jito {
		endpoint := d.settings.JitoEndpoint
		if endpoint == "" && d.settings.RPC.Network == sdkconfig.NetworkTestnet {
			endpoint = jito.TestnetBlockEngine
		}
		out = append(out, workflow.WithJito(jito.NewClient(endpoint, ""), opts.jitoTip))
	}
	return out
}

func newLogger(cmd *cobra.Command, opts *globalOpts) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(parseLogLevel(opts.logLevel)).
		With().Timestamp().Logger()
}

func parseLogLevel(lvl string) zerolog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
