package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dyike/eodhd-cli/internal/config"
	"github.com/dyike/eodhd-cli/internal/dataflows"
	"github.com/dyike/eodhd-cli/internal/display"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.1.0"

// App carries the dependencies of one invocation. A nil Transport selects
// the resty transport; a nil Tokens reads Config.TokenEnv from the process
// environment.
type App struct {
	Out       io.Writer
	Err       io.Writer
	Config    *config.Config
	Tokens    config.TokenSource
	Transport dataflows.Transport
}

type requestFlags struct {
	opts    dataflows.Options
	limit   int
	offset  int
	period  int
	baseURL string
	timeout int
	raw     bool
	debug   bool
}

// NewRootCmd creates the root command
func NewRootCmd(app *App) *cobra.Command {
	cfg := app.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	f := &requestFlags{}

	rootCmd := &cobra.Command{
		Use:   "eodhd --endpoint NAME [flags]",
		Short: "Query the EODHD financial data API",
		Long: `eodhd sends one authenticated GET request to the EODHD API and prints the
JSON response. The API token is read from the EODHD_API_TOKEN environment
variable (a .env file in the working directory is also honoured).

Supported endpoints:
` + display.EndpointSummary(dataflows.Endpoints(), dataflows.Groups()) + `
Symbol format: {TICKER}.{EXCHANGE} (e.g., AAPL.US, MSFT.US, BMW.XETRA)
For exchange-symbol-list and eod-bulk-last-day, use an exchange code (e.g., US, LSE)`,
		Example: `  eodhd --endpoint eod --symbol AAPL.US --from-date 2025-01-01 --to-date 2025-01-31
  eodhd --endpoint intraday --symbol AAPL.US --interval 5m --from-date 2025-01-15
  eodhd --endpoint news --symbol AAPL.US --limit 10
  eodhd --endpoint technical --symbol AAPL.US --function sma --period 50
  eodhd --endpoint macro-indicator --symbol USA --indicator inflation_consumer_prices_annual
  eodhd --endpoint eod-bulk-last-day --symbol US`,
		Args:          noPositionalArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, app, cfg, f)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return dataflows.NewUsageError("%v", err)
	})

	flags := rootCmd.Flags()
	flags.StringVar(&f.opts.Endpoint, "endpoint", "", "API endpoint to query (see 'eodhd endpoints')")
	flags.StringVar(&f.opts.Symbol, "symbol", "", "Ticker with exchange suffix (e.g., AAPL.US) or exchange code for bulk endpoints")
	flags.StringVar(&f.opts.FromDate, "from-date", "", "Start date YYYY-MM-DD")
	flags.StringVar(&f.opts.ToDate, "to-date", "", "End date YYYY-MM-DD")
	flags.StringVar(&f.opts.Interval, "interval", "", "Intraday interval: 1m, 5m, 1h")
	flags.IntVar(&f.limit, "limit", 0, "Limit results")
	flags.IntVar(&f.offset, "offset", 0, "Offset for pagination")
	flags.StringVar(&f.opts.Function, "function", "", "Technical indicator function (sma, ema, wma, rsi, macd, stoch, cci, adx, atr, bbands)")
	flags.IntVar(&f.period, "period", 0, "Period for technical indicators")
	flags.StringVar(&f.opts.Indicator, "indicator", "", "Macro indicator code (e.g., inflation_consumer_prices_annual, gdp_current_usd)")
	flags.StringVar(&f.opts.Filter, "filter", "", "Filter for specific fields (e.g., last_close, extended for earnings)")
	flags.StringVar(&f.baseURL, "base-url", cfg.BaseURL, "Override base URL")
	flags.IntVar(&f.timeout, "timeout", int(cfg.Timeout/time.Second), "HTTP timeout seconds")
	flags.BoolVar(&f.raw, "raw", false, "Output raw response without JSON formatting")
	rootCmd.PersistentFlags().BoolVar(&f.debug, "debug", cfg.Debug, "Log request details to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("endpoint", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dataflows.EndpointNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newEndpointsCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return dataflows.NewUsageError("unexpected argument %q", args[0])
	}
	return nil
}

// runRequest executes the single API call
func runRequest(cmd *cobra.Command, app *App, base *config.Config, f *requestFlags) error {
	if f.opts.Endpoint == "" {
		return dataflows.NewUsageError("--endpoint is required (see 'eodhd endpoints')")
	}

	opts := f.opts
	flags := cmd.Flags()
	opts.Limit = changedInt(flags, "limit", f.limit)
	opts.Offset = changedInt(flags, "offset", f.offset)
	opts.Period = changedInt(flags, "period", f.period)

	cfg := *base
	cfg.BaseURL = f.baseURL
	cfg.Timeout = time.Duration(f.timeout) * time.Second
	cfg.Debug = f.debug
	if err := cfg.Validate(); err != nil {
		return dataflows.NewUsageError("%v", err)
	}

	logger := newLogger(app.Err, cfg.Debug)

	tokens := app.Tokens
	if tokens == nil {
		tokens = config.NewEnvToken(cfg.TokenEnv)
	}
	transport := app.Transport
	if transport == nil {
		transport = dataflows.NewRestyTransport(logger)
	}

	client := dataflows.NewClient(&cfg, tokens, transport, logger)
	body, err := client.Fetch(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if err := display.NewResultsDisplay(app.Out, app.Err).ShowBody(body, f.raw); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func changedInt(flags *pflag.FlagSet, name string, value int) *int {
	if !flags.Changed(name) {
		return nil
	}
	v := value
	return &v
}

// newEndpointsCmd lists the supported endpoints
func newEndpointsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List supported endpoints",
		Args:  noPositionalArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return display.NewResultsDisplay(app.Out, app.Err).ShowEndpoints(dataflows.Endpoints())
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  noPositionalArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "eodhd v%s\n", Version)
		},
	}
}
