package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vaccine-scheduler/internal/config"
	"vaccine-scheduler/internal/handler"
	"vaccine-scheduler/internal/ratelimit"
	"vaccine-scheduler/internal/scheduler"
	"vaccine-scheduler/internal/store"
	"vaccine-scheduler/internal/store/postgres"
	"vaccine-scheduler/internal/store/sqlite"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are flag overrides for the environment configuration.
type rootOptions struct {
	driver   string
	db       string
	logLevel string
	pretty   bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "scheduler",
		Short: "COVID-19 vaccine reservation scheduler",
		Long: `Interactive vaccine appointment scheduler.

Caregivers publish availability and dose inventory; patients reserve
appointments against it. Commands are read one per line from stdin.

Settings come from the environment (and .env): DB_DRIVER, DB_PATH,
DATABASE_URL, LOG_LEVEL, LOG_PRETTY, LOGIN_RATE, LOGIN_BURST.

Example:
  scheduler --db ./scheduler.db
  scheduler --driver postgres --db postgres://localhost:5432/scheduler`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.driver, "driver", "", "storage backend (sqlite|postgres)")
	cmd.Flags().StringVar(&opts.db, "db", "", "SQLite path or PostgreSQL URL")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "human-readable logs on stderr")

	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = opts.driver
	}
	if flags.Changed("db") {
		if cfg.Driver == config.DriverPostgres {
			cfg.DatabaseURL = opts.db
		} else {
			cfg.DBPath = opts.db
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("pretty") {
		cfg.LogPretty = opts.pretty
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Debug().Str("driver", cfg.Driver).Msg("store ready")

	svc := scheduler.New(st,
		scheduler.WithLimiter(ratelimit.New(cfg.LoginRate, cfg.LoginBurst)),
		scheduler.WithLogger(logger),
	)
	return handler.New(svc, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx)
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DatabaseURL)
	default:
		return sqlite.Open(cfg.DBPath)
	}
}

func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if cfg.LogPretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
