package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/core/fx"
	portssvc "github.com/SscSPs/biz_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/biz_finance_tracker/internal/core/services"
	"github.com/SscSPs/biz_finance_tracker/internal/dto"
	"github.com/SscSPs/biz_finance_tracker/internal/platform/config"
	"github.com/SscSPs/biz_finance_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/biz_finance_tracker/internal/utils"
	"github.com/SscSPs/biz_finance_tracker/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	timeout time.Duration
	asJSON  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bft",
		Short: "Biz Finance Tracker operator tool",
		Long:  `Runs conversions against the stored exchange rates, applies migrations and issues API tokens.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig()
			if err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
			slog.SetDefault(logger)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall command timeout")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Exchange rate operations",
	}
	ratesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored exchange rates",
		Args:  cobra.NoArgs,
		RunE:  runRatesList,
	})

	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply all pending migrations, or roll back the last one",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE:      runMigrate,
	}

	var tokenTTL time.Duration
	tokenCmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an API token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := utils.GenerateJWT(args[0], cfg.JWTSecret, tokenTTL, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "convert <amount> <from> <to>",
			Short: "Convert an amount between two currencies",
			Args:  cobra.ExactArgs(3),
			RunE:  runConvert,
		},
		&cobra.Command{
			Use:   "normalize <amount> <currency>",
			Short: "Show the hub and reporting amounts a transaction would store",
			Args:  cobra.ExactArgs(2),
			RunE:  runNormalize,
		},
		ratesCmd,
		migrateCmd,
		tokenCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type cliServices struct {
	pool       *pgxpool.Pool
	rates      portssvc.ExchangeRateSvcFacade
	conversion portssvc.ConversionSvc
}

func (s *cliServices) Close() {
	s.pool.Close()
}

func connect(ctx context.Context) (*cliServices, error) {
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	repos := pgsql.NewRepositoryProvider(pool)
	currencies := services.NewCurrencyService(repos.CurrencyRepo)
	rates := services.NewExchangeRateService(
		repos.ExchangeRateRepo,
		currencies,
		cfg.HubCurrency,
		services.WithRateLoaderOptions(fx.WithMaxRetries(cfg.RateLoadMaxRetries), fx.WithLogger(logger)),
	)
	reporting := fx.ReportingCurrencies(cfg.HubCurrency, cfg.ReportingCurrencies)
	return &cliServices{
		pool:       pool,
		rates:      rates,
		conversion: services.NewConversionService(rates, currencies, reporting),
	}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runConvert(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, err := connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	conv, err := svc.conversion.Convert(ctx, amount, args[1], args[2])
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, conv)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s (%s)\n",
		conv.Amount, conv.From, utils.FormatNullableAmount(conv.Result), conv.To, conv.Path)
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, err := connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	p, err := svc.conversion.Preview(ctx, dto.ConversionPreviewRequest{Amount: amount, CurrencyCode: args[1]})
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, p.Normalized)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "HUB (%s)\t%s\n", p.Normalized.HubCurrency, utils.FormatNullableAmount(p.Normalized.HubAmount))
	for _, code := range fx.ReportingCurrencies(cfg.HubCurrency, cfg.ReportingCurrencies) {
		fmt.Fprintf(w, "%s\t%s\n", code, utils.FormatNullableAmount(p.Normalized.ReportingAmounts[code]))
	}
	return w.Flush()
}

func runRatesList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	svc, err := connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	rates, err := svc.rates.ListExchangeRates(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, dto.ToListExchangeRateResponse(rates))
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tRATE\tUPDATED")
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.FromCurrencyCode, r.ToCurrencyCode, r.Rate, r.LastUpdatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func runMigrate(cmd *cobra.Command, args []string) error {
	changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateDirection(args[0]), logger)
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: applied\n", args[0])
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "migrations %s: no change\n", args[0])
	}
	return nil
}
