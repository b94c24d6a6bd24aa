package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/p0wz/goalsniperai-sub000/internal/app"
	"github.com/p0wz/goalsniperai-sub000/internal/config"
	"github.com/p0wz/goalsniperai-sub000/internal/domain/market"
	"github.com/p0wz/goalsniperai-sub000/internal/observability"
	"github.com/p0wz/goalsniperai-sub000/internal/platform/logging"
	"github.com/p0wz/goalsniperai-sub000/internal/usecase"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if err := applyFlags(&cfg, args, stderr); err != nil {
		fmt.Fprintf(stderr, "parse flags: %v\n", err)
		return 1
	}

	logger := logging.NewJSONWriter(stderr, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiling(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	analyst, err := app.NewAnalyst(cfg, logger)
	if err != nil {
		logger.Error("build analyst", "error", err)
		return 1
	}

	diagnostics := observability.StartDiagnosticsServer(cfg, analyst.Metrics.Registry(), logger)
	defer func() {
		if err := observability.StopDiagnosticsServer(diagnostics, logger, 5*time.Second); err != nil {
			logger.Warn("stop diagnostics server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := analyst.Service.Run(ctx, app.RunRequest(cfg))
	if err != nil {
		logger.Error("analysis run rejected", "error", err, "invalid_input", errors.Is(err, usecase.ErrInvalidInput))
		return 1
	}

	out, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		return 1
	}
	if _, err := stdout.Write(append(out, '\n')); err != nil {
		logger.Error("write result", "error", err)
		return 1
	}

	if result.Status == usecase.RunStatusCancelled {
		return 1
	}
	return 0
}

// applyFlags lets command-line flags override the ANALYST_* settings. Only
// flags that were set explicitly take effect.
func applyFlags(cfg *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyst", flag.ContinueOnError)
	fs.SetOutput(stderr)

	day := fs.Int("day", cfg.AnalystDayOffset, "day offset from today (0-7)")
	limit := fs.Int("limit", cfg.AnalystMatchLimit, "maximum fixtures to classify")
	markets := fs.String("markets", "", "comma separated market keys; empty evaluates all")
	noLeagueFilter := fs.Bool("no-league-filter", !cfg.AnalystLeagueFilter, "skip the league allow-list")
	odds := fs.Bool("odds", cfg.AnalystFetchOdds, "fetch bookmaker odds for candidates")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "day":
			cfg.AnalystDayOffset = *day
		case "limit":
			cfg.AnalystMatchLimit = *limit
		case "markets":
			keys, err := market.ParseKeys(*markets)
			if err != nil {
				parseErr = err
				return
			}
			cfg.AnalystMarkets = keys
		case "no-league-filter":
			cfg.AnalystLeagueFilter = !*noLeagueFilter
		case "odds":
			cfg.AnalystFetchOdds = *odds
		}
	})
	return parseErr
}
