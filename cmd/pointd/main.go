package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/pointcode/internal/config"
	"github.com/danmuck/pointcode/internal/convert"
	"github.com/danmuck/pointcode/internal/logging"
	"github.com/danmuck/pointcode/internal/observability"
	"github.com/danmuck/pointcode/internal/server"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "pointd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("pointd", pflag.ContinueOnError)
	path := fs.StringP("config", "c", "", "path to pointd TOML config (defaults when empty)")
	addr := fs.String("addr", "", "listen address override")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logging.ConfigureRuntime()

	cfg := config.DefaultServerConfig()
	if *path != "" {
		loaded, err := config.LoadServerConfig(*path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
		if err := config.ValidateServerConfig(cfg); err != nil {
			return err
		}
	}
	logging.OverrideLevel(cfg.LogLevel)
	logger := observability.InitLogger(cfg.Name)

	opts := []convert.Option{convert.WithLogger(logger)}
	if cfg.Metrics {
		observability.RegisterMetrics()
		opts = append(opts, convert.WithObserver(observability.ConversionMetrics{}))
	}
	conv := convert.New(nil, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("addr", cfg.Addr).
		Bool("metrics", cfg.Metrics).
		Int("default_width", cfg.DefaultWidth).
		Str("default_target", cfg.DefaultTarget).
		Int("schemas", conv.Registry().Len()).
		Msg("pointd starting")
	return server.New(cfg, conv, logger).Run(ctx)
}
