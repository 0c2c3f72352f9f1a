package main

import (
	"context"
	"fmt"
	"time"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/config"
	"github.com/Ian9Franco/pdf-generator/internal/logging"
	"github.com/Ian9Franco/pdf-generator/internal/server"
)

// runServeCmd starts the HTTP server and blocks until ctx is canceled.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkWorkers(cfg.Server.Workers); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}
	opts, err := generatorOptions(cfg, timeout)
	if err != nil {
		return err
	}

	// Fail on a bad style or asset path now rather than on the first request.
	probe, err := pdfgen.NewGenerator(opts...)
	if err != nil {
		return err
	}
	_ = probe.Close()

	pool := pdfgen.NewGeneratorPool(pdfgen.ResolvePoolSize(cfg.Server.Workers), opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logging.Logger().Warn("closing generator pool", "error", err)
		}
	}()

	srv := server.New(server.FromGeneratorPool(pool), serverConfig(cfg, timeout))
	defer srv.Close()

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Listening on %s (%d workers)\n", cfg.Server.Addr, pool.Size())
	}
	return srv.Start(ctx, cfg.Server.Addr)
}

// mergeServeFlags merges serve flags into config. CLI values override config values.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if f.workers != 0 {
		cfg.Server.Workers = f.workers
	}
	if f.rateLimit != 0 {
		cfg.Server.RateLimit = f.rateLimit
	}
	if f.maxBody != 0 {
		cfg.Server.MaxBodyBytes = f.maxBody
	}
	if f.strategy != "" {
		cfg.Fit.Strategy = f.strategy
	}
	if f.fontAware {
		cfg.Fit.FontAware = true
	}
	if f.assets.style != "" {
		cfg.Assets.Style = f.assets.style
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
}

// serverConfig maps the server section onto server.Config. A zero rate
// limit means the default; a negative one turns limiting off.
func serverConfig(cfg *config.Config, timeout time.Duration) server.Config {
	rate := cfg.Server.RateLimit
	switch {
	case rate == 0:
		rate = config.DefaultRateLimit
	case rate < 0:
		rate = 0
	}

	sc := server.Config{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		RateLimit:    rate,
		RateWindow:   time.Minute,
	}
	if timeout > 0 {
		// Leave headroom for binding and writing around the render itself.
		sc.RequestTimeout = timeout + 5*time.Second
	}
	return sc
}
