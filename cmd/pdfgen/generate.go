package main

import (
	"context"
	"errors"
	"fmt"

	pdfgen "github.com/Ian9Franco/pdf-generator"
	"github.com/Ian9Franco/pdf-generator/internal/config"
	"github.com/Ian9Franco/pdf-generator/internal/logging"
)

// ErrSaveProfileBatch rejects --save-profile with more than one input file.
var ErrSaveProfileBatch = errors.New("--save-profile needs a single input file")

// runGenerateCmd parses flags and runs the generate command.
func runGenerateCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runGenerate(ctx, positional, flags, env)
}

// runGenerate orchestrates generation: config, discovery, batch, report.
func runGenerate(ctx context.Context, positional []string, flags *generateFlags, env *Environment) error {
	if err := checkWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(&flags.documentFlags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := inputArg(positional, cfg)
	if err != nil {
		return err
	}

	jobs, err := planJobs(inputPath, outputArg(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}
	if flags.fit.saveProfile != "" && len(jobs) > 1 {
		return fmt.Errorf("%w: found %d files in %s", ErrSaveProfileBatch, len(jobs), inputPath)
	}

	params, err := buildParams(&flags.documentFlags, cfg)
	if err != nil {
		return err
	}
	params.htmlOnly = flags.outputMode.htmlOnly
	params.htmlOutput = flags.outputMode.html

	opts, err := generatorOptions(cfg, timeout)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := min(pdfgen.ResolvePoolSize(workers), len(jobs))
	logging.Logger().Debug("starting generation", "files", len(jobs), "workers", size)

	pool := env.NewPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logging.Logger().Warn("closing generator pool", "error", err)
		}
	}()

	outcomes := runJobs(ctx, pool, jobs, params)
	if s := printOutcomes(outcomes, flags.common.quiet, flags.common.verbose, env); s.failed > 0 {
		return &batchError{failed: s.failed, first: firstFailure(outcomes)}
	}

	if flags.fit.saveProfile != "" {
		if err := config.SaveProfile(flags.fit.saveProfile, outcomes[0].report.Profile); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Saved profile to %s\n", flags.fit.saveProfile)
		}
	}

	return nil
}
