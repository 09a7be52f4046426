/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/relocate/core/codemod"
	"github.com/tristendillon/relocate/core/config"
	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/mover"
	"github.com/tristendillon/relocate/core/refactor"
	"github.com/tristendillon/relocate/core/report"
	"github.com/tristendillon/relocate/core/walker"
)

func setupLogging(cmd *cobra.Command) (func(), error) {
	logger.SetVerbose(verbose)
	logger.SetTimestamps(verbose)
	logger.SetWriterForAll(cmd.OutOrStdout(), !noColor)
	logger.SetWriter(logger.ERROR, cmd.ErrOrStderr(), !noColor)
	logger.SetWriter(logger.FATAL, cmd.ErrOrStderr(), !noColor)

	if logfile == "" {
		return func() {}, nil
	}
	closer, err := logger.OpenLogFile(logfile)
	if err != nil {
		return nil, err
	}
	return func() { closer.Close() }, nil
}

func runRelocate(cmd *cobra.Command, args []string) error {
	closeLog, err := setupLogging(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("relocate called with %v", args)

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(wd, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if srcRoot != "" {
		cfg.SourceRoot = srcRoot
	}

	sourceWalker, err := walker.NewSourceWalkerFromConfig(cfg)
	if err != nil {
		return err
	}

	refactorer := refactor.NewRefactorer(wd, cfg.SourceRootPath(wd), sourceWalker, mover.NewFileMover(), nil)
	plan, err := refactorer.Plan(args[0], args[1])
	if err != nil {
		return err
	}

	if dryRun {
		logger.Info("Dry run, nothing will be changed")
		report.WritePlan(cmd.OutOrStdout(), plan, wd)
		return nil
	}

	transforms, err := codemod.FindTransforms(cfg.Codemod, wd)
	if err != nil {
		return err
	}
	runner := codemod.NewExecRunner(cfg.Codemod.Command, wd)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	refactorer.Rewriter = &codemod.Rewriter{
		Runner:       runner,
		Transforms:   *transforms,
		PrintOptions: cfg.Codemod.PrintOptions,
		BatchSize:    cfg.Codemod.BatchSize,
	}
	if showDiff {
		refactorer.EnableDiff(cmd.OutOrStdout(), !noColor)
	}

	result, err := refactorer.Run(cmd.Context(), plan)
	if err != nil {
		return err
	}

	report.WriteSummary(cmd.OutOrStdout(), result, wd)
	return nil
}
