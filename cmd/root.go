/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "relocate <from> <to>",
	Short: "Move a source file or directory and rewrite the imports that point at it.",
	Long: `Relocate moves a JavaScript file or directory to a new path, then runs
jscodeshift with the refactoring-codemods transforms so that every file
importing it, and the moved file's own relative imports, keep resolving.

Paths are resolved against the current working directory.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runRelocate,
}

var (
	logfile    string
	configPath string
	srcRoot    string
	verbose    bool
	dryRun     bool
	showDiff   bool
	noColor    bool
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&logfile, "logfile", "", "File to write logs to")
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configPath, "config", "", "Config file (default: relocate.yaml in the working directory)")
	fs.StringVar(&srcRoot, "src", "", "Directory whose files get their imports rewritten (overrides source_root)")
	fs.BoolVar(&dryRun, "dry-run", false, "Print the planned moves without changing anything")
	fs.BoolVar(&showDiff, "diff", false, "Print the changes the codemods made to each file")
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	addRunFlags(rootCmd.Flags())
}
