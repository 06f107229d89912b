// Package main provides the CLI entry point for prefixtrim.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"prefixtrim/internal/app"
	"prefixtrim/internal/output"
	"prefixtrim/internal/prompt"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the values shared by every subcommand.
type flags struct {
	params  app.Params
	verbose bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:           "prefixtrim",
		Short:         "Strip a class-name prefix from Java or Swift sources",
		Long:          `prefixtrim removes a common upper-case prefix from the names and contents of the Java or Swift files in a directory, writing trimmed copies beside the originals.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&f.params.Language, "lang", "l", "", "Source language: java or swift")
	rootCmd.PersistentFlags().StringVarP(&f.params.ConfigPath, "config", "c", "", "Path to config file (default: <dir>/.prefixtrim.yaml)")
	rootCmd.PersistentFlags().StringArrayVar(&f.params.Exclude, "exclude", nil, "Glob of file names to leave alone (repeatable)")
	rootCmd.PersistentFlags().StringVar(&f.params.AuditDir, "audit-dir", "", "Directory of the audit log")
	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		newInferCmd(f),
		newListCmd(f),
		newTrimCmd(f),
		newHistoryCmd(f),
	)
	return rootCmd
}

func (f *flags) runner() (*app.Runner, *output.Output) {
	cfg := output.DefaultConfig()
	cfg.Verbose = f.verbose
	out := output.New(cfg)
	return app.NewRunner(out, prompt.NewPrompter(os.Stdin, os.Stdout), prompt.IsInteractive()), out
}

func newInferCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "infer <dir>",
		Short: "Print the prefix suggested by the first file of the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.params.Directory = args[0]
			runner, out := f.runner()
			prefix, err := runner.Infer(f.params)
			if err != nil {
				return err
			}
			out.Info("%s", prefix)
			return nil
		},
	}
}

func newListCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <dir>",
		Short: "List the candidate files of the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.params.Directory = args[0]
			runner, out := f.runner()
			files, err := runner.List(f.params)
			if err != nil {
				return err
			}
			for _, file := range files {
				out.Info("%s", file.Name)
			}
			out.Verbose("%d files", len(files))
			return nil
		},
	}
}

func newTrimCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim <dir>",
		Short: "Write trimmed copies and optionally delete the originals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.params.Directory = args[0]
			runner, _ := f.runner()
			_, err := runner.Trim(f.params)
			return err
		},
	}

	cmd.Flags().StringVarP(&f.params.Prefix, "prefix", "p", "", "Prefix to strip (default: config, then inferred)")
	cmd.Flags().BoolVarP(&f.params.Yes, "yes", "y", false, "Trim without asking for confirmation")
	cmd.Flags().BoolVar(&f.params.Delete, "delete", false, "Delete the originals without asking for confirmation")
	cmd.Flags().BoolVar(&f.params.DryRun, "dry-run", false, "Show what would be trimmed without writing anything")
	cmd.Flags().BoolVar(&f.params.Legacy, "legacy", false, "Write copies one by one instead of staging them")
	return cmd
}

func newHistoryCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "history [dir]",
		Short: "List the runs recorded in the audit log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.params.Directory = args[0]
			}
			runner, out := f.runner()
			runs, err := runner.History(f.params)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				out.Info("No runs recorded")
				return nil
			}
			for _, run := range runs {
				out.Info("%s  %s  %-11s %s %s prefix=%s trimmed=%d skipped=%d deleted=%d (%s)",
					run.StartTime.Local().Format(time.DateTime), run.RunID, run.Status,
					run.Language, run.Directory, run.Prefix,
					run.Summary.Trimmed, run.Summary.Skipped, run.Summary.Deleted,
					run.Duration().Round(time.Millisecond))
			}
			return nil
		},
	}
}
