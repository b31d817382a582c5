package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/amosWeiskopf/onpage/internal/config"
	"github.com/amosWeiskopf/onpage/internal/logging"
	"github.com/amosWeiskopf/onpage/pkg/analyzer"
	"github.com/amosWeiskopf/onpage/pkg/auditor"
	"github.com/amosWeiskopf/onpage/pkg/fetcher"
	"github.com/amosWeiskopf/onpage/pkg/resolver"
	"github.com/amosWeiskopf/onpage/pkg/storage"
	"github.com/amosWeiskopf/onpage/pkg/workbook"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "onpage",
	Short: "onpage - on-page SEO audit and keyword report tool",
	Long: `onpage fetches web pages, records their on-page SEO metadata as text
reports, and counts keyword occurrences across the saved reports.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var auditCmd = &cobra.Command{
	Use:   "audit [URL]",
	Short: "Audit a URL, or every URL in the list file",
	Long: `Audit fetches one page per URL and writes its raw HTML to the index
directory and its SEO report to the reports directory.

Without an argument the URLs are read from the list file (urls.txt), one per
line; blank lines and lines starting with # are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		urls := resolver.New(cfg.Storage.URLListFile, cfg.Fetch.DefaultURL, logger).Resolve(args)

		a := auditor.New(
			fetcher.FromConfig(cfg.Fetch, logger),
			storage.New(cfg.Storage.IndexDir, cfg.Storage.ReportDir, logger),
			logger,
		)

		out := cmd.OutOrStdout()
		sum, err := a.Run(cmd.Context(), urls, func(res auditor.Result) {
			fmt.Fprintln(out, res.Report)
			if len(urls) > 1 {
				fmt.Fprintf(out, "\n%s\n\n", strings.Repeat("~", 60))
			}
		})
		if err != nil {
			return fmt.Errorf("audit interrupted: %w", err)
		}

		line := fmt.Sprintf("Audited %d URL(s): %d failed, %d file(s) written", sum.Audited, sum.Failed, sum.Files)
		if sum.Failed > 0 {
			failure.Fprintln(out, line)
		} else {
			success.Fprintln(out, line)
		}
		return nil
	},
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Count keyword occurrences across saved reports",
	Long: `Keywords reads the keyword list from column A of the keyword workbook
(row 1 is a header), counts every keyword in the .txt and .html files of the
reports and index directories, and writes outputs/output_<timestamp>.xlsx.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		a := analyzer.New(&analyzer.Config{
			KeywordFile:  cfg.Keywords.File,
			InputDirs:    []string{cfg.Storage.ReportDir, cfg.Storage.IndexDir},
			ExcludeFiles: []string{cfg.Storage.URLListFile},
			OutputDir:    cfg.Storage.OutputDir,
			SheetName:    cfg.Keywords.SheetName,
		}, logger)

		path, results, err := a.Run()
		if err != nil {
			return fmt.Errorf("keyword analysis failed: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, res := range results {
			fmt.Fprintf(out, "Keyword '%s' | Coincidencias: %d | %s\n", res.Keyword, res.MatchCount, workbook.FilesCell(res))
		}
		success.Fprintf(out, "Keyword report written to %s (sheet %q)\n", path, cfg.Keywords.SheetName)
		return nil
	},
}

// setup loads and validates configuration and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, logging.New(cfg.Logging, verbose), nil
}

func init() {
	// Add commands to root
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(keywordsCmd)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		failure.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
