package main

import (
	"os"

	"github.com/DevenBL/gentoo-update/internal/common/config"
	"github.com/DevenBL/gentoo-update/internal/common/logger"
	"github.com/DevenBL/gentoo-update/internal/common/output"
	"github.com/DevenBL/gentoo-update/internal/history"
	"github.com/DevenBL/gentoo-update/internal/parser"
	"github.com/DevenBL/gentoo-update/internal/report"
	"github.com/DevenBL/gentoo-update/internal/updater"
	"github.com/spf13/cobra"
)

var updateMode string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run a system update and report the result",
	Long: `Run the update script, stream its output into a timestamped run log,
then parse the log and print a per-package report.

Examples:
  gentoo-update update                Run with the configured mode
  gentoo-update update --mode GLSA    Run a security update`,
	Run: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateMode, "mode", "", "Update mode: @world or GLSA (overrides config)")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	if updateMode != "" {
		cfg.Updater.Mode = updateMode
	}
	if err := cfg.ValidateMode(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	if err := cfg.ValidateScript(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	logDir, err := cfg.LogDir()
	if err != nil {
		logger.Error("resolving log directory: %v", err)
		os.Exit(1)
	}

	log := logger.Default()
	logPath, err := log.OpenRunLog(logDir)
	if err != nil {
		logger.Error("opening run log: %v", err)
		os.Exit(1)
	}
	defer log.Close()

	script, err := cfg.Script()
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	runner := updater.NewShellRunner(script, log)
	runErr := runner.Run(cfg.Updater.Mode)
	if runErr != nil {
		logger.Error("%v", runErr)
	} else {
		log.Info("gentoo-update completed its tasks")
		log.Info("log file can be found at: %s", logPath)
	}
	log.Close()

	// The run log is complete either way; parse it and report.
	r, err := reportFromLog(cfg, logPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	r.Render()

	recordRun(cfg, r, logPath)

	if runErr != nil {
		os.Exit(1)
	}
}

// reportFromLog parses a run log file and generates its report.
func reportFromLog(cfg *config.Config, logPath string) (*report.Report, error) {
	lines, err := readLogLines(logPath)
	if err != nil {
		return nil, err
	}

	watchlistPath, err := cfg.WatchlistPath()
	if err != nil {
		return nil, err
	}
	watchlist, err := report.LoadWatchlist(watchlistPath)
	if err != nil {
		return nil, err
	}

	return report.Generate(parser.Split(lines), watchlist), nil
}

// recordRun stores the run summary in the history database. History is
// best-effort: a failure only warns.
func recordRun(cfg *config.Config, r *report.Report, logPath string) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		output.PrintWarning("skipping history: %v", err)
		return
	}

	store, err := history.Open(dbPath)
	if err != nil {
		output.PrintWarning("skipping history: %v", err)
		return
	}
	defer store.Close()

	c := r.Count()
	run := &history.Run{
		Mode:        r.Mode,
		Success:     r.UpdateSuccess,
		NewPackages: c.NewPackages,
		Updates:     c.Updates,
		ReEmerges:   c.ReEmerges,
		Uninstalls:  c.Uninstalls,
		Blocks:      c.Blocks,
		LogPath:     logPath,
	}
	if err := store.Record(run); err != nil {
		output.PrintWarning("recording run history: %v", err)
	}
}
