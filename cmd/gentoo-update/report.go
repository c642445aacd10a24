package main

import (
	"os"

	"github.com/DevenBL/gentoo-update/internal/common/config"
	"github.com/DevenBL/gentoo-update/internal/common/logger"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report [logfile]",
	Short: "Parse an update log and print its report",
	Long: `Parse a run log into per-package records and print the report.
Without an argument the newest run log in the configured log directory
is used.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	var logPath string
	if len(args) > 0 {
		logPath = args[0]
	} else {
		logDir, err := cfg.LogDir()
		if err != nil {
			logger.Error("resolving log directory: %v", err)
			os.Exit(1)
		}
		logPath, err = latestRunLog(logDir)
		if err != nil {
			logger.Error("%v", err)
			os.Exit(1)
		}
	}

	r, err := reportFromLog(cfg, logPath)
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	r.Render()
}
