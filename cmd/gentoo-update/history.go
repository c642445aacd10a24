package main

import (
	"fmt"
	"os"

	"github.com/DevenBL/gentoo-update/internal/common/config"
	"github.com/DevenBL/gentoo-update/internal/common/logger"
	"github.com/DevenBL/gentoo-update/internal/common/output"
	"github.com/DevenBL/gentoo-update/internal/history"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past update runs",
	Long:  `List recorded update runs with their mode, outcome and package counts.`,
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		logger.Error("resolving history database: %v", err)
		os.Exit(1)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		logger.Error("opening history database: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.List(historyLimit)
	if err != nil {
		logger.Error("listing history: %v", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		logger.Info("No update runs recorded yet")
		return
	}

	fmt.Println()
	output.Header.Println("Update History")
	fmt.Println()

	for _, run := range runs {
		if run.Success {
			output.Success.Printf("  %s  %-6s  ok\n", run.StartedAt.Format("2006-01-02 15:04"), run.Mode)
		} else {
			output.Error.Printf("  %s  %-6s  failed\n", run.StartedAt.Format("2006-01-02 15:04"), run.Mode)
		}
		fmt.Printf("    new: %d  updated: %d  re-emerged: %d  uninstalled: %d  blocked: %d\n",
			run.NewPackages, run.Updates, run.ReEmerges, run.Uninstalls, run.Blocks)
		if run.LogPath != "" {
			output.Dim.Printf("    log: %s\n", run.LogPath)
		}
		fmt.Println()
	}
}
