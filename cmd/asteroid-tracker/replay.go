package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"asteroid-tracker/internal/sim"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a body state log file",
	Long:  "replay feeds body state rows from a JSONL log back into GreptimeDB or STDOUT, keeping their original spacing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if _, err := setupLogger(cfg, cmd.ErrOrStderr()); err != nil {
			return err
		}
		writer, cleanup, err := newWriter(cfg, writerOptions{PrintOnly: replayPrintOnly})
		if err != nil {
			return err
		}
		defer cleanup()
		return sim.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to body state log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print body state to STDOUT instead of writing to GreptimeDB")
	replayCmd.MarkFlagRequired("input")
}
