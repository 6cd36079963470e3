package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"asteroid-tracker/internal/admin"
	"asteroid-tracker/internal/logging"
	"asteroid-tracker/internal/metrics"
	"asteroid-tracker/internal/neows"
	"asteroid-tracker/internal/sim"
	"asteroid-tracker/internal/tracker"
)

var (
	simPrintOnly bool
	simColor     bool
	simLogFile   string
	simOffline   bool
	simNoAdmin   bool
	simDuration  time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the headless tracker loop",
	Long:  "simulate runs the frame loop without a terminal UI and emits sampled body state to STDOUT, a JSONL log or GreptimeDB.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := setupLogger(cfg, os.Stderr)
		if err != nil {
			return err
		}

		collector, err := metrics.New(nil)
		if err != nil {
			return err
		}
		mode, err := tracker.ParseScaleMode(cfg.ScaleMode)
		if err != nil {
			return err
		}
		session, err := tracker.New(tracker.Options{
			DangerThreshold: cfg.DangerThreshold,
			Mode:            mode,
			Aspect:          16.0 / 9.0,
			Metrics:         collector,
			Logger:          logger,
		})
		if err != nil {
			return err
		}

		writer, cleanup, err := newWriter(cfg, writerOptions{
			PrintOnly: simPrintOnly,
			Color:     simColor,
			LogFile:   simLogFile,
			Overview: &sim.Overview{
				SessionID:       cfg.SessionID,
				ScaleMode:       mode.String(),
				DangerThreshold: cfg.DangerThreshold,
				FrameInterval:   cfg.FrameInterval,
				Endpoint:        cfg.Feed.Endpoint,
			},
		})
		if err != nil {
			return err
		}
		defer cleanup()

		var feed tracker.FeedSource
		if !simOffline {
			feed = neows.NewClient(cfg.Feed.Endpoint, cfg.Feed.APIKey, cfg.Feed.Timeout)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if simDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, simDuration)
			defer cancel()
		}
		ctx = logging.NewContext(ctx, logger)

		if !simNoAdmin {
			srv := admin.NewServer(cfg.SessionID, session, collector, cfg.Admin.StreamInterval)
			go func() {
				if err := srv.Start(ctx, cfg.Admin.Addr); err != nil {
					logger.Error("admin server failed", "err", err)
				}
			}()
		}

		simulator := sim.NewSimulator(cfg.SessionID, session, feed, writer, sim.Settings{
			FrameInterval: cfg.FrameInterval,
			SampleEvery:   cfg.Sink.SampleEvery,
			Metrics:       collector,
		})
		logger.Info("tracker simulation started", "session_id", cfg.SessionID, "frame_interval", cfg.FrameInterval)
		simulator.Run(ctx)
		logger.Info("tracker simulation stopped", "frames", simulator.Frames())
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print body state to STDOUT instead of writing to GreptimeDB")
	simulateCmd.Flags().BoolVar(&simColor, "color", false, "Print a colored summary instead of JSON")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export body state logs (JSONL)")
	simulateCmd.Flags().BoolVar(&simOffline, "offline", false, "Skip the NeoWs fetch")
	simulateCmd.Flags().BoolVar(&simNoAdmin, "no-admin", false, "Do not start the admin server")
	simulateCmd.Flags().DurationVar(&simDuration, "duration", 0, "Stop after this long (0 runs until interrupted)")
}
