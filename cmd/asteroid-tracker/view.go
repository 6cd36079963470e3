package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"asteroid-tracker/internal/admin"
	"asteroid-tracker/internal/logging"
	"asteroid-tracker/internal/metrics"
	"asteroid-tracker/internal/neows"
	"asteroid-tracker/internal/tracker"
	"asteroid-tracker/internal/tui"
)

var (
	viewOffline bool
	viewAdmin   bool
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore the tracker interactively in the terminal",
	Long:  "view renders the scene in the terminal. Hover a body for its distance to Earth, click an asteroid for details and press t to toggle asteroid scale.",
	RunE:  runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewOffline, "offline", false, "Skip the NeoWs fetch and show only the built-in bodies")
	viewCmd.Flags().BoolVar(&viewAdmin, "admin", false, "Also serve the admin UI on the configured address")
}

func runView(cmd *cobra.Command, args []string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("view needs a terminal; use simulate for headless runs")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := setupLogger(cfg, logFile)
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
	opts := tracker.Options{
		DangerThreshold: cfg.DangerThreshold,
		Mode:            mode,
		Metrics:         collector,
		Logger:          logger,
	}
	if w, h, err := term.GetSize(fd); err == nil && h > 0 {
		opts.Aspect = float64(w) / (float64(h) * 2)
	}
	session, err := tracker.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.NewContext(ctx, logger)

	if viewAdmin {
		srv := admin.NewServer(cfg.SessionID, session, collector, cfg.Admin.StreamInterval)
		go func() {
			if err := srv.Start(ctx, cfg.Admin.Addr); err != nil {
				logger.Error("admin server failed", "err", err)
			}
		}()
	}

	var feed tracker.FeedSource
	if !viewOffline {
		feed = neows.NewClient(cfg.Feed.Endpoint, cfg.Feed.APIKey, cfg.Feed.Timeout)
	}
	m := tui.New(session, feed, tui.Options{FrameInterval: cfg.FrameInterval, Context: ctx, Logger: logger})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("viewer stopped", "session_id", cfg.SessionID)
	return nil
}
