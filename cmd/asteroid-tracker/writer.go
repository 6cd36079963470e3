package main

import (
	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/sim"
)

// writerOptions selects the body state sinks.
type writerOptions struct {
	PrintOnly bool
	Color     bool
	// LogFile adds a JSONL sink; session rows go to LogFile + ".sessions".
	LogFile  string
	Overview *sim.Overview
}

// newWriter sets up the state writer from flags and config. It returns the
// writer and a cleanup function to close any resources.
func newWriter(cfg *config.Config, o writerOptions) (sim.StateWriter, func(), error) {
	cleanup := func() {}

	writer, err := baseWriter(cfg, o)
	if err != nil {
		return nil, nil, err
	}
	if o.LogFile == "" {
		return writer, cleanup, nil
	}

	fw, err := sim.NewFileWriter(o.LogFile, o.LogFile+".sessions")
	if err != nil {
		return nil, nil, err
	}
	cleanup = func() { fw.Close() }
	return sim.NewMultiWriter(writer, fw), cleanup, nil
}

// baseWriter picks STDOUT when printing only or when no GreptimeDB endpoint
// is configured.
func baseWriter(cfg *config.Config, o writerOptions) (sim.StateWriter, error) {
	if o.PrintOnly || cfg.Sink.GreptimeEndpoint == "" {
		if o.Color {
			return sim.NewColorStdoutWriter(o.Overview), nil
		}
		return sim.NewJSONStdoutWriter(), nil
	}
	w, err := sim.NewGreptimeDBWriter(cfg.Sink.GreptimeEndpoint, cfg.Sink.GreptimeDatabase, cfg.Sink.Table)
	if err != nil {
		return nil, err
	}
	return w, nil
}
