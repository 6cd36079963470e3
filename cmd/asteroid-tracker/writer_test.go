package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"asteroid-tracker/internal/config"
	"asteroid-tracker/internal/sim"
	"asteroid-tracker/internal/telemetry"
)

func TestNewWriterPrintOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Sink.GreptimeEndpoint = "localhost:4001"
	w, cleanup, err := newWriter(cfg, writerOptions{PrintOnly: true})
	if err != nil {
		t.Fatalf("newWriter returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", w)
	}
}

func TestNewWriterGreptimeFallback(t *testing.T) {
	cfg := config.Default()
	cfg.Sink.GreptimeEndpoint = ""
	w, cleanup, err := newWriter(cfg, writerOptions{})
	if err != nil {
		t.Fatalf("newWriter returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.JSONStdoutWriter); !ok {
		t.Fatalf("expected *sim.JSONStdoutWriter, got %T", w)
	}
}

func TestNewWriterColor(t *testing.T) {
	w, cleanup, err := newWriter(config.Default(), writerOptions{PrintOnly: true, Color: true})
	if err != nil {
		t.Fatalf("newWriter returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", w)
	}
}

func TestNewWriterLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bodies.log")
	w, cleanup, err := newWriter(config.Default(), writerOptions{PrintOnly: true, LogFile: path})
	if err != nil {
		t.Fatalf("newWriter returned error: %v", err)
	}
	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", w)
	}
	row := telemetry.BodyStateRow{SessionID: "s1", BodyID: "b1", Name: "Earth", Kind: "planet", Timestamp: time.Now()}
	if err := w.Write(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	sw, ok := w.(sim.SessionWriter)
	if !ok {
		t.Fatalf("writer does not implement SessionWriter")
	}
	if err := sw.WriteSession(telemetry.SessionStateRow{SessionID: "s1", Bodies: 5, Timestamp: time.Now()}); err != nil {
		t.Fatalf("write session failed: %v", err)
	}
	cleanup()

	for _, p := range []string{path, path + ".sessions"} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", p)
		}
	}
}
