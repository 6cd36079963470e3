package sim

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"asteroid-tracker/internal/telemetry"
)

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	ts := time.Unix(0, 0).UTC()
	v := 6.5
	bRow := telemetry.BodyStateRow{SessionID: "s1", BodyID: "b1", Name: "2025 AB", Kind: "asteroid", X: 1, VelocityKmS: &v, Timestamp: ts}
	sRow := telemetry.SessionStateRow{SessionID: "s1", ScaleMode: "Realistic", Bodies: 6, DangerCount: 1, Timestamp: ts}

	statePath := filepath.Join(dir, "states.jsonl")
	sessionPath := filepath.Join(dir, "sessions.jsonl")
	fw, err := NewFileWriter(statePath, sessionPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := fw.WriteBatch([]telemetry.BodyStateRow{bRow, bRow}); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if err := fw.WriteSession(sRow); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(statePath)
	if err != nil {
		t.Fatalf("open states: %v", err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	lines := 0
	for sc.Scan() {
		var got telemetry.BodyStateRow
		if err := json.Unmarshal(sc.Bytes(), &got); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if got.Name != bRow.Name || got.VelocityKmS == nil || *got.VelocityKmS != v {
			t.Fatalf("unexpected state: %#v", got)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 state lines, got %d", lines)
	}

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		t.Fatalf("read sessions: %v", err)
	}
	var got telemetry.SessionStateRow
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if got != sRow {
		t.Fatalf("session row = %#v, want %#v", got, sRow)
	}
}

func TestFileWriterWithoutSessionLog(t *testing.T) {
	fw, err := NewFileWriter(filepath.Join(t.TempDir(), "states.jsonl"), "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()
	if err := fw.WriteSession(telemetry.SessionStateRow{}); err != nil {
		t.Fatalf("disabled session log should be a no-op: %v", err)
	}
}
